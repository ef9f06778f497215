package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"project-tracker/backend/internal/apperror"
	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/repositories"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
)

const (
	msgProjectIDRequired = "Project ID is required"
	msgTaskRequired      = "Title, status, and projectId are required"
	msgTaskNotFound      = "Task not found"
	msgTaskDeleteMissing = "Task not found or already deleted"
	msgNoTasks           = "No tasks found"
	msgTaskStatus        = "Status must be one of: todo, in-progress, done"
	msgInvalidProjectID  = "Invalid projectId"
	msgTaskTitleBlank    = "Title cannot be empty"
)

type TaskListQuery struct {
	PageRequest
	ProjectID string
	Status    string
	Search    string
}

type TaskPage struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	Tasks    []models.Task `json:"tasks"`
}

type CreateTaskInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	ProjectID   string            `json:"projectId"`
	// DueDate is RFC 3339 or YYYY-MM-DD. Empty means no due date.
	DueDate string `json:"dueDate"`
}

// TaskService takes the caller on every operation. Whether the caller must
// own the parent project depends on how the service was built.
type TaskService interface {
	List(ctx context.Context, callerID uuid.UUID, query TaskListQuery) (*TaskPage, error)
	Create(ctx context.Context, callerID uuid.UUID, input CreateTaskInput) (*models.Task, error)
	Update(ctx context.Context, callerID, id uuid.UUID, patch models.TaskPatch) (*models.Task, error)
	// Delete returns the removed task.
	Delete(ctx context.Context, callerID, id uuid.UUID) (*models.Task, error)
}

type TaskServiceImpl struct {
	tasks    repositories.TaskRepository
	projects repositories.ProjectRepository
	// enforceOwnership requires callers to own the task's project. Off, any
	// authenticated caller may act on any task.
	enforceOwnership bool
	logger           zerolog.Logger
}

func NewTaskService(tasks repositories.TaskRepository, projects repositories.ProjectRepository, enforceOwnership bool, logger zerolog.Logger) *TaskServiceImpl {
	return &TaskServiceImpl{
		tasks:            tasks,
		projects:         projects,
		enforceOwnership: enforceOwnership,
		logger:           logger.With().Str("service", "tasks").Logger(),
	}
}

// checkOwner answers a NotFound error carrying message when ownership is
// enforced and callerID does not own projectID.
func (s *TaskServiceImpl) checkOwner(ctx context.Context, callerID, projectID uuid.UUID, message string) error {
	if !s.enforceOwnership {
		return nil
	}
	if _, err := s.projects.FindOwned(ctx, callerID, projectID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn().Str("user_id", callerID.String()).Str("project_id", projectID.String()).Msg("task access denied: project not owned")
		}
		return notFoundOr(err, message, "failed to check project ownership")
	}
	return nil
}

func parseProjectID(raw string, missing string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, apperror.Validation(missing)
	}
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, apperror.Validation(msgInvalidProjectID)
	}
	return id, nil
}

func (s *TaskServiceImpl) List(ctx context.Context, callerID uuid.UUID, query TaskListQuery) (*TaskPage, error) {
	projectID, err := parseProjectID(query.ProjectID, msgProjectIDRequired)
	if err != nil {
		s.logger.Warn().Msg("list tasks rejected: missing projectId")
		return nil, err
	}

	status := models.TaskStatus(query.Status)
	if status != "" && !status.Valid() {
		return nil, apperror.Validation(msgTaskStatus)
	}

	if err := s.checkOwner(ctx, callerID, projectID, msgNoTasks); err != nil {
		return nil, err
	}

	page := query.PageRequest.Normalize()
	tasks, total, err := s.tasks.List(ctx, repositories.TaskFilter{
		ProjectID: projectID,
		Status:    status,
		Search:    query.Search,
	}, page.window())
	if err != nil {
		return nil, apperror.Internal("failed to list tasks", err)
	}

	if len(tasks) == 0 {
		s.logger.Warn().Str("project_id", projectID.String()).Msg("no tasks found")
		return nil, apperror.NotFound(msgNoTasks)
	}

	return &TaskPage{
		Total:    total,
		Page:     page.Page,
		PageSize: len(tasks),
		Tasks:    tasks,
	}, nil
}

func (s *TaskServiceImpl) Create(ctx context.Context, callerID uuid.UUID, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.Status == "" || strings.TrimSpace(input.ProjectID) == "" {
		s.logger.Warn().Msg("create task rejected: missing fields")
		return nil, apperror.Validation(msgTaskRequired)
	}
	if !input.Status.Valid() {
		return nil, apperror.Validation(msgTaskStatus)
	}

	projectID, err := parseProjectID(input.ProjectID, msgTaskRequired)
	if err != nil {
		return nil, err
	}

	var due *time.Time
	if input.DueDate != "" {
		t, err := models.ParseDate(input.DueDate)
		if err != nil {
			return nil, apperror.Validation(err.Error())
		}
		due = &t
	}

	if err := s.checkOwner(ctx, callerID, projectID, msgProjectNotFound); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		ProjectID:   projectID,
		Title:       title,
		Description: input.Description,
		Status:      input.Status,
		DueDate:     due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperror.Internal("failed to create task", err)
	}

	s.logger.Info().Str("task_id", task.ID.String()).Str("project_id", projectID.String()).Msg("task created")
	return task, nil
}

func validateTaskPatch(patch models.TaskPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return apperror.Validation(msgTaskTitleBlank)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return apperror.Validation(msgTaskStatus)
	}
	return nil
}

// authorize loads the task and checks its project when ownership is
// enforced. Without enforcement it does nothing, leaving the miss to the
// mutation itself.
func (s *TaskServiceImpl) authorize(ctx context.Context, callerID, id uuid.UUID, message string) error {
	if !s.enforceOwnership {
		return nil
	}
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, message, "failed to load task")
	}
	return s.checkOwner(ctx, callerID, task.ProjectID, message)
}

func (s *TaskServiceImpl) Update(ctx context.Context, callerID, id uuid.UUID, patch models.TaskPatch) (*models.Task, error) {
	if err := validateTaskPatch(patch); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, callerID, id, msgTaskNotFound); err != nil {
		return nil, err
	}

	task, err := s.tasks.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn().Str("task_id", id.String()).Msg("update task: not found")
		}
		return nil, notFoundOr(err, msgTaskNotFound, "failed to update task")
	}

	s.logger.Info().Str("task_id", id.String()).Msg("task updated")
	return task, nil
}

func (s *TaskServiceImpl) Delete(ctx context.Context, callerID, id uuid.UUID) (*models.Task, error) {
	if err := s.authorize(ctx, callerID, id, msgTaskDeleteMissing); err != nil {
		return nil, err
	}

	task, err := s.tasks.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn().Str("task_id", id.String()).Msg("delete task: not found")
		}
		return nil, notFoundOr(err, msgTaskDeleteMissing, "failed to delete task")
	}

	s.logger.Info().Str("task_id", id.String()).Msg("task deleted")
	return task, nil
}
