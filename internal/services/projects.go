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
	msgProjectRequired      = "Title and status are required"
	msgProjectNotFound      = "Project not found"
	msgProjectDeleteMissing = "Project not found or already deleted"
	msgNoProjects           = "No projects found"
	msgProjectStatus        = "Status must be one of: active, completed"
	msgProjectTitleBlank    = "Title cannot be empty"
)

type ListProjectsQuery struct {
	PageRequest
	Search string
}

type ProjectPage struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
	Projects []models.Project `json:"projects"`
}

type CreateProjectInput struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
}

// ProjectService scopes every operation to ownerID. A project owned by
// someone else is reported exactly like a missing one.
type ProjectService interface {
	List(ctx context.Context, ownerID uuid.UUID, query ListProjectsQuery) (*ProjectPage, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Project, error)
	Create(ctx context.Context, ownerID uuid.UUID, input CreateProjectInput) (*models.Project, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type ProjectServiceImpl struct {
	projects repositories.ProjectRepository
	logger   zerolog.Logger
}

func NewProjectService(projects repositories.ProjectRepository, logger zerolog.Logger) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		projects: projects,
		logger:   logger.With().Str("service", "projects").Logger(),
	}
}

func (s *ProjectServiceImpl) List(ctx context.Context, ownerID uuid.UUID, query ListProjectsQuery) (*ProjectPage, error) {
	page := query.PageRequest.Normalize()

	projects, total, err := s.projects.List(ctx, repositories.ProjectFilter{
		OwnerID: ownerID,
		Search:  query.Search,
	}, page.window())
	if err != nil {
		return nil, apperror.Internal("failed to list projects", err)
	}

	if len(projects) == 0 {
		s.logger.Warn().Str("user_id", ownerID.String()).Int("page", page.Page).Str("search", query.Search).Msg("no projects found")
		return nil, apperror.NotFound(msgNoProjects)
	}

	return &ProjectPage{
		Total:    total,
		Page:     page.Page,
		PageSize: len(projects),
		Projects: projects,
	}, nil
}

func (s *ProjectServiceImpl) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Project, error) {
	project, err := s.projects.FindOwned(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOr(err, msgProjectNotFound, "failed to load project")
	}
	return project, nil
}

func (s *ProjectServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, input CreateProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.Status == "" {
		s.logger.Warn().Str("user_id", ownerID.String()).Msg("create project rejected: missing fields")
		return nil, apperror.Validation(msgProjectRequired)
	}
	if !input.Status.Valid() {
		return nil, apperror.Validation(msgProjectStatus)
	}

	now := time.Now().UTC()
	project := &models.Project{
		ID:          uuid.Must(uuid.NewV4()),
		UserID:      ownerID,
		Title:       title,
		Description: input.Description,
		Status:      input.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperror.Internal("failed to create project", err)
	}

	s.logger.Info().Str("user_id", ownerID.String()).Str("project_id", project.ID.String()).Msg("project created")
	return project, nil
}

func validateProjectPatch(patch models.ProjectPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return apperror.Validation(msgProjectTitleBlank)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return apperror.Validation(msgProjectStatus)
	}
	return nil
}

func (s *ProjectServiceImpl) Update(ctx context.Context, ownerID, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	if err := validateProjectPatch(patch); err != nil {
		return nil, err
	}

	project, err := s.projects.UpdateOwned(ctx, ownerID, id, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn().Str("user_id", ownerID.String()).Str("project_id", id.String()).Msg("update project: not found")
		}
		return nil, notFoundOr(err, msgProjectNotFound, "failed to update project")
	}

	s.logger.Info().Str("project_id", id.String()).Msg("project updated")
	return project, nil
}

func (s *ProjectServiceImpl) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.projects.DeleteOwned(ctx, ownerID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn().Str("user_id", ownerID.String()).Str("project_id", id.String()).Msg("delete project: not found")
		}
		return notFoundOr(err, msgProjectDeleteMissing, "failed to delete project")
	}

	s.logger.Info().Str("project_id", id.String()).Msg("project deleted")
	return nil
}

// notFoundOr maps a repository miss to a NotFound error carrying message
// and anything else to an internal error.
func notFoundOr(err error, message, internal string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.NotFound(message)
	}
	return apperror.Internal(internal, err)
}
