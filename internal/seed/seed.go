// Package seed resets the store to a small demo data set.
package seed

import (
	"context"
	"fmt"
	"time"

	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/repositories"
	"project-tracker/backend/internal/services"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
)

const (
	DemoEmail    = "test@example.com"
	DemoPassword = "Test@123"

	projectCount    = 2
	tasksPerProject = 3
)

type Result struct {
	User     *models.User
	Projects []models.Project
	Tasks    []models.Task
}

// Run deletes every task, project and user, then inserts the demo user with
// its projects and tasks. Existing data is lost.
func Run(ctx context.Context, repos repositories.Repositories, hasher services.PasswordHasher, logger zerolog.Logger) (*Result, error) {
	if err := repos.Tasks.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear tasks: %w", err)
	}
	if err := repos.Projects.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear projects: %w", err)
	}
	if err := repos.Users.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear users: %w", err)
	}

	hash, err := hasher.Hash(DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.Must(uuid.NewV4()),
		Email:     DemoEmail,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repos.Users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create demo user: %w", err)
	}

	result := &Result{User: user}
	for i := 1; i <= projectCount; i++ {
		// distinct timestamps keep the newest-first order deterministic
		created := now.Add(time.Duration(i) * time.Millisecond)
		project := models.Project{
			ID:        uuid.Must(uuid.NewV4()),
			UserID:    user.ID,
			Title:     fmt.Sprintf("Project %d", i),
			Status:    models.ProjectStatusActive,
			CreatedAt: created,
			UpdatedAt: created,
		}
		if err := repos.Projects.Create(ctx, &project); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", project.Title, err)
		}
		result.Projects = append(result.Projects, project)

		for j := 1; j <= tasksPerProject; j++ {
			taskCreated := created.Add(time.Duration(j) * time.Millisecond)
			task := models.Task{
				ID:        uuid.Must(uuid.NewV4()),
				ProjectID: project.ID,
				Title:     fmt.Sprintf("Task %d for Project %d", j, i),
				Status:    models.TaskStatusTodo,
				CreatedAt: taskCreated,
				UpdatedAt: taskCreated,
			}
			if err := repos.Tasks.Create(ctx, &task); err != nil {
				return nil, fmt.Errorf("failed to create %s: %w", task.Title, err)
			}
			result.Tasks = append(result.Tasks, task)
		}
	}

	logger.Info().
		Str("email", user.Email).
		Int("projects", len(result.Projects)).
		Int("tasks", len(result.Tasks)).
		Msg("database seeded")

	return result, nil
}
