// Package repositories persists users, projects and tasks. Every backend
// returns ErrNotFound and ErrDuplicate so services never see driver errors.
package repositories

import (
	"context"
	"errors"

	"project-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type Pagination struct {
	Offset int
	Limit  int
}

type ProjectFilter struct {
	OwnerID uuid.UUID
	// Search matches titles containing it, ignoring case. It is a literal
	// substring, not a pattern.
	Search string
}

type TaskFilter struct {
	ProjectID uuid.UUID
	Status    models.TaskStatus
	Search    string
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	DeleteAll(ctx context.Context) error
}

// ProjectRepository scopes every lookup and mutation to the owning user.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindOwned(ctx context.Context, ownerID, id uuid.UUID) (*models.Project, error)
	// List returns one page ordered by creation time, newest first, and the
	// number of projects matching the filter.
	List(ctx context.Context, filter ProjectFilter, page Pagination) ([]models.Project, int64, error)
	UpdateOwned(ctx context.Context, ownerID, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error)
	DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	// List orders by due date ascending. Tasks without a due date come last,
	// ties are broken by creation time.
	List(ctx context.Context, filter TaskFilter, page Pagination) ([]models.Task, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch models.TaskPatch) (*models.Task, error)
	// Delete removes the task and returns it as it was before removal.
	Delete(ctx context.Context, id uuid.UUID) (*models.Task, error)
	DeleteAll(ctx context.Context) error
}

type Repositories struct {
	Users    UserRepository
	Projects ProjectRepository
	Tasks    TaskRepository
}
