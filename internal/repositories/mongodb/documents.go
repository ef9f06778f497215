// Package mongodb stores users, projects and tasks as MongoDB documents.
// Identifiers are kept as canonical UUID strings in _id.
package mongodb

import (
	"time"

	"project-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
)

const (
	usersCollection    = "users"
	projectsCollection = "projects"
	tasksCollection    = "tasks"
)

type userDocument struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func newUserDocument(u *models.User) userDocument {
	return userDocument{
		ID:        u.ID.String(),
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDocument) model() *models.User {
	return &models.User{
		ID:        uuid.FromStringOrNil(d.ID),
		Email:     d.Email,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type projectDocument struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"userId"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func newProjectDocument(p *models.Project) projectDocument {
	return projectDocument{
		ID:          p.ID.String(),
		UserID:      p.UserID.String(),
		Title:       p.Title,
		Description: p.Description,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d projectDocument) model() models.Project {
	return models.Project{
		ID:          uuid.FromStringOrNil(d.ID),
		UserID:      uuid.FromStringOrNil(d.UserID),
		Title:       d.Title,
		Description: d.Description,
		Status:      models.ProjectStatus(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// taskDocument carries NoDueDate so a single ascending sort puts tasks
// without a due date after the dated ones.
type taskDocument struct {
	ID          string     `bson:"_id"`
	ProjectID   string     `bson:"projectId"`
	Title       string     `bson:"title"`
	Description string     `bson:"description"`
	Status      string     `bson:"status"`
	DueDate     *time.Time `bson:"dueDate"`
	NoDueDate   bool       `bson:"noDueDate"`
	CreatedAt   time.Time  `bson:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

func newTaskDocument(t *models.Task) taskDocument {
	return taskDocument{
		ID:          t.ID.String(),
		ProjectID:   t.ProjectID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		NoDueDate:   t.DueDate == nil,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (d taskDocument) model() models.Task {
	var due *time.Time
	if d.DueDate != nil {
		t := d.DueDate.UTC()
		due = &t
	}
	return models.Task{
		ID:          uuid.FromStringOrNil(d.ID),
		ProjectID:   uuid.FromStringOrNil(d.ProjectID),
		Title:       d.Title,
		Description: d.Description,
		Status:      models.TaskStatus(d.Status),
		DueDate:     due,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
