package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project is owned by exactly one user. UserID never changes after creation.
type Project struct {
	ID          uuid.UUID     `json:"_id" gorm:"primaryKey;type:uuid"`
	UserID      uuid.UUID     `json:"userId" gorm:"type:uuid;not null;index"`
	Title       string        `json:"title" gorm:"not null"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status" gorm:"not null;default:'active'"`
	CreatedAt   time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ProjectPatch is a partial update. Nil fields are left untouched.
type ProjectPatch struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *ProjectStatus `json:"status"`
}

func (p ProjectPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}
