package repositories

import (
	"context"
	"time"

	"project-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type GormProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return translateError(r.db.WithContext(ctx).Create(project).Error)
}

func (r *GormProjectRepository) FindOwned(ctx context.Context, ownerID, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&project).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &project, nil
}

func (r *GormProjectRepository) filtered(ctx context.Context, filter ProjectFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Project{}).Where("user_id = ?", filter.OwnerID)
	if filter.Search != "" {
		q = q.Where(titleContains, containsPattern(filter.Search))
	}
	return q
}

func (r *GormProjectRepository) List(ctx context.Context, filter ProjectFilter, page Pagination) ([]models.Project, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := r.filtered(ctx, filter).
		Order("created_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *GormProjectRepository) UpdateOwned(ctx context.Context, ownerID, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	if patch.IsEmpty() {
		return r.FindOwned(ctx, ownerID, id)
	}

	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}

	result := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(updates)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.FindOwned(ctx, ownerID, id)
}

func (r *GormProjectRepository) DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormProjectRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Project{}).Error
}
