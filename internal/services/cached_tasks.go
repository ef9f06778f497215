package services

import (
	"context"
	"errors"
	"strings"

	"project-tracker/backend/internal/cache"
	"project-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
)

type CachedTaskService struct {
	taskService TaskService
	cache       ListCache
	logger      zerolog.Logger
}

func NewCachedTaskService(taskService TaskService, listCache ListCache, logger zerolog.Logger) *CachedTaskService {
	return &CachedTaskService{
		taskService: taskService,
		cache:       listCache,
		logger:      logger.With().Str("service", "tasks_cache").Logger(),
	}
}

func (s *CachedTaskService) List(ctx context.Context, callerID uuid.UUID, query TaskListQuery) (*TaskPage, error) {
	projectID, err := uuid.FromString(strings.TrimSpace(query.ProjectID))
	if err != nil {
		// Let the wrapped service produce the validation error.
		return s.taskService.List(ctx, callerID, query)
	}

	key := taskListKey(projectID, callerID, query.Status, query.PageRequest.Normalize(), query.Search)

	var cached TaskPage
	err = s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}

	page, err := s.taskService.List(ctx, callerID, query)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, page); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return page, nil
}

func (s *CachedTaskService) Create(ctx context.Context, callerID uuid.UUID, input CreateTaskInput) (*models.Task, error) {
	task, err := s.taskService.Create(ctx, callerID, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, task.ProjectID)
	return task, nil
}

func (s *CachedTaskService) Update(ctx context.Context, callerID, id uuid.UUID, patch models.TaskPatch) (*models.Task, error) {
	task, err := s.taskService.Update(ctx, callerID, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, task.ProjectID)
	return task, nil
}

func (s *CachedTaskService) Delete(ctx context.Context, callerID, id uuid.UUID) (*models.Task, error) {
	task, err := s.taskService.Delete(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, task.ProjectID)
	return task, nil
}

func (s *CachedTaskService) invalidate(ctx context.Context, projectID uuid.UUID) {
	pattern := taskListPattern(projectID)
	if err := s.cache.Invalidate(ctx, pattern); err != nil {
		s.logger.Error().Err(err).Str("pattern", pattern).Msg("cache invalidation failed")
	}
}
