package services

import (
	"context"
	"errors"

	"project-tracker/backend/internal/cache"
	"project-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
)

// CachedProjectService serves list pages from the cache and drops the
// owner's pages on every write. Cache failures fall through to the wrapped
// service.
type CachedProjectService struct {
	projectService ProjectService
	cache          ListCache
	logger         zerolog.Logger
}

func NewCachedProjectService(projectService ProjectService, listCache ListCache, logger zerolog.Logger) *CachedProjectService {
	return &CachedProjectService{
		projectService: projectService,
		cache:          listCache,
		logger:         logger.With().Str("service", "projects_cache").Logger(),
	}
}

func (s *CachedProjectService) List(ctx context.Context, ownerID uuid.UUID, query ListProjectsQuery) (*ProjectPage, error) {
	key := projectListKey(ownerID, query.PageRequest.Normalize(), query.Search)

	var cached ProjectPage
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}

	page, err := s.projectService.List(ctx, ownerID, query)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, page); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return page, nil
}

func (s *CachedProjectService) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Project, error) {
	return s.projectService.Get(ctx, ownerID, id)
}

func (s *CachedProjectService) Create(ctx context.Context, ownerID uuid.UUID, input CreateProjectInput) (*models.Project, error) {
	project, err := s.projectService.Create(ctx, ownerID, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, projectListPattern(ownerID))
	return project, nil
}

func (s *CachedProjectService) Update(ctx context.Context, ownerID, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	project, err := s.projectService.Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, projectListPattern(ownerID))
	return project, nil
}

func (s *CachedProjectService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.projectService.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.invalidate(ctx, projectListPattern(ownerID))
	// Orphaned tasks stay, but an ownership check on them now fails.
	s.invalidate(ctx, taskListPattern(id))
	return nil
}

func (s *CachedProjectService) invalidate(ctx context.Context, pattern string) {
	if err := s.cache.Invalidate(ctx, pattern); err != nil {
		s.logger.Error().Err(err).Str("pattern", pattern).Msg("cache invalidation failed")
	}
}
