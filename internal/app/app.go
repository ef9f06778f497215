// Package app builds the running application from a Config: storage,
// services, optional cache and the HTTP router.
package app

import (
	"context"
	"errors"
	"fmt"

	"project-tracker/backend/internal/cache"
	"project-tracker/backend/internal/config"
	"project-tracker/backend/internal/database"
	"project-tracker/backend/internal/monitoring"
	"project-tracker/backend/internal/repositories"
	"project-tracker/backend/internal/repositories/mongodb"
	"project-tracker/backend/internal/server"
	"project-tracker/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm/logger"
)

type App struct {
	Config       *config.Config
	Logger       zerolog.Logger
	Repositories repositories.Repositories
	Hasher       services.PasswordHasher
	Auth         services.AuthService
	Projects     services.ProjectService
	Tasks        services.TaskService
	Metrics      *monitoring.Metrics
	Health       *monitoring.HealthChecker
	Router       *gin.Engine

	closers []func() error
}

// New connects to the configured store and wires every layer on top of it.
// The caller must Close the returned App.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a := &App{
		Config:  cfg,
		Logger:  log,
		Metrics: monitoring.NewMetrics(),
		Health:  monitoring.NewHealthChecker(0),
	}

	if err := a.openStore(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Hasher = services.NewBcryptHasher(cfg.Auth.BCryptCost)
	a.Auth = services.NewAuthService(a.Repositories.Users, a.Hasher, cfg.Auth, log.With().Str("component", "auth").Logger())

	var projectService services.ProjectService = services.NewProjectService(a.Repositories.Projects, log.With().Str("component", "projects").Logger())
	var taskService services.TaskService = services.NewTaskService(a.Repositories.Tasks, a.Repositories.Projects, cfg.Auth.EnforceTaskOwnership, log.With().Str("component", "tasks").Logger())

	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCache(cache.ConfigFrom(cfg.Redis))
		a.closers = append(a.closers, redisCache.Close)

		guarded := cache.NewGuardedCache(redisCache, nil, cfg.Redis.TTL)
		a.Metrics.RegisterCache(guarded.Metrics())
		a.Health.Register("cache", redisCache.Health)
		a.Health.RegisterStats("cache", redisCache.Stats)
		a.Health.RegisterStats("cache_breaker", guarded.Breaker().GetStats)

		cacheLog := log.With().Str("component", "cache").Logger()
		projectService = services.NewCachedProjectService(projectService, guarded, cacheLog)
		taskService = services.NewCachedTaskService(taskService, guarded, cacheLog)

		log.Info().Str("addr", cfg.GetRedisAddr()).Dur("ttl", cfg.Redis.TTL).Msg("list cache enabled")
	}

	a.Projects = projectService
	a.Tasks = taskService

	a.Router = server.NewRouter(server.Dependencies{
		Auth:     a.Auth,
		Projects: a.Projects,
		Tasks:    a.Tasks,
		Metrics:  a.Metrics,
		Health:   a.Health,
		Logger:   log,
	})

	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	dbCfg := a.Config.Database

	switch dbCfg.Driver {
	case config.DriverMongo:
		pool, err := database.ConnectMongo(ctx, dbCfg.URL, dbCfg.MongoDatabase, dbCfg.MaxOpenConns)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, pool.Close)

		if err := mongodb.EnsureIndexes(ctx, pool.Database); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
		a.Repositories = mongodb.NewRepositories(pool.Database)
		a.Health.Register("database", pool.Health)

	default:
		pool, err := database.NewDatabasePool(database.PoolConfigFrom(dbCfg, gormLogLevel(a.Config)))
		if err != nil {
			return err
		}
		a.closers = append(a.closers, pool.Close)

		if err := pool.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		a.Repositories = repositories.NewGormRepositories(pool.DB)
		a.Health.Register("database", pool.Health)
		a.Health.RegisterStats("database", pool.Stats)
	}

	a.Logger.Info().Str("driver", dbCfg.Driver).Msg("connected to database")
	return nil
}

func gormLogLevel(cfg *config.Config) logger.LogLevel {
	if cfg.Log.Level == "debug" {
		return logger.Info
	}
	return logger.Silent
}

// Close releases connections in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
