// Package server assembles the gin engine and runs the HTTP listener.
package server

import (
	"time"

	"project-tracker/backend/internal/handlers"
	"project-tracker/backend/internal/middleware"
	"project-tracker/backend/internal/monitoring"
	"project-tracker/backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Auth     services.AuthService
	Projects services.ProjectService
	Tasks    services.TaskService
	Metrics  *monitoring.Metrics
	Health   *monitoring.HealthChecker
	Logger   zerolog.Logger
}

func corsConfig() cors.Config {
	return cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}

// NewRouter wires every route. Everything under /api except /api/auth
// requires a bearer token.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RecoveryWithLog(deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(cors.New(corsConfig()))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	health := deps.Health
	if health == nil {
		health = monitoring.NewHealthChecker(0)
	}
	router.GET("/health", health.HealthHandler())
	router.GET("/health/ready", health.ReadinessHandler())
	router.GET("/health/live", health.LivenessHandler())

	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Logger)
	projectHandler := handlers.NewProjectHandler(deps.Projects, deps.Logger)
	taskHandler := handlers.NewTaskHandler(deps.Tasks, deps.Logger)

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.Authenticate(deps.Auth, deps.Logger))

	projects := protected.Group("/projects")
	projects.GET("", projectHandler.ListProjects)
	projects.POST("", projectHandler.CreateProject)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)

	tasks := protected.Group("/tasks")
	tasks.GET("", taskHandler.ListTasks)
	tasks.POST("", taskHandler.CreateTask)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)

	return router
}
