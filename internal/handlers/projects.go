package handlers

import (
	"net/http"

	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ProjectHandler struct {
	projectService services.ProjectService
	logger         zerolog.Logger
}

func NewProjectHandler(projectService services.ProjectService, logger zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, logger: logger}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	ownerID, err := callerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	page, err := h.projectService.List(c.Request.Context(), ownerID, services.ListProjectsQuery{
		PageRequest: pageRequest(c),
		Search:      c.Query("search"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	ownerID, err := callerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var input services.CreateProjectInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err)
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), ownerID, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	ownerID, err := callerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	id, err := pathID(c, "Project not found")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var patch models.ProjectPatch
	if err := bindJSON(c, &patch); err != nil {
		respondError(c, h.logger, err)
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), ownerID, id, patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	ownerID, err := callerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	id, err := pathID(c, "Project not found or already deleted")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), ownerID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
