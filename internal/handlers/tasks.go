package handlers

import (
	"net/http"

	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type TaskHandler struct {
	taskService services.TaskService
	logger      zerolog.Logger
}

func NewTaskHandler(taskService services.TaskService, logger zerolog.Logger) *TaskHandler {
	return &TaskHandler{taskService: taskService, logger: logger}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	page, err := h.taskService.List(c.Request.Context(), caller, services.TaskListQuery{
		PageRequest: pageRequest(c),
		ProjectID:   c.Query("projectId"),
		Status:      c.Query("status"),
		Search:      c.Query("search"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var input services.CreateTaskInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), caller, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	id, err := pathID(c, "Task not found")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var patch models.TaskPatch
	if err := bindJSON(c, &patch); err != nil {
		respondError(c, h.logger, err)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), caller, id, patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	id, err := pathID(c, "Task not found or already deleted")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if _, err := h.taskService.Delete(c.Request.Context(), caller, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
