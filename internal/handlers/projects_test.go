package handlers_test

import (
	"net/http"
	"testing"

	"project-tracker/backend/internal/apperror"
	"project-tracker/backend/internal/handlers"
	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupProjectRouter(caller *uuid.UUID) (*MockProjectService, *gin.Engine) {
	svc := &MockProjectService{}
	handler := handlers.NewProjectHandler(svc, zerolog.Nop())

	router := newRouter(caller)
	router.GET("/projects", handler.ListProjects)
	router.POST("/projects", handler.CreateProject)
	router.PUT("/projects/:id", handler.UpdateProject)
	router.DELETE("/projects/:id", handler.DeleteProject)
	return svc, router
}

func TestListProjects(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	svc, router := setupProjectRouter(&owner)

	query := services.ListProjectsQuery{
		PageRequest: services.PageRequest{Page: 2, Limit: 5},
		Search:      "launch",
	}
	svc.On("List", mock.Anything, owner, query).Return(&services.ProjectPage{
		Total:    6,
		Page:     2,
		PageSize: 1,
		Projects: []models.Project{{ID: uuid.Must(uuid.NewV4()), Title: "Launch", Status: models.ProjectStatusActive}},
	}, nil)

	w := do(router, http.MethodGet, "/projects?page=2&limit=5&search=launch", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(6), body["total"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(1), body["pageSize"])
	projects := body["projects"].([]interface{})
	require.Len(t, projects, 1)
	assert.Equal(t, "Launch", projects[0].(map[string]interface{})["title"])
	assert.Contains(t, projects[0], "_id")
	svc.AssertExpectations(t)
}

func TestListProjectsBadPagingFallsBackToDefaults(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	svc, router := setupProjectRouter(&owner)

	svc.On("List", mock.Anything, owner, services.ListProjectsQuery{}).Return(nil, apperror.NotFound("No projects found"))

	w := do(router, http.MethodGet, "/projects?page=abc&limit=", "")
	assertFailure(t, w, http.StatusNotFound, "No projects found")
}

func TestListProjectsRequiresCaller(t *testing.T) {
	_, router := setupProjectRouter(nil)

	w := do(router, http.MethodGet, "/projects", "")
	assertFailure(t, w, http.StatusUnauthorized, "User not authenticated")
}

func TestCreateProject(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	svc, router := setupProjectRouter(&owner)

	input := services.CreateProjectInput{Title: "P1", Status: models.ProjectStatusActive}
	created := &models.Project{ID: uuid.Must(uuid.NewV4()), UserID: owner, Title: "P1", Status: models.ProjectStatusActive}
	svc.On("Create", mock.Anything, owner, input).Return(created, nil)

	w := do(router, http.MethodPost, "/projects", `{"title":"P1","status":"active"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, created.ID.String(), body["_id"])
	assert.Equal(t, owner.String(), body["userId"])
}

func TestCreateProjectValidation(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	svc, router := setupProjectRouter(&owner)

	svc.On("Create", mock.Anything, owner, services.CreateProjectInput{Title: "P1"}).
		Return(nil, apperror.Validation("Title and status are required"))

	w := do(router, http.MethodPost, "/projects", `{"title":"P1"}`)
	assertFailure(t, w, http.StatusBadRequest, "Title and status are required")
}

func TestUpdateProject(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	svc, router := setupProjectRouter(&owner)

	completed := models.ProjectStatusCompleted
	svc.On("Update", mock.Anything, owner, id, models.ProjectPatch{Status: &completed}).
		Return(&models.Project{ID: id, Title: "P1", Status: completed}, nil)

	w := do(router, http.MethodPut, "/projects/"+id.String(), `{"status":"completed","userId":"someone-else"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", decode(t, w)["status"])
	svc.AssertExpectations(t)
}

func TestUpdateProjectNotOwned(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	svc, router := setupProjectRouter(&owner)

	svc.On("Update", mock.Anything, owner, id, mock.Anything).Return(nil, apperror.NotFound("Project not found"))

	w := do(router, http.MethodPut, "/projects/"+id.String(), `{"title":"x"}`)
	assertFailure(t, w, http.StatusNotFound, "Project not found")
}

func TestUpdateProjectMalformedID(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	svc, router := setupProjectRouter(&owner)

	w := do(router, http.MethodPut, "/projects/not-a-uuid", `{"title":"x"}`)
	assertFailure(t, w, http.StatusNotFound, "Project not found")
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteProject(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	svc, router := setupProjectRouter(&owner)

	svc.On("Delete", mock.Anything, owner, id).Return(nil).Once()
	svc.On("Delete", mock.Anything, owner, id).Return(apperror.NotFound("Project not found or already deleted"))

	w := do(router, http.MethodDelete, "/projects/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(router, http.MethodDelete, "/projects/"+id.String(), "")
	assertFailure(t, w, http.StatusNotFound, "Project not found or already deleted")
}
