package handlers_test

import (
	"context"

	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/services"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ParseToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) List(ctx context.Context, ownerID uuid.UUID, query services.ListProjectsQuery) (*services.ProjectPage, error) {
	args := m.Called(ctx, ownerID, query)
	page, _ := args.Get(0).(*services.ProjectPage)
	return page, args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, ownerID, id)
	project, _ := args.Get(0).(*models.Project)
	return project, args.Error(1)
}

func (m *MockProjectService) Create(ctx context.Context, ownerID uuid.UUID, input services.CreateProjectInput) (*models.Project, error) {
	args := m.Called(ctx, ownerID, input)
	project, _ := args.Get(0).(*models.Project)
	return project, args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, ownerID, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	args := m.Called(ctx, ownerID, id, patch)
	project, _ := args.Get(0).(*models.Project)
	return project, args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) List(ctx context.Context, callerID uuid.UUID, query services.TaskListQuery) (*services.TaskPage, error) {
	args := m.Called(ctx, callerID, query)
	page, _ := args.Get(0).(*services.TaskPage)
	return page, args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, callerID uuid.UUID, input services.CreateTaskInput) (*models.Task, error) {
	args := m.Called(ctx, callerID, input)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, callerID, id uuid.UUID, patch models.TaskPatch) (*models.Task, error) {
	args := m.Called(ctx, callerID, id, patch)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, callerID, id uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, callerID, id)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}
