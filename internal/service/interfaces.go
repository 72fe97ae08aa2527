package service

import (
	"context"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/alexanderramin/timesheet/internal/domain"
)

// ProjectGateway is the part of the API the project list needs.
type ProjectGateway interface {
	ListProjects(ctx context.Context, f api.ProjectFilter) ([]domain.Project, error)
	ProjectQuantities(ctx context.Context) ([]domain.ProjectQuantity, error)
}

// ReferenceGateway is the part of the API the create dialog reads from.
type ReferenceGateway interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}

type ProjectListService interface {
	Load(ctx context.Context, filter domain.StatusFilter, search string) (*ListResult, error)
}

type ReferenceService interface {
	Load(ctx context.Context) (*ReferenceData, error)
}
