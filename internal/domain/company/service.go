package company

import (
	"context"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
)

type CompanyService interface {
	// Create makes the actor the owner admin of a new company.
	Create(ctx context.Context, actorID string, req CreateCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, actorID, id string) (CompanyResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	ListEmployees(ctx context.Context, actorID, companyID string) ([]employee.EmployeeResponse, error)
}
