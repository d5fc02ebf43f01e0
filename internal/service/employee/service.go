package employee

import (
	"context"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, actorID, employeeID string) (employee.EmployeeResponse, error) {
	target, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if actorID == employeeID {
		return employee.ToResponse(target), nil
	}

	actor, err := s.employeeRepo.GetByID(ctx, actorID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if target.CompanyID == nil || !actor.BelongsTo(*target.CompanyID) {
		return employee.EmployeeResponse{}, access.ErrNotCompanyMember
	}
	return employee.ToResponse(target), nil
}
