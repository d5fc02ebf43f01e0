package employee

import "context"

type EmployeeService interface {
	// GetByID returns an employee profile. Actors may read themselves and
	// members of their own company.
	GetByID(ctx context.Context, actorID, employeeID string) (EmployeeResponse, error)
}
