package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	// AssignCompany binds the employee to companyID only if the employee has no
	// company yet. It returns ErrEmployeeAlreadyInCompany otherwise.
	AssignCompany(ctx context.Context, employeeID, companyID string) error
	ListByCompany(ctx context.Context, companyID string) ([]Employee, error)
}
