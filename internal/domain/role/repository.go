package role

import "context"

type RoleRepository interface {
	// CreateOwner inserts the immutable owner admin assignment.
	CreateOwner(ctx context.Context, companyID, employeeID string) (Assignment, error)
	// Upsert creates or replaces the assignment for the pair. It returns
	// ErrOwnerRoleImmutable when the existing assignment is the owner's.
	Upsert(ctx context.Context, assignment Assignment) (Assignment, error)
	Get(ctx context.Context, companyID, employeeID string) (Assignment, error)
	ListByCompany(ctx context.Context, companyID string) ([]Assignment, error)
}
