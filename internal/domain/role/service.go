package role

import "context"

type RoleService interface {
	Assign(ctx context.Context, actorID, companyID, employeeID string, req AssignRoleRequest) (AssignmentResponse, error)
	Get(ctx context.Context, actorID, companyID, employeeID string) (AssignmentResponse, error)
	List(ctx context.Context, actorID, companyID string) ([]AssignmentResponse, error)
}
