package role

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
)

type RoleServiceImpl struct {
	tx           database.Transactor
	roleRepo     role.RoleRepository
	employeeRepo employee.EmployeeRepository
	evaluator    access.Evaluator
}

func NewRoleService(tx database.Transactor, roleRepo role.RoleRepository, employeeRepo employee.EmployeeRepository, evaluator access.Evaluator) role.RoleService {
	return &RoleServiceImpl{
		tx:           tx,
		roleRepo:     roleRepo,
		employeeRepo: employeeRepo,
		evaluator:    evaluator,
	}
}

// Assign implements role.RoleService.
func (s *RoleServiceImpl) Assign(ctx context.Context, actorID, companyID, employeeID string, req role.AssignRoleRequest) (role.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return role.AssignmentResponse{}, err
	}
	if err := s.evaluator.Authorize(ctx, actorID, access.Company(companyID), access.ActionRoleAssign); err != nil {
		return role.AssignmentResponse{}, err
	}

	var saved role.Assignment
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		target, err := s.employeeRepo.GetByID(txCtx, employeeID)
		if err != nil {
			return err
		}
		if !target.BelongsTo(companyID) {
			return role.ErrTargetNotInCompany
		}

		saved, err = s.roleRepo.Upsert(txCtx, role.Assignment{
			CompanyID:  companyID,
			EmployeeID: employeeID,
			Role:       role.Role(req.Role),
			AssignedBy: &actorID,
		})
		return err
	})
	if err != nil {
		return role.AssignmentResponse{}, err
	}

	slog.Info("role assigned", "company_id", companyID, "employee_id", employeeID, "role", saved.Role, "actor_id", actorID)
	return role.ToResponse(saved), nil
}

// Get implements role.RoleService.
func (s *RoleServiceImpl) Get(ctx context.Context, actorID, companyID, employeeID string) (role.AssignmentResponse, error) {
	if err := s.evaluator.Authorize(ctx, actorID, access.Company(companyID), access.ActionRoleRead); err != nil {
		return role.AssignmentResponse{}, err
	}

	found, err := s.roleRepo.Get(ctx, companyID, employeeID)
	if err != nil {
		return role.AssignmentResponse{}, err
	}
	return role.ToResponse(found), nil
}

// List implements role.RoleService.
func (s *RoleServiceImpl) List(ctx context.Context, actorID, companyID string) ([]role.AssignmentResponse, error) {
	if err := s.evaluator.Authorize(ctx, actorID, access.Company(companyID), access.ActionRoleList); err != nil {
		return nil, err
	}

	assignments, err := s.roleRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	out := make([]role.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, role.ToResponse(a))
	}
	return out, nil
}
