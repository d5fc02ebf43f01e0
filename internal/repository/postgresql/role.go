package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) role.RoleRepository {
	return &roleRepositoryImpl{db: db}
}

const roleColumns = `company_id, employee_id, role, is_owner, assigned_by, created_at, updated_at`

func scanAssignment(row pgx.Row) (role.Assignment, error) {
	var a role.Assignment
	err := row.Scan(&a.CompanyID, &a.EmployeeID, &a.Role, &a.IsOwner, &a.AssignedBy, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// CreateOwner implements role.RoleRepository.
func (r *roleRepositoryImpl) CreateOwner(ctx context.Context, companyID, employeeID string) (role.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanAssignment(q.QueryRow(ctx, `
		INSERT INTO role_assignments (company_id, employee_id, role, is_owner)
		VALUES ($1, $2, 'admin', true)
		RETURNING `+roleColumns, companyID, employeeID))
	if err != nil {
		return role.Assignment{}, fmt.Errorf("failed to create owner assignment: %w", err)
	}
	return created, nil
}

// Upsert implements role.RoleRepository. The conflict branch skips owner rows,
// so an owner conflict returns no row.
func (r *roleRepositoryImpl) Upsert(ctx context.Context, a role.Assignment) (role.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	saved, err := scanAssignment(q.QueryRow(ctx, `
		INSERT INTO role_assignments (company_id, employee_id, role, is_owner, assigned_by)
		VALUES ($1, $2, $3, false, $4)
		ON CONFLICT (company_id, employee_id) DO UPDATE
		SET role = EXCLUDED.role, assigned_by = EXCLUDED.assigned_by, updated_at = now()
		WHERE role_assignments.is_owner = false
		RETURNING `+roleColumns, a.CompanyID, a.EmployeeID, a.Role, a.AssignedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Assignment{}, role.ErrOwnerRoleImmutable
		}
		return role.Assignment{}, fmt.Errorf("failed to upsert role assignment: %w", err)
	}
	return saved, nil
}

// Get implements role.RoleRepository.
func (r *roleRepositoryImpl) Get(ctx context.Context, companyID, employeeID string) (role.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanAssignment(q.QueryRow(ctx, `
		SELECT `+roleColumns+` FROM role_assignments
		WHERE company_id = $1 AND employee_id = $2`, companyID, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Assignment{}, role.ErrAssignmentNotFound
		}
		return role.Assignment{}, fmt.Errorf("failed to get role assignment: %w", err)
	}
	return found, nil
}

// ListByCompany implements role.RoleRepository.
func (r *roleRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]role.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+roleColumns+` FROM role_assignments
		WHERE company_id = $1
		ORDER BY is_owner DESC, created_at, employee_id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list role assignments: %w", err)
	}
	defer rows.Close()

	assignments := make([]role.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
