package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type teamRepositoryImpl struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) team.TeamRepository {
	return &teamRepositoryImpl{db: db}
}

const teamColumns = `id, name, company_id, created_by, created_at`

func scanTeam(row pgx.Row) (team.Team, error) {
	var t team.Team
	err := row.Scan(&t.ID, &t.Name, &t.CompanyID, &t.CreatedBy, &t.CreatedAt)
	return t, err
}

// Create implements team.TeamRepository.
func (r *teamRepositoryImpl) Create(ctx context.Context, newTeam team.Team) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanTeam(q.QueryRow(ctx, `
		INSERT INTO teams (name, company_id, created_by)
		VALUES ($1, $2, $3)
		RETURNING `+teamColumns, newTeam.Name, newTeam.CompanyID, newTeam.CreatedBy))
	if err != nil {
		return team.Team{}, fmt.Errorf("failed to create team: %w", err)
	}
	return created, nil
}

// GetByID implements team.TeamRepository.
func (r *teamRepositoryImpl) GetByID(ctx context.Context, id string) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanTeam(q.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return team.Team{}, team.ErrTeamNotFound
		}
		return team.Team{}, fmt.Errorf("failed to get team %s: %w", id, err)
	}
	return found, nil
}

// ListByCompany implements team.TeamRepository.
func (r *teamRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]team.Team, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+teamColumns+` FROM teams WHERE company_id = $1 ORDER BY created_at, id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]team.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// AddMember implements team.TeamRepository.
func (r *teamRepositoryImpl) AddMember(ctx context.Context, teamID, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		INSERT INTO team_members (team_id, employee_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id, employee_id) DO NOTHING`, teamID, employeeID)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return false, employee.ErrEmployeeNotFound
		}
		return false, fmt.Errorf("failed to add team member: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// RemoveMember implements team.TeamRepository.
func (r *teamRepositoryImpl) RemoveMember(ctx context.Context, teamID, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM team_members WHERE team_id = $1 AND employee_id = $2`, teamID, employeeID); err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}
	return nil
}

// ListMembers implements team.TeamRepository.
func (r *teamRepositoryImpl) ListMembers(ctx context.Context, teamID string) ([]team.Member, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT tm.team_id, e.id, e.name, e.email, e.job_title, tm.added_at
		FROM team_members tm
		JOIN employees e ON e.id = tm.employee_id
		WHERE tm.team_id = $1
		ORDER BY tm.added_at, e.id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	members := make([]team.Member, 0)
	for rows.Next() {
		var m team.Member
		if err := rows.Scan(&m.TeamID, &m.EmployeeID, &m.Name, &m.Email, &m.JobTitle, &m.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// IsMember implements team.TeamRepository.
func (r *teamRepositoryImpl) IsMember(ctx context.Context, teamID, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND employee_id = $2)`,
		teamID, employeeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check team membership: %w", err)
	}
	return exists, nil
}
