package team

import "context"

type TeamRepository interface {
	Create(ctx context.Context, newTeam Team) (Team, error)
	GetByID(ctx context.Context, id string) (Team, error)
	ListByCompany(ctx context.Context, companyID string) ([]Team, error)
	// AddMember is a no-op when the employee is already a member; added
	// reports whether a row was written.
	AddMember(ctx context.Context, teamID, employeeID string) (added bool, err error)
	RemoveMember(ctx context.Context, teamID, employeeID string) error
	ListMembers(ctx context.Context, teamID string) ([]Member, error)
	IsMember(ctx context.Context, teamID, employeeID string) (bool, error)
}
