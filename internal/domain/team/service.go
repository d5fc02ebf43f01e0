package team

import "context"

type TeamService interface {
	Create(ctx context.Context, actorID string, req CreateTeamRequest) (TeamResponse, error)
	GetByID(ctx context.Context, actorID, teamID string) (TeamResponse, error)
	ListByCompany(ctx context.Context, actorID, companyID string) ([]TeamResponse, error)
	AddMember(ctx context.Context, actorID, teamID string, req AddMemberRequest) error
	RemoveMember(ctx context.Context, actorID, teamID, employeeID string) error
	ListMembers(ctx context.Context, actorID, teamID string) ([]MemberResponse, error)
}
