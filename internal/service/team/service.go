package team

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
)

type TeamServiceImpl struct {
	tx            database.Transactor
	teamRepo      team.TeamRepository
	employeeRepo  employee.EmployeeRepository
	evaluator     access.Evaluator
	creatorTitles map[string]struct{}
}

// NewTeamService builds the service. creatorTitles is the set of job titles
// allowed to create teams, compared case-insensitively.
func NewTeamService(
	tx database.Transactor,
	teamRepo team.TeamRepository,
	employeeRepo employee.EmployeeRepository,
	evaluator access.Evaluator,
	creatorTitles []string,
) team.TeamService {
	titles := make(map[string]struct{}, len(creatorTitles))
	for _, t := range creatorTitles {
		if t = normalizeTitle(t); t != "" {
			titles[t] = struct{}{}
		}
	}
	return &TeamServiceImpl{
		tx:            tx,
		teamRepo:      teamRepo,
		employeeRepo:  employeeRepo,
		evaluator:     evaluator,
		creatorTitles: titles,
	}
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Create implements team.TeamService. The job title is only a creation-time
// eligibility filter; permissions after that come from membership.
func (s *TeamServiceImpl) Create(ctx context.Context, actorID string, req team.CreateTeamRequest) (team.TeamResponse, error) {
	if err := req.Validate(); err != nil {
		return team.TeamResponse{}, err
	}
	if err := s.evaluator.Authorize(ctx, actorID, access.Company(req.CompanyID), access.ActionTeamCreate); err != nil {
		return team.TeamResponse{}, err
	}

	var created team.Team
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		creator, err := s.employeeRepo.GetByID(txCtx, actorID)
		if err != nil {
			return err
		}
		if _, ok := s.creatorTitles[normalizeTitle(creator.JobTitle)]; !ok {
			return team.ErrCreatorTitleNotAllowed
		}

		created, err = s.teamRepo.Create(txCtx, team.Team{
			Name:      strings.TrimSpace(req.Name),
			CompanyID: req.CompanyID,
			CreatedBy: creator.ID,
		})
		if err != nil {
			return err
		}

		_, err = s.teamRepo.AddMember(txCtx, created.ID, creator.ID)
		return err
	})
	if err != nil {
		return team.TeamResponse{}, err
	}

	slog.Info("team created", "team_id", created.ID, "company_id", created.CompanyID, "creator_id", actorID)
	return team.ToResponse(created), nil
}

// GetByID implements team.TeamService.
func (s *TeamServiceImpl) GetByID(ctx context.Context, actorID, teamID string) (team.TeamResponse, error) {
	if err := s.evaluator.Authorize(ctx, actorID, access.Team(teamID), access.ActionTeamRead); err != nil {
		return team.TeamResponse{}, err
	}

	found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.TeamResponse{}, err
	}
	return team.ToResponse(found), nil
}

// ListByCompany implements team.TeamService.
func (s *TeamServiceImpl) ListByCompany(ctx context.Context, actorID, companyID string) ([]team.TeamResponse, error) {
	if err := s.evaluator.Authorize(ctx, actorID, access.Company(companyID), access.ActionCompanyRead); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	out := make([]team.TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, team.ToResponse(t))
	}
	return out, nil
}

// AddMember implements team.TeamService. Adding an existing member is a no-op.
func (s *TeamServiceImpl) AddMember(ctx context.Context, actorID, teamID string, req team.AddMemberRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.evaluator.Authorize(ctx, actorID, access.Team(teamID), access.ActionTeamMembersManage); err != nil {
		return err
	}

	t, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	target, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	if !target.BelongsTo(t.CompanyID) {
		return team.ErrMemberNotInCompany
	}

	added, err := s.teamRepo.AddMember(ctx, teamID, target.ID)
	if err != nil {
		return err
	}
	if added {
		slog.Info("team member added", "team_id", teamID, "employee_id", target.ID, "actor_id", actorID)
	}
	return nil
}

// RemoveMember implements team.TeamService. Removing a non-member succeeds.
func (s *TeamServiceImpl) RemoveMember(ctx context.Context, actorID, teamID, employeeID string) error {
	if err := s.evaluator.Authorize(ctx, actorID, access.Team(teamID), access.ActionTeamMembersManage); err != nil {
		return err
	}

	if err := s.teamRepo.RemoveMember(ctx, teamID, employeeID); err != nil {
		return err
	}
	slog.Info("team member removed", "team_id", teamID, "employee_id", employeeID, "actor_id", actorID)
	return nil
}

// ListMembers implements team.TeamService.
func (s *TeamServiceImpl) ListMembers(ctx context.Context, actorID, teamID string) ([]team.MemberResponse, error) {
	if err := s.evaluator.Authorize(ctx, actorID, access.Team(teamID), access.ActionTeamRead); err != nil {
		return nil, err
	}

	members, err := s.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	out := make([]team.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, team.ToMemberResponse(m))
	}
	return out, nil
}
