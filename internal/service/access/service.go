package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/metrics"
)

// EvaluatorImpl loads a read-only fact snapshot from the registries and
// hands it to access.Evaluate.
type EvaluatorImpl struct {
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
	teamRepo     team.TeamRepository
	roleRepo     role.RoleRepository
	documentRepo document.DocumentRepository
	chatRepo     chat.ChatRepository
	messageRepo  chat.MessageRepository
	metrics      *metrics.Metrics
}

func NewEvaluator(
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	teamRepo team.TeamRepository,
	roleRepo role.RoleRepository,
	documentRepo document.DocumentRepository,
	chatRepo chat.ChatRepository,
	messageRepo chat.MessageRepository,
	m *metrics.Metrics,
) *EvaluatorImpl {
	return &EvaluatorImpl{
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		teamRepo:     teamRepo,
		roleRepo:     roleRepo,
		documentRepo: documentRepo,
		chatRepo:     chatRepo,
		messageRepo:  messageRepo,
		metrics:      m,
	}
}

// Authorize implements access.Evaluator.
func (e *EvaluatorImpl) Authorize(ctx context.Context, actorID string, resource access.Resource, action access.Action) error {
	facts, err := e.LoadFacts(ctx, actorID, resource, action)
	if err != nil {
		return err
	}

	decision := access.Evaluate(facts, action)
	e.metrics.ObserveAccessDecision(string(action), decision.Allowed)
	if !decision.Allowed {
		slog.Debug("access denied",
			"actor_id", actorID,
			"resource", resource.Kind,
			"resource_id", resource.ID,
			"action", action,
			"reason", decision.Reason)
	}
	return decision.Err()
}

// LoadFacts resolves the resource chain and the actor. Missing entities are
// reported through Facts.Missing; only infrastructure failures return err.
func (e *EvaluatorImpl) LoadFacts(ctx context.Context, actorID string, resource access.Resource, action access.Action) (access.Facts, error) {
	facts := access.Facts{ActorID: actorID}

	if err := e.loadResource(ctx, &facts, resource, action); err != nil {
		if isNotFound(err) {
			facts.Missing = err
			return facts, nil
		}
		return access.Facts{}, err
	}

	actor, err := e.employeeRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			facts.Missing = err
			return facts, nil
		}
		return access.Facts{}, fmt.Errorf("failed to load actor: %w", err)
	}
	if actor.CompanyID != nil {
		facts.ActorCompanyID = *actor.CompanyID
	}

	if facts.ActorCompanyID != "" && facts.ActorCompanyID == facts.CompanyID {
		assignment, err := e.roleRepo.Get(ctx, facts.CompanyID, actorID)
		switch {
		case err == nil:
			facts.IsAdmin = assignment.IsAdmin()
		case errors.Is(err, role.ErrAssignmentNotFound):
		default:
			return access.Facts{}, fmt.Errorf("failed to load role assignment: %w", err)
		}
	}

	if facts.TeamID != "" {
		isMember, err := e.teamRepo.IsMember(ctx, facts.TeamID, actorID)
		if err != nil {
			return access.Facts{}, err
		}
		facts.IsTeamMember = isMember
	}

	return facts, nil
}

func (e *EvaluatorImpl) loadResource(ctx context.Context, facts *access.Facts, resource access.Resource, action access.Action) error {
	switch resource.Kind {
	case access.ResourceCompany:
		c, err := e.companyRepo.GetByID(ctx, resource.ID)
		if err != nil {
			return err
		}
		facts.CompanyID = c.ID

	case access.ResourceTeam:
		t, err := e.teamRepo.GetByID(ctx, resource.ID)
		if err != nil {
			return err
		}
		facts.CompanyID = t.CompanyID
		// Reading team metadata is company-scoped; everything else done
		// through a team is team-scoped.
		if action != access.ActionTeamRead {
			facts.TeamID = t.ID
		}

	case access.ResourceDocument:
		d, err := e.documentRepo.GetByID(ctx, resource.ID)
		if err != nil {
			return err
		}
		facts.CompanyID = d.CompanyID
		if d.TeamID != nil {
			facts.TeamID = *d.TeamID
		}

	case access.ResourceChat:
		return e.loadChat(ctx, facts, resource.ID)

	case access.ResourceMessage:
		m, err := e.messageRepo.GetByID(ctx, resource.ID)
		if err != nil {
			return err
		}
		facts.AuthorID = m.AuthorID
		return e.loadChat(ctx, facts, m.ChatID)

	default:
		return fmt.Errorf("unknown resource kind %q", resource.Kind)
	}
	return nil
}

func (e *EvaluatorImpl) loadChat(ctx context.Context, facts *access.Facts, chatID string) error {
	c, err := e.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	facts.CompanyID = c.CompanyID
	if c.TeamID != nil {
		facts.TeamID = *c.TeamID
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, company.ErrCompanyNotFound) ||
		errors.Is(err, team.ErrTeamNotFound) ||
		errors.Is(err, document.ErrDocumentNotFound) ||
		errors.Is(err, chat.ErrChatNotFound) ||
		errors.Is(err, chat.ErrMessageNotFound) ||
		errors.Is(err, employee.ErrEmployeeNotFound)
}
