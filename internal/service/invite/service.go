package invite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/invite"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/token"
)

const DefaultTTL = 7 * 24 * time.Hour

type InviteServiceImpl struct {
	tx           database.Transactor
	inviteRepo   invite.InviteRepository
	employeeRepo employee.EmployeeRepository
	roleRepo     role.RoleRepository
	evaluator    access.Evaluator
	metrics      *metrics.Metrics
	ttl          time.Duration
	now          func() time.Time
	newToken     func() (string, error)
}

func NewInviteService(
	tx database.Transactor,
	inviteRepo invite.InviteRepository,
	employeeRepo employee.EmployeeRepository,
	roleRepo role.RoleRepository,
	evaluator access.Evaluator,
	m *metrics.Metrics,
	ttl time.Duration,
) invite.InviteService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &InviteServiceImpl{
		tx:           tx,
		inviteRepo:   inviteRepo,
		employeeRepo: employeeRepo,
		roleRepo:     roleRepo,
		evaluator:    evaluator,
		metrics:      m,
		ttl:          ttl,
		now:          time.Now,
		newToken:     token.NewInviteToken,
	}
}

// Issue implements invite.InviteService.
func (s *InviteServiceImpl) Issue(ctx context.Context, actorID, companyID string) (invite.InviteResponse, error) {
	if err := s.evaluator.Authorize(ctx, actorID, access.Company(companyID), access.ActionInviteIssue); err != nil {
		return invite.InviteResponse{}, err
	}

	tok, err := s.newToken()
	if err != nil {
		return invite.InviteResponse{}, fmt.Errorf("failed to generate invite token: %w", err)
	}

	now := s.now()
	created, err := s.inviteRepo.Create(ctx, invite.InviteCode{
		Token:     tok,
		CompanyID: companyID,
		CreatedBy: actorID,
		ExpiresAt: now.Add(s.ttl),
		IsActive:  true,
	})
	if err != nil {
		return invite.InviteResponse{}, err
	}

	slog.Info("invite code issued", "invite_id", created.ID, "company_id", companyID, "actor_id", actorID, "expires_at", created.ExpiresAt)
	return invite.ToResponse(created, now), nil
}

// Consume implements invite.InviteService. Lookup, checks and every write run
// in one transaction; the conditional consume guarantees a single winner.
func (s *InviteServiceImpl) Consume(ctx context.Context, consumerID string, req invite.ConsumeInviteRequest) (invite.ConsumeInviteResponse, error) {
	if err := req.Validate(); err != nil {
		return invite.ConsumeInviteResponse{}, err
	}

	var resp invite.ConsumeInviteResponse
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		code, err := s.inviteRepo.GetByToken(txCtx, token.Normalize(req.Token))
		if err != nil {
			return err
		}

		now := s.now()
		if err := code.CheckConsumable(now); err != nil {
			return err
		}

		consumer, err := s.employeeRepo.GetByID(txCtx, consumerID)
		if err != nil {
			return err
		}
		if consumer.CompanyID != nil {
			return employee.ErrEmployeeAlreadyInCompany
		}

		consumed, err := s.inviteRepo.MarkConsumed(txCtx, code.ID, consumer.ID, now)
		if err != nil {
			return err
		}

		if err := s.employeeRepo.AssignCompany(txCtx, consumer.ID, consumed.CompanyID); err != nil {
			return err
		}

		assignment, err := s.roleRepo.Upsert(txCtx, role.Assignment{
			CompanyID:  consumed.CompanyID,
			EmployeeID: consumer.ID,
			Role:       role.RoleMember,
			AssignedBy: &consumed.CreatedBy,
		})
		if err != nil {
			return err
		}

		resp = invite.ConsumeInviteResponse{
			CompanyID:  consumed.CompanyID,
			EmployeeID: consumer.ID,
			Role:       assignment.Role,
			ConsumedAt: *consumed.ConsumedAt,
		}
		return nil
	})
	if err != nil {
		s.metrics.ObserveInviteConsumption(consumeResult(err))
		return invite.ConsumeInviteResponse{}, err
	}

	s.metrics.ObserveInviteConsumption("consumed")
	slog.Info("invite code consumed", "company_id", resp.CompanyID, "employee_id", consumerID)
	return resp, nil
}

func consumeResult(err error) string {
	switch {
	case errors.Is(err, invite.ErrInviteNotFound):
		return "not_found"
	case errors.Is(err, invite.ErrInviteAlreadyUsed):
		return "already_used"
	case errors.Is(err, invite.ErrInviteExpired):
		return "expired"
	case errors.Is(err, invite.ErrInviteInactive):
		return "inactive"
	case errors.Is(err, employee.ErrEmployeeAlreadyInCompany):
		return "already_member"
	default:
		return "error"
	}
}

// List implements invite.InviteService. Status is recomputed at read time,
// so a code past expiry reads as expired even if the sweep has not run.
func (s *InviteServiceImpl) List(ctx context.Context, actorID, companyID string) ([]invite.InviteResponse, error) {
	if err := s.evaluator.Authorize(ctx, actorID, access.Company(companyID), access.ActionInviteList); err != nil {
		return nil, err
	}

	codes, err := s.inviteRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]invite.InviteResponse, 0, len(codes))
	for _, c := range codes {
		out = append(out, invite.ToResponse(c, now))
	}
	return out, nil
}

// SweepExpired implements invite.InviteService.
func (s *InviteServiceImpl) SweepExpired(ctx context.Context) (int64, error) {
	return s.inviteRepo.DeactivateExpired(ctx, s.now())
}
