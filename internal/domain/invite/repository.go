package invite

import (
	"context"
	"time"
)

type InviteRepository interface {
	Create(ctx context.Context, code InviteCode) (InviteCode, error)
	GetByToken(ctx context.Context, token string) (InviteCode, error)
	ListByCompany(ctx context.Context, companyID string) ([]InviteCode, error)
	// MarkConsumed consumes the code only if it is still active, unconsumed
	// and unexpired at now. Losing that race returns ErrInviteAlreadyUsed.
	MarkConsumed(ctx context.Context, id, consumerID string, now time.Time) (InviteCode, error)
	// DeactivateExpired flips unconsumed codes past expiry to inactive.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
