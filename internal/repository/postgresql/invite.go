package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/invite"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type inviteRepositoryImpl struct {
	db *database.DB
}

// NewInviteRepository creates a new invite code repository instance
func NewInviteRepository(db *database.DB) invite.InviteRepository {
	return &inviteRepositoryImpl{db: db}
}

const inviteColumns = `id, token, company_id, created_by, expires_at, consumed_by, consumed_at, is_active, created_at`

func scanInvite(row pgx.Row) (invite.InviteCode, error) {
	var c invite.InviteCode
	err := row.Scan(&c.ID, &c.Token, &c.CompanyID, &c.CreatedBy, &c.ExpiresAt,
		&c.ConsumedBy, &c.ConsumedAt, &c.IsActive, &c.CreatedAt)
	return c, err
}

// Create implements invite.InviteRepository.
func (r *inviteRepositoryImpl) Create(ctx context.Context, code invite.InviteCode) (invite.InviteCode, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanInvite(q.QueryRow(ctx, `
		INSERT INTO invite_codes (token, company_id, created_by, expires_at, is_active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING `+inviteColumns, code.Token, code.CompanyID, code.CreatedBy, code.ExpiresAt))
	if err != nil {
		return invite.InviteCode{}, fmt.Errorf("failed to create invite code: %w", err)
	}
	return created, nil
}

// GetByToken implements invite.InviteRepository.
func (r *inviteRepositoryImpl) GetByToken(ctx context.Context, token string) (invite.InviteCode, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanInvite(q.QueryRow(ctx, `SELECT `+inviteColumns+` FROM invite_codes WHERE token = $1`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invite.InviteCode{}, invite.ErrInviteNotFound
		}
		return invite.InviteCode{}, fmt.Errorf("failed to get invite code by token: %w", err)
	}
	return found, nil
}

// ListByCompany implements invite.InviteRepository.
func (r *inviteRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]invite.InviteCode, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+inviteColumns+` FROM invite_codes
		WHERE company_id = $1
		ORDER BY created_at DESC, id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invite codes: %w", err)
	}
	defer rows.Close()

	codes := make([]invite.InviteCode, 0)
	for rows.Next() {
		c, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invite code: %w", err)
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

// MarkConsumed implements invite.InviteRepository. Concurrent callers
// serialize on the row lock; every caller after the first sees consumed_by
// set and updates nothing.
func (r *inviteRepositoryImpl) MarkConsumed(ctx context.Context, id, consumerID string, now time.Time) (invite.InviteCode, error) {
	q := GetQuerier(ctx, r.db)

	consumed, err := scanInvite(q.QueryRow(ctx, `
		UPDATE invite_codes
		SET consumed_by = $2, consumed_at = $3, is_active = false
		WHERE id = $1
		  AND consumed_by IS NULL
		  AND is_active
		  AND expires_at > $3
		RETURNING `+inviteColumns, id, consumerID, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invite.InviteCode{}, invite.ErrInviteAlreadyUsed
		}
		return invite.InviteCode{}, fmt.Errorf("failed to consume invite code: %w", err)
	}
	return consumed, nil
}

// DeactivateExpired implements invite.InviteRepository.
func (r *inviteRepositoryImpl) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE invite_codes
		SET is_active = false
		WHERE is_active AND consumed_by IS NULL AND expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired invite codes: %w", err)
	}
	return tag.RowsAffected(), nil
}
