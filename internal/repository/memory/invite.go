package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/invite"
)

var errDuplicateToken = errors.New("invite token already exists")

type inviteRepository struct {
	store *Store
}

func NewInviteRepository(store *Store) invite.InviteRepository {
	return &inviteRepository{store: store}
}

func (r *inviteRepository) Create(ctx context.Context, c invite.InviteCode) (invite.InviteCode, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	if _, ok := d.companies[c.CompanyID]; !ok {
		return invite.InviteCode{}, company.ErrCompanyNotFound
	}
	for _, existing := range d.invites {
		if existing.Token == c.Token {
			return invite.InviteCode{}, errDuplicateToken
		}
	}

	c.ID = d.nextID()
	c.CreatedAt = r.store.timestamp()
	c.ConsumedBy = nil
	c.ConsumedAt = nil
	d.invites[c.ID] = c
	return c, nil
}

func (r *inviteRepository) GetByToken(ctx context.Context, token string) (invite.InviteCode, error) {
	defer r.store.acquire(ctx)()

	for _, c := range r.store.data.invites {
		if c.Token == token {
			return c, nil
		}
	}
	return invite.InviteCode{}, invite.ErrInviteNotFound
}

func (r *inviteRepository) ListByCompany(ctx context.Context, companyID string) ([]invite.InviteCode, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	var out []invite.InviteCode
	for _, c := range d.invites {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	// newest first
	sort.Slice(out, func(i, j int) bool { return d.order[out[i].ID] > d.order[out[j].ID] })
	return out, nil
}

func (r *inviteRepository) MarkConsumed(ctx context.Context, id, consumerID string, now time.Time) (invite.InviteCode, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	c, ok := d.invites[id]
	if !ok {
		return invite.InviteCode{}, invite.ErrInviteNotFound
	}
	if c.ConsumedBy != nil || !c.IsActive || c.IsExpired(now) {
		return invite.InviteCode{}, invite.ErrInviteAlreadyUsed
	}

	consumedAt := now.UTC()
	c.ConsumedBy = &consumerID
	c.ConsumedAt = &consumedAt
	c.IsActive = false
	d.invites[id] = c
	return c, nil
}

func (r *inviteRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	var n int64
	for id, c := range d.invites {
		if c.IsActive && c.ConsumedBy == nil && c.IsExpired(now) {
			c.IsActive = false
			d.invites[id] = c
			n++
		}
	}
	return n, nil
}
