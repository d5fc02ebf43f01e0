package invite

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusConsumed Status = "consumed"
	StatusExpired  Status = "expired"
	StatusInactive Status = "inactive"
)

// InviteCode is a single-use token binding its consumer to CompanyID. Once
// ConsumedBy is set, IsActive is false for good.
type InviteCode struct {
	ID         string
	Token      string
	CompanyID  string
	CreatedBy  string
	ExpiresAt  time.Time
	ConsumedBy *string
	ConsumedAt *time.Time
	IsActive   bool
	CreatedAt  time.Time
}

// IsExpired treats the expiry instant itself as expired.
func (c InviteCode) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Status computes the effective state at now, independent of whether the
// expiry sweep has already deactivated the code.
func (c InviteCode) Status(now time.Time) Status {
	switch {
	case c.ConsumedBy != nil:
		return StatusConsumed
	case c.IsExpired(now):
		return StatusExpired
	case !c.IsActive:
		return StatusInactive
	default:
		return StatusActive
	}
}

// CheckConsumable returns the BadRequest reason the code cannot be consumed
// at now, or nil.
func (c InviteCode) CheckConsumable(now time.Time) error {
	switch c.Status(now) {
	case StatusConsumed:
		return ErrInviteAlreadyUsed
	case StatusExpired:
		return ErrInviteExpired
	case StatusInactive:
		return ErrInviteInactive
	}
	return nil
}
