package invite

import (
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/validator"
)

type InviteResponse struct {
	ID         string     `json:"id"`
	Token      string     `json:"token"`
	CompanyID  string     `json:"company_id"`
	CreatedBy  string     `json:"created_by"`
	Status     Status     `json:"status"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedBy *string    `json:"consumed_by,omitempty"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func ToResponse(c InviteCode, now time.Time) InviteResponse {
	return InviteResponse{
		ID:         c.ID,
		Token:      c.Token,
		CompanyID:  c.CompanyID,
		CreatedBy:  c.CreatedBy,
		Status:     c.Status(now),
		IsActive:   c.IsActive,
		ExpiresAt:  c.ExpiresAt,
		ConsumedBy: c.ConsumedBy,
		ConsumedAt: c.ConsumedAt,
		CreatedAt:  c.CreatedAt,
	}
}

type ConsumeInviteRequest struct {
	Token string `json:"token"`
}

func (r *ConsumeInviteRequest) Validate() error {
	if validator.IsEmpty(r.Token) {
		return validator.ValidationErrors{{
			Field:   "token",
			Message: "token is required",
		}}
	}
	if validator.ExceedsLength(r.Token, 64) {
		return validator.ValidationErrors{{
			Field:   "token",
			Message: "token must not exceed 64 characters",
		}}
	}
	return nil
}

type ConsumeInviteResponse struct {
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	Role       role.Role `json:"role"`
	ConsumedAt time.Time `json:"consumed_at"`
}
