package role

import (
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/validator"
)

type AssignRoleRequest struct {
	Role string `json:"role"`
}

func (r *AssignRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	} else if !Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, member",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignmentResponse struct {
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	Role       Role      `json:"role"`
	IsOwner    bool      `json:"is_owner"`
	AssignedBy *string   `json:"assigned_by,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToResponse(a Assignment) AssignmentResponse {
	return AssignmentResponse{
		CompanyID:  a.CompanyID,
		EmployeeID: a.EmployeeID,
		Role:       a.Role,
		IsOwner:    a.IsOwner,
		AssignedBy: a.AssignedBy,
		UpdatedAt:  a.UpdatedAt,
	}
}
