package team

import (
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/validator"
)

type CreateTeamRequest struct {
	Name      string `json:"name"`
	CompanyID string `json:"company_id"`
}

func (r *CreateTeamRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.ExceedsLength(r.Name, 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	if !validator.IsValidUUID(r.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddMemberRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *AddMemberRequest) Validate() error {
	if !validator.IsValidUUID(r.EmployeeID) {
		return validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		}}
	}
	return nil
}

type TeamResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CompanyID string    `json:"company_id"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(t Team) TeamResponse {
	return TeamResponse{
		ID:        t.ID,
		Name:      t.Name,
		CompanyID: t.CompanyID,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
	}
}

type MemberResponse struct {
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	JobTitle   string    `json:"job_title"`
	AddedAt    time.Time `json:"added_at"`
}

func ToMemberResponse(m Member) MemberResponse {
	return MemberResponse{
		EmployeeID: m.EmployeeID,
		Name:       m.Name,
		Email:      m.Email,
		JobTitle:   m.JobTitle,
		AddedAt:    m.AddedAt,
	}
}
