package company

import (
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/validator"
)

type CompanyResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"company_name"`
	TaxID        *string   `json:"tax_id,omitempty"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
	Address      *string   `json:"company_address,omitempty"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		TaxID:        c.TaxID,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		Address:      c.Address,
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt,
	}
}

type CreateCompanyRequest struct {
	Name         string  `json:"company_name"`
	TaxID        *string `json:"tax_id,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Address      *string `json:"company_address,omitempty"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name is required",
		})
	}
	if validator.ExceedsLength(r.Name, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name must not exceed 255 characters",
		})
	}
	if r.TaxID != nil && !validator.IsValidTaxID(*r.TaxID) {
		errs = append(errs, validator.ValidationError{
			Field:   "tax_id",
			Message: "tax_id must be 4-32 letters, digits, dots, dashes or slashes",
		})
	}
	if r.ContactEmail != nil && !validator.IsValidEmail(*r.ContactEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "contact_email",
			Message: "contact_email must be a valid email address",
		})
	}
	if r.ContactPhone != nil && !validator.IsValidPhoneNumber(*r.ContactPhone) {
		errs = append(errs, validator.ValidationError{
			Field:   "contact_phone",
			Message: "contact_phone must be a valid phone number",
		})
	}
	if r.Address != nil && validator.ExceedsLength(*r.Address, 500) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_address",
			Message: "company_address must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
