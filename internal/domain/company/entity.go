package company

import "time"

type Company struct {
	ID           string
	Name         string
	TaxID        *string
	ContactEmail *string
	ContactPhone *string
	Address      *string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
