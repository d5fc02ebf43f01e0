package employee

import "time"

// Employee is a person account. CompanyID is nil until the employee creates
// or joins a company; an employee belongs to at most one company at a time.
type Employee struct {
	ID           string
	Name         string
	Email        string
	JobTitle     string
	PasswordHash string
	CompanyID    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) BelongsTo(companyID string) bool {
	return e.CompanyID != nil && *e.CompanyID == companyID
}

// DisplayName is the name snapshotted into chat messages.
func (e Employee) DisplayName() string {
	return e.Name
}
