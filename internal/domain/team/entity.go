package team

import "time"

type Team struct {
	ID        string
	Name      string
	CompanyID string
	CreatedBy string
	CreatedAt time.Time
}

// Member is a team membership joined with the employee's profile.
type Member struct {
	TeamID     string
	EmployeeID string
	Name       string
	Email      string
	JobTitle   string
	AddedAt    time.Time
}
