package role

import "time"

// Role is the authorization tag of an employee inside a company. It is
// unrelated to the employee's free-text job title.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Assignment is the single role record for a (company, employee) pair. The
// assignment written at company creation has IsOwner set and never changes.
type Assignment struct {
	CompanyID  string
	EmployeeID string
	Role       Role
	IsOwner    bool
	AssignedBy *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (a Assignment) IsAdmin() bool {
	return a.Role == RoleAdmin
}
