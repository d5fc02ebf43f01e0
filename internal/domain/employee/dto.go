package employee

import "time"

type EmployeeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	JobTitle  string    `json:"job_title"`
	CompanyID *string   `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		JobTitle:  e.JobTitle,
		CompanyID: e.CompanyID,
		CreatedAt: e.CreatedAt,
	}
}

func ToResponses(employees []Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, ToResponse(e))
	}
	return out
}
