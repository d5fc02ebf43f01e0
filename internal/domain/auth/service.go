package auth

import (
	"context"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (employee.EmployeeResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Me(ctx context.Context, employeeID string) (employee.EmployeeResponse, error)
}
