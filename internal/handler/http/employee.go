package http

import (
	"net/http"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	GetEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	found, err := h.employeeService.GetByID(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}
