package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RoleHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
}

type RoleHandlerImpl struct {
	roleService role.RoleService
}

func NewRoleHandler(roleService role.RoleService) RoleHandler {
	return &RoleHandlerImpl{roleService: roleService}
}

// List implements RoleHandler.
func (h *RoleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.List(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "companyId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, roles)
}

// Get implements RoleHandler.
func (h *RoleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.roleService.Get(r.Context(), middleware.EmployeeIDFromContext(r.Context()),
		chi.URLParam(r, "companyId"), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, assignment)
}

// Assign implements RoleHandler.
func (h *RoleHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req role.AssignRoleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Assign role decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	companyID := chi.URLParam(r, "companyId")
	assignment, err := h.roleService.Assign(r.Context(), middleware.EmployeeIDFromContext(r.Context()),
		companyID, chi.URLParam(r, "employeeId"), req)
	if err != nil {
		slog.Error("Assign role service error", "company_id", companyID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role updated successfully", assignment)
}
