package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CompanyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// Create implements CompanyHandler.
func (c *CompanyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req company.CreateCompanyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create company decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := c.companyService.Create(r.Context(), middleware.EmployeeIDFromContext(r.Context()), req)
	if err != nil {
		slog.Error("Failed to create company", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Company created successfully", created)
}

// GetByID implements CompanyHandler.
func (c *CompanyHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	found, err := c.companyService.GetByID(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "companyId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// Delete implements CompanyHandler.
func (c *CompanyHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")
	if err := c.companyService.Delete(r.Context(), middleware.EmployeeIDFromContext(r.Context()), companyID); err != nil {
		slog.Error("Failed to delete company", "company_id", companyID, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Company deleted", "company_id", companyID)
	response.SuccessWithMessage(w, "Company deleted successfully", nil)
}

// ListEmployees implements CompanyHandler.
func (c *CompanyHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := c.companyService.ListEmployees(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "companyId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employees)
}
