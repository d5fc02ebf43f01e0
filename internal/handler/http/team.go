package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TeamHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	ListByCompany(w http.ResponseWriter, r *http.Request)
	AddMember(w http.ResponseWriter, r *http.Request)
	RemoveMember(w http.ResponseWriter, r *http.Request)
	ListMembers(w http.ResponseWriter, r *http.Request)
}

type TeamHandlerImpl struct {
	teamService team.TeamService
}

func NewTeamHandler(teamService team.TeamService) TeamHandler {
	return &TeamHandlerImpl{teamService: teamService}
}

// Create implements TeamHandler.
func (h *TeamHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req team.CreateTeamRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create team decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.teamService.Create(r.Context(), middleware.EmployeeIDFromContext(r.Context()), req)
	if err != nil {
		slog.Error("Create team service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Team created successfully", created)
}

// GetByID implements TeamHandler.
func (h *TeamHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	found, err := h.teamService.GetByID(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "teamId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// ListByCompany implements TeamHandler.
func (h *TeamHandlerImpl) ListByCompany(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListByCompany(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "companyId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, teams)
}

// AddMember implements TeamHandler.
func (h *TeamHandlerImpl) AddMember(w http.ResponseWriter, r *http.Request) {
	var req team.AddMemberRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Add team member decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	teamID := chi.URLParam(r, "teamId")
	if err := h.teamService.AddMember(r.Context(), middleware.EmployeeIDFromContext(r.Context()), teamID, req); err != nil {
		slog.Error("Add team member service error", "team_id", teamID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member added successfully", nil)
}

// RemoveMember implements TeamHandler.
func (h *TeamHandlerImpl) RemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamId")
	err := h.teamService.RemoveMember(r.Context(), middleware.EmployeeIDFromContext(r.Context()), teamID, chi.URLParam(r, "employeeId"))
	if err != nil {
		slog.Error("Remove team member service error", "team_id", teamID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member removed successfully", nil)
}

// ListMembers implements TeamHandler.
func (h *TeamHandlerImpl) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.teamService.ListMembers(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "teamId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, members)
}
