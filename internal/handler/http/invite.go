package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/invite"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type InviteHandler interface {
	Issue(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Consume(w http.ResponseWriter, r *http.Request)
}

type InviteHandlerImpl struct {
	inviteService invite.InviteService
}

func NewInviteHandler(inviteService invite.InviteService) InviteHandler {
	return &InviteHandlerImpl{inviteService: inviteService}
}

// Issue implements InviteHandler.
func (h *InviteHandlerImpl) Issue(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")
	code, err := h.inviteService.Issue(r.Context(), middleware.EmployeeIDFromContext(r.Context()), companyID)
	if err != nil {
		slog.Error("Issue invite service error", "company_id", companyID, "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Invite code issued", code)
}

// List implements InviteHandler.
func (h *InviteHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	codes, err := h.inviteService.List(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "companyId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, codes)
}

// Consume implements InviteHandler.
func (h *InviteHandlerImpl) Consume(w http.ResponseWriter, r *http.Request) {
	var req invite.ConsumeInviteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Consume invite decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	joined, err := h.inviteService.Consume(r.Context(), middleware.EmployeeIDFromContext(r.Context()), req)
	if err != nil {
		slog.Warn("Consume invite rejected", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Joined company successfully", joined)
}
