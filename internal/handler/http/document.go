package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type DocumentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	ListVersions(w http.ResponseWriter, r *http.Request)
	GetVersion(w http.ResponseWriter, r *http.Request)
	Restore(w http.ResponseWriter, r *http.Request)
	Diff(w http.ResponseWriter, r *http.Request)
}

type DocumentHandlerImpl struct {
	documentService document.DocumentService
}

func NewDocumentHandler(documentService document.DocumentService) DocumentHandler {
	return &DocumentHandlerImpl{documentService: documentService}
}

// Create implements DocumentHandler.
func (h *DocumentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req document.CreateDocumentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create document decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.documentService.Create(r.Context(), middleware.EmployeeIDFromContext(r.Context()), req)
	if err != nil {
		slog.Error("Create document service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document created successfully", created)
}

// GetByID implements DocumentHandler.
func (h *DocumentHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	found, err := h.documentService.GetByID(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "documentId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// List implements DocumentHandler. Exactly one of team_id or company_id
// scopes the listing; team_id wins when both are given.
func (h *DocumentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter document.ListDocumentsFilter
	query := r.URL.Query()

	if teamID := query.Get("team_id"); teamID != "" {
		filter.TeamID = &teamID
	}
	if companyID := query.Get("company_id"); companyID != "" {
		filter.CompanyID = &companyID
	}
	if invalid := invalidUUIDQuery(r, "team_id", "company_id"); len(invalid) > 0 {
		response.BadRequest(w, "Invalid query parameter", invalid)
		return
	}

	documents, err := h.documentService.List(r.Context(), middleware.EmployeeIDFromContext(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, documents)
}

// Update implements DocumentHandler.
func (h *DocumentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req document.UpdateDocumentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update document decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	documentID := chi.URLParam(r, "documentId")
	updated, err := h.documentService.Update(r.Context(), middleware.EmployeeIDFromContext(r.Context()), documentID, req)
	if err != nil {
		slog.Error("Update document service error", "document_id", documentID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document updated successfully", updated)
}

// ListVersions implements DocumentHandler.
func (h *DocumentHandlerImpl) ListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := h.documentService.ListVersions(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "documentId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, versions)
}

// GetVersion implements DocumentHandler.
func (h *DocumentHandlerImpl) GetVersion(w http.ResponseWriter, r *http.Request) {
	version, err := h.documentService.GetVersion(r.Context(), middleware.EmployeeIDFromContext(r.Context()),
		chi.URLParam(r, "documentId"), chi.URLParam(r, "versionId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, version)
}

// Restore implements DocumentHandler.
func (h *DocumentHandlerImpl) Restore(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentId")
	restored, err := h.documentService.Restore(r.Context(), middleware.EmployeeIDFromContext(r.Context()),
		documentID, chi.URLParam(r, "versionId"))
	if err != nil {
		slog.Error("Restore document version error", "document_id", documentID, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Document restored successfully", restored)
}

// Diff implements DocumentHandler.
func (h *DocumentHandlerImpl) Diff(w http.ResponseWriter, r *http.Request) {
	if invalid := invalidUUIDQuery(r, "from", "to"); len(invalid) > 0 {
		response.BadRequest(w, "Invalid query parameter", invalid)
		return
	}

	query := r.URL.Query()
	diff, err := h.documentService.Diff(r.Context(), middleware.EmployeeIDFromContext(r.Context()),
		chi.URLParam(r, "documentId"), query.Get("from"), query.Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, diff)
}

func invalidUUIDQuery(r *http.Request, names ...string) map[string]string {
	invalid := map[string]string{}
	query := r.URL.Query()
	for _, name := range names {
		if value := query.Get(name); value != "" && !validator.IsValidUUID(value) {
			invalid[name] = name + " must be a valid UUID"
		}
	}
	return invalid
}
