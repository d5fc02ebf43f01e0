package document

import (
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/validator"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 2000
	maxChecklistItems    = 200
)

type ChecklistItemInput struct {
	ID   *string `json:"id,omitempty"`
	Text string  `json:"text"`
	Done bool    `json:"done"`
}

type CreateDocumentRequest struct {
	Title       string               `json:"title"`
	Description *string              `json:"description,omitempty"`
	Content     string               `json:"content"`
	Kind        string               `json:"kind"`
	Status      string               `json:"status"`
	CompanyID   string               `json:"company_id"`
	TeamID      *string              `json:"team_id,omitempty"`
	Checklist   []ChecklistItemInput `json:"checklist"`
}

func (r *CreateDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateTitle(r.Title)...)
	if r.Description != nil && validator.ExceedsLength(*r.Description, maxDescriptionLength) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 2000 characters",
		})
	}
	if r.Kind == "" {
		r.Kind = string(KindAuthored)
	}
	if !Kind(r.Kind).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: authored, uploaded",
		})
	}
	if r.Status == "" {
		r.Status = string(StatusDraft)
	}
	if !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: draft, published, archived",
		})
	}
	if !validator.IsValidUUID(r.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id must be a valid UUID",
		})
	}
	if r.TeamID != nil && !validator.IsValidUUID(*r.TeamID) {
		errs = append(errs, validator.ValidationError{
			Field:   "team_id",
			Message: "team_id must be a valid UUID",
		})
	}
	errs = append(errs, validateChecklist(r.Checklist)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateDocumentRequest changes metadata and/or content. Only a content
// change creates a new version.
type UpdateDocumentRequest struct {
	Title       *string               `json:"title,omitempty"`
	Description *string               `json:"description,omitempty"`
	Status      *string               `json:"status,omitempty"`
	Checklist   *[]ChecklistItemInput `json:"checklist,omitempty"`
	Content     *string               `json:"content,omitempty"`
}

func (r *UpdateDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title == nil && r.Description == nil && r.Status == nil && r.Checklist == nil && r.Content == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one field must be provided",
		})
	}
	if r.Title != nil {
		errs = append(errs, validateTitle(*r.Title)...)
	}
	if r.Description != nil && validator.ExceedsLength(*r.Description, maxDescriptionLength) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 2000 characters",
		})
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: draft, published, archived",
		})
	}
	if r.Checklist != nil {
		errs = append(errs, validateChecklist(*r.Checklist)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Metadata converts the metadata part of the request, generating ids for new
// checklist items with newID.
func (r *UpdateDocumentRequest) Metadata(newID func() string) MetadataUpdate {
	update := MetadataUpdate{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Status != nil {
		s := Status(*r.Status)
		update.Status = &s
	}
	if r.Checklist != nil {
		items := BuildChecklist(*r.Checklist, newID)
		update.Checklist = &items
	}
	return update
}

// BuildChecklist keeps supplied item ids and assigns fresh ones to the rest.
func BuildChecklist(inputs []ChecklistItemInput, newID func() string) []ChecklistItem {
	items := make([]ChecklistItem, 0, len(inputs))
	for _, in := range inputs {
		id := ""
		if in.ID != nil && *in.ID != "" {
			id = *in.ID
		} else {
			id = newID()
		}
		items = append(items, ChecklistItem{ID: id, Text: in.Text, Done: in.Done})
	}
	return items
}

func validateTitle(title string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if validator.ExceedsLength(title, maxTitleLength) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}
	return errs
}

func validateChecklist(items []ChecklistItemInput) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if len(items) > maxChecklistItems {
		errs = append(errs, validator.ValidationError{
			Field:   "checklist",
			Message: "checklist must not exceed 200 items",
		})
	}
	for _, item := range items {
		if validator.IsEmpty(item.Text) {
			errs = append(errs, validator.ValidationError{
				Field:   "checklist",
				Message: "checklist item text is required",
			})
			break
		}
	}
	return errs
}

type ListDocumentsFilter struct {
	TeamID    *string
	CompanyID *string
}

type DocumentResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Content     string          `json:"content"`
	Kind        Kind            `json:"kind"`
	Status      Status          `json:"status"`
	CompanyID   string          `json:"company_id"`
	TeamID      *string         `json:"team_id,omitempty"`
	AuthorID    string          `json:"author_id"`
	Version     int             `json:"version"`
	Checklist   []ChecklistItem `json:"checklist"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ToResponse(d Document) DocumentResponse {
	checklist := d.Checklist
	if checklist == nil {
		checklist = []ChecklistItem{}
	}
	return DocumentResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Content:     d.Content,
		Kind:        d.Kind,
		Status:      d.Status,
		CompanyID:   d.CompanyID,
		TeamID:      d.TeamID,
		AuthorID:    d.AuthorID,
		Version:     d.Version,
		Checklist:   checklist,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type VersionResponse struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Version    int       `json:"version"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToVersionResponse(v Version) VersionResponse {
	return VersionResponse{
		ID:         v.ID,
		DocumentID: v.DocumentID,
		Version:    v.Version,
		Content:    v.Content,
		AuthorID:   v.AuthorID,
		CreatedAt:  v.CreatedAt,
	}
}

type DiffResponse struct {
	DocumentID  string       `json:"document_id"`
	FromVersion int          `json:"from_version"`
	ToVersion   int          `json:"to_version"`
	Changes     []LineChange `json:"changes"`
}
