package chat

import (
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/validator"
)

const maxMessageLength = 4000

type CreateChatRequest struct {
	Name     string `json:"name"`
	IsPublic *bool  `json:"is_public,omitempty"`
}

func (r *CreateChatRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.ExceedsLength(r.Name, 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

func (r *SendMessageRequest) Validate() error {
	return validateContent(r.Content)
}

type EditMessageRequest struct {
	Content string `json:"content"`
}

func (r *EditMessageRequest) Validate() error {
	return validateContent(r.Content)
}

func validateContent(content string) error {
	if validator.IsEmpty(content) {
		return validator.ValidationErrors{{
			Field:   "content",
			Message: "content is required",
		}}
	}
	if validator.ExceedsLength(content, maxMessageLength) {
		return validator.ValidationErrors{{
			Field:   "content",
			Message: "content must not exceed 4000 characters",
		}}
	}
	return nil
}

type ChatResponse struct {
	ID        string    `json:"id"`
	Scope     Scope     `json:"scope"`
	TeamID    *string   `json:"team_id,omitempty"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	IsActive  bool      `json:"is_active"`
	IsPublic  *bool     `json:"is_public,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToChatResponse(c Chat) ChatResponse {
	resp := ChatResponse{
		ID:        c.ID,
		Scope:     c.Scope,
		TeamID:    c.TeamID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		CreatedBy: c.CreatedBy,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
	if c.Scope == ScopeCompany {
		isPublic := c.IsPublic
		resp.IsPublic = &isPublic
	}
	return resp
}

type MessageResponse struct {
	ID         string     `json:"id"`
	ChatID     string     `json:"chat_id"`
	Scope      Scope      `json:"scope"`
	Content    string     `json:"content"`
	AuthorID   string     `json:"author_id"`
	AuthorName string     `json:"author_name"`
	SentAt     time.Time  `json:"sent_at"`
	Edited     bool       `json:"edited"`
	EditedAt   *time.Time `json:"edited_at,omitempty"`
}

func ToMessageResponse(m Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		ChatID:     m.ChatID,
		Scope:      m.Scope,
		Content:    m.Content,
		AuthorID:   m.AuthorID,
		AuthorName: m.AuthorName,
		SentAt:     m.SentAt,
		Edited:     m.Edited,
		EditedAt:   m.EditedAt,
	}
}
