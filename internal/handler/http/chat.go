package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ChatHandler interface {
	CreateTeamChat(w http.ResponseWriter, r *http.Request)
	ListTeamChats(w http.ResponseWriter, r *http.Request)
	CreateCompanyChat(w http.ResponseWriter, r *http.Request)
	ListCompanyChats(w http.ResponseWriter, r *http.Request)
	SendMessage(w http.ResponseWriter, r *http.Request)
	ListMessages(w http.ResponseWriter, r *http.Request)
	EditMessage(w http.ResponseWriter, r *http.Request)
	DeleteMessage(w http.ResponseWriter, r *http.Request)
}

type ChatHandlerImpl struct {
	chatService chat.ChatService
}

func NewChatHandler(chatService chat.ChatService) ChatHandler {
	return &ChatHandlerImpl{chatService: chatService}
}

// CreateTeamChat implements ChatHandler.
func (h *ChatHandlerImpl) CreateTeamChat(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCreateChat(w, r)
	if !ok {
		return
	}

	created, err := h.chatService.CreateTeamChat(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "teamId"), req)
	if err != nil {
		slog.Error("Create team chat service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Chat created successfully", created)
}

// ListTeamChats implements ChatHandler.
func (h *ChatHandlerImpl) ListTeamChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.chatService.ListTeamChats(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "teamId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, chats)
}

// CreateCompanyChat implements ChatHandler.
func (h *ChatHandlerImpl) CreateCompanyChat(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCreateChat(w, r)
	if !ok {
		return
	}

	created, err := h.chatService.CreateCompanyChat(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "companyId"), req)
	if err != nil {
		slog.Error("Create company chat service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Chat created successfully", created)
}

// ListCompanyChats implements ChatHandler.
func (h *ChatHandlerImpl) ListCompanyChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.chatService.ListCompanyChats(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "companyId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, chats)
}

// SendMessage implements ChatHandler.
func (h *ChatHandlerImpl) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req chat.SendMessageRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Send message decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	sent, err := h.chatService.SendMessage(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "chatId"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Message sent", sent)
}

// ListMessages implements ChatHandler.
func (h *ChatHandlerImpl) ListMessages(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.BadRequest(w, "Invalid query parameter", map[string]string{"limit": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	messages, err := h.chatService.ListMessages(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "chatId"), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, messages)
}

// EditMessage implements ChatHandler.
func (h *ChatHandlerImpl) EditMessage(w http.ResponseWriter, r *http.Request) {
	var req chat.EditMessageRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Edit message decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	edited, err := h.chatService.EditMessage(r.Context(), middleware.EmployeeIDFromContext(r.Context()), chi.URLParam(r, "messageId"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Message updated", edited)
}

// DeleteMessage implements ChatHandler.
func (h *ChatHandlerImpl) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "messageId")
	if err := h.chatService.DeleteMessage(r.Context(), middleware.EmployeeIDFromContext(r.Context()), messageID); err != nil {
		slog.Warn("Delete message rejected", "message_id", messageID, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Message deleted", nil)
}

func decodeCreateChat(w http.ResponseWriter, r *http.Request) (chat.CreateChatRequest, bool) {
	var req chat.CreateChatRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create chat decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return req, false
	}
	return req, true
}
