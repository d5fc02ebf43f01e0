package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/metrics"
)

const (
	DefaultMessageLimit = 50
	MaxMessageLimit     = 200
)

// MessageLimits bounds ListMessages. Zero values fall back to the package
// defaults.
type MessageLimits struct {
	Default int
	Max     int
}

type ChatServiceImpl struct {
	chatRepo     chat.ChatRepository
	messageRepo  chat.MessageRepository
	teamRepo     team.TeamRepository
	employeeRepo employee.EmployeeRepository
	evaluator    access.Evaluator
	metrics      *metrics.Metrics
	limits       MessageLimits
	now          func() time.Time
}

func NewChatService(
	chatRepo chat.ChatRepository,
	messageRepo chat.MessageRepository,
	teamRepo team.TeamRepository,
	employeeRepo employee.EmployeeRepository,
	evaluator access.Evaluator,
	m *metrics.Metrics,
	limits MessageLimits,
) chat.ChatService {
	if limits.Max <= 0 {
		limits.Max = MaxMessageLimit
	}
	if limits.Default <= 0 || limits.Default > limits.Max {
		limits.Default = min(DefaultMessageLimit, limits.Max)
	}
	return &ChatServiceImpl{
		chatRepo:     chatRepo,
		messageRepo:  messageRepo,
		teamRepo:     teamRepo,
		employeeRepo: employeeRepo,
		evaluator:    evaluator,
		metrics:      m,
		limits:       limits,
		now:          time.Now,
	}
}

// CreateTeamChat implements chat.ChatService.
func (s *ChatServiceImpl) CreateTeamChat(ctx context.Context, actorID, teamID string, req chat.CreateChatRequest) (chat.ChatResponse, error) {
	if err := req.Validate(); err != nil {
		return chat.ChatResponse{}, err
	}
	if err := s.evaluator.Authorize(ctx, actorID, access.Team(teamID), access.ActionChatCreate); err != nil {
		return chat.ChatResponse{}, err
	}

	t, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return chat.ChatResponse{}, err
	}

	created, err := s.chatRepo.Create(ctx, chat.Chat{
		Scope:     chat.ScopeTeam,
		TeamID:    &t.ID,
		CompanyID: t.CompanyID,
		Name:      strings.TrimSpace(req.Name),
		CreatedBy: actorID,
		IsActive:  true,
	})
	if err != nil {
		return chat.ChatResponse{}, err
	}

	slog.Info("team chat created", "chat_id", created.ID, "team_id", teamID, "actor_id", actorID)
	return chat.ToChatResponse(created), nil
}

// CreateCompanyChat implements chat.ChatService. Company chats are public
// unless the request says otherwise.
func (s *ChatServiceImpl) CreateCompanyChat(ctx context.Context, actorID, companyID string, req chat.CreateChatRequest) (chat.ChatResponse, error) {
	if err := req.Validate(); err != nil {
		return chat.ChatResponse{}, err
	}
	if err := s.evaluator.Authorize(ctx, actorID, access.Company(companyID), access.ActionChatCreate); err != nil {
		return chat.ChatResponse{}, err
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	created, err := s.chatRepo.Create(ctx, chat.Chat{
		Scope:     chat.ScopeCompany,
		CompanyID: companyID,
		Name:      strings.TrimSpace(req.Name),
		CreatedBy: actorID,
		IsActive:  true,
		IsPublic:  isPublic,
	})
	if err != nil {
		return chat.ChatResponse{}, err
	}

	slog.Info("company chat created", "chat_id", created.ID, "company_id", companyID, "actor_id", actorID)
	return chat.ToChatResponse(created), nil
}

// ListTeamChats implements chat.ChatService.
func (s *ChatServiceImpl) ListTeamChats(ctx context.Context, actorID, teamID string) ([]chat.ChatResponse, error) {
	if err := s.evaluator.Authorize(ctx, actorID, access.Team(teamID), access.ActionChatRead); err != nil {
		return nil, err
	}

	chats, err := s.chatRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return toChatResponses(chats), nil
}

// ListCompanyChats implements chat.ChatService. Inactive and private company
// chats are left out for every caller.
func (s *ChatServiceImpl) ListCompanyChats(ctx context.Context, actorID, companyID string) ([]chat.ChatResponse, error) {
	if err := s.evaluator.Authorize(ctx, actorID, access.Company(companyID), access.ActionChatRead); err != nil {
		return nil, err
	}

	chats, err := s.chatRepo.ListVisibleByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return toChatResponses(chats), nil
}

// SendMessage implements chat.ChatService. The author's display name is
// copied onto the message.
func (s *ChatServiceImpl) SendMessage(ctx context.Context, actorID, chatID string, req chat.SendMessageRequest) (chat.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return chat.MessageResponse{}, err
	}
	if err := s.evaluator.Authorize(ctx, actorID, access.Chat(chatID), access.ActionChatPost); err != nil {
		return chat.MessageResponse{}, err
	}

	c, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return chat.MessageResponse{}, err
	}
	if !c.IsActive {
		return chat.MessageResponse{}, chat.ErrChatInactive
	}

	author, err := s.employeeRepo.GetByID(ctx, actorID)
	if err != nil {
		return chat.MessageResponse{}, err
	}

	msg, err := s.messageRepo.Create(ctx, chat.Message{
		ChatID:     c.ID,
		Scope:      c.Scope,
		Content:    req.Content,
		AuthorID:   author.ID,
		AuthorName: author.DisplayName(),
		SentAt:     s.now().UTC(),
	})
	if err != nil {
		return chat.MessageResponse{}, err
	}

	s.metrics.ObserveChatMessage(string(c.Scope))
	return chat.ToMessageResponse(msg), nil
}

// ListMessages implements chat.ChatService.
func (s *ChatServiceImpl) ListMessages(ctx context.Context, actorID, chatID string, limit int) ([]chat.MessageResponse, error) {
	if err := s.evaluator.Authorize(ctx, actorID, access.Chat(chatID), access.ActionChatRead); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = s.limits.Default
	case limit > s.limits.Max:
		limit = s.limits.Max
	}

	recent, err := s.messageRepo.ListRecent(ctx, chatID, limit)
	if err != nil {
		return nil, err
	}

	// newest first from storage, oldest first to the caller
	out := make([]chat.MessageResponse, len(recent))
	for i, m := range recent {
		out[len(recent)-1-i] = chat.ToMessageResponse(m)
	}
	return out, nil
}

// EditMessage implements chat.ChatService. Only the author may edit.
func (s *ChatServiceImpl) EditMessage(ctx context.Context, actorID, messageID string, req chat.EditMessageRequest) (chat.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return chat.MessageResponse{}, err
	}
	if err := s.evaluator.Authorize(ctx, actorID, access.Message(messageID), access.ActionMessageEdit); err != nil {
		return chat.MessageResponse{}, err
	}

	updated, err := s.messageRepo.UpdateContent(ctx, messageID, req.Content, s.now().UTC())
	if err != nil {
		return chat.MessageResponse{}, err
	}
	return chat.ToMessageResponse(updated), nil
}

// DeleteMessage implements chat.ChatService. Team chat messages have no
// delete path.
func (s *ChatServiceImpl) DeleteMessage(ctx context.Context, actorID, messageID string) error {
	if err := s.evaluator.Authorize(ctx, actorID, access.Message(messageID), access.ActionMessageDelete); err != nil {
		return err
	}

	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.Scope == chat.ScopeTeam {
		return chat.ErrTeamMessageDeleteUnsupported
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return err
	}

	slog.Info("message deleted", "message_id", messageID, "chat_id", msg.ChatID, "actor_id", actorID)
	return nil
}

func toChatResponses(chats []chat.Chat) []chat.ChatResponse {
	out := make([]chat.ChatResponse, 0, len(chats))
	for _, c := range chats {
		out = append(out, chat.ToChatResponse(c))
	}
	return out
}
