package chat

import "context"

type ChatService interface {
	CreateTeamChat(ctx context.Context, actorID, teamID string, req CreateChatRequest) (ChatResponse, error)
	CreateCompanyChat(ctx context.Context, actorID, companyID string, req CreateChatRequest) (ChatResponse, error)
	ListTeamChats(ctx context.Context, actorID, teamID string) ([]ChatResponse, error)
	ListCompanyChats(ctx context.Context, actorID, companyID string) ([]ChatResponse, error)

	SendMessage(ctx context.Context, actorID, chatID string, req SendMessageRequest) (MessageResponse, error)
	// ListMessages returns the latest limit messages in chronological order.
	// A non-positive limit selects the default.
	ListMessages(ctx context.Context, actorID, chatID string, limit int) ([]MessageResponse, error)
	EditMessage(ctx context.Context, actorID, messageID string, req EditMessageRequest) (MessageResponse, error)
	DeleteMessage(ctx context.Context, actorID, messageID string) error
}
