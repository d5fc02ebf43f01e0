package chat

import (
	"context"
	"time"
)

type ChatRepository interface {
	Create(ctx context.Context, c Chat) (Chat, error)
	GetByID(ctx context.Context, id string) (Chat, error)
	ListByTeam(ctx context.Context, teamID string) ([]Chat, error)
	// ListVisibleByCompany returns company chats that are active and public.
	ListVisibleByCompany(ctx context.Context, companyID string) ([]Chat, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m Message) (Message, error)
	GetByID(ctx context.Context, id string) (Message, error)
	// ListRecent returns at most limit messages, newest first.
	ListRecent(ctx context.Context, chatID string, limit int) ([]Message, error)
	UpdateContent(ctx context.Context, id, content string, editedAt time.Time) (Message, error)
	Delete(ctx context.Context, id string) error
}
