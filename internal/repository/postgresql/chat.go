package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type chatRepositoryImpl struct {
	db *database.DB
}

func NewChatRepository(db *database.DB) chat.ChatRepository {
	return &chatRepositoryImpl{db: db}
}

const chatColumns = `id, scope, team_id, company_id, name, created_by, is_active, is_public, created_at`

func scanChat(row pgx.Row) (chat.Chat, error) {
	var c chat.Chat
	err := row.Scan(&c.ID, &c.Scope, &c.TeamID, &c.CompanyID, &c.Name, &c.CreatedBy, &c.IsActive, &c.IsPublic, &c.CreatedAt)
	return c, err
}

func (r *chatRepositoryImpl) list(ctx context.Context, where string, arg string) ([]chat.Chat, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+chatColumns+` FROM chats WHERE `+where+` ORDER BY created_at, id`, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	chats := make([]chat.Chat, 0)
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

// Create implements chat.ChatRepository.
func (r *chatRepositoryImpl) Create(ctx context.Context, c chat.Chat) (chat.Chat, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanChat(q.QueryRow(ctx, `
		INSERT INTO chats (scope, team_id, company_id, name, created_by, is_active, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+chatColumns, c.Scope, c.TeamID, c.CompanyID, c.Name, c.CreatedBy, c.IsActive, c.IsPublic))
	if err != nil {
		return chat.Chat{}, fmt.Errorf("failed to create chat: %w", err)
	}
	return created, nil
}

// GetByID implements chat.ChatRepository.
func (r *chatRepositoryImpl) GetByID(ctx context.Context, id string) (chat.Chat, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanChat(q.QueryRow(ctx, `SELECT `+chatColumns+` FROM chats WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return chat.Chat{}, chat.ErrChatNotFound
		}
		return chat.Chat{}, fmt.Errorf("failed to get chat %s: %w", id, err)
	}
	return found, nil
}

// ListByTeam implements chat.ChatRepository.
func (r *chatRepositoryImpl) ListByTeam(ctx context.Context, teamID string) ([]chat.Chat, error) {
	return r.list(ctx, "scope = 'team' AND team_id = $1", teamID)
}

// ListVisibleByCompany implements chat.ChatRepository.
func (r *chatRepositoryImpl) ListVisibleByCompany(ctx context.Context, companyID string) ([]chat.Chat, error) {
	return r.list(ctx, "scope = 'company' AND company_id = $1 AND is_active AND is_public", companyID)
}

type messageRepositoryImpl struct {
	db *database.DB
}

func NewMessageRepository(db *database.DB) chat.MessageRepository {
	return &messageRepositoryImpl{db: db}
}

const messageColumns = `id, chat_id, scope, content, author_id, author_name, sent_at, edited, edited_at`

func scanMessage(row pgx.Row) (chat.Message, error) {
	var m chat.Message
	err := row.Scan(&m.ID, &m.ChatID, &m.Scope, &m.Content, &m.AuthorID, &m.AuthorName, &m.SentAt, &m.Edited, &m.EditedAt)
	return m, err
}

// Create implements chat.MessageRepository.
func (r *messageRepositoryImpl) Create(ctx context.Context, m chat.Message) (chat.Message, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanMessage(q.QueryRow(ctx, `
		INSERT INTO messages (chat_id, scope, content, author_id, author_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+messageColumns, m.ChatID, m.Scope, m.Content, m.AuthorID, m.AuthorName))
	if err != nil {
		return chat.Message{}, fmt.Errorf("failed to create message: %w", err)
	}
	return created, nil
}

// GetByID implements chat.MessageRepository.
func (r *messageRepositoryImpl) GetByID(ctx context.Context, id string) (chat.Message, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanMessage(q.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return chat.Message{}, chat.ErrMessageNotFound
		}
		return chat.Message{}, fmt.Errorf("failed to get message %s: %w", id, err)
	}
	return found, nil
}

// ListRecent implements chat.MessageRepository.
func (r *messageRepositoryImpl) ListRecent(ctx context.Context, chatID string, limit int) ([]chat.Message, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE chat_id = $1
		ORDER BY sent_at DESC, id DESC
		LIMIT $2`, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]chat.Message, 0, limit)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// UpdateContent implements chat.MessageRepository.
func (r *messageRepositoryImpl) UpdateContent(ctx context.Context, id, content string, editedAt time.Time) (chat.Message, error) {
	q := GetQuerier(ctx, r.db)

	updated, err := scanMessage(q.QueryRow(ctx, `
		UPDATE messages
		SET content = $2, edited = true, edited_at = $3
		WHERE id = $1
		RETURNING `+messageColumns, id, content, editedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return chat.Message{}, chat.ErrMessageNotFound
		}
		return chat.Message{}, fmt.Errorf("failed to edit message %s: %w", id, err)
	}
	return updated, nil
}

// Delete implements chat.MessageRepository.
func (r *messageRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return chat.ErrMessageNotFound
	}
	return nil
}
