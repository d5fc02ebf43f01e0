package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/team"
)

type chatRepository struct {
	store *Store
}

func NewChatRepository(store *Store) chat.ChatRepository {
	return &chatRepository{store: store}
}

func (r *chatRepository) Create(ctx context.Context, c chat.Chat) (chat.Chat, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	if _, ok := d.companies[c.CompanyID]; !ok {
		return chat.Chat{}, company.ErrCompanyNotFound
	}
	if c.TeamID != nil {
		if _, ok := d.teams[*c.TeamID]; !ok {
			return chat.Chat{}, team.ErrTeamNotFound
		}
	}

	c.ID = d.nextID()
	c.CreatedAt = r.store.timestamp()
	d.chats[c.ID] = c
	return c, nil
}

func (r *chatRepository) GetByID(ctx context.Context, id string) (chat.Chat, error) {
	defer r.store.acquire(ctx)()

	c, ok := r.store.data.chats[id]
	if !ok {
		return chat.Chat{}, chat.ErrChatNotFound
	}
	return c, nil
}

func (r *chatRepository) ListByTeam(ctx context.Context, teamID string) ([]chat.Chat, error) {
	return r.list(ctx, func(c chat.Chat) bool {
		return c.TeamID != nil && *c.TeamID == teamID
	})
}

func (r *chatRepository) ListVisibleByCompany(ctx context.Context, companyID string) ([]chat.Chat, error) {
	return r.list(ctx, func(c chat.Chat) bool {
		return c.Scope == chat.ScopeCompany && c.CompanyID == companyID && c.IsActive && c.IsPublic
	})
}

func (r *chatRepository) list(ctx context.Context, match func(chat.Chat) bool) ([]chat.Chat, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	var out []chat.Chat
	for _, c := range d.chats {
		if match(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return d.order[out[i].ID] < d.order[out[j].ID] })
	return out, nil
}

func (d *state) deleteChat(id string) {
	delete(d.chats, id)
	for mid, m := range d.messages {
		if m.ChatID == id {
			delete(d.messages, mid)
		}
	}
}

type messageRepository struct {
	store *Store
}

func NewMessageRepository(store *Store) chat.MessageRepository {
	return &messageRepository{store: store}
}

func (r *messageRepository) Create(ctx context.Context, m chat.Message) (chat.Message, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	if _, ok := d.chats[m.ChatID]; !ok {
		return chat.Message{}, chat.ErrChatNotFound
	}

	m.ID = d.nextID()
	if m.SentAt.IsZero() {
		m.SentAt = r.store.timestamp()
	}
	m.Edited = false
	m.EditedAt = nil
	d.messages[m.ID] = m
	return m, nil
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (chat.Message, error) {
	defer r.store.acquire(ctx)()

	m, ok := r.store.data.messages[id]
	if !ok {
		return chat.Message{}, chat.ErrMessageNotFound
	}
	return m, nil
}

// ListRecent orders by send time then insertion, newest first.
func (r *messageRepository) ListRecent(ctx context.Context, chatID string, limit int) ([]chat.Message, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	var out []chat.Message
	for _, m := range d.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SentAt.Equal(out[j].SentAt) {
			return out[i].SentAt.After(out[j].SentAt)
		}
		return d.order[out[i].ID] > d.order[out[j].ID]
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *messageRepository) UpdateContent(ctx context.Context, id, content string, editedAt time.Time) (chat.Message, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	m, ok := d.messages[id]
	if !ok {
		return chat.Message{}, chat.ErrMessageNotFound
	}
	m.Content = content
	m.Edited = true
	m.EditedAt = &editedAt
	d.messages[id] = m
	return m, nil
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	defer r.store.acquire(ctx)()
	d := r.store.data

	if _, ok := d.messages[id]; !ok {
		return chat.ErrMessageNotFound
	}
	delete(d.messages, id)
	return nil
}
