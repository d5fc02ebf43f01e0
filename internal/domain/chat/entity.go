package chat

import "time"

// Scope says whether a chat belongs to a team or to a whole company.
type Scope string

const (
	ScopeTeam    Scope = "team"
	ScopeCompany Scope = "company"
)

// Chat is either a team chat (TeamID set) or a company chat. IsPublic only
// matters for company chats.
type Chat struct {
	ID        string
	Scope     Scope
	TeamID    *string
	CompanyID string
	Name      string
	CreatedBy string
	IsActive  bool
	IsPublic  bool
	CreatedAt time.Time
}

// Message keeps the author's display name as it was at send time.
type Message struct {
	ID         string
	ChatID     string
	Scope      Scope
	Content    string
	AuthorID   string
	AuthorName string
	SentAt     time.Time
	Edited     bool
	EditedAt   *time.Time
}
