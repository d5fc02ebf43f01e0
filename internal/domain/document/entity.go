package document

import "time"

type Kind string

const (
	KindAuthored Kind = "authored"
	KindUploaded Kind = "uploaded"
)

func (k Kind) IsValid() bool {
	return k == KindAuthored || k == KindUploaded
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

type ChecklistItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Document is owned by a company and optionally bound to one of its teams.
// Version starts at 1 and grows by exactly one per content change.
type Document struct {
	ID          string
	Title       string
	Description *string
	Content     string
	Kind        Kind
	CompanyID   string
	TeamID      *string
	AuthorID    string
	Version     int
	Status      Status
	Checklist   []ChecklistItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Version is an immutable content snapshot in a document's ledger.
type Version struct {
	ID         string
	DocumentID string
	Version    int
	Content    string
	AuthorID   string
	CreatedAt  time.Time
}

// MetadataUpdate carries the fields that change without a new version.
type MetadataUpdate struct {
	Title       *string
	Description *string
	Status      *Status
	Checklist   *[]ChecklistItem
}

func (m MetadataUpdate) IsEmpty() bool {
	return m.Title == nil && m.Description == nil && m.Status == nil && m.Checklist == nil
}
