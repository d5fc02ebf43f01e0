// Package access decides whether an actor may perform an action on a
// resource. Evaluate is a pure function over Facts; loading the facts from
// storage is the job of the access service.
package access

import (
	"context"
)

type ResourceKind string

const (
	ResourceCompany  ResourceKind = "company"
	ResourceTeam     ResourceKind = "team"
	ResourceDocument ResourceKind = "document"
	ResourceChat     ResourceKind = "chat"
	ResourceMessage  ResourceKind = "message"
)

type Resource struct {
	Kind ResourceKind
	ID   string
}

func Company(id string) Resource  { return Resource{Kind: ResourceCompany, ID: id} }
func Team(id string) Resource     { return Resource{Kind: ResourceTeam, ID: id} }
func Document(id string) Resource { return Resource{Kind: ResourceDocument, ID: id} }
func Chat(id string) Resource     { return Resource{Kind: ResourceChat, ID: id} }
func Message(id string) Resource  { return Resource{Kind: ResourceMessage, ID: id} }

type Action string

const (
	// Admin-only.
	ActionCompanyDelete Action = "company.delete"
	ActionRoleAssign    Action = "role.assign"
	ActionRoleList      Action = "role.list"
	ActionInviteIssue   Action = "invite.issue"
	ActionInviteList    Action = "invite.list"

	// Company members.
	ActionCompanyRead  Action = "company.read"
	ActionEmployeeList Action = "employee.list"
	ActionRoleRead     Action = "role.read"
	ActionTeamCreate   Action = "team.create"
	ActionTeamRead     Action = "team.read"

	// Team members.
	ActionTeamMembersManage Action = "team.members.manage"

	// Team members when the resource belongs to a team, company members
	// otherwise. Creating a company chat needs admin.
	ActionChatCreate     Action = "chat.create"
	ActionChatRead       Action = "chat.read"
	ActionChatPost       Action = "chat.post"
	ActionDocumentCreate Action = "document.create"
	ActionDocumentRead   Action = "document.read"
	ActionDocumentEdit   Action = "document.edit"

	// Scope membership plus authorship.
	ActionMessageEdit   Action = "message.edit"
	ActionMessageDelete Action = "message.delete"
)

// Facts is a read-only snapshot of everything Evaluate needs.
type Facts struct {
	ActorID string
	// ActorCompanyID is empty when the actor has no company.
	ActorCompanyID string
	// CompanyID is the company that owns the resource.
	CompanyID string
	// TeamID is set when the resource is bound to a team.
	TeamID       string
	IsAdmin      bool
	IsTeamMember bool
	// AuthorID is the message author for message actions.
	AuthorID string
	// Missing holds the NotFound error of an absent referenced entity.
	Missing error
}

type Decision struct {
	Allowed bool
	Reason  error
}

func Allow() Decision            { return Decision{Allowed: true} }
func Deny(reason error) Decision { return Decision{Reason: reason} }

// Err returns nil for an allowed decision and the deny reason otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.Reason
}

type Evaluator interface {
	// Authorize loads the facts for resource and evaluates action. It returns
	// a NotFound sentinel for missing entities and an error wrapping
	// ErrForbidden on deny.
	Authorize(ctx context.Context, actorID string, resource Resource, action Action) error
}
