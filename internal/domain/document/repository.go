package document

import "context"

type DocumentRepository interface {
	Create(ctx context.Context, doc Document) (Document, error)
	GetByID(ctx context.Context, id string) (Document, error)
	ListByTeam(ctx context.Context, teamID string) ([]Document, error)
	// ListCompanyWide returns the company's documents that are not bound to
	// a team.
	ListCompanyWide(ctx context.Context, companyID string) ([]Document, error)
	UpdateMetadata(ctx context.Context, id string, update MetadataUpdate) (Document, error)
	// IncrementVersion atomically stores content and bumps the version,
	// returning the new version number.
	IncrementVersion(ctx context.Context, id, content string) (int, error)
	// IncrementVersionIfChanged does the same only when content differs from
	// the stored content; changed is false and nothing is written otherwise.
	IncrementVersionIfChanged(ctx context.Context, id, content string) (version int, changed bool, err error)
}

type VersionRepository interface {
	Create(ctx context.Context, v Version) (Version, error)
	GetByID(ctx context.Context, id string) (Version, error)
	ListByDocument(ctx context.Context, documentID string) ([]Version, error)
}
