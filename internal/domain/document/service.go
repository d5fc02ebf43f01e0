package document

import "context"

type DocumentService interface {
	Create(ctx context.Context, actorID string, req CreateDocumentRequest) (DocumentResponse, error)
	GetByID(ctx context.Context, actorID, id string) (DocumentResponse, error)
	List(ctx context.Context, actorID string, filter ListDocumentsFilter) ([]DocumentResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateDocumentRequest) (DocumentResponse, error)

	ListVersions(ctx context.Context, actorID, id string) ([]VersionResponse, error)
	GetVersion(ctx context.Context, actorID, id, versionID string) (VersionResponse, error)
	Restore(ctx context.Context, actorID, id, versionID string) (DocumentResponse, error)
	Diff(ctx context.Context, actorID, id, fromVersionID, toVersionID string) (DiffResponse, error)
}
