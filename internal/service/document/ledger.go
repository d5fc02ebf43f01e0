package document

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/metrics"
)

const (
	causeCreate  = "create"
	causeEdit    = "edit"
	causeRestore = "restore"
)

// Ledger keeps the append-only version history of documents. Every append
// bumps the document's version and inserts the snapshot in one transaction.
type Ledger struct {
	tx           database.Transactor
	documentRepo document.DocumentRepository
	versionRepo  document.VersionRepository
	metrics      *metrics.Metrics
}

func NewLedger(tx database.Transactor, documentRepo document.DocumentRepository, versionRepo document.VersionRepository, m *metrics.Metrics) *Ledger {
	return &Ledger{
		tx:           tx,
		documentRepo: documentRepo,
		versionRepo:  versionRepo,
		metrics:      m,
	}
}

// CreateInitial writes version 1 for a freshly created document.
func (l *Ledger) CreateInitial(ctx context.Context, doc document.Document) (document.Version, error) {
	v, err := l.versionRepo.Create(ctx, document.Version{
		DocumentID: doc.ID,
		Version:    1,
		Content:    doc.Content,
		AuthorID:   doc.AuthorID,
	})
	if err != nil {
		return document.Version{}, err
	}
	l.metrics.ObserveDocumentVersion(causeCreate)
	return v, nil
}

// RecordEdit stores content as the next version unconditionally.
func (l *Ledger) RecordEdit(ctx context.Context, documentID, content, authorID string) (document.Version, error) {
	return l.append(ctx, documentID, content, authorID, causeEdit)
}

// RecordEditIfChanged appends a version only when content differs from the
// current content. The comparison and the bump are one atomic update.
func (l *Ledger) RecordEditIfChanged(ctx context.Context, documentID, content, authorID string) (document.Version, bool, error) {
	var (
		v       document.Version
		changed bool
	)
	err := l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		next, ok, err := l.documentRepo.IncrementVersionIfChanged(txCtx, documentID, content)
		if err != nil || !ok {
			return err
		}
		changed = true
		v, err = l.versionRepo.Create(txCtx, document.Version{
			DocumentID: documentID,
			Version:    next,
			Content:    content,
			AuthorID:   authorID,
		})
		return err
	})
	if err != nil {
		return document.Version{}, false, err
	}
	if changed {
		l.metrics.ObserveDocumentVersion(causeEdit)
	}
	return v, changed, nil
}

// Restore appends a new version carrying the content of versionID. History
// is never rewritten.
func (l *Ledger) Restore(ctx context.Context, documentID, versionID, actorID string) (document.Version, error) {
	var v document.Version
	err := l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		target, err := l.GetVersion(txCtx, documentID, versionID)
		if err != nil {
			return err
		}
		v, err = l.append(txCtx, documentID, target.Content, actorID, causeRestore)
		if err != nil {
			return err
		}
		slog.Info("document version restored",
			"document_id", documentID,
			"restored_version", target.Version,
			"new_version", v.Version,
			"actor_id", actorID)
		return nil
	})
	return v, err
}

func (l *Ledger) append(ctx context.Context, documentID, content, authorID, cause string) (document.Version, error) {
	var v document.Version
	err := l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		next, err := l.documentRepo.IncrementVersion(txCtx, documentID, content)
		if err != nil {
			return err
		}
		v, err = l.versionRepo.Create(txCtx, document.Version{
			DocumentID: documentID,
			Version:    next,
			Content:    content,
			AuthorID:   authorID,
		})
		return err
	})
	if err != nil {
		return document.Version{}, err
	}
	l.metrics.ObserveDocumentVersion(cause)
	return v, nil
}

func (l *Ledger) ListVersions(ctx context.Context, documentID string) ([]document.Version, error) {
	return l.versionRepo.ListByDocument(ctx, documentID)
}

// GetVersion returns ErrVersionNotFound for versions of other documents.
func (l *Ledger) GetVersion(ctx context.Context, documentID, versionID string) (document.Version, error) {
	v, err := l.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		return document.Version{}, err
	}
	if v.DocumentID != documentID {
		return document.Version{}, document.ErrVersionNotFound
	}
	return v, nil
}

func (l *Ledger) Diff(ctx context.Context, documentID, fromVersionID, toVersionID string) (document.DiffResponse, error) {
	from, err := l.GetVersion(ctx, documentID, fromVersionID)
	if err != nil {
		return document.DiffResponse{}, err
	}
	to, err := l.GetVersion(ctx, documentID, toVersionID)
	if err != nil {
		return document.DiffResponse{}, err
	}
	return document.DiffResponse{
		DocumentID:  documentID,
		FromVersion: from.Version,
		ToVersion:   to.Version,
		Changes:     document.Diff(from.Content, to.Content),
	}, nil
}
