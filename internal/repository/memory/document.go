package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/team"
)

var errDuplicateVersion = errors.New("document version already exists")

type documentRepository struct {
	store *Store
}

func NewDocumentRepository(store *Store) document.DocumentRepository {
	return &documentRepository{store: store}
}

func (r *documentRepository) Create(ctx context.Context, doc document.Document) (document.Document, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	if _, ok := d.companies[doc.CompanyID]; !ok {
		return document.Document{}, company.ErrCompanyNotFound
	}
	if doc.TeamID != nil {
		if _, ok := d.teams[*doc.TeamID]; !ok {
			return document.Document{}, team.ErrTeamNotFound
		}
	}

	doc.ID = d.nextID()
	doc.Version = 1
	doc.CreatedAt = r.store.timestamp()
	doc.UpdatedAt = doc.CreatedAt
	if doc.Checklist == nil {
		doc.Checklist = []document.ChecklistItem{}
	}
	d.documents[doc.ID] = doc
	return doc, nil
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (document.Document, error) {
	defer r.store.acquire(ctx)()

	doc, ok := r.store.data.documents[id]
	if !ok {
		return document.Document{}, document.ErrDocumentNotFound
	}
	return doc, nil
}

func (r *documentRepository) ListByTeam(ctx context.Context, teamID string) ([]document.Document, error) {
	return r.list(ctx, func(doc document.Document) bool {
		return doc.TeamID != nil && *doc.TeamID == teamID
	})
}

func (r *documentRepository) ListCompanyWide(ctx context.Context, companyID string) ([]document.Document, error) {
	return r.list(ctx, func(doc document.Document) bool {
		return doc.CompanyID == companyID && doc.TeamID == nil
	})
}

// list orders by last update, newest first.
func (r *documentRepository) list(ctx context.Context, match func(document.Document) bool) ([]document.Document, error) {
	defer r.store.acquire(ctx)()

	var out []document.Document
	for _, doc := range r.store.data.documents {
		if match(doc) {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *documentRepository) UpdateMetadata(ctx context.Context, id string, update document.MetadataUpdate) (document.Document, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	doc, ok := d.documents[id]
	if !ok {
		return document.Document{}, document.ErrDocumentNotFound
	}
	if update.Title != nil {
		doc.Title = *update.Title
	}
	if update.Description != nil {
		desc := *update.Description
		doc.Description = &desc
	}
	if update.Status != nil {
		doc.Status = *update.Status
	}
	if update.Checklist != nil {
		doc.Checklist = append([]document.ChecklistItem{}, (*update.Checklist)...)
	}
	doc.UpdatedAt = r.store.timestamp()
	d.documents[id] = doc
	return doc, nil
}

func (r *documentRepository) IncrementVersion(ctx context.Context, id, content string) (int, error) {
	defer r.store.acquire(ctx)()
	return r.store.data.bumpVersion(id, content, r.store)
}

func (r *documentRepository) IncrementVersionIfChanged(ctx context.Context, id, content string) (int, bool, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	doc, ok := d.documents[id]
	if !ok {
		return 0, false, document.ErrDocumentNotFound
	}
	if doc.Content == content {
		return doc.Version, false, nil
	}
	v, err := d.bumpVersion(id, content, r.store)
	return v, err == nil, err
}

func (d *state) bumpVersion(id, content string, s *Store) (int, error) {
	doc, ok := d.documents[id]
	if !ok {
		return 0, document.ErrDocumentNotFound
	}
	doc.Content = content
	doc.Version++
	doc.UpdatedAt = s.timestamp()
	d.documents[id] = doc
	return doc.Version, nil
}

func (d *state) deleteDocument(id string) {
	delete(d.documents, id)
	for vid, v := range d.versions {
		if v.DocumentID == id {
			delete(d.versions, vid)
		}
	}
}

type versionRepository struct {
	store *Store
}

func NewVersionRepository(store *Store) document.VersionRepository {
	return &versionRepository{store: store}
}

// Create enforces one row per (document, version).
func (r *versionRepository) Create(ctx context.Context, v document.Version) (document.Version, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	if _, ok := d.documents[v.DocumentID]; !ok {
		return document.Version{}, document.ErrDocumentNotFound
	}
	for _, existing := range d.versions {
		if existing.DocumentID == v.DocumentID && existing.Version == v.Version {
			return document.Version{}, errDuplicateVersion
		}
	}

	v.ID = d.nextID()
	v.CreatedAt = r.store.timestamp()
	d.versions[v.ID] = v
	return v, nil
}

func (r *versionRepository) GetByID(ctx context.Context, id string) (document.Version, error) {
	defer r.store.acquire(ctx)()

	v, ok := r.store.data.versions[id]
	if !ok {
		return document.Version{}, document.ErrVersionNotFound
	}
	return v, nil
}

func (r *versionRepository) ListByDocument(ctx context.Context, documentID string) ([]document.Version, error) {
	defer r.store.acquire(ctx)()

	var out []document.Version
	for _, v := range r.store.data.versions {
		if v.DocumentID == documentID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}
