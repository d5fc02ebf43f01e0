package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type documentRepositoryImpl struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) document.DocumentRepository {
	return &documentRepositoryImpl{db: db}
}

const documentColumns = `id, title, description, content, kind, company_id, team_id, author_id, version, status, checklist, created_at, updated_at`

func scanDocument(row pgx.Row) (document.Document, error) {
	var d document.Document
	err := row.Scan(&d.ID, &d.Title, &d.Description, &d.Content, &d.Kind, &d.CompanyID, &d.TeamID,
		&d.AuthorID, &d.Version, &d.Status, &d.Checklist, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *documentRepositoryImpl) list(ctx context.Context, where string, arg string) ([]document.Document, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+documentColumns+` FROM documents WHERE `+where+` ORDER BY updated_at DESC, id`, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]document.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Create implements document.DocumentRepository.
func (r *documentRepositoryImpl) Create(ctx context.Context, doc document.Document) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	checklist := doc.Checklist
	if checklist == nil {
		checklist = []document.ChecklistItem{}
	}

	created, err := scanDocument(q.QueryRow(ctx, `
		INSERT INTO documents (title, description, content, kind, company_id, team_id, author_id, version, status, checklist)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1, $8, $9)
		RETURNING `+documentColumns,
		doc.Title, doc.Description, doc.Content, doc.Kind, doc.CompanyID, doc.TeamID,
		doc.AuthorID, doc.Status, checklist,
	))
	if err != nil {
		return document.Document{}, fmt.Errorf("failed to create document: %w", err)
	}
	return created, nil
}

// GetByID implements document.DocumentRepository.
func (r *documentRepositoryImpl) GetByID(ctx context.Context, id string) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanDocument(q.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, document.ErrDocumentNotFound
		}
		return document.Document{}, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	return found, nil
}

// ListByTeam implements document.DocumentRepository.
func (r *documentRepositoryImpl) ListByTeam(ctx context.Context, teamID string) ([]document.Document, error) {
	return r.list(ctx, "team_id = $1", teamID)
}

// ListCompanyWide implements document.DocumentRepository.
func (r *documentRepositoryImpl) ListCompanyWide(ctx context.Context, companyID string) ([]document.Document, error) {
	return r.list(ctx, "company_id = $1 AND team_id IS NULL", companyID)
}

// UpdateMetadata implements document.DocumentRepository.
func (r *documentRepositoryImpl) UpdateMetadata(ctx context.Context, id string, update document.MetadataUpdate) (document.Document, error) {
	if update.IsEmpty() {
		return r.GetByID(ctx, id)
	}
	q := GetQuerier(ctx, r.db)

	setClauses := make([]string, 0, 5)
	args := make([]interface{}, 0, 5)
	add := func(col string, val interface{}) {
		args = append(args, val)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Status != nil {
		add("status", *update.Status)
	}
	if update.Checklist != nil {
		add("checklist", *update.Checklist)
	}
	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, id)

	sql := "UPDATE documents SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", len(args)) + documentColumns

	updated, err := scanDocument(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, document.ErrDocumentNotFound
		}
		return document.Document{}, fmt.Errorf("failed to update document %s: %w", id, err)
	}
	return updated, nil
}

// IncrementVersion implements document.DocumentRepository. The UPDATE takes
// the row lock, so concurrent increments on one document serialize.
func (r *documentRepositoryImpl) IncrementVersion(ctx context.Context, id, content string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var version int
	err := q.QueryRow(ctx, `
		UPDATE documents
		SET content = $2, version = version + 1, updated_at = now()
		WHERE id = $1
		RETURNING version`, id, content).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, document.ErrDocumentNotFound
		}
		return 0, fmt.Errorf("failed to increment document version: %w", err)
	}
	return version, nil
}

// IncrementVersionIfChanged implements document.DocumentRepository.
func (r *documentRepositoryImpl) IncrementVersionIfChanged(ctx context.Context, id, content string) (int, bool, error) {
	q := GetQuerier(ctx, r.db)

	var version int
	err := q.QueryRow(ctx, `
		UPDATE documents
		SET content = $2, version = version + 1, updated_at = now()
		WHERE id = $1 AND content IS DISTINCT FROM $2
		RETURNING version`, id, content).Scan(&version)
	if err == nil {
		return version, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("failed to increment document version: %w", err)
	}

	err = q.QueryRow(ctx, `SELECT version FROM documents WHERE id = $1`, id).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, document.ErrDocumentNotFound
		}
		return 0, false, fmt.Errorf("failed to read document version: %w", err)
	}
	return version, false, nil
}

type versionRepositoryImpl struct {
	db *database.DB
}

func NewVersionRepository(db *database.DB) document.VersionRepository {
	return &versionRepositoryImpl{db: db}
}

const versionColumns = `id, document_id, version, content, author_id, created_at`

func scanVersion(row pgx.Row) (document.Version, error) {
	var v document.Version
	err := row.Scan(&v.ID, &v.DocumentID, &v.Version, &v.Content, &v.AuthorID, &v.CreatedAt)
	return v, err
}

// Create implements document.VersionRepository.
func (r *versionRepositoryImpl) Create(ctx context.Context, v document.Version) (document.Version, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanVersion(q.QueryRow(ctx, `
		INSERT INTO document_versions (document_id, version, content, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+versionColumns, v.DocumentID, v.Version, v.Content, v.AuthorID))
	if err != nil {
		return document.Version{}, fmt.Errorf("failed to append document version %d: %w", v.Version, err)
	}
	return created, nil
}

// GetByID implements document.VersionRepository.
func (r *versionRepositoryImpl) GetByID(ctx context.Context, id string) (document.Version, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanVersion(q.QueryRow(ctx, `SELECT `+versionColumns+` FROM document_versions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Version{}, document.ErrVersionNotFound
		}
		return document.Version{}, fmt.Errorf("failed to get document version %s: %w", id, err)
	}
	return found, nil
}

// ListByDocument implements document.VersionRepository.
func (r *versionRepositoryImpl) ListByDocument(ctx context.Context, documentID string) ([]document.Version, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+versionColumns+` FROM document_versions
		WHERE document_id = $1
		ORDER BY version`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list document versions: %w", err)
	}
	defer rows.Close()

	versions := make([]document.Version, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
