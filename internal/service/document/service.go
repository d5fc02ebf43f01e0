package document

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type DocumentServiceImpl struct {
	tx           database.Transactor
	documentRepo document.DocumentRepository
	teamRepo     team.TeamRepository
	ledger       *Ledger
	evaluator    access.Evaluator
	newID        func() string
}

func NewDocumentService(
	tx database.Transactor,
	documentRepo document.DocumentRepository,
	teamRepo team.TeamRepository,
	ledger *Ledger,
	evaluator access.Evaluator,
) document.DocumentService {
	return &DocumentServiceImpl{
		tx:           tx,
		documentRepo: documentRepo,
		teamRepo:     teamRepo,
		ledger:       ledger,
		evaluator:    evaluator,
		newID:        uuid.NewString,
	}
}

// Create implements document.DocumentService.
func (s *DocumentServiceImpl) Create(ctx context.Context, actorID string, req document.CreateDocumentRequest) (document.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return document.DocumentResponse{}, err
	}

	if req.TeamID != nil {
		if err := s.evaluator.Authorize(ctx, actorID, access.Team(*req.TeamID), access.ActionDocumentCreate); err != nil {
			return document.DocumentResponse{}, err
		}
		t, err := s.teamRepo.GetByID(ctx, *req.TeamID)
		if err != nil {
			return document.DocumentResponse{}, err
		}
		if t.CompanyID != req.CompanyID {
			return document.DocumentResponse{}, document.ErrTeamNotInCompany
		}
	} else {
		if err := s.evaluator.Authorize(ctx, actorID, access.Company(req.CompanyID), access.ActionDocumentCreate); err != nil {
			return document.DocumentResponse{}, err
		}
	}

	var created document.Document
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.documentRepo.Create(txCtx, document.Document{
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Content:     req.Content,
			Kind:        document.Kind(req.Kind),
			CompanyID:   req.CompanyID,
			TeamID:      req.TeamID,
			AuthorID:    actorID,
			Version:     1,
			Status:      document.Status(req.Status),
			Checklist:   document.BuildChecklist(req.Checklist, s.newID),
		})
		if err != nil {
			return err
		}
		_, err = s.ledger.CreateInitial(txCtx, created)
		return err
	})
	if err != nil {
		return document.DocumentResponse{}, err
	}

	slog.Info("document created", "document_id", created.ID, "company_id", created.CompanyID, "author_id", actorID)
	return document.ToResponse(created), nil
}

// GetByID implements document.DocumentService.
func (s *DocumentServiceImpl) GetByID(ctx context.Context, actorID, id string) (document.DocumentResponse, error) {
	if err := s.evaluator.Authorize(ctx, actorID, access.Document(id), access.ActionDocumentRead); err != nil {
		return document.DocumentResponse{}, err
	}

	found, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return document.DocumentResponse{}, err
	}
	return document.ToResponse(found), nil
}

// List implements document.DocumentService. A team filter lists that team's
// documents; a company filter lists the company-wide ones.
func (s *DocumentServiceImpl) List(ctx context.Context, actorID string, filter document.ListDocumentsFilter) ([]document.DocumentResponse, error) {
	var (
		docs []document.Document
		err  error
	)
	switch {
	case filter.TeamID != nil:
		if err := s.evaluator.Authorize(ctx, actorID, access.Team(*filter.TeamID), access.ActionDocumentRead); err != nil {
			return nil, err
		}
		docs, err = s.documentRepo.ListByTeam(ctx, *filter.TeamID)
	case filter.CompanyID != nil:
		if err := s.evaluator.Authorize(ctx, actorID, access.Company(*filter.CompanyID), access.ActionDocumentRead); err != nil {
			return nil, err
		}
		docs, err = s.documentRepo.ListCompanyWide(ctx, *filter.CompanyID)
	default:
		return nil, validator.ValidationErrors{{
			Field:   "team_id",
			Message: "either team_id or company_id is required",
		}}
	}
	if err != nil {
		return nil, err
	}

	out := make([]document.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, document.ToResponse(d))
	}
	return out, nil
}

// Update implements document.DocumentService. Metadata changes keep the
// version; a content change appends exactly one version, and resubmitting the
// current content appends none.
func (s *DocumentServiceImpl) Update(ctx context.Context, actorID, id string, req document.UpdateDocumentRequest) (document.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return document.DocumentResponse{}, err
	}
	if err := s.evaluator.Authorize(ctx, actorID, access.Document(id), access.ActionDocumentEdit); err != nil {
		return document.DocumentResponse{}, err
	}

	var updated document.Document
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if meta := req.Metadata(s.newID); !meta.IsEmpty() {
			if _, err := s.documentRepo.UpdateMetadata(txCtx, id, meta); err != nil {
				return err
			}
		}

		if req.Content != nil {
			v, changed, err := s.ledger.RecordEditIfChanged(txCtx, id, *req.Content, actorID)
			if err != nil {
				return err
			}
			if changed {
				slog.Info("document content edited", "document_id", id, "version", v.Version, "actor_id", actorID)
			}
		}

		var err error
		updated, err = s.documentRepo.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		return document.DocumentResponse{}, err
	}
	return document.ToResponse(updated), nil
}

// ListVersions implements document.DocumentService.
func (s *DocumentServiceImpl) ListVersions(ctx context.Context, actorID, id string) ([]document.VersionResponse, error) {
	if err := s.evaluator.Authorize(ctx, actorID, access.Document(id), access.ActionDocumentRead); err != nil {
		return nil, err
	}

	versions, err := s.ledger.ListVersions(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]document.VersionResponse, 0, len(versions))
	for _, v := range versions {
		out = append(out, document.ToVersionResponse(v))
	}
	return out, nil
}

// GetVersion implements document.DocumentService.
func (s *DocumentServiceImpl) GetVersion(ctx context.Context, actorID, id, versionID string) (document.VersionResponse, error) {
	if err := s.evaluator.Authorize(ctx, actorID, access.Document(id), access.ActionDocumentRead); err != nil {
		return document.VersionResponse{}, err
	}

	v, err := s.ledger.GetVersion(ctx, id, versionID)
	if err != nil {
		return document.VersionResponse{}, err
	}
	return document.ToVersionResponse(v), nil
}

// Restore implements document.DocumentService.
func (s *DocumentServiceImpl) Restore(ctx context.Context, actorID, id, versionID string) (document.DocumentResponse, error) {
	if err := s.evaluator.Authorize(ctx, actorID, access.Document(id), access.ActionDocumentEdit); err != nil {
		return document.DocumentResponse{}, err
	}

	var restored document.Document
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.ledger.Restore(txCtx, id, versionID, actorID); err != nil {
			return err
		}
		var err error
		restored, err = s.documentRepo.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		return document.DocumentResponse{}, err
	}
	return document.ToResponse(restored), nil
}

// Diff implements document.DocumentService.
func (s *DocumentServiceImpl) Diff(ctx context.Context, actorID, id, fromVersionID, toVersionID string) (document.DiffResponse, error) {
	if fromVersionID == "" || toVersionID == "" {
		return document.DiffResponse{}, document.ErrDiffScopeRequired
	}
	if err := s.evaluator.Authorize(ctx, actorID, access.Document(id), access.ActionDocumentRead); err != nil {
		return document.DiffResponse{}, err
	}
	return s.ledger.Diff(ctx, id, fromVersionID, toVersionID)
}
