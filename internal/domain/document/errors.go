package document

import "errors"

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrVersionNotFound   = errors.New("document version not found")
	ErrTeamNotInCompany  = errors.New("team does not belong to the document's company")
	ErrDiffScopeRequired = errors.New("from and to version ids are required")
)
