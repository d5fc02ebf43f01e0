package access

import (
	"errors"
	"fmt"
)

// ErrForbidden is wrapped by every deny reason.
var ErrForbidden = errors.New("forbidden")

var (
	ErrAdminRequired    = fmt.Errorf("%w: company admin role required", ErrForbidden)
	ErrNotTeamMember    = fmt.Errorf("%w: not a member of this team", ErrForbidden)
	ErrNotCompanyMember = fmt.Errorf("%w: not a member of this company", ErrForbidden)
	ErrNotMessageAuthor = fmt.Errorf("%w: only the author may do this", ErrForbidden)
	ErrUnknownAction    = fmt.Errorf("%w: unknown action", ErrForbidden)
)
