package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/invite"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Access decisions
	case errors.Is(err, access.ErrForbidden):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, team.ErrTeamNotFound):
		NotFound(w, "Team not found")
	case errors.Is(err, role.ErrAssignmentNotFound):
		NotFound(w, "Role assignment not found")
	case errors.Is(err, invite.ErrInviteNotFound):
		NotFound(w, "Invite code not found")
	case errors.Is(err, document.ErrDocumentNotFound):
		NotFound(w, "Document not found")
	case errors.Is(err, document.ErrVersionNotFound):
		NotFound(w, "Document version not found")
	case errors.Is(err, chat.ErrChatNotFound):
		NotFound(w, "Chat not found")
	case errors.Is(err, chat.ErrMessageNotFound):
		NotFound(w, "Message not found")

	// Conflicts
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Team creation eligibility
	case errors.Is(err, team.ErrCreatorTitleNotAllowed):
		Forbidden(w, err.Error())

	// Bad requests
	case errors.Is(err, invite.ErrInviteAlreadyUsed),
		errors.Is(err, invite.ErrInviteExpired),
		errors.Is(err, invite.ErrInviteInactive),
		errors.Is(err, employee.ErrEmployeeAlreadyInCompany),
		errors.Is(err, role.ErrOwnerRoleImmutable),
		errors.Is(err, role.ErrInvalidRole),
		errors.Is(err, role.ErrTargetNotInCompany),
		errors.Is(err, team.ErrMemberNotInCompany),
		errors.Is(err, document.ErrTeamNotInCompany),
		errors.Is(err, document.ErrDiffScopeRequired),
		errors.Is(err, chat.ErrChatInactive),
		errors.Is(err, chat.ErrTeamMessageDeleteUnsupported):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
