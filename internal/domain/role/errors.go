package role

import "errors"

var (
	ErrAssignmentNotFound = errors.New("role assignment not found")
	ErrOwnerRoleImmutable = errors.New("the owner's admin role cannot be changed")
	ErrInvalidRole        = errors.New("role must be admin or member")
	ErrTargetNotInCompany = errors.New("employee does not belong to this company")
)
