package invite

import "errors"

var (
	ErrInviteNotFound    = errors.New("invite code not found")
	ErrInviteAlreadyUsed = errors.New("invite code already used")
	ErrInviteExpired     = errors.New("invite code has expired")
	ErrInviteInactive    = errors.New("invite code is no longer active")
)
