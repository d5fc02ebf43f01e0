package team

import "errors"

var (
	ErrTeamNotFound           = errors.New("team not found")
	ErrCreatorTitleNotAllowed = errors.New("job title is not allowed to create teams")
	ErrMemberNotInCompany     = errors.New("employee does not belong to the team's company")
)
