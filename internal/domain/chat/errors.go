package chat

import "errors"

var (
	ErrChatNotFound                 = errors.New("chat not found")
	ErrMessageNotFound              = errors.New("message not found")
	ErrChatInactive                 = errors.New("chat is not active")
	ErrTeamMessageDeleteUnsupported = errors.New("team chat messages cannot be deleted")
)
