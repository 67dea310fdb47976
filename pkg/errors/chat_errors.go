package errors

var (
	// Domain errors surfaced by usecases and mapped to HTTP by the server.
	ErrUserNotFound       = NotFound("user not found")
	ErrUsernameTaken      = AlreadyExists("username is already taken")
	ErrInvalidUsername    = InvalidArg("username must be 3-32 chars, lowercase letters, numbers and underscores only")
	ErrInvalidDisplayName = InvalidArg("display name cannot be empty")
	ErrInvalidCredentials = Unauthorized("invalid username or password")

	ErrGroupNotFound     = NotFound("group not found")
	ErrGroupNameRequired = InvalidArg("group name is required")
	ErrNotGroupAdmin     = Forbidden("only the group admin can do that")
	ErrNotGroupMember    = Forbidden("you are not a member of this group")

	ErrEmptyMessage = InvalidArg("message needs text or an image")
)

func ErrSendFailed(cause error) error {
	return Wrap(CodeInternal, "failed to send message", cause)
}

func ErrGroupDeleteFailed(cause error) error {
	return Wrap(CodeInternal, "failed to delete group", cause)
}
