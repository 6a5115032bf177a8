package mailbox

import (
	"errors"
	"fmt"
)

// MessageNotFoundError indicates a message disappeared between list and
// fetch, for example because it was deleted from the mailbox.
type MessageNotFoundError struct {
	MessageID string
	Cause     error
}

func (e *MessageNotFoundError) Error() string {
	return fmt.Sprintf("message not found: %s", e.MessageID)
}

func (e *MessageNotFoundError) Unwrap() error {
	return e.Cause
}

// IsMessageNotFound reports whether err is (or wraps) a MessageNotFoundError
func IsMessageNotFound(err error) bool {
	var notFound *MessageNotFoundError
	return errors.As(err, &notFound)
}
