package credentials

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials indicates the session store held no usable token pair
var ErrMissingCredentials = errors.New("missing credentials: no stored access/refresh token")

// ReauthRequiredError indicates the refresh token was rejected by the
// provider. This is terminal for the run; the user must re-authenticate.
type ReauthRequiredError struct {
	Cause error
}

func (e *ReauthRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("reauthentication required: token refresh failed: %v", e.Cause)
	}
	return "reauthentication required: token refresh failed"
}

func (e *ReauthRequiredError) Unwrap() error {
	return e.Cause
}

// IsReauthRequired reports whether err is (or wraps) a ReauthRequiredError
func IsReauthRequired(err error) bool {
	var reauth *ReauthRequiredError
	return errors.As(err, &reauth)
}
