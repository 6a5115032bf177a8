package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-screener/internal/credentials"
	"github.com/jonathan/resume-screener/internal/pipeline"
)

// HTTPStatus returns the appropriate HTTP status code for a pipeline error
func HTTPStatus(err error) int {
	var (
		jobNotFound *pipeline.JobNotFoundError
		listFailed  *pipeline.MailboxListError
	)
	switch {
	case errors.Is(err, credentials.ErrMissingCredentials),
		credentials.IsReauthRequired(err):
		return http.StatusUnauthorized
	case errors.As(err, &jobNotFound):
		return http.StatusNotFound
	case errors.As(err, &listFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessage maps a pipeline error to the message shown to the caller
func userMessage(err error) string {
	switch {
	case errors.Is(err, credentials.ErrMissingCredentials):
		return "Mailbox not connected. Please authenticate."
	case credentials.IsReauthRequired(err):
		return "Mailbox authorization expired. Please re-authenticate."
	default:
		return err.Error()
	}
}
