package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/db"
)

// ProcessEmailsResponse is the aggregate result of one ingestion run
type ProcessEmailsResponse struct {
	Message      string           `json:"message"`
	NewCount     int              `json:"new_count"`
	Applications []db.Application `json:"applications"`
}

// handleProcessEmails triggers one ingestion run for a job. The credential
// session is read from the request cookie and, when the run refreshed it,
// written back so the next run starts from the new token pair.
func (s *Server) handleProcessEmails(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	sess, err := s.readSession(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), userMessage(err))
		return
	}

	result, err := s.runner.Run(r.Context(), jobID, sess)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), userMessage(err))
		return
	}

	if result.SessionRefreshed {
		s.writeSession(w, result.Session)
	}

	apps := result.Applications
	if apps == nil {
		apps = []db.Application{}
	}
	s.jsonResponse(w, http.StatusOK, ProcessEmailsResponse{
		Message:      result.Message,
		NewCount:     result.NewCount,
		Applications: apps,
	})
}
