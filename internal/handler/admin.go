package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/tmarsh/textbus/internal/domain"
)

// ListRiders handles GET /admin/riders.
func (s *Server) ListRiders(w http.ResponseWriter, r *http.Request) {
	riders, err := s.riders.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list riders", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if riders == nil {
		riders = []domain.Rider{}
	}
	writeJSON(w, http.StatusOK, riders)
}

// ApproveRider handles POST /admin/riders/{number}/approve.
func (s *Server) ApproveRider(w http.ResponseWriter, r *http.Request) {
	s.setApproval(w, r, true)
}

// UnapproveRider handles POST /admin/riders/{number}/unapprove.
func (s *Server) UnapproveRider(w http.ResponseWriter, r *http.Request) {
	s.setApproval(w, r, false)
}

func (s *Server) setApproval(w http.ResponseWriter, r *http.Request, approved bool) {
	// Phone numbers arrive percent-encoded in the path ("+" is %2B).
	number := chi.URLParam(r, "number")
	if decoded, err := url.PathUnescape(number); err == nil {
		number = decoded
	}

	err := s.riders.SetApproved(r.Context(), number, approved)
	if errors.Is(err, domain.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "rider not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to set rider approval", "number", number, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMessages handles GET /admin/messages.
func (s *Server) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.messages.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list messages", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
