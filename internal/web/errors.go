package web

// Unified error responses: the technical error is logged server-side with
// the request ID, and the client gets the sanitized UserMessage mapped by
// core.MapError, as a JSON envelope.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/qualifab/fieldentry/internal/core"
)

// ErrorResponse is the JSON error envelope. Detail carries specifics worth
// showing verbatim (like the missing column list); Code is for support.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error and writes the mapped JSON envelope.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	resp := ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	}
	// Schema failures surface the explicit missing-column list.
	var missing *core.MissingColumnsError
	if errors.As(err, &missing) {
		resp.Detail = missing.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

// statusFor maps the service error taxonomy to HTTP status codes.
func statusFor(err error) int {
	var missing *core.MissingColumnsError
	switch {
	case errors.Is(err, core.ErrNoDocument):
		return http.StatusNotFound
	case errors.As(err, &missing),
		errors.Is(err, core.ErrEmptySource),
		errors.Is(err, core.ErrMissingPath):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// writeJSON encodes v as JSON. Encoding errors are logged since headers are
// already sent.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
