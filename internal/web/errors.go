package web

// errors.go turns service and grid errors into HTTP responses.
//
// The technical error is logged with the request ID; the client gets the
// mapped core.UserMessage, as JSON for API routes and as an HTML fragment
// for pages.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/gridtable/internal/core"
	"github.com/JonMunkholm/gridtable/internal/csvio"
	"github.com/JonMunkholm/gridtable/internal/grid"
	"github.com/JonMunkholm/gridtable/internal/logging"
	"github.com/JonMunkholm/gridtable/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	switch {
	case errors.Is(err, grid.ErrInvalidArgument),
		errors.Is(err, csvio.ErrInvalidCSV),
		errors.Is(err, csvio.ErrEmptyFile):
		return http.StatusBadRequest
	case errors.Is(err, grid.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, grid.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, core.ErrSheetNotFound):
		return http.StatusNotFound
	case errors.Is(err, csvio.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrTooManyImports),
		errors.Is(err, core.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// badRequest marks a malformed request as an invalid argument.
func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", grid.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// respondError logs err and writes the mapped user message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	ue := core.NewUserError(err)
	userMsg := ue.User

	logger := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request error", "path", r.URL.Path, "method", r.Method,
			"status", status, "error", ue.Technical.Error(), "code", userMsg.Code)
	} else {
		logger.Warn("request rejected", "path", r.URL.Path, "method", r.Method,
			"status", status, "error", ue.Technical.Error(), "code", userMsg.Code)
	}

	if errors.Is(err, core.ErrTooManyImports) {
		w.Header().Set("Retry-After", "5")
	}

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = templates.ErrorAlert(userMsg.Message, userMsg.Action, userMsg.Code).Render(r.Context(), w)
}

func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
