package core

// error_messages.go maps technical errors to messages shown to API and CLI
// users. Each message carries a code that support can look up here.
//
// # Grid Errors (GRD001-GRD099)
//
//	GRD001 - Invalid argument: a count, alignment, direction or value was rejected
//	         Action: Check the request values and try again
//	GRD002 - Out of range: a row or column index is outside the sheet
//	         Action: Use an index between 0 and the row or column count minus one
//	GRD003 - Invalid state: the change would leave the sheet without rows or columns
//	         Action: A sheet must keep at least one row and one column
//
// # Sheet Errors (SHT001-SHT099)
//
//	SHT001 - Sheet not found
//	         Patterns: "sheet not found"
//	SHT002 - Store unavailable: the sheet could not be persisted
//	         Patterns: "store unavailable", "connection refused", "connection reset"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large       Patterns: "file too large"
//	FILE002 - Invalid CSV          Patterns: "invalid csv"
//	FILE005 - Empty file           Patterns: "empty file"
//
// # Import Errors
//
//	IMP001 - Too many concurrent imports    Patterns: "too many concurrent imports"
//	UPL004 - Request cancelled              Patterns: "context canceled"
//	UPL005 - Request timed out              Patterns: "context deadline exceeded"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the server logs for the original error.
//
// Typed errors are matched first (grid kinds through errors.As, sentinels
// through errors.Is). The substring patterns catch errors that lost their
// type on the way, such as driver errors formatted into strings.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/gridtable/internal/csvio"
	"github.com/JonMunkholm/gridtable/internal/grid"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

var (
	msgInvalidArgument = UserMessage{
		Message: "The request contains an invalid value",
		Action:  "Check the request values and try again",
		Code:    "GRD001",
	}
	msgOutOfRange = UserMessage{
		Message: "Row or column index is outside the sheet",
		Action:  "Use an index between 0 and the row or column count minus one",
		Code:    "GRD002",
	}
	msgInvalidState = UserMessage{
		Message: "The sheet cannot be changed that way",
		Action:  "A sheet must keep at least one row and one column",
		Code:    "GRD003",
	}
	msgSheetNotFound = UserMessage{
		Message: "Sheet not found",
		Action:  "Check the sheet ID or list sheets to find it",
		Code:    "SHT001",
	}
	msgStoreUnavailable = UserMessage{
		Message: "The sheet could not be saved",
		Action:  "Please try again in a few moments",
		Code:    "SHT002",
	}
	msgFileTooLarge = UserMessage{
		Message: "File exceeds the maximum import size",
		Action:  "Split the file into smaller sheets",
		Code:    "FILE001",
	}
	msgInvalidCSV = UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Ensure the file is comma-separated with consistent columns",
		Code:    "FILE002",
	}
	msgEmptyFile = UserMessage{
		Message: "The imported file is empty",
		Action:  "Import a CSV file with at least one row",
		Code:    "FILE005",
	}
	msgTooManyImports = UserMessage{
		Message: "System is busy processing other imports",
		Action:  "Please wait a moment and try again",
		Code:    "IMP001",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "UPL004",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Try a smaller file or check your connection",
		Code:    "UPL005",
	}
)

// sentinels are checked in order with errors.Is.
var sentinels = []struct {
	target error
	msg    UserMessage
}{
	{grid.ErrInvalidArgument, msgInvalidArgument},
	{grid.ErrOutOfRange, msgOutOfRange},
	{grid.ErrInvalidState, msgInvalidState},
	{ErrSheetNotFound, msgSheetNotFound},
	{ErrStoreUnavailable, msgStoreUnavailable},
	{ErrTooManyImports, msgTooManyImports},
	{csvio.ErrFileTooLarge, msgFileTooLarge},
	{csvio.ErrInvalidCSV, msgInvalidCSV},
	{csvio.ErrEmptyFile, msgEmptyFile},
	{context.Canceled, msgCancelled},
	{context.DeadlineExceeded, msgTimeout},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns are matched case-insensitively with strings.Contains; the
// first match wins.
var errorPatterns = []errorPattern{
	{"sheet not found", msgSheetNotFound},
	{"store unavailable", msgStoreUnavailable},
	{"connection refused", msgStoreUnavailable},
	{"connection reset", msgStoreUnavailable},
	{"file too large", msgFileTooLarge},
	{"invalid csv", msgInvalidCSV},
	{"empty file", msgEmptyFile},
	{"too many concurrent imports", msgTooManyImports},
	{"context canceled", msgCancelled},
	{"context deadline exceeded", msgTimeout},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
//	_, err := svc.Mutate(ctx, id, "delete_row", func(g *grid.Grid) error { return g.DeleteRow(7) })
//	msg := MapError(err)
//	// msg.Code == "GRD002"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	switch grid.KindOf(err) {
	case grid.KindInvalidArgument:
		return msgInvalidArgument
	case grid.KindOutOfRange:
		return msgOutOfRange
	case grid.KindInvalidState:
		return msgInvalidState
	}

	for _, s := range sentinels {
		if errors.Is(err, s.target) {
			return s.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user message. Error returns the
// user message; Unwrap returns the technical error for logging.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err, returning nil for a nil err.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
