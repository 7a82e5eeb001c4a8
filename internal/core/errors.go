package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced by the session service. All failures surface once,
// synchronously, to the immediate caller; nothing in this package retries.
var (
	// ErrNoDocument means no working table has been loaded yet.
	ErrNoDocument = errors.New("no document loaded")

	// ErrEmptySource means the source sheet had no header row.
	ErrEmptySource = errors.New("empty source: no header row")

	// ErrMissingPath means a save was requested without a destination path.
	ErrMissingPath = errors.New("missing save path")
)

// MissingColumnsError reports the required columns absent from the source
// header. Ingestion aborts before classification; no partial working table
// is ever produced.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// UserMessage provides user-friendly error information with actionable
// guidance. The Code is what operators quote to support staff.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern maps a technical error substring to its user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is matched case-insensitively with strings.Contains; the
// first match wins, so specific patterns come before general ones.
//
// Codes by category:
//
//	SCHEMA001  missing required columns
//	SCHEMA002  empty source file
//	LOAD001    unreadable or corrupt workbook
//	LOAD002    no file provided
//	LOAD003    file too large
//	DOC001     no document loaded
//	SAVE001    missing save path
//	SAVE002    destination write failed
//	RATE001    too many requests
//	ERR000     fallback
var errorPatterns = []errorPattern{
	{
		pattern: "missing required columns",
		msg: UserMessage{
			Message: "The file is missing required columns",
			Action:  "Check the error detail for the exact column names and re-export the extract",
			Code:    "SCHEMA001",
		},
	},
	{
		pattern: "empty source",
		msg: UserMessage{
			Message: "The file has no header row",
			Action:  "Make sure the first sheet contains the work order extract",
			Code:    "SCHEMA002",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose an .xlsx work order extract to load",
			Code:    "LOAD002",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The file exceeds the size limit",
			Action:  "Load a smaller extract",
			Code:    "LOAD003",
		},
	},
	{
		pattern: "open workbook",
		msg: UserMessage{
			Message: "The file could not be read as a workbook",
			Action:  "Verify it is a valid .xlsx file and try again",
			Code:    "LOAD001",
		},
	},
	{
		pattern: "no document loaded",
		msg: UserMessage{
			Message: "No document is loaded",
			Action:  "Load a work order extract first",
			Code:    "DOC001",
		},
	},
	{
		pattern: "missing save path",
		msg: UserMessage{
			Message: "No save location was given",
			Action:  "Provide a destination path for the working copy",
			Code:    "SAVE001",
		},
	},
	{
		pattern: "write workbook",
		msg: UserMessage{
			Message: "The file could not be written",
			Action:  "Check the destination path is writable and try again",
			Code:    "SAVE002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is the ERR000 fallback. Support staff should check the
// application logs for the original technical error when users report it.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message by matching
// known patterns case-insensitively. Unmatched errors map to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a display string: "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
