package core

// Error codes reference.
//
// This file maps technical errors to user-friendly messages with codes for
// support reference. Error codes are grouped by category:
//
//	CFG001 - Invalid merge configuration (mode, how, delimiter, encoding)
//	CFG002 - No input files supplied
//	SCH001 - Column sequences differ between input files
//	ENC001 - File could not be decoded with any candidate encoding
//	ENC002 - File decoded but its delimited structure is malformed
//	FILE001 - Combined upload size exceeds the configured limit
//	FILE004 - No file was selected
//	REQ001 - Request was cancelled
//	REQ002 - Request timed out
//	RATE001 - Too many requests
//	ERR000 - Fallback when nothing more specific matches
//
// Structured error kinds (UsageError, SchemaMismatchError, DecodeError) are
// matched by type first; string patterns only cover errors raised outside
// the core pipeline. Patterns are matched case-insensitively with
// strings.Contains, first match wins, so specific patterns come before
// general ones.

import (
	"errors"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The uploaded files exceed the size limit",
			Action:  "Upload fewer or smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "exceeds limit",
		msg: UserMessage{
			Message: "The uploaded files exceed the size limit",
			Action:  "Upload fewer or smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Select at least one delimited text file to merge",
			Code:    "FILE004",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Try merging fewer or smaller files",
			Code:    "REQ002",
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

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support with the error code",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-friendly message.
// Structured core error kinds are matched by type; everything else falls
// back to pattern matching on the error text.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		code := "CFG001"
		action := "Check the merge options and try again"
		if strings.Contains(usage.Message, "no input files") || strings.Contains(usage.Message, "no tables") {
			code = "CFG002"
			action = "Select at least one file to merge"
		}
		return UserMessage{Message: usage.Message, Action: action, Code: code}
	}

	var schema *SchemaMismatchError
	if errors.As(err, &schema) {
		return UserMessage{
			Message: schema.Error(),
			Action:  "Use smart mode, or align the column order of all files",
			Code:    "SCH001",
		}
	}

	var decode *DecodeError
	if errors.As(err, &decode) {
		if decode.Cause != nil {
			return UserMessage{
				Message: decode.Error(),
				Action:  "Check the file for unbalanced quotes or inconsistent rows",
				Code:    "ENC002",
			}
		}
		return UserMessage{
			Message: decode.Error(),
			Action:  "Re-save the file as UTF-8 and try again",
			Code:    "ENC001",
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
