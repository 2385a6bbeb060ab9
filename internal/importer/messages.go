package importer

// messages.go maps errors to user-facing messages with support codes.
//
// Roster errors are matched by type first, because their details (missing
// columns, row numbers) belong in the message:
//
//	ROS001 - Empty file: the uploaded file has no lines
//	ROS002 - Header not found: no header row in the first 5 lines
//	ROS003 - Missing columns: first name, last name or birthday column absent
//	ROS004 - Missing birthday: named rows without a birthday
//
// Everything else falls through to a case-insensitive pattern table, where
// the first matching pattern wins:
//
//	FILE001 - File too large            "file too large"
//	FILE003 - Encoding error            "encoding error"
//	FILE004 - No file                   "no file provided"
//	IMP001  - System busy               "too many concurrent imports"
//	IMP002  - Request cancelled         "context canceled"
//	IMP003  - Request timeout           "context deadline exceeded"
//	DIR001  - Directory unavailable     "query members", "connection refused"
//	DRAFT001 - Draft not found          "draft not found"
//	RATE001 - Rate limited              "rate limit"
//	ERR000  - Unknown error             (fallback)

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/roster/internal/roster"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference

	// Details carries structured data for terminal roster errors:
	// "missing" for absent columns, "rows" for line numbers.
	Details map[string]any
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
			Message: "File exceeds the maximum size limit",
			Action:  "Remove unused columns or split the roster",
			Code:    "FILE001",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save the file as CSV UTF-8",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to import",
			Code:    "FILE004",
		},
	},
	{
		pattern: "too many concurrent imports",
		msg: UserMessage{
			Message: "Too many imports in progress",
			Action:  "Please wait a moment and try again",
			Code:    "IMP001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "IMP002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try again with a smaller file",
			Code:    "IMP003",
		},
	},
	{
		pattern: "query members",
		msg: UserMessage{
			Message: "Member directory is unavailable",
			Action:  "Please try again in a few moments",
			Code:    "DIR001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Member directory is unavailable",
			Action:  "Please try again in a few moments",
			Code:    "DIR001",
		},
	},
	{
		pattern: "draft not found",
		msg: UserMessage{
			Message: "No roster has been imported for this event yet",
			Action:  "Upload a roster file first",
			Code:    "DRAFT001",
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
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// fieldLabels are the column names shown to users.
var fieldLabels = map[roster.Field]string{
	roster.FieldFirstName: "Prénom",
	roster.FieldLastName:  "Nom",
	roster.FieldEmail:     "Adresse e-mail",
	roster.FieldBirthday:  "Date de naissance",
}

// MapError converts an error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if msg, ok := mapRosterError(err); ok {
		return msg
	}

	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}
	return defaultMessage
}

func mapRosterError(err error) (UserMessage, bool) {
	if errors.Is(err, roster.ErrEmptyFile) {
		return UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a roster with a header row and one row per participant",
			Code:    "ROS001",
		}, true
	}

	if errors.Is(err, roster.ErrHeaderNotFound) {
		return UserMessage{
			Message: fmt.Sprintf("No header row found in the first %d lines", roster.HeaderScanLines),
			Action:  "Add a header row such as: Prénom,Nom,Adresse e-mail,Date de naissance",
			Code:    "ROS002",
		}, true
	}

	var mc *roster.MissingColumnsError
	if errors.As(err, &mc) {
		labels := make([]string, len(mc.Missing))
		missing := make([]string, len(mc.Missing))
		for i, f := range mc.Missing {
			labels[i] = fieldLabels[f]
			missing[i] = string(f)
		}
		return UserMessage{
			Message: "Required columns are missing: " + strings.Join(labels, ", "),
			Action:  "Add the missing columns to the header row",
			Code:    "ROS003",
			Details: map[string]any{"missing": missing},
		}, true
	}

	var mb *roster.MissingBirthdayError
	if errors.As(err, &mb) {
		rows := make([]string, len(mb.RowNumbers))
		for i, n := range mb.RowNumbers {
			rows[i] = strconv.Itoa(n)
		}
		return UserMessage{
			Message: "Birthday is missing on line(s) " + strings.Join(rows, ", "),
			Action:  "Fill in every participant's birthday; nothing was imported",
			Code:    "ROS004",
			Details: map[string]any{"rows": mb.RowNumbers},
		}, true
	}

	return UserMessage{}, false
}
