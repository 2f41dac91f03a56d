package schema

import "fmt"

var emptyMap = map[string]interface{}{}

var (
	ErrInternal = &Error{
		Type:    "generic.internal",
		Message: "An internal error occurred.",
		Details: emptyMap,
	}
	ErrNotFound = &Error{
		Type:    "generic.notFound",
		Message: "Resource not found.",
		Details: emptyMap,
	}
	ErrMethodNotAllowed = &Error{
		Type:    "generic.methodNotAllowed",
		Message: "Method not allowed.",
		Details: emptyMap,
	}
)

// ErrKeyNotFound builds the error sent when a table key does not exist
func ErrKeyNotFound(key string) *Error {
	return &Error{
		Type:    "table.keyNotFound",
		Message: fmt.Sprintf("The key '%s' is not present in the table.", key),
		Details: map[string]interface{}{
			"key": key,
		},
	}
}

// ErrEntryTooWide builds the error sent when a key or value exceeds its configured byte width
func ErrEntryTooWide(field string, given, max int) *Error {
	return &Error{
		Type:    "table.entryTooWide",
		Message: fmt.Sprintf("The %s exceeds its configured byte width (%d > %d).", field, given, max),
		Details: map[string]interface{}{
			"field": field,
			"given": given,
			"max":   max,
		},
	}
}

// ErrorResponse represents the response structure sent by the debug API whenever errors occurred
type ErrorResponse struct {
	Status int      `json:"status"`
	Errors []*Error `json:"errors"`
}

// Error represents a single error present in the ErrorResponse
type Error struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details"`
}
