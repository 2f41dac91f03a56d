package schema

import (
	"encoding/json"
	"io"
	"net/http"
)

var (
	errRequestBodyInvalidJSON = func(err string) *Error {
		return &Error{
			Type:    "validation.requestBody.invalidJSON",
			Message: "Request body is not a valid JSON input.",
			Details: map[string]interface{}{
				"error": err,
			},
		}
	}
)

// UnmarshalBody parses and decodes a JSON request body
func UnmarshalBody[T any](request *http.Request) (*T, *Error, error) {
	body, err := io.ReadAll(request.Body)
	if err != nil {
		return nil, nil, err
	}

	target := new(T)
	if err := json.Unmarshal(body, target); err != nil {
		return nil, errRequestBodyInvalidJSON(err.Error()), nil
	}
	return target, nil, nil
}
