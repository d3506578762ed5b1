// ABOUTME: API error decoding and classification
// ABOUTME: Separates authorization, credential, and plain server failures

package hexapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// credentialCodePrefix marks signin error codes that mean the username or
// password was wrong rather than the request being malformed.
const credentialCodePrefix = "auth/"

// messageDelimiter joins multi-part server messages.
const messageDelimiter = "、"

// APIError is a non-2xx response from the catalog API.
type APIError struct {
	StatusCode int
	Message    string
	Messages   []string
	Code       string
}

func (e *APIError) Error() string {
	msg := e.JoinedMessage()
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, msg)
}

// JoinedMessage returns the server message, with array-form messages joined
// by the API's conventional delimiter.
func (e *APIError) JoinedMessage() string {
	if len(e.Messages) > 0 {
		return strings.Join(e.Messages, messageDelimiter)
	}
	return e.Message
}

// AsAPIError unwraps err into an *APIError if there is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthFailure reports whether err is a 401/403 from an authenticated call.
// These always force a logout, never a plain operation failure.
func IsAuthFailure(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// IsCredentialFailure reports whether a signin error means bad credentials:
// a 401, or a 400 carrying an auth-prefixed error code.
func IsCredentialFailure(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	if apiErr.StatusCode == http.StatusUnauthorized {
		return true
	}
	return apiErr.StatusCode == http.StatusBadRequest && strings.HasPrefix(apiErr.Code, credentialCodePrefix)
}

// decodeAPIError reads an error response body into an *APIError. The body is
// best-effort: an unparseable body still yields the HTTP status.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var raw struct {
		Message json.RawMessage `json:"message"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &raw) != nil {
		return apiErr
	}

	if len(raw.Message) > 0 {
		// message comes back as a string or an array of strings
		var single string
		var many []string
		if json.Unmarshal(raw.Message, &single) == nil {
			apiErr.Message = single
		} else if json.Unmarshal(raw.Message, &many) == nil {
			apiErr.Messages = many
		}
	}

	if raw.Error != nil {
		apiErr.Code = raw.Error.Code
		if apiErr.Message == "" && len(apiErr.Messages) == 0 {
			apiErr.Message = raw.Error.Message
		}
	}

	return apiErr
}
