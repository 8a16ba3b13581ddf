package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotAuthenticated is returned before a request is sent when an
// authenticated endpoint is called without a token
var ErrNotAuthenticated = errors.New("not authenticated")

// InvalidCredentials is the detail the CMS sends with a 403 when the bearer
// token is expired or cannot be decoded
const InvalidCredentials = "Could not validate credentials"

// Error is a non-2xx response from the CMS. Detail carries the server's
// human-readable explanation, which is what the user gets to see.
type Error struct {
	StatusCode int
	Detail     string
	Method     string
	Path       string
	RequestID  string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, http.StatusText(e.StatusCode))
}

// decodeError builds an *Error from a failed response body.
// FastAPI reports either {"detail": "text"} or, for validation failures,
// {"detail": [{"loc": [...], "msg": "..."}]}.
func decodeError(resp *http.Response, body []byte, requestID string) *Error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Method:     resp.Request.Method,
		Path:       resp.Request.URL.Path,
		RequestID:  requestID,
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &envelope) != nil || len(envelope.Detail) == 0 {
		apiErr.Detail = strings.TrimSpace(string(body))
		return apiErr
	}

	var text string
	if json.Unmarshal(envelope.Detail, &text) == nil {
		apiErr.Detail = text
		return apiErr
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if json.Unmarshal(envelope.Detail, &items) == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if len(item.Loc) > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", item.Loc[len(item.Loc)-1], item.Msg))
			} else {
				msgs = append(msgs, item.Msg)
			}
		}
		apiErr.Detail = strings.Join(msgs, "; ")
	}
	return apiErr
}

// StatusCode returns the HTTP status of err, or 0 if it is not an API error
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports a missing, rejected or expired token
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized || IsInvalidToken(err) || errors.Is(err, ErrNotAuthenticated)
}

// IsInvalidToken reports the 403 the CMS answers with when the token
// fails to decode or has expired
func IsInvalidToken(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden && apiErr.Detail == InvalidCredentials
}

// IsForbidden reports a role check failure
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden && !IsInvalidToken(err)
}

// IsNotFound reports a missing resource
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsRejected reports a validation or business-rule rejection (400/409/422)
func IsRejected(err error) bool {
	switch StatusCode(err) {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return true
	}
	return false
}

// Detail extracts the message to show the user
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
