package legalease

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies why a call failed.
type ErrorKind string

const (
	// KindTransport means no response was received (dial, DNS, timeout, cancel).
	KindTransport ErrorKind = "transport"
	// KindApplication means the server answered with a non-2xx status.
	KindApplication ErrorKind = "application"
	// KindDecode means a 2xx body was not the expected JSON shape.
	KindDecode ErrorKind = "decode"
	// KindValidation means the input was rejected before any request was made.
	KindValidation ErrorKind = "validation"
	// KindEncode means the upload content could not be read.
	KindEncode ErrorKind = "encode"
)

// APIError is the single failure shape returned by every client operation.
type APIError struct {
	Kind       ErrorKind
	Message    string
	Code       string
	StatusCode int
	Endpoint   string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// AsAPIError extracts an *APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == kind
}

type errorBody struct {
	Error   string
	Message string
	Code    string
}

// parseErrorBody reads the error fields one by one so a field of an
// unexpected type does not hide the others. message and error count only as
// JSON strings; code may be a string or a number.
func parseErrorBody(raw []byte) errorBody {
	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil {
		return errorBody{}
	}
	return errorBody{
		Error:   jsonString(fields["error"]),
		Message: jsonString(fields["message"]),
		Code:    jsonScalar(fields["code"]),
	}
}

func jsonString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func jsonScalar(raw json.RawMessage) string {
	if s := jsonString(raw); s != "" {
		return s
	}
	var n json.Number
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return ""
	}
	return n.String()
}

// resolve picks the surfaced message: message, then error, then a synthesized status line.
func (b errorBody) resolve(status int) (message, code string) {
	code = b.Code
	switch {
	case b.Message != "":
		message = b.Message
		if code == "" {
			code = b.Error
		}
	case b.Error != "":
		message = b.Error
	default:
		message = statusMessage(status)
	}
	return message, code
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}

// applicationError builds the failure for a non-2xx response. The status alone
// decides failure; the body only supplies the message and code.
func applicationError(endpoint string, status int, raw []byte) *APIError {
	message, code := parseErrorBody(raw).resolve(status)
	return &APIError{
		Kind:       KindApplication,
		Message:    message,
		Code:       code,
		StatusCode: status,
		Endpoint:   endpoint,
	}
}

func statusMessage(status int) string {
	return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
}

func transportError(endpoint string, err error) *APIError {
	return &APIError{
		Kind:     KindTransport,
		Message:  fmt.Sprintf("request failed: %v", err),
		Endpoint: endpoint,
		Err:      err,
	}
}

func decodeError(endpoint string, status int, err error) *APIError {
	return &APIError{
		Kind:       KindDecode,
		Message:    "could not parse server response",
		StatusCode: status,
		Endpoint:   endpoint,
		Err:        err,
	}
}

func validationError(endpoint, message string, err error) *APIError {
	return &APIError{
		Kind:     KindValidation,
		Message:  message,
		Code:     "validation_error",
		Endpoint: endpoint,
		Err:      err,
	}
}
