package http

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotJSON is returned when the server answers with a content type other
// than application/json.
var ErrNotJSON = errors.New("respuesta no es JSON")

// NetworkError wraps a transport failure: refused connection, DNS, reset,
// cancelled context.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Err.Error())
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx answer. Message holds the server's own wording when
// the body carried one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status code = %d", e.Code)
	}
	return fmt.Sprintf("status code = %d: %s", e.Code, e.Message)
}

// DecodeError is a JSON-typed body that could not be decoded into the target.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Path, e.Err.Error())
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// serverMessage picks the first string among the error body fields the API
// is known to use. Some handlers send "error": true next to a "message".
func serverMessage(body []byte) string {
	var envelope map[string]interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	for _, key := range []string{"error", "msg", "message"} {
		if s, ok := envelope[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
