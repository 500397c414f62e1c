package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	// PageSize is the fixed number of rows the list endpoints return per page.
	PageSize = 6
	// DateLayout is how dates travel on the wire.
	DateLayout = "2006-01-02"
)

// Result is the uniform outcome of every API call. Failures are never
// returned as Go errors: Success is false, Message is ready to show to the
// user and Err keeps the cause for logging.
type Result[T any] struct {
	Success bool
	Data    T
	Total   int
	Message string
	Err     error
}

func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func Fail[T any](message string, err error) Result[T] {
	return Result[T]{Success: false, Message: message, Err: err}
}

// Page is the body of a paginated list endpoint. Data is a pointer so that a
// body without the data key can be told apart from an empty page.
type Page[T any] struct {
	Data  *[]T  `json:"data"`
	Total Count `json:"total"`
}

// Count accepts both 12 and "12". Postgres COUNT(*) reaches JSON as a string
// through some drivers.
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*c = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("total %q is not a number", s)
		}
		*c = Count(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = Count(n)
	return nil
}

// MessageBody is what update and delete endpoints answer with.
type MessageBody struct {
	Message string `json:"message"`
}

// FechaCorta keeps the YYYY-MM-DD prefix of a date that the server may have
// sent as a full ISO timestamp.
func FechaCorta(fecha string) string {
	if len(fecha) > 10 && fecha[10] == 'T' {
		return fecha[:10]
	}
	return fecha
}
