// Package forms holds the screen logic behind the clinic's entry forms. A
// form only checks that required fields are present, never their format;
// everything else is the API's job. On failure the form keeps its values so
// the user can correct them and submit again.
package forms

import (
	"fmt"
	"strings"
)

const MsgCamposObligatorios = "Todos los campos son obligatorios"

type Field struct {
	Name  string
	Value string
}

// MissingFieldError lists the required fields left blank.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", MsgCamposObligatorios, strings.Join(e.Fields, ", "))
}

// Required returns a *MissingFieldError naming every blank field, or nil.
func Required(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldError{Fields: missing}
	}
	return nil
}

// Error is a failed submit. Message is the server's or the network layer's
// wording and is shown as is.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
