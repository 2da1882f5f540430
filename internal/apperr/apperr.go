// Package apperr defines the error kinds shared by services and the HTTP layer.
// Services wrap a kind with a human readable detail:
//
//	fmt.Errorf("%w: property not found", apperr.ErrNotFound)
//
// and handlers pick the status code with errors.Is.
package apperr

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
)

var kinds = []error{ErrNotFound, ErrForbidden, ErrUnauthorized, ErrInvalidInput, ErrConflict, ErrInvalidTransition}

// Message returns the detail part of a wrapped error, suitable for clients.
// "not found: property not found" becomes "property not found".
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, k := range kinds {
		if errors.Is(err, k) {
			if rest, ok := strings.CutPrefix(msg, k.Error()+": "); ok {
				return rest
			}
			return msg
		}
	}
	return msg
}
