// Package apperr carries the three ways an action can fail and the text shown for each.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	// Transport: the request never got a response.
	Transport Kind = "transport"
	// Server: non-2xx status or success:false in the body.
	Server Kind = "server"
	// Validation: blocked before anything was sent.
	Validation Kind = "validation"
)

type AppError struct {
	Kind      Kind
	PublicMsg string            // text shown to the user
	Fields    map[string]string // per-field validation messages
	Status    int               // upstream HTTP status for Server errors
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.PublicMsg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.PublicMsg)
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error { return e.Err }

func TransportErr(publicMsg string, err error) *AppError {
	return &AppError{Kind: Transport, PublicMsg: publicMsg, Err: err}
}

// ServerErr keeps the server's own text when it sent one, else fallback.
func ServerErr(status int, serverMsg, fallback string, err error) *AppError {
	msg := serverMsg
	if msg == "" {
		msg = fallback
	}
	return &AppError{Kind: Server, PublicMsg: msg, Status: status, Err: err}
}

func ValidationErr(publicMsg string, fields map[string]string) *AppError {
	return &AppError{Kind: Validation, PublicMsg: publicMsg, Fields: fields}
}

func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func Is(err error, kind Kind) bool {
	ae, ok := As(err)
	return ok && ae.Kind == kind
}

func HTTPStatus(err error) int {
	ae, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case Validation:
		return http.StatusBadRequest
	case Transport:
		return http.StatusBadGateway
	case Server:
		if ae.Status >= 400 && ae.Status <= 599 {
			return ae.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func PublicMessage(err error) string {
	if ae, ok := As(err); ok && ae.PublicMsg != "" {
		return ae.PublicMsg
	}
	return "Something went wrong. Please try again."
}
