// Package apperrors defines the error kinds shared by the store, the services and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a failure independently of where it was raised.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindValidation       Kind = "validation_failed"
	KindConflict         Kind = "uniqueness_conflict"
	KindReferential      Kind = "referential_conflict"
	KindTransient        Kind = "transient"
	KindUnexpected       Kind = "unexpected"
)

// Error carries a Kind plus the entity/field it concerns.
type Error struct {
	Kind   Kind
	Entity string
	Field  string
	Action string
	Detail string
	Fields map[string]string // per-field messages for validation failures
	Err    error
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrPermissionDenied = &Error{Kind: KindPermissionDenied}
	ErrValidation       = &Error{Kind: KindValidation}
	ErrConflict         = &Error{Kind: KindConflict}
	ErrReferential      = &Error{Kind: KindReferential}
	ErrTransient        = &Error{Kind: KindTransient}
)

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var msg string
	switch e.Kind {
	case KindNotFound:
		msg = fmt.Sprintf("%s not found", orDefault(e.Entity, "resource"))
	case KindPermissionDenied:
		msg = fmt.Sprintf("permission denied to %s", orDefault(e.Action, "perform this action"))
	case KindValidation:
		msg = "validation failed"
		if len(e.Fields) > 0 {
			keys := make([]string, 0, len(e.Fields))
			for k := range e.Fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			msg += ": " + strings.Join(keys, ", ")
		}
	case KindConflict:
		msg = fmt.Sprintf("%s with this %s already exists", orDefault(e.Entity, "record"), orDefault(e.Field, "key"))
	case KindReferential:
		msg = "referential conflict"
	case KindTransient:
		msg = "transient failure, retry the operation"
	default:
		msg = "unexpected error"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity}
}

func PermissionDenied(action string) *Error {
	return &Error{Kind: KindPermissionDenied, Action: action}
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

func Conflict(entity, field string, err error) *Error {
	return &Error{Kind: KindConflict, Entity: entity, Field: field, Err: err}
}

func Referential(detail string, err error) *Error {
	return &Error{Kind: KindReferential, Detail: detail, Err: err}
}

func Transient(detail string, err error) *Error {
	return &Error{Kind: KindTransient, Detail: detail, Err: err}
}

func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain, or KindUnexpected.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// As returns the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
