package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error keys, rendered as "error.<key>" in responses.
const (
	KeyValidation   = "validation"
	KeyIDExists     = "idexists"
	KeyIDNull       = "idnull"
	KeyIDMismatch   = "idinvalid"
	KeyNotFound     = "idnotfound"
	KeyMalformed    = "malformed"
	KeyDuplicate    = "duplicate"
	KeyBadReference = "badreference"
	KeyBadSort      = "badsort"
	KeyInternal     = "internal"
)

type FieldError struct {
	ObjectName string `json:"objectName"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

// Error is a caller-facing failure carrying its HTTP status and error key.
type Error struct {
	Status int
	Key    string
	Entity string
	Fields []FieldError
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Key != "" {
		return "error." + e.Key
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Message() string { return "error." + e.Key }

func New(status int, key, entity string, err error) *Error {
	return &Error{Status: status, Key: key, Entity: entity, Err: err}
}

func IDExists(entity string) *Error {
	return New(http.StatusBadRequest, KeyIDExists, entity, fmt.Errorf("a new %s cannot already have an ID", entity))
}

func IDNull(entity string) *Error {
	return New(http.StatusBadRequest, KeyIDNull, entity, errors.New("invalid id"))
}

func IDMismatch(entity string) *Error {
	return New(http.StatusBadRequest, KeyIDMismatch, entity, errors.New("invalid ID"))
}

func NotFound(entity string) *Error {
	return New(http.StatusNotFound, KeyNotFound, entity, fmt.Errorf("%s not found", entity))
}

func Malformed(entity string, err error) *Error {
	return New(http.StatusBadRequest, KeyMalformed, entity, err)
}

func Validation(entity string, fields []FieldError) *Error {
	return &Error{
		Status: http.StatusBadRequest,
		Key:    KeyValidation,
		Entity: entity,
		Fields: fields,
		Err:    errors.New("method argument not valid"),
	}
}

func Internal(entity string, err error) *Error {
	return New(http.StatusInternalServerError, KeyInternal, entity, err)
}

// As returns err as an *Error when it is one (or wraps one).
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
