package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors shared by services and controllers.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrMissingRequired      = errors.New("missing required field")
	ErrNotFound             = errors.New("not found")
	ErrFileNotFound         = errors.New("file not found")
	ErrInvalidImage         = errors.New("send a File, a data URL, an http(s) URL, or an absolute file path")
	ErrUnsupportedMediaType = errors.New("unsupported content type")
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrUnavailable          = errors.New("store unavailable")
	ErrInvalidEmail         = errors.New("please provide a valid email address")
)

// FileNotFoundError reports a local image path that does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string { return "file not found: " + e.Path }

// Is matches ErrFileNotFound.
func (e *FileNotFoundError) Is(target error) bool { return target == ErrFileNotFound }

// StoreErrorKind classifies failures reported by a repository.
type StoreErrorKind int

const (
	StoreOther StoreErrorKind = iota
	StoreDuplicate
	StoreValidation
	StoreConnectivity
	StoreMalformed
)

func (k StoreErrorKind) String() string {
	switch k {
	case StoreDuplicate:
		return "duplicate"
	case StoreValidation:
		return "validation"
	case StoreConnectivity:
		return "connectivity"
	case StoreMalformed:
		return "malformed"
	default:
		return "other"
	}
}

// StoreError is returned by repositories for every driver failure other than a
// missing document. Field names the offending field when the driver reports one
// (the unique index for duplicates, the column for validation failures).
type StoreError struct {
	Kind  StoreErrorKind
	Field string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return "store " + e.Kind.String() + " error"
	}
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is lets callers test a StoreError against the API-level sentinels.
func (e *StoreError) Is(target error) bool {
	switch target {
	case ErrDuplicateKey:
		return e.Kind == StoreDuplicate
	case ErrUnavailable:
		return e.Kind == StoreConnectivity
	case ErrInvalidInput:
		return e.Kind == StoreMalformed
	}
	return false
}

// NewStoreError wraps err with the given kind and field.
func NewStoreError(kind StoreErrorKind, field string, err error) *StoreError {
	return &StoreError{Kind: kind, Field: field, Err: err}
}

// IsDuplicateField reports whether err is a duplicate-key failure on field.
func IsDuplicateField(err error, field string) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Kind == StoreDuplicate && se.Field == field
}

// ValidationError carries per-field messages for a record that failed schema checks.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add records msg for field, keeping the first message reported for a field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// OrNil returns e when it holds at least one field message, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
