package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports input the caller can fix. Fields maps a field name
// to the constraint it broke; Field/Message describe the first one.
type ValidationError struct {
	Field   string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if len(e.Fields) > 1 {
		msg = joinFields(e.Fields)
	}
	if e.Err != nil && len(e.Fields) == 0 {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg, Fields: map[string]string{field: msg}}
}

// NewValidationFields builds a ValidationError from a field->message map.
func NewValidationFields(fields map[string]string, err error) *ValidationError {
	ve := &ValidationError{Fields: fields, Err: err}
	keys := sortedKeys(fields)
	if len(keys) > 0 {
		ve.Field = keys[0]
		ve.Message = fields[keys[0]]
	}
	return ve
}

// DuplicateSlugError is returned when another article already owns the slug.
type DuplicateSlugError struct {
	Slug string
	Err  error
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("slug %q is already used by another article", e.Slug)
}

func (e *DuplicateSlugError) Unwrap() error {
	return e.Err
}

func NewDuplicateSlug(slug string, err error) *DuplicateSlugError {
	return &DuplicateSlugError{Slug: slug, Err: err}
}

// Unavailable wraps a transient infrastructure failure so that
// errors.Is(err, ErrStoreUnavailable) holds while keeping the cause.
func Unavailable(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, cause)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsDuplicateSlug(err error) bool {
	var de *DuplicateSlugError
	return errors.As(err, &de)
}

func joinFields(fields map[string]string) string {
	keys := sortedKeys(fields)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
