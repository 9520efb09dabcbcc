// Package apperr holds the error kinds shared by every feature package and
// the mapping from those kinds to HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindNotFound
)

var (
	ErrUnauthenticated = errors.New("authentication credentials were not provided or are invalid")
	ErrNotFound        = errors.New("not found")
)

// ValidationError describes malformed or conflicting input, keyed by field.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
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
	return strings.Join(parts, "; ")
}

// FromBinding converts a gin binding failure into a ValidationError.
func FromBinding(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[jsonName(fe.Field())] = describe(fe)
		}
		return &ValidationError{Fields: fields}
	}
	return NewValidationError("non_field_errors", "malformed request body")
}

// KindOf reports which Kind err belongs to. Feature packages wrap
// ErrNotFound and ErrUnauthenticated so that one switch covers them all.
func KindOf(err error) Kind {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return KindValidation
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}

// StatusCode maps err to the HTTP status returned to the client.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Body renders the JSON body for err. Internal errors carry their text only
// when expose is set.
func Body(err error, prefix string, expose bool) gin.H {
	var verr *ValidationError
	switch KindOf(err) {
	case KindValidation:
		errors.As(err, &verr)
		return gin.H{"detail": verr.Error(), "fields": verr.Fields}
	case KindUnauthenticated, KindNotFound:
		return gin.H{"detail": err.Error()}
	}

	if expose {
		return gin.H{"detail": fmt.Sprintf("%s: %s", prefix, err.Error())}
	}
	return gin.H{"detail": prefix, "code": "internal_error"}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "ensure this field has no more than " + fe.Param() + " characters"
	case "min":
		return "ensure this field has at least " + fe.Param() + " characters"
	case "email":
		return "enter a valid email address"
	default:
		return "invalid value"
	}
}

// jsonName turns a Go field name such as FirstName into first_name.
func jsonName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Respond writes err as a JSON error response. prefix names the failed
// operation in 500 bodies.
func Respond(c *gin.Context, err error, prefix string, expose bool) {
	c.JSON(StatusCode(err), Body(err, prefix, expose))
}
