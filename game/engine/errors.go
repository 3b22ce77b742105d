package engine

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName      = errors.New("EmptyNameError")
	ErrBounds         = errors.New("BoundsError")
	ErrPartySize      = errors.New("PartySizeError")
	ErrEntityNotFound = errors.New("EntityNotFoundError")
	ErrPersistence    = errors.New("PersistenceError")
	ErrScout          = errors.New("ScoutError")
	ErrTurnOrder      = errors.New("TurnOrderError")
	ErrHuntState      = errors.New("HuntStateError")
)

// kinds lists every sentinel in match order for KindOf
var kinds = []error{
	ErrEmptyName,
	ErrBounds,
	ErrPartySize,
	ErrEntityNotFound,
	ErrPersistence,
	ErrScout,
	ErrTurnOrder,
	ErrHuntState,
}

// ValidationError names the first rule a candidate entity violated
type ValidationError struct {
	Kind    error  // one of the Err* sentinels
	Entity  string // "hunt", "showdown", ...
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Message)
	}
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// NewValidationError builds a ValidationError of the given kind
func NewValidationError(kind error, entity, field string, value any, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Entity:  entity,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}

// NotFound reports a reference to a missing entity
func NotFound(entity, id string) error {
	return NewValidationError(ErrEntityNotFound, entity, "id", id, "%s %q not found", entity, id)
}

// KindOf returns the taxonomy name of err ("PartySizeError", ...) or "" when err
// does not belong to the taxonomy.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return ""
}

// IsValidation reports whether err is a rule violation rather than a storage failure
func IsValidation(err error) bool {
	kind := KindOf(err)
	return kind != "" && kind != ErrPersistence.Error()
}
