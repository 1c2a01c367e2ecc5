package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind categorizes front-desk errors so the HTTP layer can pick a status code.
type Kind int

const (
	// KindValidation indicates a malformed or incomplete request.
	KindValidation Kind = iota + 1
	// KindInvalidState indicates the entity is not in the state the operation needs.
	KindInvalidState
	// KindInsufficientInventory indicates a request for more stock than is on hand.
	KindInsufficientInventory
	// KindPricing indicates a consumed item without a sale price.
	KindPricing
	// KindNotFound indicates a missing room, item or transaction.
	KindNotFound
	// KindConflict indicates a competing request holds the resource.
	KindConflict
	// KindStorage indicates the database could not serve the request.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindInvalidState:
		return "InvalidState"
	case KindInsufficientInventory:
		return "InsufficientInventory"
	case KindPricing:
		return "PricingError"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	case KindStorage:
		return "StorageUnavailable"
	}
	return "Unknown"
}

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrValidation            = &Error{Kind: KindValidation}
	ErrInvalidState          = &Error{Kind: KindInvalidState}
	ErrInsufficientInventory = &Error{Kind: KindInsufficientInventory}
	ErrPricing               = &Error{Kind: KindPricing}
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrConflict              = &Error{Kind: KindConflict}
	ErrStorage               = &Error{Kind: KindStorage}
)

// KindOf returns the kind of err, or 0 when err is not a front-desk error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func validationError(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func invalidState(format string, args ...any) error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func insufficientInventory(name string, onHand, requested int64) error {
	return &Error{
		Kind:    KindInsufficientInventory,
		Message: fmt.Sprintf("insufficient inventory for %q: %d on hand, %d requested", name, onHand, requested),
	}
}

func pricingError(name string) error {
	return &Error{Kind: KindPricing, Message: fmt.Sprintf("item %q has no sale price", name)}
}

func notFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(msg string, cause error) error {
	return &Error{Kind: KindConflict, Message: msg, Cause: cause}
}

// storageError wraps a database failure. Errors already classified pass through.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != 0 {
		return err
	}
	return &Error{Kind: KindStorage, Message: op, Cause: err}
}

// lookupError turns gorm.ErrRecordNotFound into a NotFound error and anything else into a storage error.
func lookupError(err error, what string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("%s %v not found", what, id)
	}
	return storageError("failed to load "+what, err)
}

// NewValidationError lets request decoders outside this package report
// malformed input with the same kind.
func NewValidationError(format string, args ...any) error {
	return validationError(format, args...)
}
