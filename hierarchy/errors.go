package hierarchy

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes carried by the errors this package returns.
const (
	TextCodeNotFound         = "NOT_FOUND"
	TextCodeConflict         = "ALREADY_EXISTS"
	TextCodeInvalidParent    = "PARENT_NOT_FOUND"
	TextCodeInvalidInput     = "INVALID_INPUT"
	TextCodeStoreUnavailable = "STORE_UNAVAILABLE"
)

// NotFound reports a read, update or delete target that does not exist.
func NotFound(kind Kind) error {
	return goerrors.New(fmt.Sprintf("%s not found", kind), goerrors.CategoryNotFound).
		WithTextCode(TextCodeNotFound).
		WithCode(404)
}

// Conflict reports a uniqueness violation.
func Conflict(kind Kind) error {
	return goerrors.New(fmt.Sprintf("%s with that title already exists", kind.Title()), goerrors.CategoryConflict).
		WithTextCode(TextCodeConflict).
		WithCode(409)
}

// InvalidParent reports a declared parent that does not exist.
func InvalidParent(parent Kind) error {
	return goerrors.New(fmt.Sprintf("%s not found", parent), goerrors.CategoryNotFound).
		WithTextCode(TextCodeInvalidParent).
		WithCode(404)
}

// InvalidInput wraps a validation failure of an input or patch.
func InvalidInput(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
		WithTextCode(TextCodeInvalidInput).
		WithCode(422)
}

// StoreUnavailable wraps an infrastructure failure of the relational store.
func StoreUnavailable(err error, op string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, op+" failed").
		WithTextCode(TextCodeStoreUnavailable).
		WithCode(500)
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return hasTextCode(err, TextCodeNotFound) }

// IsConflict reports whether err is a Conflict error.
func IsConflict(err error) bool { return hasTextCode(err, TextCodeConflict) }

// IsInvalidParent reports whether err is an InvalidParent error.
func IsInvalidParent(err error) bool { return hasTextCode(err, TextCodeInvalidParent) }

// IsInvalidInput reports whether err is a validation error.
func IsInvalidInput(err error) bool { return hasTextCode(err, TextCodeInvalidInput) }

// IsStoreUnavailable reports whether err is a store infrastructure failure.
func IsStoreUnavailable(err error) bool { return hasTextCode(err, TextCodeStoreUnavailable) }

func hasTextCode(err error, code string) bool {
	var e *goerrors.Error
	if errors.As(err, &e) {
		return e.TextCode == code
	}
	return false
}
