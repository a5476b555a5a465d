package usecase

import (
	"errors"
	"fmt"

	"rental-store/pkg/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	// ErrNotFound: well-formed request, no matching record. Malformed ids end up here too.
	ErrNotFound = errors.New("not found")
	// ErrInvalidOperation: the request is well-formed but the state forbids it.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrConflict: the write clashes with the state of another record.
	ErrConflict = errors.New("conflict")
)

// ValidationError lists every field of a payload that broke its rule.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, utils.FormatValidationErrors(e.Fields))
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Message: "Validation failed", Fields: errs}
	}
	return nil
}

// invalidf builds an InvalidOperation error whose text is the client-facing message.
func invalidf(format string, args ...any) error {
	return &operationError{kind: ErrInvalidOperation, message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &operationError{kind: ErrNotFound, message: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) error {
	return &operationError{kind: ErrConflict, message: fmt.Sprintf(format, args...)}
}

type operationError struct {
	kind    error
	message string
}

func (e *operationError) Error() string { return e.message }
func (e *operationError) Unwrap() error { return e.kind }

// parseID treats a malformed identifier the same as an unknown one.
func parseID(hex, what string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.NilObjectID, notFoundf("The %s with the given ID was not found.", what)
	}
	return id, nil
}
