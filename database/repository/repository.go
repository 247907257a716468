package repository

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrWriteConflict signals a transient conflict on a document write; retrying may succeed.
	ErrWriteConflict = errors.New("write conflict")
)

// mongo server code for WriteConflict.
const writeConflictCode = 112

// ClassifyWriteError maps transient server-side write conflicts onto ErrWriteConflict
// and leaves every other error untouched.
func ClassifyWriteError(err error) error {
	if err == nil {
		return nil
	}
	var se mongo.ServerError
	if errors.As(err, &se) && (se.HasErrorCode(writeConflictCode) || se.HasErrorLabel("TransientTransactionError")) {
		return fmt.Errorf("%w: %v", ErrWriteConflict, err)
	}
	return err
}

// IsNotFound reports whether err is (or wraps) a missing-document error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, mongo.ErrNoDocuments)
}
