package database

import (
	"errors"
	"strings"
)

// ErrDuplicateKey marks inserts rejected by a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")

// TranslateError maps driver-level failures onto the sentinel errors above.
// SQLite reports unique violations only through the error text.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateKey
	}
	return err
}

// IsDuplicateKey reports whether err is a unique constraint violation.
func IsDuplicateKey(err error) bool {
	return errors.Is(TranslateError(err), ErrDuplicateKey)
}
