package repository

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

// abortError carries a mutation or lookup error out of a store transaction untouched.
type abortError struct {
	err error
}

func (that *abortError) Error() string {
	return that.err.Error()
}

func (that *abortError) Unwrap() error {
	return that.err
}

func abort(err error) error {
	return &abortError{err: err}
}

// storeError - returns aborted errors as is and marks everything else as a storage failure.
func storeError(err error, msg string) error {
	var aborted *abortError
	if errors.As(err, &aborted) {
		return aborted.err
	}

	return fmt.Errorf("%w: %s: %w", apperror.ErrStore, msg, err)
}
