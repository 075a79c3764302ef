package apperror

import "errors"

var (
	ErrNotFound      = errors.New("game not found")
	ErrSessionFull   = errors.New("game is already full")
	ErrInvalidState  = errors.New("game is in an invalid state for this action")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("game already exists")
	ErrStore         = errors.New("storage failure")
)
