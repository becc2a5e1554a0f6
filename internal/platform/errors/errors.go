package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInputMissing = errors.New("input file missing")
)
