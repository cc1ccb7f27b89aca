package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("object not found")
	ErrIncompleteResponse = errors.New("incomplete response")
	ErrInvalidInput       = errors.New("invalid input")

	ErrInvalidReference = fmt.Errorf("%w: invalid argument reference", ErrInvalidInput)
)
