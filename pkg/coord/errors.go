package coord

import "errors"

var (
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrType            = errors.New("unsupported type")
	ErrNotSupported    = errors.New("operation not supported")
	ErrInvalidSequence = errors.New("invalid euler sequence")
)
