package frame

import "errors"

var (
	ErrMissingLocation    = errors.New("missing frame location")
	ErrMissingOrientation = errors.New("missing frame orientation")
	ErrInvalidOrientation = errors.New("invalid frame orientation")
)
