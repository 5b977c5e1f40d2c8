package types

import "errors"

// Domain specific errors for plan generation.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrMissingCity         = errors.New("form city is required")
	ErrUpstreamUnavailable = errors.New("ai backend unavailable")
	ErrResponseMalformed   = errors.New("ai response could not be parsed")
)
