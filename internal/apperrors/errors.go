package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// Account creation maps a code uniqueness violation onto this so callers can retry allocation.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnavailable indicates that the backing store could not be reached.
// Read paths degrade to partial results on this; write paths must propagate it.
var ErrUnavailable = errors.New("backing store unavailable")

// ErrMalformedCode indicates a stored account code that does not follow the
// numeric-suffix pattern. Malformed sibling codes are skipped during allocation,
// never fatal; this error only surfaces when the malformed code itself is the input.
var ErrMalformedCode = errors.New("malformed account code")
