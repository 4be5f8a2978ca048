package wasmhost

import (
	stderrors "errors"

	"github.com/embedkit/hostbind/errors"
)

// Errno codes returned to guests. Structured errors stay host-side; guests
// see flat i32 codes.
const (
	ErrnoOK uint32 = iota
	ErrnoUndefinedName
	ErrnoUndefinedType
	ErrnoUnknownType
	ErrnoShortBuffer
	ErrnoOutOfRange
	ErrnoInvalidInput
)

// errnoFor maps a registry error to its guest-facing code.
func errnoFor(err error) uint32 {
	if err == nil {
		return ErrnoOK
	}

	var e *errors.Error
	if !stderrors.As(err, &e) {
		return ErrnoInvalidInput
	}

	switch e.Kind {
	case errors.KindUndefinedName:
		return ErrnoUndefinedName
	case errors.KindUndefinedType:
		return ErrnoUndefinedType
	case errors.KindUnknownType:
		return ErrnoUnknownType
	default:
		return ErrnoInvalidInput
	}
}
