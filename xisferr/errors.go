// Package xisferr defines the error taxonomy shared by every package in this
// module.
//
// Every exported function that can fail returns a plain error. Callers that
// need to branch on the failure category use errors.As to recover a *Error
// and inspect its Kind. Wrapping with fmt.Errorf("...: %w", err) is expected
// at call sites; Kind survives unwrapping because errors.As walks the chain.
package xisferr

import "fmt"

// Kind categorizes a failure the way spec section 7 enumerates them.
type Kind uint8

const (
	// KindUnknown is the zero value; never returned deliberately.
	KindUnknown Kind = iota
	// KindIO covers signature/short-read/seek failures.
	KindIO
	// KindMalformedHeader covers non-XML input, missing root, wrong version.
	KindMalformedHeader
	// KindUnsupportedFeature covers codecs not compiled in, dimensionality != 2.
	KindUnsupportedFeature
	// KindInvalidReference covers attachment offset/length parse failures.
	KindInvalidReference
	// KindInvalidValue covers unknown type names, numeric parse failures,
	// non-positive dimensions.
	KindInvalidValue
	// KindDuplicateProperty covers addProperty on an existing id.
	KindDuplicateProperty
	// KindOutOfBounds covers bad image index, mismatched matrix dimensions.
	KindOutOfBounds
	// KindCodecFailure covers a non-zero/negative codec status.
	KindCodecFailure
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindMalformedHeader:
		return "malformed header"
	case KindUnsupportedFeature:
		return "unsupported feature"
	case KindInvalidReference:
		return "invalid reference"
	case KindInvalidValue:
		return "invalid value"
	case KindDuplicateProperty:
		return "duplicate property"
	case KindOutOfBounds:
		return "out of bounds"
	case KindCodecFailure:
		return "codec failure"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind so callers can recover the
// failure category after it has been wrapped by intermediate layers.
type Error struct {
	Kind Kind
	// Context is a short human-readable location hint (e.g. "image[2]",
	// property id, byte offset). Optional.
	Context string
	Err     error
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("xisf: %s: %s: %v", e.Kind, e.Context, e.Err)
	}

	return fmt.Sprintf("xisf: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error from a Kind and a plain error.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Newf builds an *Error from a Kind, a context string and a plain error.
func Newf(kind Kind, context string, err error) *Error {
	return &Error{Kind: kind, Context: context, Err: err}
}

// Is reports whether err carries the given Kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Kind == kind {
				return true
			}
			err = e.Err

			continue
		}

		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}

	return false
}
