package partition

import "errors"

// Kind classifies a partition-layer failure so callers (principally
// pkg/storageservice) can map it onto the right RPC status without
// inspecting error strings.
type Kind int

const (
	// KindNotFound means neither the value nor its metadata exist for a key.
	KindNotFound Kind = iota
	// KindCorrupt means exactly one of {value, metadata} exists for a key —
	// invariant 1 violated.
	KindCorrupt
	// KindIO means the underlying engine returned an error.
	KindIO
)

// Error wraps an engine or invariant failure with a Kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op
}

func (e *Error) Unwrap() error { return e.Err }

func newNotFound(op string) *Error {
	return &Error{Kind: KindNotFound, Op: op}
}

func newCorrupt(op string) *Error {
	return &Error{Kind: KindCorrupt, Op: op}
}

func newIOError(op string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Err: err}
}

// IsNotFound reports whether err is (or wraps) a KindNotFound Error.
func IsNotFound(err error) bool { return kindOf(err) == KindNotFound }

// IsCorrupt reports whether err is (or wraps) a KindCorrupt Error.
func IsCorrupt(err error) bool { return kindOf(err) == KindCorrupt }

// IsIO reports whether err is (or wraps) a KindIO Error.
func IsIO(err error) bool { return kindOf(err) == KindIO }

func kindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindIO
}
