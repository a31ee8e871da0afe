// Package bridge implements the host-facing wallet operations: seed
// phrase generation, wallet derivation and the string handle registry.
// Every operation returns an Outcome and never lets a panic escape.
package bridge

import (
	"errors"
	"fmt"
)

// Kind classifies a failed bridge operation.
type Kind uint8

const (
	KindNone Kind = iota
	NullInput
	InvalidEncoding
	MalformedRequest
	StorageError
	MnemonicError
	RuntimeInitError
	NetworkError
	SdkInitError
	DerivationError
	PersistenceError
	InternalPanic
)

var kindNames = [...]string{
	KindNone:         "None",
	NullInput:        "NullInput",
	InvalidEncoding:  "InvalidEncoding",
	MalformedRequest: "MalformedRequest",
	StorageError:     "StorageError",
	MnemonicError:    "MnemonicError",
	RuntimeInitError: "RuntimeInitError",
	NetworkError:     "NetworkError",
	SdkInitError:     "SdkInitError",
	DerivationError:  "DerivationError",
	PersistenceError: "PersistenceError",
	InternalPanic:    "InternalPanic",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Error is a failed pipeline step.
type Error struct {
	Kind Kind
	// Msg is the host-facing text.
	Msg string
	Err error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same Kind, so callers can test
// errors.Is(err, &Error{Kind: MnemonicError}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Msg == "" && t.Err == nil
}

func newError(kind Kind, err error, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the Kind of err, or KindNone when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}

// Outcome is the result of a bridge operation: the text handed to the
// host plus the classification Go callers can branch on.
type Outcome struct {
	Text string
	Kind Kind
	OK   bool
}

// Success builds a successful outcome.
func Success(text string) Outcome {
	return Outcome{Text: text, OK: true}
}

// Failure builds a failed outcome from err. Unclassified errors are
// reported as internal failures.
func Failure(err error) Outcome {
	kind := KindOf(err)
	if kind == KindNone {
		kind = InternalPanic
	}
	return Outcome{Text: err.Error(), Kind: kind}
}

// Err returns the outcome as an error, nil on success.
func (o Outcome) Err() error {
	if o.OK {
		return nil
	}
	return &Error{Kind: o.Kind, Msg: o.Text}
}
