package bridge

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	if got := MnemonicError.String(); got != "MnemonicError" {
		t.Errorf("String() = %q", got)
	}
	if got := Kind(200).String(); got != "Kind(200)" {
		t.Errorf("String() = %q", got)
	}
}

func TestNewError(t *testing.T) {
	cause := errors.New("boom")
	err := newError(StorageError, cause, "Could not create wallet dir '%s'", "/x")
	if err.Error() != "Could not create wallet dir '/x': boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("error should unwrap to its cause")
	}
	if !errors.Is(err, &Error{Kind: StorageError}) {
		t.Error("errors.Is should match a bare error of the same kind")
	}
	if errors.Is(err, &Error{Kind: MnemonicError}) {
		t.Error("errors.Is should not match another kind")
	}

	bare := newError(MalformedRequest, nil, "Expected format wallet_path::alias::seed_phrase")
	if bare.Error() != "Expected format wallet_path::alias::seed_phrase" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", newError(NetworkError, nil, "x"))
	if got := KindOf(wrapped); got != NetworkError {
		t.Errorf("KindOf(wrapped) = %v", got)
	}
	if got := KindOf(errors.New("plain")); got != KindNone {
		t.Errorf("KindOf(plain) = %v", got)
	}
}

func TestOutcome(t *testing.T) {
	ok := Success("done")
	if !ok.OK || ok.Text != "done" || ok.Kind != KindNone || ok.Err() != nil {
		t.Errorf("Success() = %+v", ok)
	}

	fail := Failure(newError(PersistenceError, errors.New("disk full"), "Save error"))
	if fail.OK || fail.Kind != PersistenceError || fail.Text != "Save error: disk full" {
		t.Errorf("Failure() = %+v", fail)
	}
	if !errors.Is(fail.Err(), &Error{Kind: PersistenceError}) {
		t.Errorf("Err() = %v", fail.Err())
	}

	unclassified := Failure(errors.New("mystery"))
	if unclassified.Kind != InternalPanic {
		t.Errorf("unclassified kind = %v, want InternalPanic", unclassified.Kind)
	}
}
