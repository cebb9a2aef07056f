package datastore

import (
	"errors"
	"testing"
)

func TestUnavailable_WrapsDriverErrors(t *testing.T) {
	err := Unavailable("insert swipe", errors.New("connection reset"))
	if !IsTransient(err) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("driver error must not look like not found")
	}
}

func TestUnavailable_KeepsClassifiedErrors(t *testing.T) {
	if got := Unavailable("get pet", ErrNotFound); got != ErrNotFound {
		t.Fatalf("expected ErrNotFound untouched, got %v", got)
	}
	if Unavailable("noop", nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
