package template

import (
	"errors"
	"testing"
)

func TestDraftGuardErr(t *testing.T) {
	if err := draftGuardErr(ErrNotFound); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a missing template, got %v", err)
	}
	if err := draftGuardErr(nil); !errors.Is(err, ErrPublished) {
		t.Fatalf("expected ErrPublished for an existing non-draft row, got %v", err)
	}
	dbErr := errors.New("connection reset")
	if err := draftGuardErr(dbErr); !errors.Is(err, dbErr) {
		t.Fatalf("expected lookup error passed through, got %v", err)
	}
}
