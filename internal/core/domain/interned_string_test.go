package domain_test

import (
	"testing"

	"go.skiff.dev/baton/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	is1 := domain.NewInternedString("lint")
	is2 := domain.NewInternedString("lint")

	if is1 != is2 {
		t.Error("expected identical strings to intern to the same value")
	}

	if is1.String() != "lint" {
		t.Errorf("expected String() to return lint, got %q", is1.String())
	}
}

func TestInternedString_Zero(t *testing.T) {
	var zero domain.InternedString
	if zero.String() != "" {
		t.Errorf("expected zero value to stringify to empty, got %q", zero.String())
	}
}
