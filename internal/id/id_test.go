package id

import "testing"

func TestNew(t *testing.T) {
	a := New()
	b := New()
	if a == b {
		t.Error("two generated IDs are equal")
	}
	if len(a) != 36 {
		t.Errorf("expected 36-character UUID, got %d: %q", len(a), a)
	}
	for _, pos := range []int{8, 13, 18, 23} {
		if a[pos] != '-' {
			t.Errorf("expected dash at position %d in %q", pos, a)
		}
	}
}

func TestShort(t *testing.T) {
	a := Short()
	if len(a) != 16 {
		t.Errorf("expected 16-character ID, got %d: %q", len(a), a)
	}
	if a == Short() {
		t.Error("two short IDs are equal")
	}
}
