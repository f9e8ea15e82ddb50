package digest

import "testing"

func TestHasherDeterministic(t *testing.T) {
	write := func(h *Hasher) {
		h.Tag(3)
		h.String("example")
		h.Int64(-1)
		h.Bool(true)
		h.Len(2)
	}

	a, b := New(), New()
	write(a)
	write(b)
	if a.Sum64() != b.Sum64() {
		t.Errorf("same writes hashed differently: %x vs %x", a.Sum64(), b.Sum64())
	}
}

func TestHasherLengthPrefix(t *testing.T) {
	a := New()
	a.String("ab")
	a.String("c")

	b := New()
	b.String("a")
	b.String("bc")

	if a.Sum64() == b.Sum64() {
		t.Error("string boundaries must affect the hash")
	}
}

func TestHasherSensitivity(t *testing.T) {
	tests := []struct {
		name string
		a, b func(h *Hasher)
	}{
		{"tag", func(h *Hasher) { h.Tag(1) }, func(h *Hasher) { h.Tag(2) }},
		{"bool", func(h *Hasher) { h.Bool(false) }, func(h *Hasher) { h.Bool(true) }},
		{"int", func(h *Hasher) { h.Int64(1) }, func(h *Hasher) { h.Int64(-1) }},
		{"string", func(h *Hasher) { h.String("x") }, func(h *Hasher) { h.String("y") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := New(), New()
			tt.a(a)
			tt.b(b)
			if a.Sum64() == b.Sum64() {
				t.Errorf("expected different hashes")
			}
		})
	}
}
