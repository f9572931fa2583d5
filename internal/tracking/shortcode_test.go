package tracking

import (
	"strings"
	"testing"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	gen := NewSeededGenerator(1)

	cases := []struct {
		name     string
		alphabet string
		length   int
	}{
		{"form id", FormIDAlphabet, FormIDLength},
		{"tracking code", TrackingCodeAlphabet, TrackingCodeLength},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 200; i++ {
				code := gen.Generate(tc.alphabet, tc.length)
				if len(code) != tc.length {
					t.Fatalf("expected length %d, got %d (%q)", tc.length, len(code), code)
				}
				for _, c := range code {
					if !strings.ContainsRune(tc.alphabet, c) {
						t.Fatalf("character %q not in alphabet for %q", c, code)
					}
				}
			}
		})
	}
}

func TestGenerateVaries(t *testing.T) {
	gen := NewSeededGenerator(42)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[gen.Generate(TrackingCodeAlphabet, TrackingCodeLength)] = true
	}
	// 100 draws from a 62^8 keyspace should essentially never collide
	if len(seen) < 99 {
		t.Fatalf("expected ~100 distinct codes, got %d", len(seen))
	}
}

func TestValidTrackingCode(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{"aB3xYz91", true},
		{"00000000", true},
		{"zzzzzzzz", true},
		{"", false},
		{"short", false},
		{"toolongcode1", false},
		{"aB3xYz9!", false},
		{"aB3xYz 1", false},
	}

	for _, tc := range cases {
		if got := ValidTrackingCode(tc.code); got != tc.want {
			t.Errorf("ValidTrackingCode(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}
