package tracking

import (
	"errors"
	"testing"
)

func TestAllocateReturnsUnusedCode(t *testing.T) {
	gen := NewSeededGenerator(7)

	// Pre-load the stub with codes the generator will actually propose first,
	// plus the codes allocated earlier in the run.
	probe := NewSeededGenerator(7)
	existing := map[string]bool{
		probe.Generate(TrackingCodeAlphabet, TrackingCodeLength): true,
		probe.Generate(TrackingCodeAlphabet, TrackingCodeLength): true,
	}

	exists := func(code string) (bool, error) {
		return existing[code], nil
	}

	for i := 0; i < 10; i++ {
		code, err := AllocateTrackingCode(gen, exists)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if existing[code] {
			t.Fatalf("allocated code %q collides with an existing one", code)
		}
		existing[code] = true
	}
}

func TestAllocateExhausted(t *testing.T) {
	gen := NewSeededGenerator(1)

	calls := 0
	everythingTaken := func(code string) (bool, error) {
		calls++
		return true, nil
	}

	_, err := AllocateTrackingCode(gen, everythingTaken)
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("expected ErrGenerationExhausted, got %v", err)
	}
	if calls != maxAllocateAttempts {
		t.Fatalf("expected %d attempts, got %d", maxAllocateAttempts, calls)
	}
}

func TestAllocatePropagatesCheckError(t *testing.T) {
	gen := NewSeededGenerator(1)
	boom := errors.New("connection refused")

	_, err := AllocateFormID(gen, func(code string) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped check error, got %v", err)
	}
}

func TestAllocateFormIDShape(t *testing.T) {
	gen := NewSeededGenerator(3)

	code, err := AllocateFormID(gen, func(string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != FormIDLength {
		t.Fatalf("expected %d chars, got %q", FormIDLength, code)
	}
	for _, c := range code {
		if c >= 'a' && c <= 'z' {
			t.Fatalf("form IDs are uppercase only, got %q", code)
		}
	}
}
