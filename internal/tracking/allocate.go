package tracking

import (
	"errors"
	"fmt"
)

// ErrGenerationExhausted is returned when no unused code was found within the
// retry cap. With 36^10 and 62^8 keyspaces this indicates an operational
// problem, not bad luck.
var ErrGenerationExhausted = errors.New("short code generation exhausted")

// maxAllocateAttempts bounds the generate-and-check loop
const maxAllocateAttempts = 20

// ExistsFunc queries persistence for a colliding code
type ExistsFunc func(code string) (bool, error)

// Allocate returns a code of the given shape that no existing record uses.
// The existence pre-check only keeps the common path cheap: two concurrent
// calls can both pass it for the same candidate, so the owning insert must be
// protected by a unique index and retried once on a duplicate-key failure.
func Allocate(gen *Generator, alphabet string, length int, exists ExistsFunc) (string, error) {
	for i := 0; i < maxAllocateAttempts; i++ {
		code := gen.Generate(alphabet, length)
		taken, err := exists(code)
		if err != nil {
			return "", fmt.Errorf("failed to check code availability: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrGenerationExhausted
}

// AllocateTrackingCode allocates an unused 8-char base62 campaign tracking code
func AllocateTrackingCode(gen *Generator, exists ExistsFunc) (string, error) {
	return Allocate(gen, TrackingCodeAlphabet, TrackingCodeLength, exists)
}

// AllocateFormID allocates an unused 10-char uppercase alphanumeric form ID
func AllocateFormID(gen *Generator, exists ExistsFunc) (string, error) {
	return Allocate(gen, FormIDAlphabet, FormIDLength, exists)
}
