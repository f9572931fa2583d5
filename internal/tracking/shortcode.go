package tracking

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Alphabets and lengths for the two kinds of short codes the system allocates.
// Codes are routing keys, not secrets, so math/rand is sufficient.
const (
	FormIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	FormIDLength   = 10

	TrackingCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	TrackingCodeLength   = 8
)

// Generator produces random fixed-length codes from an alphabet
type Generator struct {
	mu     sync.Mutex
	random *rand.Rand
}

// NewGenerator creates a generator seeded from the clock
func NewGenerator() *Generator {
	return &Generator{
		random: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededGenerator creates a generator with a fixed seed, for tests
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Generate draws length independent uniform samples from alphabet.
// Repeats within a code are allowed.
func (g *Generator) Generate(alphabet string, length int) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[g.random.Intn(len(alphabet))]
	}
	return string(b)
}

// ValidTrackingCode reports whether code has the exact shape of a tracking
// code: 8 characters, all from the base62 alphabet. Matching is case-sensitive.
func ValidTrackingCode(code string) bool {
	if len(code) != TrackingCodeLength {
		return false
	}
	for _, c := range code {
		if !strings.ContainsRune(TrackingCodeAlphabet, c) {
			return false
		}
	}
	return true
}
