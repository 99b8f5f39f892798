package codegen

import "sync"

// Generator produces and format-checks voucher codes.
type Generator interface {
	// Part returns one short random segment.
	Part() string
	// Generate composes a complete code.
	Generate() string
	// Validate reports whether code is well formed for this generator.
	Validate(code string) bool
}

var (
	defaultMu  sync.RWMutex
	defaultGen Generator = MustNew()
)

// Default returns the process-wide generator used when a field has none configured.
func Default() Generator {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultGen
}

// SetDefault replaces the process-wide generator. Nil is ignored.
func SetDefault(g Generator) {
	if g == nil {
		return
	}
	defaultMu.Lock()
	defaultGen = g
	defaultMu.Unlock()
}
