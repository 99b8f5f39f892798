package voucher

import (
	"log/slog"
	"math/rand/v2"
)

// DefaultMaxAttempts bounds code regeneration per item during Fill.
const DefaultMaxAttempts = 100

// Option configures a Bag.
type Option func(*Bag)

// WithModel binds the bag, and every voucher added to it, to m.
func WithModel(m *Model) Option {
	return func(b *Bag) { b.model = m }
}

// WithRand sets the pseudo-random source used by Pick and PickValid. Nil is ignored.
func WithRand(r *rand.Rand) Option {
	return func(b *Bag) {
		if r != nil {
			b.rnd = r
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bag) {
		if l != nil {
			b.log = l
		}
	}
}

// WithMaxAttempts sets how many colliding codes Fill tolerates per item.
// Non-positive values are ignored.
func WithMaxAttempts(n int) Option {
	return func(b *Bag) {
		if n > 0 {
			b.maxAttempts = n
		}
	}
}

// WithValidator registers a validator at construction, see Bag.AddValidator.
func WithValidator(check func(*Voucher) bool, message string) Option {
	return func(b *Bag) { b.AddValidator(check, message) }
}
