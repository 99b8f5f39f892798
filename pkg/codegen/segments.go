package codegen

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultAlphabet is the uppercase alphanumeric set used by the default policy.
	DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// DefaultParts is the number of segments in a default code.
	DefaultParts = 3
	// DefaultPartLength is the number of characters in each segment.
	DefaultPartLength = 4
	// DefaultSeparator joins segments.
	DefaultSeparator = "-"
)

// Config describes the shape of codes produced by Segments.
// Field tags allow embedding into env-parsed configuration with a prefix.
type Config struct {
	Parts      int    `env:"PARTS" envDefault:"3"`
	PartLength int    `env:"PART_LENGTH" envDefault:"4"`
	Alphabet   string `env:"ALPHABET" envDefault:"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"`
	Separator  string `env:"SEPARATOR" envDefault:"-"`
}

// DefaultConfig returns the shape of the default policy, e.g. "FHUW-JSUJ-KSIQ".
func DefaultConfig() Config {
	return Config{
		Parts:      DefaultParts,
		PartLength: DefaultPartLength,
		Alphabet:   DefaultAlphabet,
		Separator:  DefaultSeparator,
	}
}

// Segments generates codes made of fixed-length random segments joined by a separator.
// It is safe for concurrent use.
type Segments struct {
	cfg      Config
	alphabet []rune
	allowed  map[rune]struct{}

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option configures a Segments generator.
type Option func(*Segments)

// WithRand sets the pseudo-random source. Nil is ignored.
func WithRand(r *rand.Rand) Option {
	return func(s *Segments) {
		if r != nil {
			s.rnd = r
		}
	}
}

func WithAlphabet(alphabet string) Option {
	return func(s *Segments) { s.cfg.Alphabet = alphabet }
}

func WithParts(n int) Option {
	return func(s *Segments) { s.cfg.Parts = n }
}

func WithPartLength(n int) Option {
	return func(s *Segments) { s.cfg.PartLength = n }
}

// WithSeparator sets the string placed between segments. It may be empty.
func WithSeparator(sep string) Option {
	return func(s *Segments) { s.cfg.Separator = sep }
}

// New creates a Segments generator with the default shape adjusted by opts.
func New(opts ...Option) (*Segments, error) {
	return NewFromConfig(DefaultConfig(), opts...)
}

// NewFromConfig creates a Segments generator from cfg; opts are applied on top.
func NewFromConfig(cfg Config, opts ...Option) (*Segments, error) {
	s := &Segments{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.init(); err != nil {
		return nil, err
	}

	if s.rnd == nil {
		seed := uint64(time.Now().UnixNano())
		s.rnd = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	return s, nil
}

// MustNew is like New but panics on invalid configuration.
func MustNew(opts ...Option) *Segments {
	s, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create code generator: %v", err))
	}
	return s
}

func (s *Segments) init() error {
	switch {
	case s.cfg.Parts <= 0:
		return errors.Join(ErrInvalidConfig, fmt.Errorf("parts must be positive, got %d", s.cfg.Parts))
	case s.cfg.PartLength <= 0:
		return errors.Join(ErrInvalidConfig, fmt.Errorf("part length must be positive, got %d", s.cfg.PartLength))
	case s.cfg.Alphabet == "":
		return errors.Join(ErrInvalidConfig, errors.New("alphabet cannot be empty"))
	case s.cfg.Separator != "" && strings.ContainsAny(s.cfg.Alphabet, s.cfg.Separator):
		return errors.Join(ErrInvalidConfig, fmt.Errorf("alphabet overlaps separator %q", s.cfg.Separator))
	}

	s.alphabet = []rune(s.cfg.Alphabet)
	s.allowed = make(map[rune]struct{}, len(s.alphabet))
	for _, r := range s.alphabet {
		s.allowed[r] = struct{}{}
	}
	return nil
}

// Config returns the shape this generator produces.
func (s *Segments) Config() Config {
	return s.cfg
}

// Part returns one random segment of PartLength characters.
func (s *Segments) Part() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.part()
}

func (s *Segments) part() string {
	var b strings.Builder
	b.Grow(s.cfg.PartLength)
	for range s.cfg.PartLength {
		b.WriteRune(s.alphabet[s.rnd.IntN(len(s.alphabet))])
	}
	return b.String()
}

// Generate returns Parts segments joined by the separator.
func (s *Segments) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := make([]string, s.cfg.Parts)
	for i := range parts {
		parts[i] = s.part()
	}
	return strings.Join(parts, s.cfg.Separator)
}

// Validate reports whether code has the segment count, segment length and
// alphabet this generator produces.
func (s *Segments) Validate(code string) bool {
	if s.cfg.Separator == "" {
		return s.validPart(code, s.cfg.Parts*s.cfg.PartLength)
	}

	parts := strings.Split(code, s.cfg.Separator)
	if len(parts) != s.cfg.Parts {
		return false
	}
	for _, p := range parts {
		if !s.validPart(p, s.cfg.PartLength) {
			return false
		}
	}
	return true
}

func (s *Segments) validPart(p string, length int) bool {
	n := 0
	for _, r := range p {
		if _, ok := s.allowed[r]; !ok {
			return false
		}
		n++
	}
	return n == length
}
