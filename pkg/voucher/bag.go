package voucher

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/dmitrymomot/voucherkit/pkg/logger"
)

// Validator is a named acceptance rule evaluated by Bag.Validate.
type Validator struct {
	Check   func(*Voucher) bool
	Message string
}

// Bag is an insertion-ordered collection of vouchers with unique codes.
// A Bag is not safe for concurrent use; callers serialise access.
type Bag struct {
	model       *Model
	rnd         *rand.Rand
	log         *slog.Logger
	maxAttempts int

	items      []*Voucher
	index      map[string]*Voucher
	validators []Validator
}

// NewBag creates an empty bag.
func NewBag(opts ...Option) *Bag {
	b := &Bag{
		log:         logger.Discard(),
		maxAttempts: DefaultMaxAttempts,
		index:       make(map[string]*Voucher),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rnd == nil {
		seed := uint64(time.Now().UnixNano())
		b.rnd = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	b.log = b.log.With(logger.Component("voucher.bag"))
	return b
}

// Model returns the bag's schema; nil when unbound.
func (b *Bag) Model() *Model {
	return b.model
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Add appends v. It fails when the code is taken, when v already lives in
// another bag, or when v does not satisfy the bag's Model. On success v is
// bound to the bag's Model.
func (b *Bag) Add(v *Voucher) error {
	if v == nil {
		return ErrNilVoucher
	}

	code := v.Code()
	if _, exists := b.index[code]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCode, code)
	}
	if v.owner != nil && v.owner != b {
		return ErrForeignVoucher
	}

	if b.model != nil && v.model != b.model {
		if err := b.model.validateRecord(v.names, v.values); err != nil {
			var fe *FieldError
			if errors.As(err, &fe) {
				b.log.Debug("voucher does not fit bag model",
					logger.Code(code), logger.Field(fe.Field), logger.Error(fe.Err))
			}
			return fmt.Errorf("%w: %w", ErrModelMismatch, err)
		}
		v.model = b.model
	}

	v.owner = b
	b.items = append(b.items, v)
	b.index[code] = v
	return nil
}

// rekey moves v's index entry after its code changed.
func (b *Bag) rekey(v *Voucher, from, to string) error {
	if _, taken := b.index[to]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateCode, to)
	}
	delete(b.index, from)
	b.index[to] = v
	return nil
}

// Fill generates n vouchers with the bag's Model and adds them.
func (b *Bag) Fill(n int) error {
	return b.FillWith(n, nil)
}

// FillWith is Fill where fields(i) supplies the extra fields of the i-th voucher.
// A code returned by fields is used as is instead of generating one.
// Vouchers added before a failure stay in the bag.
func (b *Bag) FillWith(n int, fields func(i int) []FieldValue) error {
	for i := range n {
		var extra []FieldValue
		if fields != nil {
			extra = fields(i)
		}

		v, err := b.generate(extra)
		if err != nil {
			return fmt.Errorf("fill item %d: %w", i, err)
		}
		if err := b.Add(v); err != nil {
			return fmt.Errorf("fill item %d: %w", i, err)
		}
	}

	if n > 0 {
		b.log.Debug("bag filled", logger.Count(n))
	}
	return nil
}

// generate builds one voucher whose code is not yet in the bag.
func (b *Bag) generate(fields []FieldValue) (*Voucher, error) {
	if slices.ContainsFunc(fields, func(f FieldValue) bool { return f.Name == CodeField }) {
		return New(b.model, fields...)
	}

	gen := b.model.GeneratorFor(CodeField)
	for attempt := 1; attempt <= b.maxAttempts; attempt++ {
		code := gen.Generate()
		if _, taken := b.index[code]; taken {
			b.log.Debug("voucher code collision", logger.Code(code), logger.Attempts(attempt))
			continue
		}
		return New(b.model, append([]FieldValue{F(CodeField, code)}, fields...)...)
	}

	b.log.Warn("voucher code space exhausted",
		logger.Group("fill", logger.Attempts(b.maxAttempts), logger.Count(len(b.items))),
	)
	return nil, fmt.Errorf("%w after %d attempts", ErrGenerationExhausted, b.maxAttempts)
}

// Find returns the voucher with the given code.
func (b *Bag) Find(code string) (*Voucher, bool) {
	v, ok := b.index[code]
	return v, ok
}

// Pick returns a random voucher accepted by pred; a nil pred accepts any.
// Candidates are drawn without replacement, so each voucher is offered to
// pred at most once and the call ends after at most Len evaluations.
func (b *Bag) Pick(pred func(*Voucher) bool) (*Voucher, error) {
	n := len(b.items)
	if n == 0 {
		return nil, ErrNoValidVouchers
	}
	if pred == nil {
		return b.items[b.rnd.IntN(n)], nil
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	// Lazy Fisher-Yates: position i is fixed just before it is examined.
	for i := range n {
		j := i + b.rnd.IntN(n-i)
		perm[i], perm[j] = perm[j], perm[i]
		if v := b.items[perm[i]]; pred(v) {
			return v, nil
		}
	}
	return nil, ErrNoValidVouchers
}

// PickValid returns a random voucher that passes every registered validator.
func (b *Bag) PickValid() (*Voucher, error) {
	return b.Pick(b.passes)
}

func (b *Bag) passes(v *Voucher) bool {
	for _, rule := range b.validators {
		if !rule.Check(v) {
			return false
		}
	}
	return true
}

// AddValidator appends a rule to the validator chain. Rules run in
// registration order. A nil check is ignored.
func (b *Bag) AddValidator(check func(*Voucher) bool, message string) {
	if check == nil {
		return
	}
	b.validators = append(b.validators, Validator{Check: check, Message: message})
}

// Validators returns a copy of the validator chain.
func (b *Bag) Validators() []Validator {
	return slices.Clone(b.validators)
}

// Validate looks up code and runs the validator chain, stopping at the first
// failing rule. The returned *RuleError carries that rule's message.
func (b *Bag) Validate(code string) (*Voucher, error) {
	v, ok := b.index[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCodeNotFound, code)
	}

	for _, rule := range b.validators {
		if !rule.Check(v) {
			b.log.Debug("voucher rejected", logger.Code(code), logger.Rule(rule.Message))
			return nil, NewRuleError(code, rule.Message)
		}
	}
	return v, nil
}

// All yields vouchers in insertion order.
func (b *Bag) All() iter.Seq[*Voucher] {
	return func(yield func(*Voucher) bool) {
		for _, v := range b.items {
			if !yield(v) {
				return
			}
		}
	}
}

// Codes returns all codes in insertion order.
func (b *Bag) Codes() []string {
	out := make([]string, len(b.items))
	for i, v := range b.items {
		out[i] = v.Code()
	}
	return out
}

// Map builds a voucher from each item with transform and adds it, in order.
// It stops at the first failure and reports the item in a *MapError.
func Map[T any](b *Bag, items []T, transform func(T) (*Voucher, error)) error {
	return MapSeq(b, slices.Values(items), transform)
}

// MapSeq is Map over an iterator.
func MapSeq[T any](b *Bag, items iter.Seq[T], transform func(T) (*Voucher, error)) error {
	i := 0
	for item := range items {
		v, err := transform(item)
		if err == nil {
			err = b.Add(v)
		}
		if err != nil {
			b.log.Debug("map stopped", logger.Index(i), logger.Error(err))
			return NewMapError(i, item, err)
		}
		i++
	}
	return nil
}
