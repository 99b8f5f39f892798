// Package voucher generates, collects, and validates short voucher codes bound
// to arbitrary metadata, entirely in memory.
//
// # Concepts
//
//   • Model – an ordered schema. Each field may be required, immutable, and
//     may carry a codegen.Generator that format-checks its values. The "code"
//     field always exists and defaults to required and immutable.
//   • Voucher – an ordered set of fields (tagged scalars: string, number,
//     bool, empty) optionally bound to a Model. Every write is validated;
//     a failed write leaves the voucher untouched.
//   • Bag – an insertion-ordered collection keyed by code, with bulk
//     generation, random selection, and a chain of validators.
//
// Persistence is the caller's concern: populate a bag with Map from whatever
// records you load, and walk All to save it (package voucherio does this for
// YAML and JSON).
//
// # Usage
//
//	import "github.com/dmitrymomot/voucherkit/pkg/voucher"
//
//	model := voucher.MustNewModel(
//	    voucher.Field("owner", voucher.Required(), voucher.Immutable()),
//	    voucher.Field("claimed_by"),
//	)
//
//	bag := voucher.NewBag(voucher.WithModel(model))
//	err := bag.FillWith(100, func(i int) []voucher.FieldValue {
//	    return []voucher.FieldValue{voucher.F("owner", "marketing")}
//	})
//
//	bag.AddValidator(func(v *voucher.Voucher) bool {
//	    claimed, _ := v.Get("claimed_by")
//	    return claimed.IsEmpty()
//	}, "This voucher has already been claimed")
//
//	v, err := bag.PickValid()          // random unclaimed voucher
//	v, err = bag.Validate("FHUW-JSUJ-KSIQ")
//	if msg, ok := voucher.RuleMessage(err); ok {
//	    // show msg to the user
//	}
//
// # Selection
//
// Pick with a predicate walks a random permutation of the bag, drawing
// without replacement, so every voucher is examined at most once and the
// call always terminates. The random source is injectable with WithRand for
// reproducible tests.
//
// # Error Handling
//
// Field constraint violations are *FieldError values unwrapping to
// ErrRequired, ErrImmutable, ErrInvalidFormat or ErrUnsupportedValue. Bag
// operations return ErrDuplicateCode, ErrModelMismatch,
// ErrGenerationExhausted, ErrNoValidVouchers and ErrCodeNotFound; a failed
// validator yields a *RuleError that matches ErrVoucherNotValid and whose
// Error() is the validator's message. Map failures come wrapped in *MapError
// with the offending index and item. Use errors.Is / errors.As throughout.
//
// # Concurrency
//
// Model is read-only after construction and safe to share. Voucher and Bag
// are not synchronised; guard them with your own lock when shared between
// goroutines.
//
// # Configuration
//
// LoadConfig reads VOUCHER_CODE_* and VOUCHER_FILL_MAX_ATTEMPTS from the
// environment (optionally seeded from .env files) and NewBagFromConfig builds
// a bag whose code generator follows it.
package voucher
