// Package codegen produces and format-checks voucher code strings.
//
// A code generator is any value implementing Generator: it can produce one
// short random segment (Part), compose a complete code (Generate), and tell
// whether an arbitrary string is a well-formed code for its policy (Validate).
// Validate is a pure format check. It never requires that the code was
// actually produced by the same instance, so codes imported from elsewhere
// are accepted as long as they have the right shape.
//
// # Generators
//
//   • Segments – the default policy: three groups of four uppercase
//     alphanumeric characters joined by "-", e.g. "FHUW-JSUJ-KSIQ". Group
//     count, group length, alphabet and separator are configurable.
//   • UUID – random version 4 UUIDs backed by github.com/google/uuid.
//
// Codes are display codes, not secrets. Segments draws from math/rand/v2 and
// the source is injectable with WithRand so tests can pin exact output:
//
//	gen := codegen.MustNew(codegen.WithRand(rand.New(rand.NewPCG(1, 2))))
//	code := gen.Generate() // same value on every run
//
// # Usage
//
//	import "github.com/dmitrymomot/voucherkit/pkg/codegen"
//
//	gen := codegen.Default()
//	code := gen.Generate()
//	if !gen.Validate(userInput) {
//	    // reject malformed input before touching storage
//	}
//
// Custom shapes are built with options or from a Config loaded from the
// environment:
//
//	gen, err := codegen.New(
//	    codegen.WithParts(4),
//	    codegen.WithPartLength(5),
//	    codegen.WithAlphabet("23456789ABCDEFGHJKLMNPQRSTUVWXYZ"),
//	)
//
// # Error Handling
//
// Generation never fails. Construction returns ErrInvalidConfig when the
// requested shape cannot produce codes that Validate would accept.
package codegen
