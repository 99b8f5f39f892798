package voucher_test

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/voucherkit/pkg/voucher"
)

func Example() {
	model := voucher.MustNewModel(
		voucher.Field("owner", voucher.Required(), voucher.Immutable()),
		voucher.Field("claimed_by"),
	)

	bag := voucher.NewBag(
		voucher.WithModel(model),
		voucher.WithValidator(func(v *voucher.Voucher) bool {
			claimed, _ := v.Get("claimed_by")
			return claimed.IsEmpty()
		}, "This voucher has already been claimed"),
	)

	v := voucher.MustNew(model, voucher.F(voucher.CodeField, "FHUW-JSUJ-KSIQ"), voucher.F("owner", "Alan"))
	if err := bag.Add(v); err != nil {
		panic(err)
	}

	if _, err := bag.Validate("FHUW-JSUJ-KSIQ"); err == nil {
		fmt.Println("valid")
	}

	_ = v.Set("claimed_by", "Bob")
	_, err := bag.Validate("FHUW-JSUJ-KSIQ")
	if msg, ok := voucher.RuleMessage(err); ok {
		fmt.Println(msg)
	}

	err = v.Set("owner", "Carl")
	fmt.Println(errors.Is(err, voucher.ErrImmutable))

	// Output:
	// valid
	// This voucher has already been claimed
	// true
}
