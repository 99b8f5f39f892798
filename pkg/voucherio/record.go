package voucherio

import "github.com/dmitrymomot/voucherkit/pkg/voucher"

// Record is one decoded voucher: its fields in document order.
type Record []voucher.FieldValue

// Get returns the raw value of the first field called name.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Names returns field names in document order.
func (r Record) Names() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Name
	}
	return out
}

// Import adds a voucher built from each record to b, validating it against
// b's model. It stops at the first bad record; the returned error is a
// *voucher.MapError carrying the record index.
func Import(b *voucher.Bag, records []Record) error {
	return voucher.Map(b, records, func(r Record) (*voucher.Voucher, error) {
		return voucher.New(b.Model(), r...)
	})
}
