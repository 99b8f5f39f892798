package voucher

import (
	"iter"
	"maps"
	"slices"
)

// FieldValue is a field name paired with a raw Go value, see F.
type FieldValue struct {
	Name  string
	Value any
}

// F pairs a field name with a value. The value is converted with ValueOf
// when the voucher is built.
func F(name string, value any) FieldValue {
	return FieldValue{Name: name, Value: value}
}

// Voucher is an ordered set of fields keyed by its code.
// Constraints of the bound Model are enforced on every write.
type Voucher struct {
	model  *Model
	owner  *Bag
	names  []string
	values map[string]Value
}

// New builds a voucher from fields, validating each against model.
// A missing code is generated with the model's code generator and placed first.
// Construction is all-or-nothing: the first violation is returned and no voucher.
func New(model *Model, fields ...FieldValue) (*Voucher, error) {
	v := &Voucher{
		model:  model,
		names:  make([]string, 0, len(fields)+1),
		values: make(map[string]Value, len(fields)+1),
	}

	if !slices.ContainsFunc(fields, func(f FieldValue) bool { return f.Name == CodeField }) {
		code := String(model.GeneratorFor(CodeField).Generate())
		if err := model.ValidateField(CodeField, code, Empty()); err != nil {
			return nil, err
		}
		v.put(CodeField, code)
	}

	for _, f := range fields {
		if f.Name == "" {
			return nil, ErrEmptyFieldName
		}
		val, err := ValueOf(f.Value)
		if err != nil {
			return nil, NewFieldError(f.Name, Empty(), err)
		}
		// A name repeated in the input is validated against its earlier value.
		if err := model.ValidateField(f.Name, val, v.values[f.Name]); err != nil {
			return nil, err
		}
		v.put(f.Name, val)
	}

	for _, spec := range model.Fields() {
		if !spec.Required {
			continue
		}
		if _, ok := v.values[spec.Name]; !ok {
			return nil, NewFieldError(spec.Name, Empty(), ErrRequired)
		}
	}

	return v, nil
}

// MustNew is like New but panics on a constraint violation.
func MustNew(model *Model, fields ...FieldValue) *Voucher {
	v, err := New(model, fields...)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Voucher) put(name string, val Value) {
	if _, exists := v.values[name]; !exists {
		v.names = append(v.names, name)
	}
	v.values[name] = val
}

// Get returns a field's value and whether the field is set.
func (v *Voucher) Get(name string) (Value, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Set validates and writes one field. On error the voucher is unchanged.
// Writing the current value to an immutable field succeeds as a no-op.
func (v *Voucher) Set(name string, value any) error {
	if name == "" {
		return ErrEmptyFieldName
	}
	val, err := ValueOf(value)
	if err != nil {
		return NewFieldError(name, Empty(), err)
	}

	prior := v.values[name]
	if err := v.model.ValidateField(name, val, prior); err != nil {
		return err
	}

	if name == CodeField && v.owner != nil && !prior.Equal(val) {
		if err := v.owner.rekey(v, prior.String(), val.String()); err != nil {
			return err
		}
	}

	v.put(name, val)
	return nil
}

// Code returns the voucher code; "" for a nil voucher.
func (v *Voucher) Code() string {
	if v == nil {
		return ""
	}
	return v.values[CodeField].String()
}

// String returns the code, the canonical external form of a voucher.
func (v *Voucher) String() string {
	return v.Code()
}

// Model returns the schema the voucher is bound to; nil when unbound.
func (v *Voucher) Model() *Model {
	return v.model
}

// Len returns the number of fields set.
func (v *Voucher) Len() int {
	return len(v.names)
}

// Names returns field names in insertion order.
func (v *Voucher) Names() []string {
	return slices.Clone(v.names)
}

// Fields yields name/value pairs in insertion order.
func (v *Voucher) Fields() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range v.names {
			if !yield(name, v.values[name]) {
				return
			}
		}
	}
}

// Map returns a snapshot of the fields as native Go values.
func (v *Voucher) Map() map[string]any {
	out := make(map[string]any, len(v.names))
	for name, val := range v.Fields() {
		out[name] = val.Any()
	}
	return out
}

// Clone returns a detached copy sharing the same Model.
func (v *Voucher) Clone() *Voucher {
	return &Voucher{
		model:  v.model,
		names:  slices.Clone(v.names),
		values: maps.Clone(v.values),
	}
}

// Equal reports whether both vouchers hold the same fields with equal values.
func (v *Voucher) Equal(other *Voucher) bool {
	if v == nil || other == nil {
		return v == other
	}
	if len(v.values) != len(other.values) {
		return false
	}
	for name, val := range v.values {
		o, ok := other.values[name]
		if !ok || !val.Equal(o) {
			return false
		}
	}
	return true
}
