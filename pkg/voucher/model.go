package voucher

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrymomot/voucherkit/pkg/codegen"
)

// CodeField is the name of the field every voucher is keyed by.
const CodeField = "code"

// FieldSpec declares the constraints of one voucher field.
type FieldSpec struct {
	Name      string
	Required  bool
	Immutable bool
	// Generator, when set, produces values for the field and format-checks them.
	Generator codegen.Generator
}

// FieldOption adjusts a FieldSpec while a Model is built.
type FieldOption func(*FieldSpec)

func Required() FieldOption { return func(s *FieldSpec) { s.Required = true } }

func Optional() FieldOption { return func(s *FieldSpec) { s.Required = false } }

func Immutable() FieldOption { return func(s *FieldSpec) { s.Immutable = true } }

func Mutable() FieldOption { return func(s *FieldSpec) { s.Immutable = false } }

// WithGenerator attaches a code generator to the field.
func WithGenerator(g codegen.Generator) FieldOption {
	return func(s *FieldSpec) { s.Generator = g }
}

// FieldDef is a field declaration passed to NewModel.
type FieldDef struct {
	name string
	opts []FieldOption
}

// Field declares a field. Unless options say otherwise a field is optional
// and mutable; the code field starts required and immutable.
func Field(name string, opts ...FieldOption) FieldDef {
	return FieldDef{name: name, opts: opts}
}

// Model is an ordered, read-only schema of voucher fields.
// A nil *Model behaves like a model declaring only the code field.
type Model struct {
	order []string
	specs map[string]FieldSpec
}

var implicitCode = FieldSpec{Name: CodeField, Required: true, Immutable: true}

// NewModel builds a Model from field declarations in order.
// The code field is added first when not declared.
func NewModel(fields ...FieldDef) (*Model, error) {
	m := &Model{specs: make(map[string]FieldSpec, len(fields)+1)}

	declared := slices.ContainsFunc(fields, func(f FieldDef) bool { return f.name == CodeField })
	if !declared {
		m.order = append(m.order, CodeField)
		m.specs[CodeField] = implicitCode
	}

	for i, f := range fields {
		if f.name == "" {
			return nil, errors.Join(ErrInvalidModel, fmt.Errorf("field[%d]: name cannot be empty", i))
		}
		if _, exists := m.specs[f.name]; exists {
			return nil, errors.Join(ErrInvalidModel, fmt.Errorf("field '%s' declared twice", f.name))
		}
		m.order = append(m.order, f.name)
		m.specs[f.name] = buildSpec(f)
	}

	return m, nil
}

// MustNewModel is like NewModel but panics on an invalid declaration.
func MustNewModel(fields ...FieldDef) *Model {
	m, err := NewModel(fields...)
	if err != nil {
		panic(fmt.Sprintf("failed to create voucher model: %v", err))
	}
	return m
}

func buildSpec(f FieldDef) FieldSpec {
	spec := FieldSpec{Name: f.name}
	if f.name == CodeField {
		spec = implicitCode
	}
	for _, opt := range f.opts {
		if opt != nil {
			opt(&spec)
		}
	}
	spec.Name = f.name
	return spec
}

// Extend returns a new Model with fields appended; a declaration for an
// existing field replaces its spec in place. The receiver is not modified.
func (m *Model) Extend(fields ...FieldDef) (*Model, error) {
	out := &Model{specs: make(map[string]FieldSpec)}
	if m == nil {
		out.order = []string{CodeField}
		out.specs[CodeField] = implicitCode
	} else {
		out.order = slices.Clone(m.order)
		for k, v := range m.specs {
			out.specs[k] = v
		}
	}

	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if f.name == "" {
			return nil, errors.Join(ErrInvalidModel, fmt.Errorf("field[%d]: name cannot be empty", i))
		}
		if seen[f.name] {
			return nil, errors.Join(ErrInvalidModel, fmt.Errorf("field '%s' declared twice", f.name))
		}
		seen[f.name] = true

		if _, exists := out.specs[f.name]; !exists {
			out.order = append(out.order, f.name)
		}
		out.specs[f.name] = buildSpec(f)
	}
	return out, nil
}

// withCodeGenerator returns a copy of m whose code field uses g, keeping its flags.
func (m *Model) withCodeGenerator(g codegen.Generator) *Model {
	out, _ := m.Extend()
	spec := out.specs[CodeField]
	spec.Generator = g
	out.specs[CodeField] = spec
	return out
}

// Spec returns the declaration of a field.
func (m *Model) Spec(name string) (FieldSpec, bool) {
	if m == nil {
		if name == CodeField {
			return implicitCode, true
		}
		return FieldSpec{}, false
	}
	s, ok := m.specs[name]
	return s, ok
}

// Fields returns all declarations in model order.
func (m *Model) Fields() []FieldSpec {
	if m == nil {
		return []FieldSpec{implicitCode}
	}
	out := make([]FieldSpec, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.specs[name])
	}
	return out
}

// GeneratorFor returns the field's generator or the process default.
func (m *Model) GeneratorFor(name string) codegen.Generator {
	if s, ok := m.Spec(name); ok && s.Generator != nil {
		return s.Generator
	}
	return codegen.Default()
}

// formatChecker returns the generator whose Validate a field's values must pass.
// The code field is always checked.
func (m *Model) formatChecker(spec FieldSpec) codegen.Generator {
	if spec.Generator != nil {
		return spec.Generator
	}
	if spec.Name == CodeField {
		return codegen.Default()
	}
	return nil
}

// ValidateField checks value against the field's constraints. prior is the
// field's current value; pass Empty() when the field is being created.
// Undeclared fields are unconstrained.
func (m *Model) ValidateField(name string, value, prior Value) error {
	spec, ok := m.Spec(name)
	if !ok {
		return nil
	}

	if spec.Immutable && !prior.IsEmpty() && !prior.Equal(value) {
		return NewFieldError(name, value, ErrImmutable)
	}

	if value.IsEmpty() {
		if spec.Required {
			return NewFieldError(name, value, ErrRequired)
		}
		return nil
	}

	if gen := m.formatChecker(spec); gen != nil && !gen.Validate(value.String()) {
		return NewFieldError(name, value, ErrInvalidFormat)
	}

	return nil
}

// validateRecord checks a complete field set as if it were being created:
// every present field passes ValidateField and every required field is present.
func (m *Model) validateRecord(names []string, values map[string]Value) error {
	for _, name := range names {
		if err := m.ValidateField(name, values[name], Empty()); err != nil {
			return err
		}
	}
	for _, spec := range m.Fields() {
		if !spec.Required {
			continue
		}
		if _, ok := values[spec.Name]; !ok {
			return NewFieldError(spec.Name, Empty(), ErrRequired)
		}
	}
	return nil
}
