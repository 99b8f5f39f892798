package voucher

import (
	"errors"
	"fmt"
)

var (
	ErrRequired            = errors.New("required field is empty")
	ErrImmutable           = errors.New("immutable field cannot be changed")
	ErrInvalidFormat       = errors.New("field value has invalid format")
	ErrDuplicateCode       = errors.New("voucher code already exists")
	ErrModelMismatch       = errors.New("voucher does not satisfy bag model")
	ErrGenerationExhausted = errors.New("unable to generate unique voucher code")
	ErrNoValidVouchers     = errors.New("no valid vouchers")
	ErrCodeNotFound        = errors.New("voucher code not found")
	ErrVoucherNotValid     = errors.New("voucher is not valid")
	ErrUnsupportedValue    = errors.New("unsupported field value type")
	ErrInvalidModel        = errors.New("invalid voucher model")
	ErrInvalidConfig       = errors.New("invalid voucher configuration")
	ErrEmptyFieldName      = errors.New("field name cannot be empty")
	ErrForeignVoucher      = errors.New("voucher belongs to another bag")
	ErrNilVoucher          = errors.New("voucher cannot be nil")
)

// FieldError reports a constraint violation on a single voucher field.
// It unwraps to ErrRequired, ErrImmutable, ErrInvalidFormat or ErrUnsupportedValue.
type FieldError struct {
	Field string
	Value Value
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value.IsEmpty() {
		return fmt.Sprintf("field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("field '%s' (%q): %v", e.Field, e.Value.String(), e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func NewFieldError(field string, value Value, err error) *FieldError {
	return &FieldError{Field: field, Value: value, Err: err}
}

// RuleError reports the first registered validator a voucher failed.
// Its message is the validator's message, suitable for showing to end users.
type RuleError struct {
	Code    string
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrVoucherNotValid) hold for every RuleError.
func (e *RuleError) Is(target error) bool {
	return target == ErrVoucherNotValid
}

func NewRuleError(code, message string) *RuleError {
	return &RuleError{Code: code, Message: message}
}

// MapError reports which input item stopped a Map call.
type MapError struct {
	Index int
	Item  any
	Err   error
}

func (e *MapError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *MapError) Unwrap() error {
	return e.Err
}

func NewMapError(index int, item any, err error) *MapError {
	return &MapError{Index: index, Item: item, Err: err}
}

func IsFieldError(err error) bool {
	var e *FieldError
	return errors.As(err, &e)
}

func IsRuleError(err error) bool {
	var e *RuleError
	return errors.As(err, &e)
}

// RuleMessage returns the validator message carried by err, if any.
func RuleMessage(err error) (string, bool) {
	var e *RuleError
	if errors.As(err, &e) {
		return e.Message, true
	}
	return "", false
}
