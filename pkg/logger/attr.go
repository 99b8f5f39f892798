package logger

import "log/slog"

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Code records a voucher code under the key "code".
func Code(code string) slog.Attr {
	return slog.String("code", code)
}

// Field records a voucher field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Attempts records how many tries an operation took under the key "attempts".
func Attempts(n int) slog.Attr {
	return slog.Int("attempts", n)
}

// Count records a number of items under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Index records a position in an input sequence under the key "index".
func Index(i int) slog.Attr {
	return slog.Int("index", i)
}

// Rule records a validator message under the key "rule".
func Rule(message string) slog.Attr {
	return slog.String("rule", message)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
