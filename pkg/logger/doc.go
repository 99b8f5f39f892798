// Package logger builds slog loggers for voucherkit components and keeps the
// attribute names they emit consistent.
//
// New creates a *slog.Logger configured by Option functions:
//
//   • WithFormat / WithTextFormatter / WithJSONFormatter – output format.
//   • WithLevel – minimum level.
//   • WithOutput – destination writer.
//   • WithAttr – static attributes attached to every record.
//   • WithDevelopment / WithProduction – per-environment defaults.
//
// Discard returns a logger that drops every record; it is what a voucher.Bag
// uses until a logger is supplied.
//
// Attribute helpers in attr.go (Code, Field, Attempts, Count, Index, Rule,
// Component, Error, Group) return slog.Attr values with fixed keys so log queries keep
// working across packages.
//
// # Usage
//
//	import "github.com/dmitrymomot/voucherkit/pkg/logger"
//
//	log := logger.New(logger.WithDevelopment("vouchers"))
//	bag := voucher.NewBag(voucher.WithLogger(log))
//
//	log.Info("voucher redeemed", logger.Code(v.Code()))
//
// Error returns an empty attribute for a nil error, so
//
//	log.Info("fill finished", logger.Error(err))
//
// needs no nil check.
package logger
