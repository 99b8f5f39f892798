package voucherio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/voucherkit/pkg/voucher"
)

type codec struct {
	decode func(io.Reader) ([]Record, error)
	encode func(io.Writer, *voucher.Bag) error
}

func codecFor(path string) (codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return codec{decode: DecodeYAML, encode: ExportYAML}, nil
	case ".json":
		return codec{decode: DecodeJSON, encode: ExportJSON}, nil
	default:
		return codec{}, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// ReadFile decodes path by its extension and imports the records into b.
func ReadFile(b *voucher.Bag, path string) error {
	c, err := codecFor(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := c.decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return Import(b, records)
}

// WriteFile exports b to path in the format named by its extension,
// replacing any existing file.
func WriteFile(path string, b *voucher.Bag) (err error) {
	c, err := codecFor(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return c.encode(f, b)
}
