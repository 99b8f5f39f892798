package voucherio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrymomot/voucherkit/pkg/voucher"
)

// DecodeJSON reads a JSON array of objects. An empty stream yields no records.
func DecodeJSON(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if tok != json.Delim('[') {
		return nil, ErrInvalidDocument
	}

	var records []Record
	for i := 0; dec.More(); i++ {
		rec, err := jsonRecord(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}

	// closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after the closing bracket", ErrInvalidDocument)
	}
	return records, nil
}

func jsonRecord(dec *json.Decoder) (Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidRecord)
	}

	rec := Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Join(ErrInvalidDocument, err)
		}
		name, _ := tok.(string)

		tok, err = dec.Token()
		if err != nil {
			return nil, errors.Join(ErrInvalidDocument, err)
		}
		v, err := jsonScalar(tok)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		rec = append(rec, voucher.F(name, v))
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	return rec, nil
}

func jsonScalar(tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		return nil, fmt.Errorf("%w: nested %s is not a scalar", ErrInvalidRecord, t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, errors.Join(ErrInvalidRecord, err)
		}
		return f, nil
	default:
		return t, nil
	}
}

// ExportJSON writes b as a JSON array, one object per line in bag order.
func ExportJSON(w io.Writer, b *voucher.Bag) error {
	bw := bufio.NewWriter(w)
	bw.WriteByte('[')

	n := 0
	for v := range b.All() {
		if n > 0 {
			bw.WriteByte(',')
		}
		n++
		bw.WriteString("\n  {")

		i := 0
		for name, val := range v.Fields() {
			key, err := json.Marshal(name)
			if err != nil {
				return err
			}
			value, err := json.Marshal(val.Any())
			if err != nil {
				return fmt.Errorf("voucher %s: field %q: %w", v.Code(), name, err)
			}
			if i > 0 {
				bw.WriteString(", ")
			}
			i++
			bw.Write(key)
			bw.WriteString(": ")
			bw.Write(value)
		}
		bw.WriteByte('}')
	}

	if n > 0 {
		bw.WriteByte('\n')
	}
	bw.WriteString("]\n")
	return bw.Flush()
}
