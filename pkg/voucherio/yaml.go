package voucherio

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/voucherkit/pkg/voucher"
)

// DecodeYAML reads a YAML sequence of mappings. An empty stream yields no records.
func DecodeYAML(r io.Reader) ([]Record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Join(ErrInvalidDocument, err)
	}

	root := resolve(&doc)
	if root.Kind != yaml.SequenceNode {
		return nil, ErrInvalidDocument
	}

	records := make([]Record, 0, len(root.Content))
	for i, item := range root.Content {
		rec, err := yamlRecord(resolve(item))
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// resolve unwraps document and alias nodes.
func resolve(n *yaml.Node) *yaml.Node {
	for {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) > 0:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}
}

func yamlRecord(n *yaml.Node) (Record, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping", ErrInvalidRecord, n.Line)
	}

	rec := make(Record, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := resolve(n.Content[i]), resolve(n.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: field name must be a scalar", ErrInvalidRecord, key.Line)
		}
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: field %q must be a scalar", ErrInvalidRecord, val.Line, key.Value)
		}

		v, err := yamlScalar(val)
		if err != nil {
			return nil, errors.Join(ErrInvalidRecord, fmt.Errorf("line %d: field %q: %w", val.Line, key.Value, err))
		}
		rec = append(rec, voucher.F(key.Value, v))
	}
	return rec, nil
}

func yamlScalar(n *yaml.Node) (any, error) {
	// Timestamps stay text; the voucher model has no time kind.
	if n.ShortTag() == "!!timestamp" {
		return n.Value, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// ExportYAML writes b as a YAML sequence, one mapping per voucher in bag order.
func ExportYAML(w io.Writer, b *voucher.Bag) error {
	root := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for v := range b.All() {
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for name, val := range v.Fields() {
			var vn yaml.Node
			if err := vn.Encode(val.Any()); err != nil {
				return fmt.Errorf("voucher %s: field %q: %w", v.Code(), name, err)
			}
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
				&vn,
			)
		}
		root.Content = append(root.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}
