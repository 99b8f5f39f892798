package voucherio_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/voucherkit/pkg/voucher"
	"github.com/dmitrymomot/voucherkit/pkg/voucherio"
)

func campaignModel(t *testing.T) *voucher.Model {
	t.Helper()
	m, err := voucher.NewModel(
		voucher.Field("owner", voucher.Required(), voucher.Immutable()),
		voucher.Field("claimed_by"),
	)
	require.NoError(t, err)
	return m
}

func openTestdata(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestDecode(t *testing.T) {
	t.Parallel()

	decoders := map[string]func(*os.File) ([]voucherio.Record, error){
		"vouchers.yaml": func(f *os.File) ([]voucherio.Record, error) { return voucherio.DecodeYAML(f) },
		"vouchers.json": func(f *os.File) ([]voucherio.Record, error) { return voucherio.DecodeJSON(f) },
	}

	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			records, err := decode(openTestdata(t, name))
			require.NoError(t, err)
			require.Len(t, records, 2)

			assert.Equal(t, []string{"owner", "code", "uses", "active"}, records[0].Names())
			assert.Equal(t, []string{"code", "owner", "claimed_by", "note"}, records[1].Names())

			code, ok := records[0].Get("code")
			require.True(t, ok)
			assert.Equal(t, "FHUW-JSUJ-KSIQ", code)

			active, _ := records[0].Get("active")
			assert.Equal(t, true, active)

			uses, _ := records[0].Get("uses")
			v, err := voucher.ValueOf(uses)
			require.NoError(t, err)
			assert.True(t, v.Equal(voucher.Number(2)))

			note, ok := records[1].Get("note")
			assert.True(t, ok)
			assert.Nil(t, note)

			_, ok = records[1].Get("missing")
			assert.False(t, ok)
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		decode func(string) ([]voucherio.Record, error)
		input  string
		want   error
	}{
		{name: "yaml top-level mapping", decode: decodeYAML, input: "code: FHUW-JSUJ-KSIQ\n", want: voucherio.ErrInvalidDocument},
		{name: "yaml scalar record", decode: decodeYAML, input: "- just a string\n", want: voucherio.ErrInvalidRecord},
		{name: "yaml nested list", decode: decodeYAML, input: "- code: FHUW-JSUJ-KSIQ\n  tags: [a, b]\n", want: voucherio.ErrInvalidRecord},
		{name: "yaml nested map", decode: decodeYAML, input: "- meta:\n    a: 1\n", want: voucherio.ErrInvalidRecord},
		{name: "yaml syntax", decode: decodeYAML, input: "- [unclosed\n", want: voucherio.ErrInvalidDocument},
		{name: "json top-level object", decode: decodeJSON, input: `{"code": "FHUW-JSUJ-KSIQ"}`, want: voucherio.ErrInvalidDocument},
		{name: "json scalar record", decode: decodeJSON, input: `[1]`, want: voucherio.ErrInvalidRecord},
		{name: "json nested object", decode: decodeJSON, input: `[{"meta": {"a": 1}}]`, want: voucherio.ErrInvalidRecord},
		{name: "json nested array", decode: decodeJSON, input: `[{"tags": ["a"]}]`, want: voucherio.ErrInvalidRecord},
		{name: "json trailing array", decode: decodeJSON, input: `[{"code": "FHUW-JSUJ-KSIQ"}] [1]`, want: voucherio.ErrInvalidDocument},
		{name: "json trailing garbage", decode: decodeJSON, input: "[]\n}", want: voucherio.ErrInvalidDocument},
		{name: "json truncated", decode: decodeJSON, input: `[{"code": "FHUW`, want: voucherio.ErrInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			records, err := tt.decode(tt.input)
			assert.Nil(t, records)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	t.Parallel()

	records, err := voucherio.DecodeYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = voucherio.DecodeJSON(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = voucherio.DecodeJSON(strings.NewReader("[]\n\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestImport(t *testing.T) {
	t.Parallel()

	t.Run("validates against bag model", func(t *testing.T) {
		t.Parallel()
		records, err := voucherio.DecodeYAML(openTestdata(t, "vouchers.yaml"))
		require.NoError(t, err)

		bag := voucher.NewBag(voucher.WithModel(campaignModel(t)))
		require.NoError(t, voucherio.Import(bag, records))
		assert.Equal(t, []string{"FHUW-JSUJ-KSIQ", "QW7D-0PLA-ZZ19"}, bag.Codes())

		v, ok := bag.Find("QW7D-0PLA-ZZ19")
		require.True(t, ok)
		claimed, _ := v.Get("claimed_by")
		assert.Equal(t, "alan@example.com", claimed.String())
		assert.True(t, errors.Is(v.Set("owner", "sales"), voucher.ErrImmutable))
	})

	t.Run("missing code is generated", func(t *testing.T) {
		t.Parallel()
		records, err := voucherio.DecodeJSON(strings.NewReader(`[{"owner": "ops"}]`))
		require.NoError(t, err)

		bag := voucher.NewBag(voucher.WithModel(campaignModel(t)))
		require.NoError(t, voucherio.Import(bag, records))
		require.Equal(t, 1, bag.Len())
		assert.Regexp(t, `^[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}$`, bag.Codes()[0])
	})

	t.Run("stops at first bad record", func(t *testing.T) {
		t.Parallel()
		input := `[
			{"code": "AAAA-AAAA-AAAA", "owner": "a"},
			{"code": "BBBB-BBBB-BBBB"},
			{"code": "CCCC-CCCC-CCCC", "owner": "c"}
		]`
		records, err := voucherio.DecodeJSON(strings.NewReader(input))
		require.NoError(t, err)

		bag := voucher.NewBag(voucher.WithModel(campaignModel(t)))
		err = voucherio.Import(bag, records)
		require.True(t, errors.Is(err, voucher.ErrRequired))

		var me *voucher.MapError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, 1, me.Index)
		assert.Equal(t, []string{"AAAA-AAAA-AAAA"}, bag.Codes())
	})

	t.Run("duplicate codes", func(t *testing.T) {
		t.Parallel()
		records, err := voucherio.DecodeYAML(strings.NewReader("- code: AAAA-AAAA-AAAA\n- code: AAAA-AAAA-AAAA\n"))
		require.NoError(t, err)

		bag := voucher.NewBag()
		err = voucherio.Import(bag, records)
		assert.True(t, errors.Is(err, voucher.ErrDuplicateCode))
		assert.Equal(t, 1, bag.Len())
	})
}

func TestExportJSON(t *testing.T) {
	t.Parallel()

	t.Run("empty bag", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, voucherio.ExportJSON(&buf, voucher.NewBag()))
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("keeps field order", func(t *testing.T) {
		t.Parallel()
		bag := voucher.NewBag()
		require.NoError(t, bag.Add(voucher.MustNew(nil,
			voucher.F(voucher.CodeField, "AAAA-BBBB-CCCC"),
			voucher.F("uses", 2),
			voucher.F("ok", true),
			voucher.F("note", nil),
		)))
		require.NoError(t, bag.Add(voucher.MustNew(nil,
			voucher.F("owner", "x"),
			voucher.F(voucher.CodeField, "DDDD-EEEE-FFFF"),
		)))

		var buf bytes.Buffer
		require.NoError(t, voucherio.ExportJSON(&buf, bag))
		assert.Equal(t, "[\n"+
			`  {"code": "AAAA-BBBB-CCCC", "uses": 2, "ok": true, "note": null},`+"\n"+
			`  {"owner": "x", "code": "DDDD-EEEE-FFFF"}`+"\n"+
			"]\n", buf.String())
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	formats := []struct {
		name   string
		export func(*bytes.Buffer, *voucher.Bag) error
		decode func(string) ([]voucherio.Record, error)
	}{
		{
			name:   "yaml",
			export: func(b *bytes.Buffer, bag *voucher.Bag) error { return voucherio.ExportYAML(b, bag) },
			decode: decodeYAML,
		},
		{
			name:   "json",
			export: func(b *bytes.Buffer, bag *voucher.Bag) error { return voucherio.ExportJSON(b, bag) },
			decode: decodeJSON,
		},
	}

	for _, f := range formats {
		t.Run(f.name, func(t *testing.T) {
			t.Parallel()
			m := campaignModel(t)
			src := voucher.NewBag(voucher.WithModel(m))
			require.NoError(t, src.FillWith(20, func(i int) []voucher.FieldValue {
				fields := []voucher.FieldValue{voucher.F("owner", "team"), voucher.F("seq", i)}
				if i%3 == 0 {
					fields = append(fields, voucher.F("claimed_by", "123"), voucher.F("paid", i%2 == 0))
				}
				return fields
			}))

			var buf bytes.Buffer
			require.NoError(t, f.export(&buf, src))

			records, err := f.decode(buf.String())
			require.NoError(t, err)

			dst := voucher.NewBag(voucher.WithModel(m))
			require.NoError(t, voucherio.Import(dst, records))

			require.Equal(t, src.Codes(), dst.Codes())
			for v := range src.All() {
				got, ok := dst.Find(v.Code())
				require.True(t, ok)
				assert.True(t, v.Equal(got), "voucher %s", v.Code())
				assert.Equal(t, v.Names(), got.Names())
			}

			// "123" stays a string rather than becoming a number.
			first, _ := dst.Find(dst.Codes()[0])
			claimed, _ := first.Get("claimed_by")
			assert.Equal(t, voucher.KindString, claimed.Kind())
		})
	}
}

func TestFiles(t *testing.T) {
	t.Parallel()

	src := voucher.NewBag()
	require.NoError(t, src.FillWith(5, func(i int) []voucher.FieldValue {
		return []voucher.FieldValue{voucher.F("n", i)}
	}))

	for _, name := range []string{"out.yaml", "out.YML", "out.json"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, voucherio.WriteFile(path, src))

			dst := voucher.NewBag()
			require.NoError(t, voucherio.ReadFile(dst, path))
			assert.Equal(t, src.Codes(), dst.Codes())
		})
	}

	t.Run("unknown extension", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "out.csv")
		assert.ErrorIs(t, voucherio.WriteFile(path, src), voucherio.ErrUnknownFormat)
		assert.ErrorIs(t, voucherio.ReadFile(voucher.NewBag(), path), voucherio.ErrUnknownFormat)
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		err := voucherio.ReadFile(voucher.NewBag(), filepath.Join(t.TempDir(), "none.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func decodeYAML(s string) ([]voucherio.Record, error) {
	return voucherio.DecodeYAML(strings.NewReader(s))
}

func decodeJSON(s string) ([]voucherio.Record, error) {
	return voucherio.DecodeJSON(strings.NewReader(s))
}
