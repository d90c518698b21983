// Copyright 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package pgwire

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/UNO-SOFT/xlstream"
)

func be16(v uint16) []byte { return binary.BigEndian.AppendUint16(nil, v) }
func be32(v uint32) []byte { return binary.BigEndian.AppendUint32(nil, v) }
func be64(v uint64) []byte { return binary.BigEndian.AppendUint64(nil, v) }

// numeric builds the binary representation of a numeric.
func numeric(weight int16, sign, dscale uint16, digits ...uint16) []byte {
	b := binary.BigEndian.AppendUint16(nil, uint16(len(digits)))
	b = binary.BigEndian.AppendUint16(b, uint16(weight))
	b = binary.BigEndian.AppendUint16(b, sign)
	b = binary.BigEndian.AppendUint16(b, dscale)
	for _, d := range digits {
		b = binary.BigEndian.AppendUint16(b, d)
	}
	return b
}

func TestDecode(t *testing.T) {
	neg := func(i int64) uint64 { return uint64(i) }
	d := NewDecoder()
	for _, tc := range []struct {
		Name string
		OID  uint32
		Raw  []byte
		Want string
	}{
		{"int2", OIDInt2, be16(uint16(0xffff)), "-1"},
		{"int2_max", OIDInt2, be16(math.MaxInt16), "32767"},
		{"int4", OIDInt4, be32(42), "42"},
		{"int4_neg", OIDInt4, be32(uint32(0xfffffff6)), "-10"},
		{"int8", OIDInt8, be64(1 << 40), "1099511627776"},
		{"int8_min", OIDInt8, be64(neg(math.MinInt64)), "-9223372036854775808"},
		{"float4", OIDFloat4, be32(math.Float32bits(0.1)), "0.1"},
		{"float8", OIDFloat8, be64(math.Float64bits(1.5)), "1.5"},
		{"float8_neg", OIDFloat8, be64(math.Float64bits(-1234.25)), "-1234.25"},
		{"float8_nan", OIDFloat8, be64(math.Float64bits(math.NaN())), ""},
		{"float8_neginf", OIDFloat8, be64(math.Float64bits(math.Inf(-1))), ""},
		{"float4_inf", OIDFloat4, be32(math.Float32bits(float32(math.Inf(1)))), ""},
		{"float4_nan", OIDFloat4, be32(0x7fc00000), ""},
		{"numeric", OIDNumeric, numeric(0, 0, 2, 123, 4500), "123.45"},
		{"numeric_neg", OIDNumeric, numeric(-1, 0x4000, 1, 5000), "-0.5"},
		{"numeric_big", OIDNumeric, numeric(1, 0, 0, 12, 3456), "123456"},
		{"numeric_zero", OIDNumeric, numeric(0, 0, 2), "0.00"},
		{"numeric_nan", OIDNumeric, numeric(0, 0xC000, 0), "NaN"},
		{"numeric_inf", OIDNumeric, numeric(0, 0xD000, 0), "Infinity"},
		{"numeric_neginf", OIDNumeric, numeric(0, 0xF000, 0), "-Infinity"},
		{"money", OIDMoney, be64(123456), "$1234.56"},
		{"money_neg", OIDMoney, be64(neg(-5)), "-$0.05"},
		{"timestamp_pg_epoch", OIDTimestamp, be64(0), "2000-01-01 12:00:00 AM"},
		{"timestamp_unix_epoch", OIDTimestamp, be64(neg(-946_684_800_000_000)), "1970-01-01 12:00:00 AM"},
		{"timestamp_pm", OIDTimestamp, be64(uint64(13*3600+4*60+5) * 1_000_000), "2000-01-01 01:04:05 PM"},
		{"timestamp_before_pg_epoch", OIDTimestamp, be64(neg(-1)), "1999-12-31 11:59:59 PM"},
		{"timestamp_before_unix_epoch", OIDTimestamp, be64(neg(-946_684_800_000_000 - 1_500_000)), "1969-12-31 11:59:58 PM"},
		{"timestamp_fraction", OIDTimestamp, be64(1_999_999), "2000-01-01 12:00:01 AM"},
		{"timestamp_inf", OIDTimestamp, be64(math.MaxInt64), "infinity"},
		{"timestamp_neginf", OIDTimestamp, be64(neg(math.MinInt64)), "-infinity"},
		{"text", OIDText, []byte("árvíztűrő <tükörfúrógép>"), "árvíztűrő <tükörfúrógép>"},
		{"varchar", OIDVarchar, []byte("x"), "x"},
		{"bpchar", OIDBPChar, []byte("ab  "), "ab  "},
		{"name", OIDName, []byte("pg_class"), "pg_class"},
		{"unknown", OIDUnknown, []byte("?"), "?"},

		{"int2_short", OIDInt2, []byte{1}, ""},
		{"int4_short", OIDInt4, []byte{1, 2, 3}, ""},
		{"int8_long", OIDInt8, make([]byte, 9), ""},
		{"float4_short", OIDFloat4, []byte{}, ""},
		{"float8_short", OIDFloat8, []byte{1, 2}, ""},
		{"numeric_short", OIDNumeric, []byte{0, 1, 0}, ""},
		{"numeric_truncated_digits", OIDNumeric, numeric(0, 0, 0, 1, 2)[:10], ""},
		{"money_short", OIDMoney, be32(1), ""},
		{"timestamp_short", OIDTimestamp, be32(1), ""},
		{"bool_unsupported", 16, []byte{1}, ""},
		{"null", OIDInt4, nil, ""},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			if got := string(d.Decode(tc.OID, tc.Raw)); got != tc.Want {
				t.Errorf("got %q, wanted %q", got, tc.Want)
			}
		})
	}
}

func TestAppendTextFormat(t *testing.T) {
	d := NewDecoder()
	got := d.Append([]byte("x="), OIDInt4, TextFormat, []byte("42"))
	if string(got) != "x=42" {
		t.Errorf("got %q", got)
	}
	// any type in text format is passed through
	if got := d.Append(nil, 3802, TextFormat, []byte(`{"a":1}`)); string(got) != `{"a":1}` {
		t.Errorf("got %q", got)
	}
	if got := d.Append(nil, OIDInt4, TextFormat, nil); len(got) != 0 {
		t.Errorf("NULL: got %q", got)
	}
}

func TestRegisterText(t *testing.T) {
	const citext = 16_385
	d := NewDecoder()
	if d.Binary(citext) {
		t.Error("citext is binary before registration")
	}
	if got := d.Decode(citext, []byte("Hello")); len(got) != 0 {
		t.Errorf("unregistered: got %q", got)
	}
	d.RegisterText("citext", citext)
	if !d.Binary(citext) {
		t.Error("citext is not binary after registration")
	}
	if got := string(d.Decode(citext, []byte("Hello"))); got != "Hello" {
		t.Errorf("got %q", got)
	}
	if got := d.TypeName(citext); got != "citext" {
		t.Errorf("type name: %q", got)
	}
	d.RegisterText("nothing", 0)
	if d.Binary(0) {
		t.Error("oid 0 registered")
	}
}

func TestBinaryAndCellType(t *testing.T) {
	d := NewDecoder()
	for _, tc := range []struct {
		OID    uint32
		Binary bool
		Type   xlstream.CellType
	}{
		{OIDInt2, true, xlstream.CellNumber},
		{OIDInt4, true, xlstream.CellNumber},
		{OIDInt8, true, xlstream.CellNumber},
		{OIDFloat4, true, xlstream.CellNumber},
		{OIDFloat8, true, xlstream.CellNumber},
		{OIDNumeric, true, xlstream.CellNumber},
		{OIDMoney, true, xlstream.CellString},
		{OIDTimestamp, true, xlstream.CellString},
		{OIDText, true, xlstream.CellString},
		{OIDVarchar, true, xlstream.CellString},
		{16, false, xlstream.CellString},   // bool
		{1082, false, xlstream.CellString}, // date
		{2950, false, xlstream.CellString}, // uuid
	} {
		if got := d.Binary(tc.OID); got != tc.Binary {
			t.Errorf("%d: Binary=%t", tc.OID, got)
		}
		if got := d.CellType(tc.OID); got != tc.Type {
			t.Errorf("%d: CellType=%q", tc.OID, got)
		}
	}
}

func TestDecodeNeverPanics(t *testing.T) {
	d := NewDecoder()
	oids := []uint32{OIDInt2, OIDInt4, OIDInt8, OIDFloat4, OIDFloat8, OIDNumeric, OIDMoney, OIDTimestamp, 0, 16}
	var raw []byte
	for n := 0; n < 24; n++ {
		for _, oid := range oids {
			_ = d.Decode(oid, raw)
		}
		raw = append(raw, byte(0xff-n))
	}
	// digits claiming more than present, and garbage sign
	for _, b := range [][]byte{
		numeric(0, 0, 0, 1)[:8],
		numeric(0, 0x1234, 3, 1, 2),
		numeric(300, 0, 0xffff, 9999),
	} {
		_ = d.Decode(OIDNumeric, b)
	}
}
