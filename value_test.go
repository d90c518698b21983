// Copyright 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlstream

import (
	"database/sql"
	"math"
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestValueOf(t *testing.T) {
	for _, tc := range []struct {
		Name string
		In   any
		Kind Kind
		Type CellType
		Want string
	}{
		{"nil", nil, KindEmpty, CellString, ""},
		{"string", "árvíztűrő", KindText, CellString, "árvíztűrő"},
		{"bytes", []byte("abc"), KindText, CellString, "abc"},
		{"int", -42, KindInt, CellNumber, "-42"},
		{"int8", int8(-8), KindInt, CellNumber, "-8"},
		{"uint16", uint16(65535), KindInt, CellNumber, "65535"},
		{"uint64_big", uint64(math.MaxUint64), KindDecimal, CellNumber, "18446744073709551615"},
		{"float", 1.5, KindFloat, CellNumber, "1.5"},
		{"float_small", 0.000001, KindFloat, CellNumber, "0.000001"},
		{"float32", float32(0.25), KindFloat, CellNumber, "0.25"},
		{"nan", math.NaN(), KindEmpty, CellString, ""},
		{"inf", math.Inf(1), KindEmpty, CellString, ""},
		{"true", true, KindBool, CellBool, "1"},
		{"false", false, KindBool, CellBool, "0"},
		{"decimal", decimal.RequireFromString("123.450"), KindDecimal, CellNumber, "123.45"},
		{"number", Number("3.14"), KindDecimal, CellNumber, "3.14"},
		{"number_bad", Number("n/a"), KindText, CellString, "n/a"},
		{"date", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), KindTime, CellString, "2024-02-29"},
		{"timestamp", time.Date(2024, 2, 29, 13, 4, 5, 0, time.UTC), KindTime, CellString, "2024-02-29 01:04:05 PM"},
		{"zero_time", time.Time{}, KindEmpty, CellString, ""},
		{"null_string", sql.NullString{}, KindEmpty, CellString, ""},
		{"null_string_valid", sql.NullString{String: "x", Valid: true}, KindText, CellString, "x"},
		{"null_int", sql.NullInt64{Int64: 7, Valid: true}, KindInt, CellNumber, "7"},
		{"null_float_nan", sql.NullFloat64{Float64: math.NaN(), Valid: true}, KindEmpty, CellString, ""},
		{"null_bool", sql.NullBool{Bool: true, Valid: true}, KindBool, CellBool, "1"},
		{"null_time", sql.NullTime{}, KindEmpty, CellString, ""},
		{"stringer", net.IPv4(10, 0, 0, 1), KindText, CellString, "10.0.0.1"},
		{"unsupported", struct{}{}, KindEmpty, CellString, ""},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			v := ValueOf(tc.In)
			if v.Kind() != tc.Kind {
				t.Errorf("kind: got %s, wanted %s", v.Kind(), tc.Kind)
			}
			if v.CellType() != tc.Type {
				t.Errorf("cell type: got %q, wanted %q", v.CellType(), tc.Type)
			}
			if got := v.String(); got != tc.Want {
				t.Errorf("got %q, wanted %q", got, tc.Want)
			}
		})
	}
}

func TestValueAppendText(t *testing.T) {
	got := IntValue(1).AppendText([]byte("n="))
	got = append(got, ';')
	got = TextValue("x").AppendText(got)
	if string(got) != "n=1;x" {
		t.Errorf("got %q", got)
	}
	if got := (Value{}).AppendText(nil); got != nil {
		t.Errorf("empty appended %q", got)
	}
}

func TestKindString(t *testing.T) {
	if s := KindDecimal.String(); s != "decimal" {
		t.Errorf("got %q", s)
	}
	if s := Kind(99).String(); s != "Kind(99)" {
		t.Errorf("got %q", s)
	}
}

func TestCellTypeIsText(t *testing.T) {
	for _, tc := range []struct {
		Type CellType
		Want bool
	}{
		{"", true}, {CellString, true}, {CellSharedString, true},
		{CellNumber, false}, {CellBool, false}, {CellDate, false}, {CellError, false},
	} {
		if got := tc.Type.IsText(); got != tc.Want {
			t.Errorf("%q: got %t", tc.Type, got)
		}
	}
}
