// Copyright 2020, 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlstream

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the kind of a Value.
type Kind uint8

const (
	KindEmpty = Kind(iota)
	KindText
	KindInt
	KindFloat
	KindDecimal
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

const (
	// DateFormat is used for times without a clock part.
	DateFormat = "2006-01-02"
	// TimestampFormat is the date followed by a 12-hour clock.
	TimestampFormat = "2006-01-02 03:04:05 PM"
)

// Value is one scalar cell value, classified once by ValueOf.
type Value struct {
	text string
	dec  decimal.Decimal
	t    time.Time
	i    int64
	f    float64
	kind Kind
}

func TextValue(s string) Value             { return Value{kind: KindText, text: s} }
func IntValue(i int64) Value               { return Value{kind: KindInt, i: i} }
func DecimalValue(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }
func TimeValue(t time.Time) Value          { return Value{kind: KindTime, t: t} }
func BoolValue(b bool) Value {
	if b {
		return Value{kind: KindBool, i: 1}
	}
	return Value{kind: KindBool}
}

// FloatValue returns an empty Value for NaN and the infinities.
func FloatValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{kind: KindFloat, f: f}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// CellType returns the cell type the value should be written with.
func (v Value) CellType() CellType {
	switch v.kind {
	case KindInt, KindFloat, KindDecimal:
		return CellNumber
	case KindBool:
		return CellBool
	default:
		return CellString
	}
}

// AppendText appends the textual form of the value to dst.
func (v Value) AppendText(dst []byte) []byte {
	switch v.kind {
	case KindText:
		return append(dst, v.text...)
	case KindInt:
		return strconv.AppendInt(dst, v.i, 10)
	case KindFloat:
		return strconv.AppendFloat(dst, v.f, 'f', -1, 64)
	case KindDecimal:
		return append(dst, v.dec.String()...)
	case KindBool:
		return append(dst, byte('0'+v.i))
	case KindTime:
		h, m, s := v.t.Clock()
		if h == 0 && m == 0 && s == 0 && v.t.Nanosecond() == 0 {
			return v.t.AppendFormat(dst, DateFormat)
		}
		return v.t.AppendFormat(dst, TimestampFormat)
	default:
		return dst
	}
}

func (v Value) String() string { return string(v.AppendText(nil)) }

// ValueOf classifies v.
//
// Unknown types with a String method are converted to text,
// everything else unknown is empty.
func ValueOf(v any) Value {
	if v == nil {
		return Value{}
	}
	if vr, ok := v.(driver.Valuer); ok {
		if _, isDec := v.(decimal.Decimal); !isDec {
			vv, err := vr.Value()
			if err != nil || vv == nil {
				return Value{}
			}
			v = vv
		}
	}
	switch x := v.(type) {
	case string:
		return TextValue(x)
	case []byte:
		return TextValue(string(x))
	case Number:
		if d, err := decimal.NewFromString(string(x)); err == nil {
			return DecimalValue(d)
		}
		return TextValue(string(x))
	case int:
		return IntValue(int64(x))
	case int8:
		return IntValue(int64(x))
	case int16:
		return IntValue(int64(x))
	case int32:
		return IntValue(int64(x))
	case int64:
		return IntValue(x)
	case uint8:
		return IntValue(int64(x))
	case uint16:
		return IntValue(int64(x))
	case uint32:
		return IntValue(int64(x))
	case uint:
		if uint64(x) > math.MaxInt64 {
			return DecimalValue(decimal.RequireFromString(strconv.FormatUint(uint64(x), 10)))
		}
		return IntValue(int64(x))
	case uint64:
		if x > math.MaxInt64 {
			return DecimalValue(decimal.RequireFromString(strconv.FormatUint(x, 10)))
		}
		return IntValue(int64(x))
	case float32:
		return FloatValue(float64(x))
	case float64:
		return FloatValue(x)
	case bool:
		return BoolValue(x)
	case decimal.Decimal:
		return DecimalValue(x)
	case time.Time:
		if x.IsZero() {
			return Value{}
		}
		return TimeValue(x)
	case sql.NullTime:
		if !x.Valid || x.Time.IsZero() {
			return Value{}
		}
		return TimeValue(x.Time)
	case sql.NullFloat64:
		if !x.Valid {
			return Value{}
		}
		return FloatValue(x.Float64)
	case sql.NullInt64:
		if !x.Valid {
			return Value{}
		}
		return IntValue(x.Int64)
	case sql.NullString:
		if !x.Valid {
			return Value{}
		}
		return TextValue(x.String)
	case sql.NullBool:
		if !x.Valid {
			return Value{}
		}
		return BoolValue(x.Bool)
	case fmt.Stringer:
		return TextValue(x.String())
	}
	return Value{}
}
