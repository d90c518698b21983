// Copyright 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package pgwire converts PostgreSQL column values, as received on the wire,
// into the text of spreadsheet cells.
//
// Values that cannot be decoded become empty cells, decoding never fails.
package pgwire

import (
	"encoding/binary"
	"math"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/UNO-SOFT/xlstream"
)

// Wire type identifiers (pg_type.oid) of the types decoded from the binary format.
const (
	OIDName      = 19
	OIDInt8      = 20
	OIDInt2      = 21
	OIDInt4      = 23
	OIDText      = 25
	OIDFloat4    = 700
	OIDFloat8    = 701
	OIDUnknown   = 705
	OIDMoney     = 790
	OIDBPChar    = 1042
	OIDVarchar   = 1043
	OIDTimestamp = 1114
	OIDNumeric   = 1700
)

// Result format codes.
const (
	TextFormat   = pgtype.TextFormatCode
	BinaryFormat = pgtype.BinaryFormatCode
)

// EpochOffset is the number of seconds between the Unix epoch and the
// PostgreSQL epoch (2000-01-01).
const EpochOffset = 946_684_800

const (
	pgTimestampInfinity    = math.MaxInt64
	pgTimestampNegInfinity = math.MinInt64
)

// Decoder decodes column values.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	types *pgtype.Map
	text  map[uint32]struct{}
}

// NewDecoder returns a new Decoder knowing the built-in types.
func NewDecoder() *Decoder {
	return &Decoder{types: pgtype.NewMap(), text: make(map[uint32]struct{})}
}

// RegisterText registers a type with a dynamic oid (such as citext)
// whose binary format is its text.
func (d *Decoder) RegisterText(name string, oid uint32) {
	if oid == 0 {
		return
	}
	d.text[oid] = struct{}{}
	if _, ok := d.types.TypeForOID(oid); !ok {
		d.types.RegisterType(&pgtype.Type{Name: name, OID: oid, Codec: pgtype.TextCodec{}})
	}
}

// TypeName returns the name of the type, if known.
func (d *Decoder) TypeName(oid uint32) string {
	if t, ok := d.types.TypeForOID(oid); ok {
		return t.Name
	}
	return ""
}

func (d *Decoder) isText(oid uint32) bool {
	switch oid {
	case OIDVarchar, OIDText, OIDBPChar, OIDName, OIDUnknown:
		return true
	}
	_, ok := d.text[oid]
	return ok
}

// Binary reports whether the value of the type should be requested in binary format.
//
// The rest is better requested in text format, and passed through as is.
func (d *Decoder) Binary(oid uint32) bool {
	switch oid {
	case OIDInt2, OIDInt4, OIDInt8,
		OIDFloat4, OIDFloat8,
		OIDNumeric, OIDMoney, OIDTimestamp:
		return true
	}
	return d.isText(oid)
}

// CellType returns the cell type for values of the type.
//
// Numeric NaN and Infinity decode to text, the writer stores those as strings.
func (d *Decoder) CellType(oid uint32) xlstream.CellType {
	switch oid {
	case OIDInt2, OIDInt4, OIDInt8, OIDFloat4, OIDFloat8, OIDNumeric:
		return xlstream.CellNumber
	}
	return xlstream.CellString
}

// Decode returns the text of the binary value raw of type oid.
//
// Text types are returned as is (not copied); unknown types and malformed
// values yield an empty result.
func (d *Decoder) Decode(oid uint32, raw []byte) []byte {
	if d.isText(oid) {
		return raw
	}
	return d.Append(nil, oid, BinaryFormat, raw)
}

// Append appends the text of the value raw of type oid, in the given format, to dst.
func (d *Decoder) Append(dst []byte, oid uint32, format int16, raw []byte) []byte {
	if raw == nil {
		return dst
	}
	if format == TextFormat || d.isText(oid) {
		return append(dst, raw...)
	}
	switch oid {
	case OIDInt2:
		if len(raw) != 2 {
			return dst
		}
		return strconv.AppendInt(dst, int64(int16(binary.BigEndian.Uint16(raw))), 10)
	case OIDInt4:
		if len(raw) != 4 {
			return dst
		}
		return strconv.AppendInt(dst, int64(int32(binary.BigEndian.Uint32(raw))), 10)
	case OIDInt8:
		if len(raw) != 8 {
			return dst
		}
		return strconv.AppendInt(dst, int64(binary.BigEndian.Uint64(raw)), 10)
	case OIDFloat4:
		if len(raw) != 4 {
			return dst
		}
		f := float64(math.Float32frombits(binary.BigEndian.Uint32(raw)))
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return dst
		}
		return strconv.AppendFloat(dst, f, 'f', -1, 32)
	case OIDFloat8:
		if len(raw) != 8 {
			return dst
		}
		f := math.Float64frombits(binary.BigEndian.Uint64(raw))
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return dst
		}
		return strconv.AppendFloat(dst, f, 'f', -1, 64)
	case OIDNumeric:
		return d.appendNumeric(dst, raw)
	case OIDMoney:
		if len(raw) != 8 {
			return dst
		}
		cents := int64(binary.BigEndian.Uint64(raw))
		m := decimal.New(cents, -2)
		if m.Sign() < 0 {
			dst = append(dst, '-')
			m = m.Neg()
		}
		dst = append(dst, '$')
		return append(dst, m.StringFixed(2)...)
	case OIDTimestamp:
		if len(raw) != 8 {
			return dst
		}
		return AppendTimestamp(dst, int64(binary.BigEndian.Uint64(raw)))
	}
	return dst
}

// appendNumeric decodes with pgtype, keeping the display scale of the wire value.
func (d *Decoder) appendNumeric(dst, raw []byte) []byte {
	// ndigits, weight, sign, dscale
	if len(raw) < 8 {
		return dst
	}
	var n pgtype.Numeric
	if err := d.types.Scan(OIDNumeric, BinaryFormat, raw, &n); err != nil || !n.Valid {
		return dst
	}
	if n.NaN {
		return append(dst, "NaN"...)
	}
	switch n.InfinityModifier {
	case pgtype.Infinity:
		return append(dst, "Infinity"...)
	case pgtype.NegativeInfinity:
		return append(dst, "-Infinity"...)
	}
	if n.Int == nil {
		return dst
	}
	scale := int32(binary.BigEndian.Uint16(raw[6:8]))
	return append(dst, decimal.NewFromBigInt(n.Int, n.Exp).StringFixed(scale)...)
}

// AppendTimestamp appends the time of the PostgreSQL timestamp
// (microseconds since 2000-01-01) as "2006-01-02 03:04:05 PM".
//
// Fractions of seconds are dropped, rounding toward the past.
func AppendTimestamp(dst []byte, micros int64) []byte {
	switch micros {
	case pgTimestampInfinity:
		return append(dst, "infinity"...)
	case pgTimestampNegInfinity:
		return append(dst, "-infinity"...)
	}
	return time.UnixMicro(micros).Add(EpochOffset*time.Second).UTC().
		Truncate(time.Second).AppendFormat(dst, xlstream.TimestampFormat)
}
