// Copyright 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"errors"
	"fmt"
)

// AppendColumnLetters appends the column name of the 0-based col (A, B, ..., Z, AA, ...).
//
// This is bijective base-26: there is no zero digit.
func AppendColumnLetters(dst []byte, col int) []byte {
	if col < 0 {
		return dst
	}
	var a [16]byte
	i := len(a)
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		i--
		a[i] = 'A' + byte((n-1)%26)
	}
	return append(dst, a[i:]...)
}

// ColumnLetters returns the column name of the 0-based col.
func ColumnLetters(col int) string { return string(AppendColumnLetters(nil, col)) }

var errBadColumn = errors.New("bad column name")

// ColumnNumber returns the 0-based column index of the column name.
func ColumnNumber(letters []byte) (int, error) {
	if len(letters) == 0 {
		return 0, errBadColumn
	}
	var n int
	for _, c := range letters {
		if c < 'A' || 'Z' < c {
			return 0, fmt.Errorf("%q: %w", letters, errBadColumn)
		}
		n = n*26 + int(c-'A') + 1
		if n < 0 {
			return 0, fmt.Errorf("%q: %w", letters, errBadColumn)
		}
	}
	return n - 1, nil
}

// AppendRowReference appends the decimal digits of row.
func AppendRowReference(dst []byte, row int64) []byte {
	if row <= 0 {
		return append(dst, '0')
	}
	var a [20]byte
	i := len(a)
	for ; row > 0; row /= 10 {
		i--
		a[i] = '0' + byte(row%10)
	}
	return append(dst, a[i:]...)
}

// AppendEscaped appends src to dst, replacing the five XML special
// characters with their entities. Every other byte is copied as is.
func AppendEscaped(dst, src []byte) []byte {
	last := 0
	for i, c := range src {
		var ent string
		switch c {
		case '<':
			ent = "&lt;"
		case '>':
			ent = "&gt;"
		case '&':
			ent = "&amp;"
		case '\'':
			ent = "&apos;"
		case '"':
			ent = "&quot;"
		default:
			continue
		}
		dst = append(dst, src[last:i]...)
		dst = append(dst, ent...)
		last = i + 1
	}
	return append(dst, src[last:]...)
}

// Escape returns src with the XML special characters escaped.
func Escape(src []byte) []byte {
	return AppendEscaped(make([]byte, 0, len(src)), src)
}

// IsNumber reports whether b is a decimal number a number cell can hold:
// an optional sign, digits with an optional fraction, and an optional exponent.
//
// NaN, Inf and Infinity are not numbers here.
func IsNumber(b []byte) bool {
	i := 0
	if i < len(b) && (b[i] == '-' || b[i] == '+') {
		i++
	}
	var digits int
	for ; i < len(b) && '0' <= b[i] && b[i] <= '9'; i++ {
		digits++
	}
	if i < len(b) && b[i] == '.' {
		for i++; i < len(b) && '0' <= b[i] && b[i] <= '9'; i++ {
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		i++
		if i < len(b) && (b[i] == '-' || b[i] == '+') {
			i++
		}
		start := i
		for ; i < len(b) && '0' <= b[i] && b[i] <= '9'; i++ {
		}
		if i == start {
			return false
		}
	}
	return i == len(b)
}

// columnCache caches the column letters of a sheet.
type columnCache [][]byte

func (cc *columnCache) letters(col int) []byte {
	for len(*cc) <= col {
		*cc = append(*cc, AppendColumnLetters(nil, len(*cc)))
	}
	return (*cc)[col]
}
