// Copyright 2020, 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xlstream converts row sources into OOXML spreadsheet packages,
// one row at a time.
//
// The package itself holds the row model shared by the writer (package xlsx)
// and the row sources: delimited text, in-memory matrices and
// database results (package pgexport).
package xlstream

import (
	"errors"
	"io"
)

// Writer writes the spreadsheet consisting of the sheets created
// with NewSheet. The write finishes when Close is called.
//
// The writer SHOULD allow writing to separate sheets concurrently,
// and document if it does not provide this functionality.
type Writer interface {
	io.Closer
	NewSheet(name string, cols []Column) (Sheet, error)
}

// Sheet should be Closed when finished.
type Sheet interface {
	io.Closer
	AppendRow(values ...any) error
}

// RowReader is a source of rows.
//
// ReadRow returns io.EOF at the end of the stream. The returned slices are
// only valid until the next call.
type RowReader interface {
	ReadRow() ([][]byte, error)
}

// CellType is the OOXML cell type code (the t attribute of a cell).
type CellType string

const (
	// CellString is a literal (formula) string, stored inline.
	CellString = CellType("str")
	// CellSharedString references the shared string table.
	CellSharedString = CellType("s")
	// CellNumber is a number.
	CellNumber = CellType("n")
	// CellBool is 0 or 1.
	CellBool = CellType("b")
	// CellError is an error value such as #N/A.
	CellError = CellType("e")
	// CellDate is an ISO 8601 date.
	CellDate = CellType("d")
)

// IsText reports whether the cell type holds text.
func (t CellType) IsText() bool {
	return t == "" || t == CellString || t == CellSharedString
}

// Column contains the Name of the column (the header) and its cell Type.
type Column struct {
	Name string
	Type CellType
}

var (
	ErrTooManyRows    = errors.New("too many rows")
	ErrTooManyColumns = errors.New("too many columns")
	ErrClosed         = errors.New("sheet is closed")
)

// Number is a string that contains a number.
type Number string
