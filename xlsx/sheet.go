// Copyright 2020, 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"errors"
	"fmt"
	"io"

	"github.com/valyala/bytebufferpool"

	"github.com/UNO-SOFT/xlstream"
)

var (
	_ = (xlstream.Sheet)((*Sheet)(nil))
	_ = (xlstream.Sheet)((*TypedSheet)(nil))
)

// Sheet is a worksheet where every cell is a literal string.
type Sheet struct {
	worksheet
}

// WriteRow writes the next row.
func (s *Sheet) WriteRow(values [][]byte) error { return s.writeRow(values, nil) }

// AppendRow writes the values as text.
func (s *Sheet) AppendRow(values ...any) error {
	row, _, err := valuesRow(values)
	if err != nil {
		return err
	}
	return s.writeRow(row, nil)
}

// WriteRows copies all rows of src into the sheet, returning the number of rows written.
func (s *Sheet) WriteRows(src xlstream.RowReader) (int64, error) {
	return s.copyRows(src, func(row [][]byte) error { return s.writeRow(row, nil) })
}

// TypedSheet is a worksheet with typed columns.
type TypedSheet struct {
	types []xlstream.CellType
	worksheet
}

// WriteRow writes the next row.
//
// The type of a cell is the column type of the sheet, else types[i] if given,
// else literal string. Number cells whose text is not a number
// (such as NaN) are written as literal strings.
func (s *TypedSheet) WriteRow(values [][]byte, types []xlstream.CellType) error {
	return s.writeRow(values, s.mergeTypes(types))
}

// AppendRow writes the values, typed by the column types,
// or by the kind of the value where the column has no type.
func (s *TypedSheet) AppendRow(values ...any) error {
	row, types, err := valuesRow(values)
	if err != nil {
		return err
	}
	return s.writeRow(row, s.mergeTypes(types))
}

// WriteRows copies all rows of src into the sheet, returning the number of rows written.
//
// If src has a CellTypes() []xlstream.CellType method,
// it is used for the types of each row.
func (s *TypedSheet) WriteRows(src xlstream.RowReader) (int64, error) {
	typer, _ := src.(interface{ CellTypes() []xlstream.CellType })
	return s.copyRows(src, func(row [][]byte) error {
		var types []xlstream.CellType
		if typer != nil {
			types = typer.CellTypes()
		}
		return s.WriteRow(row, types)
	})
}

// mergeTypes prefers the column types of the sheet.
func (s *TypedSheet) mergeTypes(types []xlstream.CellType) []xlstream.CellType {
	if len(types) == 0 {
		return s.types
	}
	if len(s.types) == 0 {
		return types
	}
	n := len(types)
	if len(s.types) > n {
		n = len(s.types)
	}
	s.merged = s.merged[:0]
	for i := 0; i < n; i++ {
		var t xlstream.CellType
		if i < len(s.types) {
			t = s.types[i]
		}
		if t == "" && i < len(types) {
			t = types[i]
		}
		s.merged = append(s.merged, t)
	}
	return s.merged
}

// worksheet streams the <row> elements of xl/worksheets/sheetN.xml.
type worksheet struct {
	wb     *Workbook
	w      io.Writer
	buf    *bytebufferpool.ByteBuffer
	name   string
	cols   columnCache
	ref    []byte
	merged []xlstream.CellType
	id     int
	row    int64
	// the first row is a header of literal strings
	header bool
	closed bool
}

// Name of the sheet.
func (ws *worksheet) Name() string { return ws.name }

// ID is the 1-based sheet id.
func (ws *worksheet) ID() int { return ws.id }

// Rows returns the number of rows written.
func (ws *worksheet) Rows() int64 { return ws.row }

func (ws *worksheet) writeRow(values [][]byte, types []xlstream.CellType) error {
	if ws.closed {
		return fmt.Errorf("%q: %w", ws.name, xlstream.ErrClosed)
	}
	if ws.wb.err != nil {
		return ws.wb.err
	}
	if ws.row >= MaxRowCount {
		return fmt.Errorf("%q: %w", ws.name, xlstream.ErrTooManyRows)
	}
	if len(values) > MaxColumnCount {
		return fmt.Errorf("%q: %d columns: %w", ws.name, len(values), xlstream.ErrTooManyColumns)
	}
	ws.row++
	if ws.header && ws.row == 1 {
		types = nil
	}
	ws.ref = AppendRowReference(ws.ref[:0], ws.row)

	b := append(ws.buf.B[:0], `<row r="`...)
	b = append(b, ws.ref...)
	b = append(b, `">`...)
	for i, v := range values {
		t := xlstream.CellString
		if i < len(types) && types[i] != "" && types[i] != xlstream.CellSharedString {
			t = types[i]
		}
		b = append(b, `<c r="`...)
		b = append(b, ws.cols.letters(i)...)
		b = append(b, ws.ref...)
		if len(v) == 0 && !t.IsText() {
			b = append(b, `"/>`...)
			continue
		}
		// a number cell must hold a number
		if t == xlstream.CellNumber && !IsNumber(v) {
			t = xlstream.CellString
		}
		b = append(b, `" t="`...)
		b = append(b, t...)
		b = append(b, `"><v>`...)
		b = AppendEscaped(b, v)
		b = append(b, `</v></c>`...)
	}
	b = append(b, `</row>`...)
	ws.buf.B = b

	if _, err := ws.w.Write(b); err != nil {
		err = fmt.Errorf("%q row %d: %w", ws.name, ws.row, err)
		ws.wb.fail(err)
		return err
	}
	return nil
}

func (ws *worksheet) copyRows(src xlstream.RowReader, write func([][]byte) error) (int64, error) {
	var n int64
	for {
		row, err := src.ReadRow()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}
			return n, err
		}
		if err = write(row); err != nil {
			return n, err
		}
		n++
	}
}

// Close writes the end of the sheet. Closing a closed sheet is a no-op.
func (ws *worksheet) Close() error {
	if ws == nil || ws.closed {
		return nil
	}
	ws.closed = true
	if ws.buf != nil {
		bytebufferpool.Put(ws.buf)
		ws.buf = nil
	}
	if ws.wb.open == ws {
		ws.wb.open = nil
	}
	if ws.wb.err != nil {
		return ws.wb.err
	}
	if _, err := io.WriteString(ws.w, worksheetEpilogue); err != nil {
		err = fmt.Errorf("close %q: %w", ws.name, err)
		ws.wb.fail(err)
		return err
	}
	ws.wb.logger.Debug("sheet closed", "name", ws.name, "id", ws.id, "rows", ws.row)
	return nil
}

// valuesRow converts the values to cell text and types.
func valuesRow(values []any) ([][]byte, []xlstream.CellType, error) {
	mr := xlstream.NewMatrixReader([][]any{values})
	row, err := mr.ReadRow()
	if err != nil {
		return nil, nil, err
	}
	return row, mr.CellTypes(), nil
}
