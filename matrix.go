// Copyright 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlstream

import "io"

// MatrixReader is a RowReader over a row-major two-dimensional matrix.
//
// Values are converted with ValueOf: NaN and unsupported types become empty text.
type MatrixReader struct {
	rows  [][]any
	row   [][]byte
	buf   []byte
	next  int
	typed []CellType
}

// NewMatrixReader returns a RowReader over rows.
func NewMatrixReader(rows [][]any) *MatrixReader {
	return &MatrixReader{rows: rows}
}

// ReadRow returns the text of the next matrix row.
func (m *MatrixReader) ReadRow() ([][]byte, error) {
	if m.next >= len(m.rows) {
		return nil, io.EOF
	}
	values := m.rows[m.next]
	m.next++
	m.buf, m.typed = m.buf[:0], m.typed[:0]
	offs := make([]int, 0, len(values)+1)
	for _, v := range values {
		offs = append(offs, len(m.buf))
		val := ValueOf(v)
		m.buf = val.AppendText(m.buf)
		m.typed = append(m.typed, val.CellType())
	}
	offs = append(offs, len(m.buf))
	m.row = m.row[:0]
	for i := range values {
		m.row = append(m.row, m.buf[offs[i]:offs[i+1]:offs[i+1]])
	}
	return m.row, nil
}

// CellTypes returns the cell types of the row last returned by ReadRow.
func (m *MatrixReader) CellTypes() []CellType { return m.typed }
