// Copyright 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package pgexport exports PostgreSQL query results into xlsx worksheets.
package pgexport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/UNO-SOFT/xlstream"
	"github.com/UNO-SOFT/xlstream/pgwire"
	"github.com/UNO-SOFT/xlstream/xlsx"
)

var _ = (xlstream.RowReader)((*Rows)(nil))

// Exporter writes the results of queries on one connection.
type Exporter struct {
	conn   *pgconn.PgConn
	dec    *pgwire.Decoder
	logger *slog.Logger
	// Typed sheets have number cells for the numeric columns.
	Typed     bool
	typesDone bool
}

// NewExporter returns an Exporter using conn.
func NewExporter(conn *pgconn.PgConn, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{conn: conn, dec: pgwire.NewDecoder(), logger: logger}
}

// Export runs sql on conn and writes its result as the next sheet of wb.
func Export(ctx context.Context, conn *pgconn.PgConn, wb *xlsx.Workbook, sheetName, sql string, typed bool) (int64, error) {
	e := NewExporter(conn, nil)
	e.Typed = typed
	return e.Export(ctx, wb, sheetName, sql)
}

const qryTextTypes = `SELECT typname, oid FROM pg_type WHERE typname IN ('citext')`

// registerTypes registers the types whose oid is not fixed, once.
func (e *Exporter) registerTypes(ctx context.Context) error {
	if e.typesDone {
		return nil
	}
	rr := e.conn.ExecParams(ctx, qryTextTypes, nil, nil, nil, nil)
	for rr.NextRow() {
		vals := rr.Values()
		oid, err := strconv.ParseUint(string(vals[1]), 10, 32)
		if err != nil {
			continue
		}
		e.dec.RegisterText(string(vals[0]), uint32(oid))
		e.logger.Debug("registered", "type", string(vals[0]), "oid", oid)
	}
	if _, err := rr.Close(); err != nil {
		return fmt.Errorf("%s: %w", qryTextTypes, err)
	}
	e.typesDone = true
	return nil
}

// Export runs sql and writes its result as the next sheet of wb,
// returning the number of data rows written.
//
// The header row holds the column names, even for an empty result.
func (e *Exporter) Export(ctx context.Context, wb *xlsx.Workbook, sheetName, sql string) (int64, error) {
	if err := e.registerTypes(ctx); err != nil {
		return 0, err
	}
	rows, err := e.Query(ctx, sql)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var sheet interface {
		xlstream.Sheet
		WriteRows(xlstream.RowReader) (int64, error)
	}
	if e.Typed {
		s, err := wb.NewSheet(sheetName, rows.Columns())
		if err != nil {
			return 0, err
		}
		sheet = s.(*xlsx.TypedSheet)
	} else {
		s, err := wb.GetWorksheet(sheetName)
		if err != nil {
			return 0, err
		}
		if err = s.WriteRow(rows.Header()); err != nil {
			s.Close()
			return 0, err
		}
		sheet = s
	}
	n, err := sheet.WriteRows(rows)
	if err != nil {
		sheet.Close()
		return n, err
	}
	e.logger.Debug("exported", "sheet", sheetName, "rows", n)
	return n, sheet.Close()
}

// Query prepares and executes sql, requesting each column
// in the format the decoder handles best.
func (e *Exporter) Query(ctx context.Context, sql string) (*Rows, error) {
	sd, err := e.conn.Prepare(ctx, "", sql, nil)
	if err != nil {
		return nil, fmt.Errorf("prepare %s: %w", sql, err)
	}
	rd := newRowDecoder(e.dec, sd.Fields)
	rr := e.conn.ExecPrepared(ctx, "", nil, nil, rd.formats)
	return &Rows{rr: rr, fields: sd.Fields, rd: rd, typed: e.Typed}, nil
}

// Rows is a RowReader over a query result.
type Rows struct {
	rr     *pgconn.ResultReader
	rd     *rowDecoder
	fields []pgconn.FieldDescription
	typed  bool
	closed bool
}

// Header returns the column names.
func (r *Rows) Header() [][]byte {
	hdr := make([][]byte, len(r.fields))
	for i, f := range r.fields {
		hdr[i] = []byte(f.Name)
	}
	return hdr
}

// Columns returns the column names, with their cell types for typed sheets.
func (r *Rows) Columns() []xlstream.Column {
	cols := make([]xlstream.Column, len(r.fields))
	for i, f := range r.fields {
		cols[i].Name = f.Name
		if r.typed {
			cols[i].Type = r.rd.dec.CellType(f.DataTypeOID)
		}
	}
	return cols
}

// ReadRow returns the next decoded row, or io.EOF after the last one.
// A server or connection error ends the result with that error.
func (r *Rows) ReadRow() ([][]byte, error) {
	if r.closed {
		return nil, io.EOF
	}
	if !r.rr.NextRow() {
		err := r.Close()
		if err == nil {
			err = io.EOF
		}
		return nil, err
	}
	return r.rd.decode(r.rr.Values()), nil
}

// Close the result, reading the rest.
func (r *Rows) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	_, err := r.rr.Close()
	return err
}

// rowDecoder decodes the values of a row into one buffer.
type rowDecoder struct {
	dec     *pgwire.Decoder
	oids    []uint32
	formats []int16
	buf     []byte
	ends    []int
	row     [][]byte
}

func newRowDecoder(dec *pgwire.Decoder, fields []pgconn.FieldDescription) *rowDecoder {
	rd := rowDecoder{
		dec:     dec,
		oids:    make([]uint32, len(fields)),
		formats: make([]int16, len(fields)),
		ends:    make([]int, len(fields)),
		row:     make([][]byte, len(fields)),
	}
	for i, f := range fields {
		rd.oids[i] = f.DataTypeOID
		if dec.Binary(f.DataTypeOID) {
			rd.formats[i] = pgwire.BinaryFormat
		} else {
			rd.formats[i] = pgwire.TextFormat
		}
	}
	return &rd
}

// decode the values, NULL and undecodable values are empty.
// The returned row is valid until the next call.
func (rd *rowDecoder) decode(values [][]byte) [][]byte {
	rd.buf = rd.buf[:0]
	for i := range rd.oids {
		if i < len(values) {
			rd.buf = rd.dec.Append(rd.buf, rd.oids[i], rd.formats[i], values[i])
		}
		rd.ends[i] = len(rd.buf)
	}
	var start int
	for i, end := range rd.ends {
		rd.row[i] = rd.buf[start:end:end]
		start = end
	}
	return rd.row
}
