// Copyright 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package pgexport

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"math"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/klauspost/compress/zip"
	"github.com/xuri/excelize/v2"

	"github.com/UNO-SOFT/xlstream"
	"github.com/UNO-SOFT/xlstream/pgwire"
	"github.com/UNO-SOFT/xlstream/xlsx"
)

func TestRowDecoder(t *testing.T) {
	dec := pgwire.NewDecoder()
	rd := newRowDecoder(dec, []pgconn.FieldDescription{
		{Name: "id", DataTypeOID: pgwire.OIDInt4},
		{Name: "name", DataTypeOID: pgwire.OIDText},
		{Name: "born", DataTypeOID: 1082}, // date
		{Name: "price", DataTypeOID: pgwire.OIDMoney},
	})
	if want := []int16{pgwire.BinaryFormat, pgwire.BinaryFormat, pgwire.TextFormat, pgwire.BinaryFormat}; !reflect.DeepEqual(rd.formats, want) {
		t.Errorf("formats: got %v, wanted %v", rd.formats, want)
	}

	row := rd.decode([][]byte{
		binary.BigEndian.AppendUint32(nil, 7),
		[]byte("Kovács"),
		[]byte("2001-02-03"),
		nil,
	})
	got := make([]string, len(row))
	for i, b := range row {
		got[i] = string(b)
	}
	if want := []string{"7", "Kovács", "2001-02-03", ""}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, wanted %q", got, want)
	}
	// short rows are padded with empty cells
	if row = rd.decode([][]byte{[]byte{0, 0, 0, 1}}); len(row) != 4 || string(row[0]) != "1" || len(row[3]) != 0 {
		t.Errorf("got %q", row)
	}
}

func TestRowDecoderCellsDoNotOverlap(t *testing.T) {
	rd := newRowDecoder(pgwire.NewDecoder(), []pgconn.FieldDescription{
		{DataTypeOID: pgwire.OIDText}, {DataTypeOID: pgwire.OIDText},
	})
	row := rd.decode([][]byte{[]byte("ab"), []byte("cd")})
	row[0] = append(row[0], 'X')
	if string(row[1]) != "cd" {
		t.Errorf("got %q", row[1])
	}
}

func TestTypedSpecialValues(t *testing.T) {
	fields := []pgconn.FieldDescription{
		{Name: "f8", DataTypeOID: pgwire.OIDFloat8},
		{Name: "num", DataTypeOID: pgwire.OIDNumeric},
		{Name: "f4", DataTypeOID: pgwire.OIDFloat4},
		{Name: "inf", DataTypeOID: pgwire.OIDNumeric},
	}
	rd := newRowDecoder(pgwire.NewDecoder(), fields)
	rows := &Rows{fields: fields, rd: rd, typed: true}
	for i, c := range rows.Columns() {
		if c.Type != xlstream.CellNumber {
			t.Errorf("%d. column type %q", i, c.Type)
		}
	}

	var buf bytes.Buffer
	wb := xlsx.NewWorkbook(&buf)
	s, err := wb.NewSheet("special", rows.Columns())
	if err != nil {
		t.Fatal(err)
	}
	ts := s.(*xlsx.TypedSheet)
	row := rd.decode([][]byte{
		binary.BigEndian.AppendUint64(nil, math.Float64bits(math.NaN())),
		{0, 0, 0, 0, 0xC0, 0, 0, 0}, // numeric NaN
		binary.BigEndian.AppendUint32(nil, math.Float32bits(float32(math.Inf(1)))),
		{0, 0, 0, 0, 0xD0, 0, 0, 0}, // numeric Infinity
	})
	if err = ts.WriteRow(row, nil); err != nil {
		t.Fatal(err)
	}
	if err = s.Close(); err != nil {
		t.Fatal(err)
	}
	if err = wb.Finish(); err != nil {
		t.Fatal(err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	rc, err := zr.Open("xl/worksheets/sheet1.xml")
	if err != nil {
		t.Fatal(err)
	}
	sheet, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatal(err)
	}
	const want = `<row r="2"><c r="A2"/><c r="B2" t="str"><v>NaN</v></c><c r="C2"/><c r="D2" t="str"><v>Infinity</v></c></row>`
	if !bytes.Contains(sheet, []byte(want)) {
		t.Errorf("missing %s from\n%s", want, sheet)
	}
	if bytes.Contains(sheet, []byte(`t="n"`)) {
		t.Errorf("non-number in a number cell:\n%s", sheet)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := f.GetRows("special")
	if err != nil {
		t.Fatal(err)
	}
	if want := [][]string{{"f8", "num", "f4", "inf"}, {"", "NaN", "", "Infinity"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, wanted %q", got, want)
	}
}

// TestExportDB needs a PostgreSQL database: set XLSTREAM_TEST_DATABASE
// to its connection string.
func TestExportDB(t *testing.T) {
	connString := os.Getenv("XLSTREAM_TEST_DATABASE")
	if connString == "" {
		t.Skip("XLSTREAM_TEST_DATABASE is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	conn, err := Connect(ctx, connString, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close(context.Background())

	var buf bytes.Buffer
	wb := xlsx.NewWorkbook(&buf)
	e := NewExporter(conn, nil)
	n, err := e.Export(ctx, wb, "literals", `SELECT 1::int2 AS a, 2::int4 AS b, 3::int8 AS c,
		1.5::float8 AS d, 123.45::numeric AS e, 12.34::money AS f,
		'2000-01-01 13:04:05'::timestamp AS g, 'x<y'::text AS h,
		true AS i, NULL::int4 AS j`)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("got %d rows", n)
	}
	e.Typed = true
	if n, err = e.Export(ctx, wb, "empty", `SELECT 1::int4 AS one WHERE false`); err != nil {
		t.Fatal(err)
	} else if n != 0 {
		t.Errorf("got %d rows", n)
	}
	if _, err = e.Export(ctx, wb, "bad", `SELECT * FROM no_such_table_hopefully`); err == nil {
		t.Error("wanted error for missing table")
	}
	if err = wb.Finish(); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows("literals")
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
		{"1", "2", "3", "1.5", "123.45", "$12.34", "2000-01-01 01:04:05 PM", "x<y", "t"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("got %q, wanted %q", rows, want)
	}
	if rows, err = f.GetRows("empty"); err != nil {
		t.Fatal(err)
	} else if !reflect.DeepEqual(rows, [][]string{{"one"}}) {
		t.Errorf("empty: got %q", rows)
	}
}
