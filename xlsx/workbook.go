// Copyright 2020, 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xlsx writes OOXML spreadsheet packages (.xlsx) in one pass.
//
// Rows are encoded straight into the compressed archive, nothing is kept
// in memory but the row being written. All text is stored inline in the
// cells, the shared string table is always empty.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/valyala/bytebufferpool"

	"github.com/UNO-SOFT/xlstream"
)

var _ = (xlstream.Writer)((*Workbook)(nil))

const (
	// MaxRowCount is the number of maximum rows.
	MaxRowCount = 1_048_576
	// MaxColumnCount is the number of maximum columns (XFD).
	MaxColumnCount = 16_384

	maxSheetNameLen = 31
	// sheet K has relationship id rId(K-1+sheetRelOffset), after the theme and the styles.
	sheetRelOffset = 3
)

var (
	ErrSheetOpen        = errors.New("another sheet is still open")
	ErrFinished         = errors.New("workbook is finished")
	ErrInvalidSheetName = errors.New("invalid sheet name")
)

// the zip entries' modification time, for reproducible output
var partTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// Option configures a Workbook.
type Option func(*Workbook)

// WithCompressionLevel sets the deflate level (flate.NoCompression..flate.BestCompression).
// The default is flate.BestSpeed.
func WithCompressionLevel(level int) Option {
	return func(wb *Workbook) { wb.level = level }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(wb *Workbook) {
		if logger != nil {
			wb.logger = logger
		}
	}
}

// WithApplication sets the application name recorded in docProps/app.xml.
func WithApplication(name string) Option {
	return func(wb *Workbook) { wb.application = name }
}

// Workbook is an .xlsx package being written.
//
// Sheets are written one after the other: a sheet must be closed
// before the next one is created. Finish writes the rest of the package.
//
// A Workbook is not safe for concurrent use.
type Workbook struct {
	zw          *zip.Writer
	logger      *slog.Logger
	open        *worksheet
	err         error
	application string
	sheets      []string
	level       int
	finished    bool
}

// NewWorkbook returns a new Workbook writing to w.
func NewWorkbook(w io.Writer, options ...Option) *Workbook {
	wb := &Workbook{
		zw:          zip.NewWriter(w),
		logger:      slog.Default(),
		application: "xlstream",
		level:       flate.BestSpeed,
	}
	for _, o := range options {
		o(wb)
	}
	level := wb.level
	wb.zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})
	return wb
}

// SheetNames returns the names of the sheets created so far, in order.
func (wb *Workbook) SheetNames() []string { return append([]string(nil), wb.sheets...) }

// GetWorksheet starts the next sheet, where every cell is a literal string.
//
// An empty name is replaced by "Sheet N".
func (wb *Workbook) GetWorksheet(name string) (*Sheet, error) {
	s := new(Sheet)
	if err := wb.startSheet(&s.worksheet, name); err != nil {
		return nil, err
	}
	return s, nil
}

// GetTypedWorksheet starts the next sheet with the given column types.
//
// The first row written is the header: all its cells are literal strings.
func (wb *Workbook) GetTypedWorksheet(name string, types []xlstream.CellType) (*TypedSheet, error) {
	s := &TypedSheet{types: append([]xlstream.CellType(nil), types...)}
	s.header = true
	if err := wb.startSheet(&s.worksheet, name); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSheet creates a typed sheet with the columns' types,
// and writes the header row if any column has a name.
func (wb *Workbook) NewSheet(name string, cols []xlstream.Column) (xlstream.Sheet, error) {
	types := make([]xlstream.CellType, len(cols))
	var hasHeader bool
	for i, c := range cols {
		types[i] = c.Type
		hasHeader = hasHeader || c.Name != ""
	}
	s, err := wb.GetTypedWorksheet(name, types)
	if err != nil {
		return nil, err
	}
	if !hasHeader {
		s.header = false
		return s, nil
	}
	names := make([][]byte, len(cols))
	for i, c := range cols {
		names[i] = []byte(c.Name)
	}
	if err = s.WriteRow(names, nil); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// WithSheet creates a sheet, calls fill with it, and closes it.
func (wb *Workbook) WithSheet(name string, fill func(*Sheet) error) error {
	s, err := wb.GetWorksheet(name)
	if err != nil {
		return err
	}
	if err = fill(s); err != nil {
		s.Close()
		return err
	}
	return s.Close()
}

func (wb *Workbook) startSheet(ws *worksheet, name string) error {
	if wb.finished {
		return ErrFinished
	}
	if wb.err != nil {
		return wb.err
	}
	if wb.open != nil {
		return fmt.Errorf("%q: %w", wb.open.name, ErrSheetOpen)
	}
	id := len(wb.sheets) + 1
	if name == "" {
		name = "Sheet " + strconv.Itoa(id)
	}
	if err := wb.checkName(name); err != nil {
		return err
	}
	w, err := wb.createPart("xl/worksheets/sheet" + strconv.Itoa(id) + ".xml")
	if err == nil {
		_, err = io.WriteString(w, worksheetPrologue)
	}
	if err != nil {
		wb.err = fmt.Errorf("start sheet %q: %w", name, err)
		return wb.err
	}
	wb.sheets = append(wb.sheets, name)
	*ws = worksheet{
		wb: wb, w: w, name: name, id: id,
		header: ws.header,
		buf:    bytebufferpool.Get(),
	}
	wb.open = ws
	wb.logger.Debug("sheet started", "name", name, "id", id)
	return nil
}

func (wb *Workbook) checkName(name string) error {
	if utf8.RuneCountInString(name) > maxSheetNameLen ||
		strings.ContainsAny(name, `:\/?*[]`) ||
		name[0] == '\'' || name[len(name)-1] == '\'' {
		return fmt.Errorf("%q: %w", name, ErrInvalidSheetName)
	}
	for _, s := range wb.sheets {
		if strings.EqualFold(s, name) {
			return fmt.Errorf("%q: duplicate: %w", name, ErrInvalidSheetName)
		}
	}
	return nil
}

func (wb *Workbook) createPart(name string) (io.Writer, error) {
	return wb.zw.CreateHeader(&zip.FileHeader{
		Name: name, Method: zip.Deflate, Modified: partTime,
	})
}

func (wb *Workbook) fail(err error) {
	if wb.err == nil {
		wb.err = err
	}
}

// Finish writes the supporting parts and closes the archive.
// It does not close the underlying writer.
//
// All sheets must be closed before. On error, the output is not a valid package.
func (wb *Workbook) Finish() error {
	if wb.finished {
		return ErrFinished
	}
	if wb.open != nil {
		return fmt.Errorf("%q: %w", wb.open.name, ErrSheetOpen)
	}
	wb.finished = true
	if wb.err != nil {
		return wb.err
	}
	n := len(wb.sheets)
	staticPart := func(s string) func(io.Writer) {
		return func(w io.Writer) { io.WriteString(w, s) }
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	for _, p := range []struct {
		Name   string
		Render func(io.Writer)
	}{
		{"[Content_Types].xml", func(w io.Writer) { writecontentTypes(w, n) }},
		{"_rels/.rels", staticPart(rootRelsXML)},
		{"docProps/app.xml", func(w io.Writer) { writeappProps(w, wb.application, wb.sheets) }},
		{"docProps/core.xml", staticPart(corePropsXML)},
		{"xl/styles.xml", staticPart(stylesXML)},
		{"xl/sharedStrings.xml", staticPart(sharedStringsXML)},
		{"xl/workbook.xml", func(w io.Writer) { writeworkbookXML(w, wb.sheets) }},
		{"xl/calcChain.xml", staticPart(calcChainXML)},
		{"xl/_rels/workbook.xml.rels", func(w io.Writer) { writeworkbookRels(w, n) }},
		{"xl/theme/theme1.xml", staticPart(themeXML)},
	} {
		buf.Reset()
		p.Render(buf)
		w, err := wb.createPart(p.Name)
		if err == nil {
			_, err = w.Write(buf.B)
		}
		if err != nil {
			wb.err = fmt.Errorf("%s: %w", p.Name, err)
			return wb.err
		}
	}
	if err := wb.zw.Close(); err != nil {
		wb.err = err
		return err
	}
	wb.logger.Debug("workbook finished", "sheets", n)
	return nil
}

// Close finishes the workbook, if not finished yet.
func (wb *Workbook) Close() error {
	if wb == nil {
		return nil
	}
	if wb.finished {
		return wb.err
	}
	return wb.Finish()
}
