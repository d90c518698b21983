package xlstream

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

var EncName = "utf-8"

func init() {
	EncName = os.Getenv("LANG")
	if i := strings.IndexByte(EncName, '.'); i >= 0 {
		EncName = strings.ToLower(EncName[i+1:])
	}
	if EncName == "" || EncName == "c" || EncName == "posix" {
		EncName = "utf-8"
	}
}

func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

type csvReadCloser struct {
	*csv.Reader
	io.Closer
}

// OpenCsv opens the named file ("" or "-" is stdin) decoding it from encName,
// and guesses the field separator from the first non-letter, non-number rune.
func OpenCsv(fn, encName string) (csvReadCloser, error) {
	fh := os.Stdin
	if !(fn == "" || fn == "-") {
		var err error
		if fh, err = os.Open(fn); err != nil {
			return csvReadCloser{}, err
		}
	}
	cr, err := NewCsv(fh, encName)
	if err != nil {
		fh.Close()
		return csvReadCloser{}, err
	}
	return csvReadCloser{cr, fh}, nil
}

// NewCsv returns a csv.Reader over r, decoding from encName and sniffing the separator.
func NewCsv(r io.Reader, encName string) (*csv.Reader, error) {
	var enc encoding.Encoding
	if encName != "" {
		var err error
		if enc, err = GetEncoding(encName); err != nil {
			return nil, err
		}
	}
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 && err != io.EOF {
		return nil, err
	}
	sep := rune(',')
	for _, r := range string(b) {
		if r == '"' || r == '_' || r == ' ' || r == '.' || r == '-' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			continue
		}
		if r == '\r' || r == '\n' {
			break
		}
		sep = r
		break
	}

	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	cr.Comma = sep
	return cr, nil
}

// CSVReader is a RowReader over a csv.Reader.
//
// A malformed record ends the stream: ReadRow returns io.EOF,
// and the error is only logged.
type CSVReader struct {
	cr        *csv.Reader
	logger    *slog.Logger
	header    [][]byte
	row       [][]byte
	buf       []byte
	hasHeader bool
	started   bool
	done      bool
}

// NewCSVReader returns a RowReader over cr.
// If hasHeader is true, the first record is returned by Header, not ReadRow.
func NewCSVReader(cr *csv.Reader, hasHeader bool) *CSVReader {
	return &CSVReader{cr: cr, hasHeader: hasHeader, logger: slog.Default()}
}

// SetLogger sets the logger used to report the malformed record ending the stream.
func (r *CSVReader) SetLogger(logger *slog.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Header returns the header record, if there is one.
func (r *CSVReader) Header() ([][]byte, bool) {
	r.start()
	return r.header, r.header != nil
}

func (r *CSVReader) start() {
	if r.started {
		return
	}
	r.started = true
	if !r.hasHeader {
		return
	}
	rec, ok := r.read()
	if !ok {
		return
	}
	r.header = make([][]byte, len(rec))
	for i, b := range rec {
		r.header[i] = append([]byte(nil), b...)
	}
}

// ReadRow returns the next data record.
func (r *CSVReader) ReadRow() ([][]byte, error) {
	r.start()
	rec, ok := r.read()
	if !ok {
		return nil, io.EOF
	}
	return rec, nil
}

func (r *CSVReader) read() ([][]byte, bool) {
	if r.done {
		return nil, false
	}
	rec, err := r.cr.Read()
	if err != nil {
		r.done = true
		if !errors.Is(err, io.EOF) {
			r.logger.Debug("csv: stop at malformed record", "error", err)
		}
		return nil, false
	}
	// one backing array per record
	r.buf = r.buf[:0]
	for _, s := range rec {
		r.buf = append(r.buf, s...)
	}
	r.row = r.row[:0]
	var off int
	for _, s := range rec {
		r.row = append(r.row, r.buf[off:off+len(s):off+len(s)])
		off += len(s)
	}
	return r.row, true
}
