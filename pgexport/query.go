// Copyright 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package pgexport

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Order of the ORDER BY clause.
type Order uint8

const (
	Ascending = Order(iota)
	Descending
)

func (o Order) String() string {
	if o == Descending {
		return "DESC"
	}
	return "ASC"
}

var ErrNoTable = errors.New("no table")

// Query builds a SELECT over one table.
type Query struct {
	table   pgx.Identifier
	columns []string
	exclude []string
	orderBy string
	order   Order
}

// NewQuery returns a query selecting all columns of table ("name" or "schema.name").
func NewQuery(table string) (*Query, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, ErrNoTable
	}
	ident := pgx.Identifier(strings.SplitN(table, ".", 2))
	for _, s := range ident {
		if s == "" {
			return nil, fmt.Errorf("%q: %w", table, ErrNoTable)
		}
	}
	return &Query{table: ident}, nil
}

// Select the columns. No columns means all of them.
func (q *Query) Select(columns ...string) *Query {
	q.columns = append(q.columns[:0], columns...)
	return q
}

// Exclude the columns.
func (q *Query) Exclude(columns ...string) *Query {
	q.exclude = append(q.exclude[:0], columns...)
	return q
}

// OrderBy the column. An empty column means no ordering.
func (q *Query) OrderBy(column string, order Order) *Query {
	q.orderBy, q.order = column, order
	return q
}

// Schema returns the schema name of the table, or "".
func (q *Query) Schema() string {
	if len(q.table) == 2 {
		return q.table[0]
	}
	return ""
}

// Table returns the table name.
func (q *Query) Table() string { return q.table[len(q.table)-1] }

// needsColumns reports whether the column names must be listed from the database.
func (q *Query) needsColumns() bool { return len(q.columns) == 0 && len(q.exclude) != 0 }

// SQL returns the statement.
//
// The column names are looked up with conn only when all columns
// except the excluded ones are selected.
func (q *Query) SQL(ctx context.Context, conn *pgconn.PgConn) (string, error) {
	columns := q.columns
	if q.needsColumns() {
		if conn == nil {
			return "", errors.New("listing the columns needs a connection")
		}
		var err error
		if columns, err = TableColumns(ctx, conn, q.Schema(), q.Table()); err != nil {
			return "", err
		}
		if len(columns) == 0 {
			return "", fmt.Errorf("%s: %w", q.table.Sanitize(), ErrNoTable)
		}
	}
	return q.build(columns)
}

func (q *Query) build(columns []string) (string, error) {
	var buf strings.Builder
	buf.WriteString("SELECT ")
	var n int
	for _, c := range columns {
		if q.excluded(c) {
			continue
		}
		if n != 0 {
			buf.WriteString(", ")
		}
		n++
		buf.WriteString(pgx.Identifier{c}.Sanitize())
	}
	if n == 0 {
		if len(columns) != 0 {
			return "", errors.New("all columns are excluded")
		}
		buf.WriteByte('*')
	}
	buf.WriteString(" FROM ")
	buf.WriteString(q.table.Sanitize())
	if q.orderBy != "" {
		buf.WriteString(" ORDER BY ")
		buf.WriteString(pgx.Identifier{q.orderBy}.Sanitize())
		buf.WriteByte(' ')
		buf.WriteString(q.order.String())
	}
	return buf.String(), nil
}

func (q *Query) excluded(column string) bool {
	for _, e := range q.exclude {
		if e == column {
			return true
		}
	}
	return false
}

// The relation is resolved the same way as in the generated SELECT,
// so an unqualified name means the first match on the search_path.
const qryColumns = `SELECT attname FROM pg_catalog.pg_attribute
  WHERE attrelid = $1::regclass AND attnum > 0 AND NOT attisdropped
  ORDER BY attnum`

// TableColumns returns the column names of the table, in order.
// An empty schema means the table is looked up on the search_path.
func TableColumns(ctx context.Context, conn *pgconn.PgConn, schema, table string) ([]string, error) {
	rel := relation(schema, table)
	rr := conn.ExecParams(ctx, qryColumns, [][]byte{[]byte(rel)}, nil, nil, nil)
	var columns []string
	for rr.NextRow() {
		columns = append(columns, string(rr.Values()[0]))
	}
	if _, err := rr.Close(); err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", rel, err)
	}
	return columns, nil
}

// relation returns the quoted, optionally schema-qualified name of the table.
func relation(schema, table string) string {
	if schema == "" {
		return pgx.Identifier{table}.Sanitize()
	}
	return pgx.Identifier{schema, table}.Sanitize()
}
