// Copyright 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/klauspost/compress/flate"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/UNO-SOFT/xlstream/internal/cliutil"
	"github.com/UNO-SOFT/xlstream/pgexport"
	"github.com/UNO-SOFT/xlstream/xlsx"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		slog.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	fs := flag.NewFlagSet("pg2xlsx", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	fs.String("config", "", "config file (TOML)")
	flagConn := fs.String("conn", os.Getenv("DATABASE_URL"), "database connection string")
	flagOut := fs.String("o", "", "output file name (default: stdout)")
	flagTyped := fs.Bool("typed", false, "write numbers as number cells")
	flagLevel := fs.Int("level", flate.BestSpeed, "compression level (0-9)")
	flagTable := fs.String("table", "", "export this table ([schema.]name)")
	flagSelect := fs.String("select", "", "comma separated list of the columns of the table (default all)")
	flagExclude := fs.String("exclude", "", "comma separated list of the columns of the table to skip")
	flagOrderBy := fs.String("order-by", "", "order the table by this column")
	flagDesc := fs.Bool("desc", false, "descending order")

	app := ffcli.Command{Name: "pg2xlsx", FlagSet: fs,
		ShortUsage: "pg2xlsx [flags] [sheet-name:]query...",
		Options:    cliutil.Options("PG2XLSX"),
		Exec: func(ctx context.Context, args []string) (err error) {
			if *flagTable == "" && len(args) == 0 {
				return errors.New("a -table or a query is needed")
			}
			conn, err := pgexport.Connect(ctx, *flagConn, logger)
			if err != nil {
				return err
			}
			defer conn.Close(context.Background())

			type sheetQuery struct{ Name, SQL string }
			queries := make([]sheetQuery, 0, len(args)+1)
			if *flagTable != "" {
				q, err := pgexport.NewQuery(*flagTable)
				if err != nil {
					return err
				}
				order := pgexport.Ascending
				if *flagDesc {
					order = pgexport.Descending
				}
				q.Select(splitList(*flagSelect)...).
					Exclude(splitList(*flagExclude)...).
					OrderBy(*flagOrderBy, order)
				qry, err := q.SQL(ctx, conn)
				if err != nil {
					return err
				}
				queries = append(queries, sheetQuery{Name: q.Table(), SQL: qry})
			}
			for _, arg := range args {
				name, qry := cliutil.SplitNamed(arg)
				queries = append(queries, sheetQuery{Name: name, SQL: qry})
			}

			fh, err := cliutil.Create(*flagOut)
			if err != nil {
				return err
			}
			defer fh.Close()
			defer cliutil.RemoveOnError(fh, &err)
			wb := xlsx.NewWorkbook(fh,
				xlsx.WithLogger(logger),
				xlsx.WithCompressionLevel(*flagLevel),
				xlsx.WithApplication("pg2xlsx"))
			e := pgexport.NewExporter(conn, logger)
			e.Typed = *flagTyped
			for _, q := range queries {
				logger.Debug("export", "sheet", q.Name, "sql", q.SQL)
				n, err := e.Export(ctx, wb, q.Name, q.SQL)
				if err != nil {
					return fmt.Errorf("%s: %w", q.SQL, err)
				}
				logger.Info("exported", "sheet", q.Name, "rows", n)
			}
			if err = wb.Finish(); err != nil {
				return err
			}
			return fh.Close()
		},
	}

	if err := app.Parse(os.Args[1:]); err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}

func splitList(s string) []string {
	var ss []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			ss = append(ss, e)
		}
	}
	return ss
}
