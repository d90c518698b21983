// Copyright 2021, 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/klauspost/compress/flate"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/UNO-SOFT/xlstream"
	"github.com/UNO-SOFT/xlstream/internal/cliutil"
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
	fs := flag.NewFlagSet("csv2xlsx", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	fs.String("config", "", "config file (TOML)")
	flagEnc := fs.String("charset", xlstream.EncName, "csv charset name")
	flagOut := fs.String("o", "", "output file name (default first input file + .xlsx)")
	flagNoHeader := fs.Bool("no-header", false, "the first row is data, not header")
	flagLevel := fs.Int("level", flate.BestSpeed, "compression level (0-9)")

	app := ffcli.Command{Name: "csv2xlsx", FlagSet: fs,
		ShortUsage: "csv2xlsx [flags] [sheet-name:]file.csv...",
		Options:    cliutil.Options("CSV2XLSX"),
		Exec: func(ctx context.Context, args []string) (err error) {
			if len(args) == 0 {
				args = []string{"-"}
			}
			out := *flagOut
			if out == "" {
				if _, fn := cliutil.SplitNamed(args[0]); fn != "" && fn != "-" {
					out = strings.TrimSuffix(fn, filepath.Ext(fn)) + ".xlsx"
				}
			}
			fh, err := cliutil.Create(out)
			if err != nil {
				return err
			}
			defer fh.Close()
			defer cliutil.RemoveOnError(fh, &err)

			wb := xlsx.NewWorkbook(fh,
				xlsx.WithLogger(logger),
				xlsx.WithCompressionLevel(*flagLevel),
				xlsx.WithApplication("csv2xlsx"))
			for _, arg := range args {
				if err := ctx.Err(); err != nil {
					return err
				}
				sheetName, fn := cliutil.SplitNamed(arg)
				if sheetName == "" && fn != "" && fn != "-" {
					sheetName = strings.TrimSuffix(filepath.Base(fn), filepath.Ext(fn))
				}
				n, err := copyFile(wb, sheetName, *flagEnc, fn, !*flagNoHeader)
				if err != nil {
					return fmt.Errorf("%q: %w", fn, err)
				}
				logger.Info("copied", "file", fn, "sheet", sheetName, "rows", n)
			}
			if err := wb.Finish(); err != nil {
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

func copyFile(wb *xlsx.Workbook, sheetName, encName, fn string, hasHeader bool) (int64, error) {
	cr, err := xlstream.OpenCsv(fn, encName)
	if err != nil {
		return 0, err
	}
	defer cr.Close()
	r := xlstream.NewCSVReader(cr.Reader, hasHeader)
	r.SetLogger(logger)

	sheet, err := wb.GetWorksheet(sheetName)
	if err != nil {
		return 0, err
	}
	if hdr, ok := r.Header(); ok {
		if err = sheet.WriteRow(hdr); err != nil {
			sheet.Close()
			return 0, err
		}
	}
	n, err := sheet.WriteRows(r)
	if err != nil {
		sheet.Close()
		return n, err
	}
	return n, sheet.Close()
}
