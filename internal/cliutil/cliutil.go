// Copyright 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package cliutil holds the helpers shared by the commands.
package cliutil

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/fftoml"
)

// Options returns the ff options of the commands: flags may also be set
// from the environment (with the envPrefix) and from the TOML file named
// by the -config flag, where "[db] conn" sets the flag "db.conn".
func Options(envPrefix string) []ff.Option {
	return []ff.Option{
		ff.WithEnvVarPrefix(envPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(fftoml.New(fftoml.WithTableDelimiter(".")).Parse),
	}
}

// SplitNamed splits the "name:rest" argument.
//
// The name may not contain spaces and must be followed by a single colon,
// so "SELECT 1::int" or "C:\x.csv" has no name.
func SplitNamed(arg string) (name, rest string) {
	i := strings.IndexByte(arg, ':')
	if i <= 1 || strings.HasPrefix(arg[i:], "::") ||
		strings.IndexFunc(arg[:i], unicode.IsSpace) >= 0 {
		return "", arg
	}
	return arg[:i], arg[i+1:]
}

// Create the named file for writing, "" and "-" mean stdout.
func Create(fn string) (*os.File, error) {
	if fn == "" || fn == "-" {
		return os.Stdout, nil
	}
	return os.Create(fn)
}

// RemoveOnError closes and removes fh if *errp is not nil,
// as a partially written package is useless. Stdout is left alone.
//
// Use it deferred, with a named error result.
func RemoveOnError(fh *os.File, errp *error) {
	if *errp == nil || fh == nil || fh == os.Stdout {
		return
	}
	fh.Close()
	if err := os.Remove(fh.Name()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		*errp = errors.Join(*errp, err)
	}
}
