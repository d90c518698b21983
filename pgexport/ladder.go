// Copyright 2025 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package pgexport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
)

// State of the connection ladder.
type State uint8

const (
	Unattempted = State(iota)
	TryVerifiedTLS
	TrySkipVerifyTLS
	TryPlaintext
	Connected
	Failed
)

func (s State) String() string {
	switch s {
	case Unattempted:
		return "unattempted"
	case TryVerifiedTLS:
		return "verified-tls"
	case TrySkipVerifyTLS:
		return "skip-verify-tls"
	case TryPlaintext:
		return "plaintext"
	case Connected:
		return "connected"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// DialFunc connects with the given configuration.
type DialFunc func(context.Context, *pgconn.Config) (*pgconn.PgConn, error)

// Ladder connects by trying TLS with certificate verification,
// then TLS without verification, then no TLS at all,
// returning the first connection that succeeds.
type Ladder struct {
	// Config must be created by pgconn.ParseConfig.
	Config *pgconn.Config
	// Dial defaults to pgconn.ConnectConfig.
	Dial   DialFunc
	Logger *slog.Logger
	state  State
}

// NewLadder parses the connection string.
func NewLadder(connString string) (*Ladder, error) {
	cfg, err := pgconn.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	return &Ladder{Config: cfg}, nil
}

// State returns the state reached.
func (l *Ladder) State() State { return l.state }

// tierConfig returns the configuration of one tier: the TLS setting
// replaced, and no fallbacks, so each tier is exactly one attempt.
func (l *Ladder) tierConfig(tier State) *pgconn.Config {
	cfg := l.Config.Copy()
	cfg.Fallbacks = nil
	switch tier {
	case TryVerifiedTLS:
		// nil RootCAs means the system roots
		cfg.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	case TrySkipVerifyTLS:
		cfg.TLSConfig = &tls.Config{InsecureSkipVerify: true, MinVersion: tls.VersionTLS12}
	case TryPlaintext:
		cfg.TLSConfig = nil
	}
	return cfg
}

// Connect tries the tiers in order.
//
// If all of them fail, the returned error contains the error of each tier.
func (l *Ladder) Connect(ctx context.Context) (*pgconn.PgConn, error) {
	if l.Config == nil {
		return nil, errors.New("no connection config")
	}
	dial, logger := l.Dial, l.Logger
	if dial == nil {
		dial = pgconn.ConnectConfig
	}
	if logger == nil {
		logger = slog.Default()
	}
	var errs []error
	for _, tier := range []State{TryVerifiedTLS, TrySkipVerifyTLS, TryPlaintext} {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		l.state = tier
		conn, err := dial(ctx, l.tierConfig(tier))
		if err == nil {
			l.state = Connected
			logger.Debug("connected", "host", l.Config.Host, "tier", tier)
			return conn, nil
		}
		logger.Debug("connect", "host", l.Config.Host, "tier", tier, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", tier, err))
	}
	l.state = Failed
	return nil, fmt.Errorf("connect to %q: %w", l.Config.Host, errors.Join(errs...))
}

// Connect to the database described by connString, with the TLS ladder.
func Connect(ctx context.Context, connString string, logger *slog.Logger) (*pgconn.PgConn, error) {
	l, err := NewLadder(connString)
	if err != nil {
		return nil, err
	}
	l.Logger = logger
	return l.Connect(ctx)
}
