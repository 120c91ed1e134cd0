// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package logctx wires up the backend(s) a caller of this module can hand
// to each package's UseLogger setter (blockheader, merkle, tx, txscript).
// It deliberately stops at backend construction: there is no config file,
// no CLI flag parsing, and no global subsystem registry, since this
// module has no daemon or Non-goal CLI to drive one.
package logctx

import (
	"io"
	"os"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// NewBackend returns an slog.Backend that writes to stdout, suitable for
// a caller that just wants readable output during development.
func NewBackend() slog.Backend {
	return slog.NewBackend(os.Stdout)
}

// NewFileBackend returns an slog.Backend backed by a log-rotating file
// writer at logPath, rolling the file once it exceeds maxRollSizeMB
// megabytes. The returned closer must be closed on shutdown to flush and
// release the underlying file handle.
func NewFileBackend(logPath string, maxRollSizeMB int64) (slog.Backend, io.Closer, error) {
	r, err := rotator.New(logPath, maxRollSizeMB*1024, false, 10)
	if err != nil {
		return nil, nil, err
	}
	return slog.NewBackend(r), r, nil
}

// Logger returns a subsystem logger at the given level from backend,
// matching the dcrd convention of one Logger per package tagged with its
// package's short subsystem name (e.g. "BHDR", "MRKL", "TXSC", "TX  ").
func Logger(backend slog.Backend, subsystem string, level slog.Level) slog.Logger {
	l := backend.Logger(subsystem)
	l.SetLevel(level)
	return l
}
