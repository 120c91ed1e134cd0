// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockheader

import "github.com/decred/slog"

// log is the package-wide logger used by this subsystem. It defaults to
// slog.Disabled so importing this package doesn't produce any output
// until a caller wires a real backend in with UseLogger.
var log = slog.Disabled

// UseLogger sets the subsystem logger used by this package. It is the
// caller's responsibility to initialize the logger before calling any
// package functions that log.
func UseLogger(logger slog.Logger) {
	log = logger
}
