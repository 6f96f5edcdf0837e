// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package parallel runs independent units of work on a bounded pool of
// goroutines. Results always come back in input order, regardless of the
// order in which the work completes.
package parallel
