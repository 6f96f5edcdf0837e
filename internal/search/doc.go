// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package search turns target descriptors into build targets.
//
// Expansion resolves the "all" wildcard on either side of a descriptor:
//
//   - kb:km   : passed through as is
//   - kb:all  : every keymap of kb
//   - all:km  : every keyboard where km can be located
//   - all:all : every keymap of every keyboard
//
// Filtering loads each target's configuration document on a bounded worker
// pool, then narrows the set with each filter expression in turn. Inventory
// probes and document loads run inside log.Quiet so that backend chatter does
// not reach the user.
//
// Results are always deduplicated and sorted, so the same input produces the
// same output regardless of how the workers were scheduled. No operation
// returns an error: problems with individual descriptors, documents or
// expressions are logged and the affected items are skipped.
package search
