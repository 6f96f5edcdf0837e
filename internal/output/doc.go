// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders build targets as plain make targets, a table, JSON
// or YAML, and lists the document keys available for filtering.
package output
