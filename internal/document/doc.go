// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package document holds the configuration tree associated with a build
// target. A Document is plain canonical JSON, so it can be handed between
// goroutines as is; dot-path accessors are built on demand with gjson.
package document
