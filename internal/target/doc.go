// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package target holds the resolved keyboard/keymap pair and the build
// target produced from it, along with their identity and ordering rules.
package target
