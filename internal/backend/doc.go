// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package backend selects where keyboards, keymaps and their documents are
// read from: a local firmware tree (local) or a bucket of pre-rendered
// keymap documents (s3).
package backend
