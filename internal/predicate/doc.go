// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package predicate is the registry of named filter functions used by
// function-call filter expressions such as "exists(features.rgblight)".
//
// Built-ins:
//
//   - exists(key)       : key is present
//   - absent(key)       : key is not present
//   - length(key, n)    : key is present and its value has length n
//   - contains(key, v)  : key is present and its value contains v
//
// Names are matched case-insensitively. New kinds are added with Register;
// Lookup never fails loudly, it reports an unknown name with a false second
// return value.
package predicate
