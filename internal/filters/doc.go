// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters parses --filter expressions into predicates.
//
// Two grammars are recognized, tried in this order:
//
//   - name(key) or name(key, value) : a function-call expression resolved
//     through the predicate registry. The name is case-insensitive.
//   - key=pattern : an equality expression. The value found at key is
//     rendered as text and matched against pattern, a case-insensitive glob
//     where '*' matches any run of characters and '?' matches one.
//
// Keys are dotted paths into the target's configuration document, e.g.
// "features.rgblight" or "usb.vid". Anything after a '#' in the value is a
// comment and is discarded.
//
// Text rendering for equality matches:
//
//   - missing or null : "False"
//   - booleans        : "True" or "False"
//   - strings         : the string itself
//   - numbers         : as written in the document
//   - arrays/objects  : compact JSON
//
// Examples:
//
//   - "exists(features.rgblight)"
//   - "length(layouts, 2)"
//   - "contains(tags, iso)"
//   - "region=US*"
//   - "usb.vid = 0x320F # Glorious"
//
// Compile logs and skips expressions that do not parse or name an unknown
// function. The remaining expressions are returned in input order.
package filters
