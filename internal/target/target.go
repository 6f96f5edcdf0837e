// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"sort"

	"github.com/kbctl/kbctl/internal/document"
)

// Target is a resolved keyboard/keymap pair.
type Target struct {
	Keyboard string
	Keymap   string
}

// String renders the target in make form, e.g. "planck/rev6:default".
func (t Target) String() string {
	return t.Keyboard + ":" + t.Keymap
}

// Less orders targets by keyboard, then keymap.
func (t Target) Less(o Target) bool {
	if t.Keyboard != o.Keyboard {
		return t.Keyboard < o.Keyboard
	}
	return t.Keymap < o.Keymap
}

// BuildTarget is a target plus the document it was filtered on, if any.
type BuildTarget struct {
	Target
	Document document.Document
}

// Key is the identity of a build target. Two build targets with the same
// ids and byte-identical documents share a key.
func (b BuildTarget) Key() string {
	return b.Keyboard + "\x00" + b.Keymap + "\x00" + b.Document.String()
}

// Unique returns the distinct targets in ts, sorted.
func Unique(ts []Target) []Target {
	seen := make(map[Target]struct{}, len(ts))
	out := make([]Target, 0, len(ts))
	for _, t := range ts {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// UniqueBuild returns the distinct build targets in bs, sorted by target and
// then by document text.
func UniqueBuild(bs []BuildTarget) []BuildTarget {
	seen := make(map[string]struct{}, len(bs))
	out := make([]BuildTarget, 0, len(bs))
	for _, b := range bs {
		k := b.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Target != out[j].Target {
			return out[i].Less(out[j].Target)
		}
		return out[i].Document.String() < out[j].Document.String()
	})
	return out
}
