// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kbctl/kbctl/internal/log"
	"github.com/kbctl/kbctl/internal/parallel"
	"github.com/kbctl/kbctl/internal/target"
)

// All is the wildcard token accepted for either half of a descriptor.
const All = "all"

// ErrInvalidTarget is returned for make-style targets that are not exactly
// "keyboard:keymap".
var ErrInvalidTarget = errors.New("invalid build target")

// Descriptor is user input naming one or more targets. Either half may be
// All.
type Descriptor struct {
	Keyboard string
	Keymap   string
}

// DefaultDescriptor selects the default keymap of every keyboard.
var DefaultDescriptor = Descriptor{Keyboard: All, Keymap: "default"}

func (d Descriptor) String() string {
	return d.Keyboard + ":" + d.Keymap
}

// ParseDescriptor splits a "keyboard:keymap" string. Both halves must be
// non-empty.
func ParseDescriptor(s string) (Descriptor, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrInvalidTarget, s)
	}
	return Descriptor{Keyboard: parts[0], Keymap: parts[1]}, nil
}

// Expand resolves descriptors against the inventory. The result is
// deduplicated and sorted by keyboard, then keymap.
func (s *Searcher) Expand(ctx context.Context, descriptors []Descriptor) []target.Target {
	keyboards := s.keyboardLister(ctx)

	var out []target.Target
	for _, d := range descriptors {
		out = append(out, s.expandOne(ctx, d, keyboards)...)
	}
	return target.Unique(out)
}

// ExpandMake parses make-style "keyboard:keymap" strings and expands them.
// A single malformed string voids the whole request.
func (s *Searcher) ExpandMake(ctx context.Context, targets []string) []target.Target {
	descriptors := make([]Descriptor, 0, len(targets))
	for _, t := range targets {
		d, err := ParseDescriptor(t)
		if err != nil {
			log.Errorf("Invalid build target: %s", t)
			return nil
		}
		descriptors = append(descriptors, d)
	}
	return s.Expand(ctx, descriptors)
}

func (s *Searcher) expandOne(ctx context.Context, d Descriptor, keyboards func() []string) []target.Target {
	switch {
	case d.Keyboard == All && d.Keymap == All:
		log.Infof("Retrieving list of all keyboards and keymaps...")
		perKeyboard := parallel.Each(ctx, s.workers, keyboards(), func(ctx context.Context, kb string) []target.Target {
			return s.keymapsOf(ctx, kb)
		})
		var out []target.Target
		for _, ts := range perKeyboard {
			out = append(out, ts...)
		}
		return out

	case d.Keyboard == All:
		log.Infof("Retrieving list of keyboards with keymap \"%s\"...", d.Keymap)
		found := parallel.Each(ctx, s.workers, keyboards(), func(ctx context.Context, kb string) string {
			var name string
			var ok bool
			log.Quiet(func() {
				name, ok = s.inv.KeymapExists(ctx, kb, d.Keymap)
			})
			if !ok {
				return ""
			}
			return name
		})
		var out []target.Target
		for _, kb := range found {
			if kb != "" {
				out = append(out, target.Target{Keyboard: kb, Keymap: d.Keymap})
			}
		}
		return out

	case d.Keymap == All:
		log.Infof("Retrieving list of keymaps for keyboard \"%s\"...", d.Keyboard)
		return s.keymapsOf(ctx, d.Keyboard)

	default:
		return []target.Target{{Keyboard: d.Keyboard, Keymap: d.Keymap}}
	}
}

// keymapsOf lists every keymap of kb. Inventory noise is suppressed while
// probing.
func (s *Searcher) keymapsOf(ctx context.Context, kb string) []target.Target {
	var keymaps []string
	var err error
	log.Quiet(func() {
		keymaps, err = s.inv.Keymaps(ctx, kb)
	})
	if err != nil {
		log.WithError(err).Errorf("Unable to list keymaps for %s", kb)
		return nil
	}

	out := make([]target.Target, 0, len(keymaps))
	for _, km := range keymaps {
		out = append(out, target.Target{Keyboard: kb, Keymap: km})
	}
	return out
}

// keyboardLister returns a function that fetches the keyboard list on first
// use and reuses it for the rest of one Expand call.
func (s *Searcher) keyboardLister(ctx context.Context) func() []string {
	var (
		keyboards []string
		fetched   bool
	)
	return func() []string {
		if fetched {
			return keyboards
		}
		fetched = true

		var err error
		log.Quiet(func() {
			keyboards, err = s.inv.Keyboards(ctx)
		})
		if err != nil {
			log.WithError(err).Errorf("Unable to list keyboards")
			keyboards = nil
		}
		return keyboards
	}
}
