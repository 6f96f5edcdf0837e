// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"

	"github.com/kbctl/kbctl/internal/document"
	"github.com/kbctl/kbctl/internal/filters"
	"github.com/kbctl/kbctl/internal/log"
	"github.com/kbctl/kbctl/internal/parallel"
	"github.com/kbctl/kbctl/internal/predicate"
	"github.com/kbctl/kbctl/internal/target"
)

// Inventory answers which keyboards and keymaps exist.
type Inventory interface {
	Keyboards(ctx context.Context) ([]string, error)
	Keymaps(ctx context.Context, keyboard string) ([]string, error)
	// KeymapExists returns the canonical keyboard name and true when the
	// keymap can be located for keyboard.
	KeymapExists(ctx context.Context, keyboard, keymap string) (string, bool)
}

// DocumentStore loads the configuration document of a keyboard/keymap pair.
type DocumentStore interface {
	Document(ctx context.Context, keyboard, keymap string) (document.Document, error)
}

// Searcher resolves descriptors into build targets and narrows them with
// filter expressions.
type Searcher struct {
	inv       Inventory
	store     DocumentStore
	workers   int
	documents bool
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithWorkers bounds the number of concurrent inventory probes and document
// loads. Zero or less means one per CPU.
func WithWorkers(n int) Option {
	return func(s *Searcher) {
		s.workers = n
	}
}

// WithDocuments makes Filter load and attach documents even when no filter
// expressions are given.
func WithDocuments() Option {
	return func(s *Searcher) {
		s.documents = true
	}
}

// New returns a Searcher over inv and store.
func New(inv Inventory, store DocumentStore, opts ...Option) *Searcher {
	s := &Searcher{inv: inv, store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search expands descriptors and filters the result.
func (s *Searcher) Search(ctx context.Context, descriptors []Descriptor, exprs []string) []target.BuildTarget {
	return s.Filter(ctx, s.Expand(ctx, descriptors), exprs)
}

// SearchMake is Search for make-style "keyboard:keymap" strings.
func (s *Searcher) SearchMake(ctx context.Context, targets []string, exprs []string) []target.BuildTarget {
	return s.Filter(ctx, s.ExpandMake(ctx, targets), exprs)
}

type loaded struct {
	info predicate.Info
	err  error
}

// Filter narrows targets with exprs, applied in order. Without exprs (and
// without WithDocuments) no documents are loaded. Targets whose document
// cannot be loaded are dropped with a warning.
func (s *Searcher) Filter(ctx context.Context, targets []target.Target, exprs []string) []target.BuildTarget {
	if len(exprs) == 0 && !s.documents {
		log.Infof("Preparing target list...")
		built := parallel.Each(ctx, s.workers, targets, func(_ context.Context, t target.Target) target.BuildTarget {
			return target.BuildTarget{Target: t}
		})
		return target.UniqueBuild(built)
	}

	log.Infof("Parsing data for all matching keyboard/keymap combinations...")
	results := parallel.Each(ctx, s.workers, targets, func(ctx context.Context, t target.Target) loaded {
		var doc document.Document
		var err error
		log.Quiet(func() {
			doc, err = s.store.Document(ctx, t.Keyboard, t.Keymap)
		})
		return loaded{
			info: predicate.Info{Keyboard: t.Keyboard, Keymap: t.Keymap, Doc: doc},
			err:  err,
		}
	})

	infos := make([]predicate.Info, 0, len(results))
	for i, r := range results {
		if r.err != nil {
			log.WithError(r.err).Warnf("Unable to load data for %s", targets[i])
			continue
		}
		infos = append(infos, r.info)
	}

	for _, c := range filters.Compile(exprs) {
		log.Infof("Filtering on condition: %s...", c)
		infos = narrow(infos, c.Predicate)
	}

	log.Infof("Preparing target list...")
	built := parallel.Each(ctx, s.workers, infos, func(_ context.Context, i predicate.Info) target.BuildTarget {
		return target.BuildTarget{
			Target:   target.Target{Keyboard: i.Keyboard, Keymap: i.Keymap},
			Document: i.Doc,
		}
	})
	return target.UniqueBuild(built)
}

// narrow keeps the entries of infos that satisfy p. infos is reused.
func narrow(infos []predicate.Info, p predicate.Predicate) []predicate.Info {
	kept := infos[:0]
	for _, i := range infos {
		if p.Apply(i) {
			kept = append(kept, i)
		}
	}
	return kept
}
