// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package predicate

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kbctl/kbctl/internal/document"
)

// Info is the unit a predicate is applied to: one keyboard/keymap pair and
// its loaded configuration document.
type Info struct {
	Keyboard string
	Keymap   string
	Doc      document.Document
}

// Predicate decides whether a target satisfies a condition.
type Predicate interface {
	Apply(Info) bool
}

// Func adapts an ordinary function to the Predicate interface.
type Func func(Info) bool

// Apply implements Predicate.
func (f Func) Apply(i Info) bool {
	return f(i)
}

// Factory builds a predicate from the key path and literal value of a
// function-call filter. value is "" when the filter supplied none.
type Factory func(key, value string) Predicate

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

func init() {
	Register("exists", Exists)
	Register("absent", Absent)
	Register("length", Length)
	Register("contains", Contains)
}

// Register adds or replaces the factory for name. Names are case-insensitive.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(name)] = factory
}

// Lookup builds the predicate registered under name. The second return value
// is false when no such predicate exists.
func Lookup(name, key, value string) (Predicate, bool) {
	mu.RLock()
	factory, ok := registry[strings.ToLower(name)]
	mu.RUnlock()
	if !ok {
		return nil, false
	}
	return factory(key, value), true
}

// Names returns the registered predicate names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Help lists the registered names for usage text, e.g.
// "'absent', 'contains', 'exists' and 'length'".
func Help() string {
	names := Names()
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("'%s'", name)
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " and " + quoted[len(quoted)-1]
}
