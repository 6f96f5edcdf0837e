// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/match"

	"github.com/kbctl/kbctl/internal/predicate"
)

var (
	// ErrUnrecognized is returned for expressions matching neither grammar.
	ErrUnrecognized = errors.New("unrecognized filter expression")

	// ErrUnknownPredicate is returned for function-call expressions whose
	// name is not registered.
	ErrUnknownPredicate = errors.New("unknown filter function")
)

// functionRegex matches "name(key)" and "name(key, value)". The value runs
// up to an optional "#" comment. Examples: "exists(features.rgblight)",
// "length(layouts, 2)", "contains(tags, iso # iso only)".
var functionRegex = regexp.MustCompile(`^([a-zA-Z]+)\(([a-zA-Z0-9_.]+)(?:,\s*([^#]+?))?\s*(?:#.*)?\)$`)

// equalsRegex matches "key=value" with optional spaces around "=" and an
// optional trailing "#" comment. Example: "usb.vid = 0x320F # glorious".
var equalsRegex = regexp.MustCompile(`^([a-zA-Z0-9_.]+)\s*=\s*([^#]+?)\s*(?:#.*)?$`)

// Kind distinguishes the two filter grammars.
type Kind int

const (
	// Function is the "name(key[, value])" form.
	Function Kind = iota + 1
	// Equals is the "key = glob" form.
	Equals
)

func (k Kind) String() string {
	switch k {
	case Function:
		return "function"
	case Equals:
		return "equals"
	default:
		return "unknown"
	}
}

// Expression is a single parsed --filter expression.
type Expression struct {
	Raw   string
	Kind  Kind
	Name  string
	Key   string
	Value string
}

// Compiled pairs an expression with the predicate built from it.
type Compiled struct {
	Expression
	Predicate predicate.Predicate
}

// Parse recognizes expr as a function-call or an equality expression, in
// that order.
func Parse(expr string) (Expression, error) {
	expr = strings.TrimSpace(expr)

	if parts := functionRegex.FindStringSubmatch(expr); parts != nil {
		if parts[3] != "" && strings.TrimSpace(parts[3]) == "" {
			return Expression{}, fmt.Errorf("%w: %s", ErrUnrecognized, expr)
		}
		return Expression{
			Raw:   expr,
			Kind:  Function,
			Name:  strings.ToLower(parts[1]),
			Key:   parts[2],
			Value: strings.TrimSpace(parts[3]),
		}, nil
	}

	if parts := equalsRegex.FindStringSubmatch(expr); parts != nil {
		if strings.TrimSpace(parts[2]) == "" {
			return Expression{}, fmt.Errorf("%w: %s", ErrUnrecognized, expr)
		}
		return Expression{
			Raw:   expr,
			Kind:  Equals,
			Key:   parts[1],
			Value: strings.TrimSpace(parts[2]),
		}, nil
	}

	return Expression{}, fmt.Errorf("%w: %s", ErrUnrecognized, expr)
}

// Predicate builds the predicate the expression describes.
func (e Expression) Predicate() (predicate.Predicate, error) {
	switch e.Kind {
	case Function:
		p, ok := predicate.Lookup(e.Name, e.Key, e.Value)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPredicate, e.Raw)
		}
		return p, nil
	case Equals:
		return equals(e.Key, e.Value), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnrecognized, e.Raw)
	}
}

// String renders the condition for log output.
func (e Expression) String() string {
	switch e.Kind {
	case Function:
		if e.Value != "" {
			return fmt.Sprintf("%s(%s, %s)", e.Name, e.Key, e.Value)
		}
		return fmt.Sprintf("%s(%s)", e.Name, e.Key)
	case Equals:
		return fmt.Sprintf("%s == %s", e.Key, e.Value)
	default:
		return e.Raw
	}
}

// Compile parses exprs in order and builds their predicates. Expressions
// that cannot be parsed or name an unknown function are logged as warnings
// and skipped, so one bad expression never disables the rest.
func Compile(exprs []string) []Compiled {
	//nolint:prealloc // Don't prealloc because invalid entries are dropped.
	var compiled []Compiled

	for _, raw := range exprs {
		expr, err := Parse(raw)
		if err != nil {
			log.Warnf("Unrecognized filter expression: %s", raw)
			continue
		}

		p, err := expr.Predicate()
		if err != nil {
			log.Warnf("Unrecognized filter expression: %s", expr.Raw)
			continue
		}

		compiled = append(compiled, Compiled{Expression: expr, Predicate: p})
	}

	return compiled
}

// equals matches the text form of the value at key against a
// case-insensitive glob supporting '*' and '?'.
func equals(key, pattern string) predicate.Predicate {
	return predicate.Func(func(i predicate.Info) bool {
		return match.MatchNoCase(Stringify(i.Doc.Get(key)), pattern)
	})
}

// Stringify renders a looked-up value the way equality filters see it.
// Missing and null values read as "False", booleans as "True"/"False",
// numbers verbatim and containers as compact JSON.
func Stringify(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return "False"
	case gjson.False:
		return "False"
	case gjson.True:
		return "True"
	case gjson.String:
		return r.Str
	default:
		return r.Raw
	}
}
