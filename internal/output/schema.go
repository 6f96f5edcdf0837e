// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/kbctl/kbctl/internal/target"
)

// maxSchemaDepth limits how deep DumpSchema descends into nested objects.
const maxSchemaDepth = 8

// DumpSchema writes the sorted set of dot paths present in the documents of
// targets. These are the keys usable in filter expressions and --print.
func DumpSchema(w io.Writer, targets []target.BuildTarget) {
	if w == nil {
		w = os.Stdout
	}

	seen := map[string]bool{}
	for _, bt := range targets {
		if bt.Document.IsZero() {
			continue
		}
		schemaWalker("", gjson.ParseBytes(bt.Document.Bytes()), 0, seen)
	}
	if len(seen) == 0 {
		log.Debugf("no document keys found in %d targets", len(targets))
		return
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
}

// schemaWalker records the path of every member of obj, recursing into
// nested objects. Arrays are recorded but not indexed.
func schemaWalker(holder string, obj gjson.Result, depth int, seen map[string]bool) {
	obj.ForEach(func(key, value gjson.Result) bool {
		p := key.String()
		if holder != "" {
			p = holder + "." + p
		}
		seen[p] = true
		if value.IsObject() && depth < maxSchemaDepth {
			schemaWalker(p, value, depth+1, seen)
		}
		return true
	})
}
