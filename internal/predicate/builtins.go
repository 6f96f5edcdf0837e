// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package predicate

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// Exists is true when key is present in the document.
func Exists(key, _ string) Predicate {
	return Func(func(i Info) bool {
		return i.Doc.Has(key)
	})
}

// Absent is true when key is not present in the document.
func Absent(key, _ string) Predicate {
	return Func(func(i Info) bool {
		return !i.Doc.Has(key)
	})
}

// Length is true when key is present and the value it holds has exactly n
// elements (arrays), keys (objects) or characters (strings).
func Length(key, value string) Predicate {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Errorf("length(%s): invalid length %q", key, value)
		return Func(func(Info) bool { return false })
	}

	return Func(func(i Info) bool {
		r := i.Doc.Get(key)
		if !r.Exists() {
			return false
		}
		size, ok := sizeOf(r)
		if !ok {
			log.Debugf("length(%s): value of %s:%s has no length", key, i.Keyboard, i.Keymap)
			return false
		}
		return size == n
	})
}

// Contains is true when key is present and value is a substring of it
// (strings), one of its elements (arrays) or one of its keys (objects).
func Contains(key, value string) Predicate {
	return Func(func(i Info) bool {
		if value == "" {
			return false
		}
		r := i.Doc.Get(key)
		if !r.Exists() {
			return false
		}

		switch {
		case r.Type == gjson.String:
			return strings.Contains(r.Str, value)
		case r.IsArray():
			for _, e := range r.Array() {
				if elementText(e) == value {
					return true
				}
			}
			return false
		case r.IsObject():
			found := false
			r.ForEach(func(k, _ gjson.Result) bool {
				found = k.Str == value
				return !found
			})
			return found
		default:
			log.Debugf("contains(%s): value of %s:%s is not a container", key, i.Keyboard, i.Keymap)
			return false
		}
	})
}

// sizeOf returns the container length of r, or false if r is not sized.
func sizeOf(r gjson.Result) (int, bool) {
	switch {
	case r.Type == gjson.String:
		return utf8.RuneCountInString(r.Str), true
	case r.IsArray():
		return len(r.Array()), true
	case r.IsObject():
		n := 0
		r.ForEach(func(_, _ gjson.Result) bool {
			n++
			return true
		})
		return n, true
	default:
		return 0, false
	}
}

// elementText is the text an array element is compared by. Nested containers
// compare by their JSON.
func elementText(e gjson.Result) string {
	if e.Type == gjson.JSON {
		return e.Raw
	}
	return e.String()
}
