// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package target

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kbctl/kbctl/internal/document"
)

func TestString(t *testing.T) {
	assert.Equal(t, "planck/rev6:default", Target{"planck/rev6", "default"}.String())
}

func TestLess(t *testing.T) {
	tests := []struct {
		a, b Target
		want bool
	}{
		{Target{"kbA", "default"}, Target{"kbB", "default"}, true},
		{Target{"kbB", "default"}, Target{"kbA", "via"}, false},
		{Target{"kbA", "default"}, Target{"kbA", "via"}, true},
		{Target{"kbA", "via"}, Target{"kbA", "via"}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Less(tt.b), "%s < %s", tt.a, tt.b)
	}
}

func TestUnique(t *testing.T) {
	got := Unique([]Target{
		{"kbB", "default"},
		{"kbA", "via"},
		{"kbA", "default"},
		{"kbB", "default"},
		{"kbA", "via"},
	})
	assert.Equal(t, []Target{
		{"kbA", "default"},
		{"kbA", "via"},
		{"kbB", "default"},
	}, got)

	assert.Empty(t, Unique(nil))
}

func TestUniqueBuild(t *testing.T) {
	rgb := document.MustParse(`{"features":{"rgblight":true}}`)
	// Same tree, loaded separately and written with different key order.
	rgbAgain := document.MustParse(`{ "features" : { "rgblight" : true } }`)
	plain := document.MustParse(`{"features":{}}`)

	got := UniqueBuild([]BuildTarget{
		{Target{"kbB", "default"}, plain},
		{Target{"kbA", "default"}, rgb},
		{Target{"kbA", "default"}, rgbAgain},
		{Target{"kbA", "default"}, plain},
		{Target{"kbA", "default"}, document.Document{}},
	})

	if assert.Len(t, got, 4) {
		assert.Equal(t, Target{"kbA", "default"}, got[0].Target)
		assert.True(t, got[0].Document.IsZero())
		assert.Equal(t, `{"features":{"rgblight":true}}`, got[1].Document.String())
		assert.Equal(t, `{"features":{}}`, got[2].Document.String())
		assert.Equal(t, Target{"kbB", "default"}, got[3].Target)
	}
}

func TestKey(t *testing.T) {
	a := BuildTarget{Target{"kb", "km"}, document.MustParse(`{"a":1}`)}
	b := BuildTarget{Target{"kb", "km"}, document.MustParse(`{"a": 1}`)}
	c := BuildTarget{Target{"kb", "km"}, document.Document{}}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}
