// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbctl/kbctl/internal/document"
	"github.com/kbctl/kbctl/internal/target"
)

func buildTargets() []target.BuildTarget {
	return []target.BuildTarget{
		{
			Target:   target.Target{Keyboard: "kbB", Keymap: "default"},
			Document: document.MustParse(`{"region":"EU","layers":2,"features":{"rgblight":false}}`),
		},
		{
			Target:   target.Target{Keyboard: "kbA", Keymap: "via"},
			Document: document.MustParse(`{"region":"US","layers":4,"features":{"rgblight":true,"oled":true}}`),
		},
	}
}

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"keyboard": "zebra", "layers": 3.0, "region": "us"},
		{"keyboard": "alpha", "layers": 1.0, "region": "EU"},
		{"keyboard": "Beta", "layers": 2.0, "region": "eu"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{"empty keeps order", "", []string{"zebra", "alpha", "Beta"}},
		{"ascending by keyboard", "keyboard", []string{"alpha", "Beta", "zebra"}},
		{"descending by keyboard", "-keyboard", []string{"zebra", "Beta", "alpha"}},
		{"case sensitive", "!keyboard", []string{"Beta", "alpha", "zebra"}},
		{"ascending by layers", "layers", []string{"alpha", "Beta", "zebra"}},
		{"descending by layers", "-layers", []string{"zebra", "Beta", "alpha"}},
		{"multiple fields", "region,-layers", []string{"Beta", "alpha", "zebra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)

			SortDataset(data, tt.spec)

			got := make([]string, 0, len(data))
			for _, row := range data {
				got = append(got, row["keyboard"].(string))
			}
			assert.Equal(t, tt.wantOrder, got)
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		empty []string
		want  string
	}{
		{"nil", nil, nil, ""},
		{"nil custom", nil, []string{"-"}, "-"},
		{"string", "abc", nil, "abc"},
		{"int", 42, nil, "42"},
		{"float whole", 4.0, nil, "4"},
		{"float fraction", 0.25, nil, "0.25"},
		{"bool", true, nil, "true"},
		{"slice", []interface{}{"ansi", "iso"}, nil, `["ansi","iso"]`},
		{"map", map[string]interface{}{"k": 1}, nil, `{"k":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.empty...))
		})
	}
}

func TestDataset(t *testing.T) {
	rows := Dataset(buildTargets(), []string{"region", "features.oled"})
	require.Len(t, rows, 2)

	assert.Equal(t, "kbB", rows[0]["keyboard"])
	assert.Equal(t, "default", rows[0]["keymap"])
	assert.Equal(t, "EU", rows[0]["region"])
	assert.Nil(t, rows[0]["features.oled"])
	assert.Equal(t, true, rows[1]["features.oled"])
}

func TestSpitPlain(t *testing.T) {
	var buf bytes.Buffer
	err := Spit(&buf, buildTargets(), nil, Options{Format: "text", Sort: "keyboard"})
	require.NoError(t, err)
	assert.Equal(t, "kbA:via\nkbB:default\n", buf.String())
}

func TestSpitEmpty(t *testing.T) {
	for _, format := range []string{"text", "json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Spit(&buf, nil, []string{"region"}, Options{Format: format}))
			if format == "text" {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestSpitTable(t *testing.T) {
	var buf bytes.Buffer
	err := Spit(&buf, buildTargets(), []string{"region", "layers"}, Options{Titles: true, Sort: "keyboard"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"keyboard", "keymap", "region", "layers"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"kbA", "via", "US", "4"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"kbB", "default", "EU", "2"}, strings.Fields(lines[2]))
}

func TestSpitJSON(t *testing.T) {
	var buf bytes.Buffer
	err := Spit(&buf, buildTargets(), []string{"region"}, Options{Format: "json", Sort: "keyboard"})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"keyboard":"kbA","keymap":"via","region":"US"},
		{"keyboard":"kbB","keymap":"default","region":"EU"}
	]`, buf.String())
}

func TestSpitYAML(t *testing.T) {
	var buf bytes.Buffer
	err := Spit(&buf, buildTargets(), []string{"region"}, Options{Format: "yaml", Sort: "keyboard"})
	require.NoError(t, err)

	want := `- keyboard: kbA
  keymap: via
  region: US
- keyboard: kbB
  keymap: default
  region: EU
`
	assert.Equal(t, want, buf.String())
}

func TestDumpSchema(t *testing.T) {
	targets := append(buildTargets(), target.BuildTarget{
		Target: target.Target{Keyboard: "bare", Keymap: "default"},
	})

	var buf bytes.Buffer
	DumpSchema(&buf, targets)

	want := []string{
		"features",
		"features.oled",
		"features.rgblight",
		"layers",
		"region",
	}
	assert.Equal(t, want, strings.Fields(buf.String()))
}

func TestDumpSchemaNoDocuments(t *testing.T) {
	var buf bytes.Buffer
	DumpSchema(&buf, []target.BuildTarget{{Target: target.Target{Keyboard: "kb", Keymap: "km"}}})
	assert.Empty(t, buf.String())
}
