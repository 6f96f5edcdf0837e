// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/kbctl/kbctl/internal/config"
	"github.com/kbctl/kbctl/internal/target"
)

// Options controls how a result set is rendered.
type Options struct {
	Format string // text, json or yaml
	Titles bool
	Color  bool
	Sort   string
}

// OptionsFromCommand reads the rendering flags from cmd.
func OptionsFromCommand(cmd *cli.Command) Options {
	return Options{
		Format: cmd.String("output"),
		Titles: cmd.Bool("titles"),
		Color:  cmd.Bool("color"),
		Sort:   cmd.String("sort"),
	}
}

// Columns returns the column names of a dataset built for keys.
func Columns(keys []string) []string {
	return append([]string{"keyboard", "keymap"}, keys...)
}

// Dataset flattens build targets into rows keyed by column name. Each key in
// keys becomes a column holding the value found at that dot path in the
// target's document, or nil.
func Dataset(targets []target.BuildTarget, keys []string) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(targets))
	for _, bt := range targets {
		row := map[string]interface{}{
			"keyboard": bt.Keyboard,
			"keymap":   bt.Keymap,
		}
		for _, key := range keys {
			var value interface{}
			if r := bt.Document.Get(key); r.Exists() {
				value = r.Value()
			}
			row[key] = value
		}
		rows = append(rows, row)
	}
	return rows
}

// Spit renders targets to w. keys name the document values to print next
// to each target.
func Spit(w io.Writer, targets []target.BuildTarget, keys []string, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	columns := Columns(keys)
	rows := Dataset(targets, keys)
	SortDataset(rows, opts.Sort)

	switch opts.Format {
	case "json":
		out, err := json.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		// MapSlice keeps the column order.
		ordered := make([]yaml.MapSlice, 0, len(rows))
		for _, row := range rows {
			var ms yaml.MapSlice
			for _, c := range columns {
				ms = append(ms, yaml.MapItem{Key: c, Value: row[c]})
			}
			ordered = append(ordered, ms)
		}
		out, err := yaml.Marshal(ordered)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		// Bare make targets, one per line, are easiest to feed to other tools.
		if len(keys) == 0 && !opts.Titles {
			for _, row := range rows {
				fmt.Fprintf(w, "%s:%s\n", row["keyboard"], row["keymap"])
			}
			return nil
		}
		TableWriter(w, rows, columns, opts)
		return nil
	}
}

// InterfaceToString renders a cell value. A custom empty value may be
// provided for nil.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	switch value := value.(type) {
	case nil:
		return emptyValue[0]
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// TableWriter renders rows as a borderless table with the given columns.
func TableWriter(w io.Writer, rows []map[string]interface{}, columns []string, opts Options) {
	if w == nil {
		w = os.Stdout
	}

	// We return early if there are no results to display.
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cell := make([]string, 0, len(columns))
		for _, c := range columns {
			cell = append(cell, InterfaceToString(row[c], "-"))
		}
		cells = append(cells, cell)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(2)
			}

			return style
		}).
		Headers().
		Rows(cells...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(columns...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
	log.Debugf("rendered %d rows", len(rows))
}

// getColors returns configured color values for table rendering, falling
// back to defaults that suit the terminal background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
