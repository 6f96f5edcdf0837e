// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/kbctl/kbctl/internal/document"
)

var (
	// ErrUnknownKeyboard is returned when a keyboard id does not name a
	// keyboard directory.
	ErrUnknownKeyboard = errors.New("unknown keyboard")

	// ErrNoFirmwareTree is returned when the home directory has no
	// keyboards/ directory.
	ErrNoFirmwareTree = errors.New("not a firmware tree")
)

// Layout of a firmware tree.
const (
	keyboardsDir = "keyboards"
	keymapsDir   = "keymaps"
	infoJSON     = "info.json"
	keyboardJSON = "keyboard.json"
	rulesMK      = "rules.mk"
	keymapC      = "keymap.c"
	keymapJSON   = "keymap.json"
)

// BackendLocal serves keyboards, keymaps and their documents from a firmware
// source tree on disk.
type BackendLocal struct {
	Ctx  context.Context
	Cmd  *cli.Command
	Home string
}

// Keyboards walks keyboards/ and returns every keyboard id, sorted. keymaps/
// directories are never descended into.
func (be *BackendLocal) Keyboards(ctx context.Context) ([]string, error) {
	root := be.keyboardsDir()
	var keyboards []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() || p == root {
			return nil
		}
		if d.Name() == keymapsDir {
			return filepath.SkipDir
		}
		if isKeyboardDir(p) {
			rel, _ := filepath.Rel(root, p)
			keyboards = append(keyboards, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keyboards: %w", err)
	}

	sort.Strings(keyboards)
	log.Debugf("found %d keyboards under %s", len(keyboards), root)
	return keyboards, nil
}

// Keymaps returns the keymap names available to keyboard, sorted. Keymaps
// are collected from keymaps/ directories in the keyboard directory and in
// each of its parents.
func (be *BackendLocal) Keymaps(_ context.Context, keyboard string) ([]string, error) {
	if !be.IsKeyboard(keyboard) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKeyboard, keyboard)
	}

	seen := map[string]bool{}
	var keymaps []string
	for _, dir := range be.lineage(keyboard) {
		entries, err := os.ReadDir(filepath.Join(dir, keymapsDir))
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() || seen[e.Name()] {
				continue
			}
			if isKeymapDir(filepath.Join(dir, keymapsDir, e.Name())) {
				seen[e.Name()] = true
				keymaps = append(keymaps, e.Name())
			}
		}
	}

	sort.Strings(keymaps)
	return keymaps, nil
}

// KeymapExists returns keyboard and true when keymap can be located for it.
func (be *BackendLocal) KeymapExists(_ context.Context, keyboard, keymap string) (string, bool) {
	if !be.IsKeyboard(keyboard) {
		return "", false
	}
	if _, ok := be.locateKeymap(keyboard, keymap); !ok {
		return "", false
	}
	return keyboard, true
}

// Document builds the configuration document for keyboard and keymap. The
// info.json and keyboard.json files from the outermost parent down to the
// keyboard directory are merged in order, then the "config" object of the
// keymap's keymap.json is laid on top. A keymap that cannot be located
// yields the keyboard document alone.
func (be *BackendLocal) Document(_ context.Context, keyboard, keymap string) (document.Document, error) {
	if !be.IsKeyboard(keyboard) {
		return document.Document{}, fmt.Errorf("%w: %s", ErrUnknownKeyboard, keyboard)
	}

	lineage := be.lineage(keyboard)
	tree := map[string]any{}
	for i := len(lineage) - 1; i >= 0; i-- {
		for _, name := range []string{infoJSON, keyboardJSON} {
			part, err := readTree(filepath.Join(lineage[i], name))
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return document.Document{}, err
			}
			tree = document.Merge(tree, part)
		}
	}

	if dir, ok := be.locateKeymap(keyboard, keymap); ok {
		part, err := readTree(filepath.Join(dir, keymapJSON))
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return document.Document{}, err
		default:
			if cfg, ok := part["config"].(map[string]any); ok {
				tree = document.Merge(tree, cfg)
			}
		}
	} else {
		log.Debugf("keymap %s not found for %s, using keyboard data only", keymap, keyboard)
	}

	return document.New(tree)
}

// IsKeyboard reports whether keyboard names a keyboard directory.
func (be *BackendLocal) IsKeyboard(keyboard string) bool {
	if keyboard == "" || !fs.ValidPath(keyboard) {
		return false
	}
	for _, part := range strings.Split(keyboard, "/") {
		if part == keymapsDir {
			return false
		}
	}
	return isKeyboardDir(be.keyboardDir(keyboard))
}

func (be *BackendLocal) String() string {
	return be.Home
}

func (be *BackendLocal) Type() (string, error) {
	return "local", nil
}

func (be *BackendLocal) keyboardsDir() string {
	return filepath.Join(be.Home, keyboardsDir)
}

func (be *BackendLocal) keyboardDir(keyboard string) string {
	return filepath.Join(be.keyboardsDir(), filepath.FromSlash(keyboard))
}

// lineage returns the keyboard directory followed by each parent up to, but
// not including, keyboards/. The nearest directory comes first.
func (be *BackendLocal) lineage(keyboard string) []string {
	root := be.keyboardsDir()
	var dirs []string
	for dir := be.keyboardDir(keyboard); dir != root && strings.HasPrefix(dir, root); dir = filepath.Dir(dir) {
		dirs = append(dirs, dir)
	}
	return dirs
}

// locateKeymap returns the directory of keymap for keyboard. The nearest
// keymaps/ directory wins.
func (be *BackendLocal) locateKeymap(keyboard, keymap string) (string, bool) {
	if keymap == "" || strings.ContainsAny(keymap, `/\`) {
		return "", false
	}
	for _, dir := range be.lineage(keyboard) {
		candidate := filepath.Join(dir, keymapsDir, keymap)
		if isKeymapDir(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isKeyboardDir(dir string) bool {
	if exists(filepath.Join(dir, keyboardJSON)) {
		return true
	}
	return exists(filepath.Join(dir, infoJSON)) && exists(filepath.Join(dir, rulesMK))
}

func isKeymapDir(dir string) bool {
	return exists(filepath.Join(dir, keymapC)) || exists(filepath.Join(dir, keymapJSON))
}

func exists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// readTree reads and decodes a JSON object file. A missing file is reported
// with an error matching fs.ErrNotExist.
func readTree(p string) (map[string]any, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	tree, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", p, err)
	}
	return tree, nil
}
