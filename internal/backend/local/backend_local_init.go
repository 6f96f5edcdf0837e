// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
)

type BackendLocalOption = func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error

// NewBackendLocal returns a BackendLocal rooted at a firmware tree. Without
// options the tree is the working directory.
func NewBackendLocal(ctx context.Context, cmd *cli.Command, options ...BackendLocalOption) (*BackendLocal, error) {
	options = append([]BackendLocalOption{WithDefaults()}, options...)

	be := &BackendLocal{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, be); err != nil {
			return nil, err
		}
	}

	return be, be.validate()
}

func WithDefaults() BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {
		cwd, _ := os.Getwd()
		be.Home = cwd
		return nil
	}
}

// FromHome roots the backend at home. Relative paths are resolved against
// the working directory. An empty home leaves the current root alone.
func FromHome(home string) BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {
		if home == "" {
			return nil
		}

		// Is home a relative or absolute path?
		if filepath.IsAbs(home) {
			be.Home = home
		} else {
			cwd, _ := os.Getwd()
			be.Home = filepath.Join(cwd, home)
		}

		log.Debugf("NewBackendLocal FromHome(): home = %s", be.Home)
		return nil
	}
}

// FromCommand reads --home from cmd.
func FromCommand() BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {
		if cmd == nil {
			return nil
		}
		return FromHome(cmd.String("home"))(ctx, cmd, be)
	}
}

// validate makes sure Home looks like a firmware tree.
func (be *BackendLocal) validate() error {
	info, err := os.Stat(be.keyboardsDir())
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoFirmwareTree, be.Home)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNoFirmwareTree, be.keyboardsDir())
	}
	return nil
}
