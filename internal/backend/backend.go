// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/kbctl/kbctl/internal/backend/local"
	"github.com/kbctl/kbctl/internal/backend/s3"
	"github.com/kbctl/kbctl/internal/search"
)

// ErrUnknownSource is returned when --source names no known backend.
var ErrUnknownSource = errors.New("unknown source")

// Backend is a source of keyboards, keymaps and their documents.
type Backend interface {
	search.Inventory
	search.DocumentStore
	String() string
	Type() (string, error)
}

// NewBackend returns the Backend named by the --source flag. An empty source
// selects the local firmware tree.
func NewBackend(ctx context.Context, cmd *cli.Command) (Backend, error) {
	source := cmd.String("source")
	log.Debugf("NewBackend: source: %q", source)

	switch source {
	case "", "local":
		be, err := local.NewBackendLocal(ctx, cmd, local.FromCommand())
		if err != nil {
			return nil, err
		}
		return be, nil
	case "s3":
		be, err := s3.NewBackendS3(ctx, cmd, s3.FromCommand())
		if err != nil {
			return nil, err
		}
		return be, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}
}
