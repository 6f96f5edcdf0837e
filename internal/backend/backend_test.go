// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/kbctl/kbctl/internal/backend/s3"
)

// runWith parses args into a command carrying the source flags and returns
// what NewBackend made of them.
func runWith(t *testing.T, args ...string) (Backend, error) {
	t.Helper()

	var (
		be  Backend
		err error
	)
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source"},
			&cli.StringFlag{Name: "home"},
			&cli.StringFlag{Name: "bucket"},
			&cli.StringFlag{Name: "prefix"},
			&cli.StringFlag{Name: "region"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			be, err = NewBackend(ctx, c)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return be, err
}

func firmwareTree(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "keyboards"), 0o755))
	return home
}

func TestNewBackendLocal(t *testing.T) {
	home := firmwareTree(t)

	for _, source := range []string{"", "local"} {
		t.Run("source="+source, func(t *testing.T) {
			be, err := runWith(t, "--source", source, "--home", home)
			require.NoError(t, err)

			typ, err := be.Type()
			require.NoError(t, err)
			assert.Equal(t, "local", typ)
			assert.Equal(t, home, be.String())
		})
	}
}

func TestNewBackendLocalError(t *testing.T) {
	be, err := runWith(t, "--home", t.TempDir())
	require.Error(t, err)
	assert.Nil(t, be)
}

func TestNewBackendS3(t *testing.T) {
	be, err := runWith(t, "--source", "s3", "--bucket", "keymaps", "--prefix", "/qmk/", "--region", "us-east-1")
	require.NoError(t, err)

	typ, err := be.Type()
	require.NoError(t, err)
	assert.Equal(t, "s3", typ)
	assert.Equal(t, "s3://keymaps/qmk", be.String())
}

func TestNewBackendS3NoBucket(t *testing.T) {
	be, err := runWith(t, "--source", "s3")
	require.ErrorIs(t, err, s3.ErrNoBucket)
	assert.Nil(t, be)
}

func TestNewBackendUnknown(t *testing.T) {
	be, err := runWith(t, "--source", "ftp")
	require.ErrorIs(t, err, ErrUnknownSource)
	assert.Nil(t, be)
}
