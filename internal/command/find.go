// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/kbctl/kbctl/internal/backend"
	"github.com/kbctl/kbctl/internal/meta"
	"github.com/kbctl/kbctl/internal/output"
	"github.com/kbctl/kbctl/internal/search"
	"github.com/kbctl/kbctl/internal/target"
)

// newBackend is swapped in tests.
var newBackend = backend.NewBackend

// stdout is where results are written. Swapped in tests.
var stdout io.Writer = os.Stdout

// findCommandAction is the action handler for the "find" subcommand. It
// expands the requested targets against the selected backend, narrows them
// with --filter and renders what is left.
func findCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	if len(m.Args) > 1 {
		log.Debugf("Executing action for %v", m.Args[1:])
	}

	be, err := newBackend(ctx, cmd)
	if err != nil {
		return err
	}
	log.Debugf("backend: %s", be)

	keys := cmd.StringSlice("print")
	schema := cmd.Bool("schema")

	opts := []search.Option{search.WithWorkers(cmd.Int("parallel"))}
	if len(keys) > 0 || schema {
		opts = append(opts, search.WithDocuments())
	}
	s := search.New(be, be, opts...)

	var results []target.BuildTarget
	if args := cmd.Args().Slice(); len(args) > 0 {
		results = s.SearchMake(ctx, args, cmd.StringSlice("filter"))
	} else {
		results = s.Search(ctx, []search.Descriptor{descriptorFromFlags(cmd)}, cmd.StringSlice("filter"))
	}
	log.Infof("Found %s build targets", humanize.Comma(int64(len(results))))

	if schema {
		output.DumpSchema(stdout, results)
		return nil
	}

	o := output.OptionsFromCommand(cmd)
	if !cmd.IsSet("color") {
		o.Color = isTerminal(stdout)
	}
	return output.Spit(stdout, results, keys, o)
}

// descriptorFromFlags builds the descriptor used when no positional targets
// are given. Without --keyboard and --keymap it is all:default; with only
// one of them the other half is "all".
func descriptorFromFlags(cmd *cli.Command) search.Descriptor {
	if !cmd.IsSet("keyboard") && !cmd.IsSet("keymap") {
		return search.DefaultDescriptor
	}
	d := search.Descriptor{Keyboard: cmd.String("keyboard"), Keymap: cmd.String("keymap")}
	if d.Keyboard == "" {
		d.Keyboard = search.All
	}
	if d.Keymap == "" {
		d.Keymap = search.All
	}
	return d
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func findCommandBuilder(meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "keyboard",
			Aliases: []string{"kb"},
			Usage:   "keyboard to search, or 'all'",
		},
		&cli.StringFlag{
			Name:    "keymap",
			Aliases: []string{"km"},
			Usage:   "keymap to search, or 'all'",
		},
		schemaFlag,
	}
	flags = append(flags, NewGlobalFlags("find", meta.Config.Source)...)
	flags = append(flags, NewSourceFlags("find", meta.Config.Source)...)

	return &cli.Command{
		Name:      "find",
		Usage:     "search for keyboard:keymap build targets",
		UsageText: "kbctl find [TARGET...] [--filter EXPR]... [--print KEY]... [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:                     flags,
		DisableSliceFlagSeparator: true,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: findCommandAction,
	}
}
