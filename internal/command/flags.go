// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

var schemaFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:        "schema",
	Usage:       "list the document keys available to --filter and --print",
	HideDefault: true,
}

// NewGlobalFlags returns the output and search flags shared by commands.
// params[0] is the config namespace and params[1] the config file; when both
// are given, flag values may also come from that file.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	parallel := &cli.IntFlag{
		Name:    "parallel",
		Aliases: []string{"j"},
		Usage:   "number of concurrent workers (0 means one per CPU)",
		Sources: cli.EnvVars("KBCTL_PARALLEL"),
		Validator: func(value int) error {
			return FlagValidators(value, ParallelValidator)
		},
	}

	output := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Value:   "text",
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}

	sortBy := &cli.StringFlag{
		Name:    "sort",
		Aliases: []string{"s"},
		Usage:   "comma-separated list of columns to sort the results by",
	}

	if len(params) == 2 && params[1] != "" {
		parallel.Sources.Chain = append(parallel.Sources.Chain, configSources(params[0], params[1], parallel.Name)...)
		output = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], output)
		sortBy = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], sortBy)
	}

	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output (default when stdout is a terminal)",
		},
		&cli.StringSliceFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "filter expression, e.g. 'exists(features.rgblight)' or 'region=US*'. Repeatable",
		},
		&cli.StringSliceFlag{
			Name:    "print",
			Aliases: []string{"p"},
			Usage:   "document key to print for each target. Repeatable",
		},
		output,
		parallel,
		sortBy,
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewSourceFlags returns the flags selecting and configuring the backend
// that keyboards and documents are read from.
func NewSourceFlags(params ...string) (flags []cli.Flag) {
	source := &cli.StringFlag{
		Name:  "source",
		Usage: "where to read keyboards from: local or s3",
		Value: "local",
		Validator: func(value string) error {
			return FlagValidators(value, SourceValidator)
		},
		Sources: cli.EnvVars("KBCTL_SOURCE"),
	}

	home := &cli.StringFlag{
		Name:  "home",
		Usage: "firmware tree to search (local source). Defaults to the working directory",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("KBCTL_HOME"),
			cli.EnvVar("QMK_HOME"),
		),
	}

	bucket := &cli.StringFlag{
		Name:    "bucket",
		Usage:   "bucket holding keymap documents (s3 source)",
		Sources: cli.EnvVars("KBCTL_BUCKET"),
	}
	prefix := &cli.StringFlag{
		Name:  "prefix",
		Usage: "key prefix of the keyboards in the bucket (s3 source)",
	}
	region := &cli.StringFlag{
		Name:  "region",
		Usage: "AWS region of the bucket (s3 source)",
	}
	profile := &cli.StringFlag{
		Name:  "profile",
		Usage: "AWS shared config profile (s3 source)",
	}
	endpoint := &cli.StringFlag{
		Name:  "endpoint",
		Usage: "S3-compatible endpoint URL (s3 source)",
	}

	if len(params) == 2 && params[1] != "" {
		source = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], source)
		home = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], home)
		for _, flag := range []*cli.StringFlag{bucket, prefix, region, profile, endpoint} {
			NameSpacedValueChainFlagFromConfigFile("s3", params[1], flag)
		}
	}

	flags = []cli.Flag{source, home, bucket, prefix, region, profile, endpoint}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	flag.Sources.Chain = append(flag.Sources.Chain, configSources(ns, path, flag.Name)...)
	return flag
}

// configSources returns the config file lookups for a flag, namespaced key
// first.
func configSources(ns string, path string, name string) []cli.ValueSource {
	return []cli.ValueSource{
		yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)),
		yaml.YAML(name, altsrc.StringSourcer(path)),
	}
}
