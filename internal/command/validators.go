// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks combinations of flags that are valid on their
// own.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 0 && (c.IsSet("keyboard") || c.IsSet("keymap")) {
		return errors.New("--keyboard and --keymap cannot be combined with positional targets")
	}
	return nil
}

func OutputValidator(value any) error {
	return oneOf(value, "text", "json", "yaml")
}

func SourceValidator(value any) error {
	return oneOf(value, "local", "s3")
}

func ParallelValidator(value any) error {
	if n, ok := value.(int); ok && n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func oneOf(value any, valid ...string) error {
	if s, ok := value.(string); ok && slices.Contains(valid, s) {
		return nil
	}
	return fmt.Errorf("must be one of %v", valid)
}
