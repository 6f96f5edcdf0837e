// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for kbctl's user
// configuration. The configuration is a YAML document named kbctl.yaml in the
// user's configuration directory, or the file named by KBCTL_CFG_FILE:
//   - Linux: $XDG_CONFIG_HOME/kbctl.yaml or $HOME/.config/kbctl.yaml
//   - macOS: $HOME/Library/Application Support/kbctl.yaml
//   - Windows: %AppData%/kbctl.yaml
//
// Recognized keys include source, home, parallel, s3.bucket, s3.prefix,
// s3.region, s3.profile, colors.title, colors.even, colors.odd and the
// find.<set> argument lists expanded by "kbctl find @set".
package config
