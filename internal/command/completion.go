// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/kbctl/kbctl/internal/meta"
)

const bashCompletionScript = `# bash completion for kbctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_kbctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "find completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --filter -f --output -o --parallel -j --print -p --sort -s --titles -t"
    local source="--source --home --bucket --prefix --region --profile --endpoint"

    case "$cmd" in
        find)
            local opts="$common $source --keyboard -kb --keymap -km --schema"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --source)
            COMPREPLY=( $(compgen -W "local s3" -- "$cur") )
            return 0
            ;;
        --home)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _kbctl kbctl
`

const zshCompletionScript = `#compdef kbctl

_kbctl() {
  local -a cmds
  cmds=(
    'find:search for keyboard:keymap build targets'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '*'{-f,--filter}'[filter expression]:expr'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-j --parallel)'{-j,--parallel}'[concurrent workers]:n'
  '*'{-p,--print}'[document key to print]:key'
  '(-s --sort)'{-s,--sort}'[sort columns]:columns'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'kbctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    find)
      _arguments -C \
        $common \
        '(-kb --keyboard)'{-kb,--keyboard}'[keyboard or all]:keyboard' \
        '(-km --keymap)'{-km,--keymap}'[keymap or all]:keymap' \
        '--schema[list document keys]' \
        '--source[backend]:source:(local s3)' \
        '--home[firmware tree]:home:_directories' \
        '--bucket[s3 bucket]:bucket' \
        '--prefix[s3 key prefix]:prefix' \
        '--region[AWS region]:region' \
        '--profile[AWS profile]:profile' \
        '--endpoint[S3-compatible endpoint]:url' \
        '*:target'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _kbctl kbctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: kbctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "kbctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
