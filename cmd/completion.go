package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_envseal() {
    local cur prev words cword
    _init_completion || return

    local commands="init view export edit update-pass set-pass forget-pass diff status ls track untrack help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        init)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-f -s" -- "$cur"))
            else
                _filedir
            fi
            ;;
        view|export|edit|update-pass|set-pass|forget-pass|diff|track|untrack)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-f" -- "$cur"))
            else
                _filedir
            fi
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _envseal envseal
`

const zshCompletion = `#compdef envseal

_envseal() {
    local -a commands
    commands=(
        'init:Seal a plaintext env file into an encrypted one'
        'view:Decrypt and print the sealed env file'
        'export:Print shell export statements for eval'
        'edit:Edit the sealed env file in $EDITOR'
        'update-pass:Change the sealed file passphrase'
        'set-pass:Cache the passphrase in the OS keyring'
        'forget-pass:Remove the passphrase from the OS keyring'
        'diff:Compare sealed content with the plaintext twin'
        'status:Show tracked sealed files and git hygiene'
        'ls:Show tracked sealed files and git hygiene'
        'track:Start tracking a sealed file'
        'untrack:Stop tracking a sealed file'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'envseal commands' commands
            ;;
        args)
            case "${words[2]}" in
                init)
                    _arguments \
                        '-f[Sealed file path]:file:_files' \
                        '-s[Plaintext source path]:file:_files'
                    ;;
                view|export|edit|update-pass|set-pass|forget-pass|diff|track|untrack)
                    _arguments '-f[Sealed file path]:file:_files'
                    ;;
                help)
                    _describe -t commands 'envseal commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_envseal "$@"
`

const fishCompletion = `# envseal fish completions

set -l commands init view export edit update-pass set-pass forget-pass diff status ls track untrack help completion

complete -c envseal -f

# Commands
complete -c envseal -n "not __fish_seen_subcommand_from $commands" -a init -d 'Seal a plaintext env file'
complete -c envseal -n "not __fish_seen_subcommand_from $commands" -a view -d 'Decrypt and print'
complete -c envseal -n "not __fish_seen_subcommand_from $commands" -a export -d 'Print shell exports for eval'
complete -c envseal -n "not __fish_seen_subcommand_from $commands" -a edit -d 'Edit in $EDITOR'
complete -c envseal -n "not __fish_seen_subcommand_from $commands" -a update-pass -d 'Change passphrase'
complete -c envseal -n "not __fish_seen_subcommand_from $commands" -a set-pass -d 'Cache passphrase in keyring'
complete -c envseal -n "not __fish_seen_subcommand_from $commands" -a forget-pass -d 'Remove passphrase from keyring'
complete -c envseal -n "not __fish_seen_subcommand_from $commands" -a diff -d 'Compare with plaintext twin'
complete -c envseal -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show tracked sealed files'
complete -c envseal -n "not __fish_seen_subcommand_from $commands" -a ls -d 'Show tracked sealed files'
complete -c envseal -n "not __fish_seen_subcommand_from $commands" -a track -d 'Start tracking a sealed file'
complete -c envseal -n "not __fish_seen_subcommand_from $commands" -a untrack -d 'Stop tracking a sealed file'
complete -c envseal -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c envseal -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# -f flag on file commands
complete -c envseal -n "__fish_seen_subcommand_from init view export edit update-pass set-pass forget-pass diff track untrack" -s f -d 'Sealed file path' -F
complete -c envseal -n "__fish_seen_subcommand_from init" -s s -d 'Plaintext source path' -F

# help completions
complete -c envseal -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c envseal -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
