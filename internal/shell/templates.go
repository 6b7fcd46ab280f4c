// Package shell generates the activation and deactivation scripts
// installed into an environment's bin directory.
//
// Each target shell's script is kept as a template with named
// substitution points (environment path, prompt, bin directory name,
// shim target). Activation prepends the environment's bin directory to
// PATH and exports BUN_VIRTUAL_ENV, BUN_INSTALL, and BUN_INSTALL_BIN,
// saving the previous values so that the deactivation command
// (deactivate_bun) can restore them. Prompt modification is suppressed
// when BUN_VIRTUAL_ENV_DISABLE_PROMPT is set at activation time.
package shell

// Substitution points shared by all templates.
const (
	placeholderEnvDir  = "__BUN_VIRTUAL_ENV__"
	placeholderPrompt  = "__BUN_VIRTUAL_PROMPT__"
	placeholderBinName = "__BIN_NAME__"
	placeholderShim    = "__SHIM_BUN__"
)

// activateSh is the POSIX sh/bash/zsh activation script.
const activateSh = `
# This file must be used with "source bin/activate" *from bash*
# you cannot run it directly

deactivate_bun () {
    # reset old environment variables
    if [ -n "${_OLD_BUN_VIRTUAL_PATH:-}" ] ; then
        PATH="${_OLD_BUN_VIRTUAL_PATH:-}"
        export PATH
        unset _OLD_BUN_VIRTUAL_PATH

        BUN_INSTALL="${_OLD_BUN_INSTALL:-}"
        export BUN_INSTALL
        unset _OLD_BUN_INSTALL

        BUN_INSTALL_BIN="${_OLD_BUN_INSTALL_BIN:-}"
        export BUN_INSTALL_BIN
        unset _OLD_BUN_INSTALL_BIN
    fi

    # bash and zsh need hash -r to forget cached command locations,
    # otherwise the PATH change may not be respected
    if [ -n "${BASH:-}" -o -n "${ZSH_VERSION:-}" ] ; then
        hash -r
    fi

    if [ -n "${_OLD_BUN_VIRTUAL_PS1:-}" ] ; then
        PS1="${_OLD_BUN_VIRTUAL_PS1:-}"
        export PS1
        unset _OLD_BUN_VIRTUAL_PS1
    fi

    unset BUN_VIRTUAL_ENV
    if [ ! "${1:-}" = "nondestructive" ] ; then
    # Self destruct!
        unset -f deactivate_bun
    fi
}

# unset irrelevant variables
deactivate_bun nondestructive

# find the directory of this script
if [ "${BASH_SOURCE:-}" ] ; then
    SOURCE="${BASH_SOURCE[0]}"

    while [ -h "$SOURCE" ] ; do SOURCE="$(readlink "$SOURCE")"; done
    DIR="$( command cd -P "$( dirname "$SOURCE" )" > /dev/null && pwd )"

    BUN_VIRTUAL_ENV="$(dirname "$DIR")"
else
    # dash cannot locate itself; fall back to the templated path:
    #   dash -c " . bun-env/bin/activate && bun -v"
    BUN_VIRTUAL_ENV="__BUN_VIRTUAL_ENV__"
fi

# BUN_VIRTUAL_ENV is the parent of the directory where this script is
export BUN_VIRTUAL_ENV

_OLD_BUN_VIRTUAL_PATH="$PATH"
PATH="$BUN_VIRTUAL_ENV/__BIN_NAME__:$PATH"
export PATH

_OLD_BUN_INSTALL="${BUN_INSTALL:-}"
BUN_INSTALL="$BUN_VIRTUAL_ENV"
export BUN_INSTALL

_OLD_BUN_INSTALL_BIN="${BUN_INSTALL_BIN:-}"
BUN_INSTALL_BIN="$BUN_VIRTUAL_ENV/__BIN_NAME__"
export BUN_INSTALL_BIN

if [ -z "${BUN_VIRTUAL_ENV_DISABLE_PROMPT:-}" ] ; then
    _OLD_BUN_VIRTUAL_PS1="${PS1:-}"
    if [ "x__BUN_VIRTUAL_PROMPT__" != x ] ; then
        PS1="__BUN_VIRTUAL_PROMPT__ ${PS1:-}"
    else
        PS1="(` + "`basename \\\"$BUN_VIRTUAL_ENV\\\"`" + `) ${PS1:-}"
    fi
    export PS1
fi

if [ -n "${BASH:-}" -o -n "${ZSH_VERSION:-}" ] ; then
    hash -r
fi
`

// activateFish is the fish shell activation script.
const activateFish = `
# This file must be used with "source bin/activate.fish" *from fish*
# you cannot run it directly

function deactivate_bun -d 'Exit bunenv and return to normal environment.'
    # reset old environment variables
    if test -n "$_OLD_BUN_VIRTUAL_PATH"
        set -gx PATH $_OLD_BUN_VIRTUAL_PATH
        set -e _OLD_BUN_VIRTUAL_PATH
    end

    if test -n "$_OLD_BUN_INSTALL"
        set -gx BUN_INSTALL $_OLD_BUN_INSTALL
        set -e _OLD_BUN_INSTALL
    else
        set -e BUN_INSTALL
    end

    if test -n "$_OLD_BUN_INSTALL_BIN"
        set -gx BUN_INSTALL_BIN $_OLD_BUN_INSTALL_BIN
        set -e _OLD_BUN_INSTALL_BIN
    else
        set -e BUN_INSTALL_BIN
    end

    if test -n "$_OLD_BUN_FISH_PROMPT_OVERRIDE"
        # Set an empty local fish_function_path to allow the removal of
        # fish_prompt using functions -e.
        set -l fish_function_path

        # Prevents error when using nested fish instances
        if functions -q _bun_old_fish_prompt
            functions -e fish_prompt
            functions -c _bun_old_fish_prompt fish_prompt
            functions -e _bun_old_fish_prompt
        end
        set -e _OLD_BUN_FISH_PROMPT_OVERRIDE
    end

    set -e BUN_VIRTUAL_ENV

    if test (count $argv) = 0 -o "$argv[1]" != "nondestructive"
        # Self destruct!
        functions -e deactivate_bun
    end
end

# unset irrelevant variables
deactivate_bun nondestructive

# find the directory of this script
begin
    set -l SOURCE (status filename)
    while test -L "$SOURCE"
        set SOURCE (readlink "$SOURCE")
    end
    set -l DIR (dirname (realpath "$SOURCE"))

    # BUN_VIRTUAL_ENV is the parent of the directory where this script is
    set -gx BUN_VIRTUAL_ENV (dirname "$DIR")
end

set -gx _OLD_BUN_VIRTUAL_PATH $PATH
set -gx PATH "$BUN_VIRTUAL_ENV/__BIN_NAME__" $PATH

if set -q BUN_INSTALL
    set -gx _OLD_BUN_INSTALL $BUN_INSTALL
end
set -gx BUN_INSTALL "$BUN_VIRTUAL_ENV"

if set -q BUN_INSTALL_BIN
    set -gx _OLD_BUN_INSTALL_BIN $BUN_INSTALL_BIN
end
set -gx BUN_INSTALL_BIN "$BUN_VIRTUAL_ENV/__BIN_NAME__"

if test -z "$BUN_VIRTUAL_ENV_DISABLE_PROMPT"
    # Copy the current fish_prompt function as _bun_old_fish_prompt.
    functions -c fish_prompt _bun_old_fish_prompt

    function fish_prompt
        # Save the current $status, for fish_prompts that display it.
        set -l old_status $status

        if test -n "__BUN_VIRTUAL_PROMPT__"
            printf '%s%s ' "__BUN_VIRTUAL_PROMPT__" (set_color normal)
        else
            printf '%s(%s) ' (set_color normal) (basename "$BUN_VIRTUAL_ENV")
        end

        # Restore the original $status
        echo "exit $old_status" | source
        _bun_old_fish_prompt
    end

    set -gx _OLD_BUN_FISH_PROMPT_OVERRIDE "$BUN_VIRTUAL_ENV"
end
`

// activateBat is the Windows cmd activation script.
const activateBat = `@echo off
set "BUN_VIRTUAL_ENV=__BUN_VIRTUAL_ENV__"
if not defined PROMPT (
    set "PROMPT=$P$G"
)
if defined _OLD_VIRTUAL_PROMPT (
    set "PROMPT=%_OLD_VIRTUAL_PROMPT%"
)
if defined _OLD_VIRTUAL_BUN_INSTALL (
    set "BUN_INSTALL=%_OLD_VIRTUAL_BUN_INSTALL%"
)
set "_OLD_VIRTUAL_PROMPT=%PROMPT%"
set "PROMPT=__BUN_VIRTUAL_PROMPT__ %PROMPT%"
if defined BUN_INSTALL (
    set "_OLD_VIRTUAL_BUN_INSTALL=%BUN_INSTALL%"
)
set "BUN_INSTALL=%BUN_VIRTUAL_ENV%"
if defined _OLD_VIRTUAL_PATH (
    set "PATH=%_OLD_VIRTUAL_PATH%"
) else (
    set "_OLD_VIRTUAL_PATH=%PATH%"
)
set "PATH=%BUN_VIRTUAL_ENV%\__BIN_NAME__;%PATH%"
:END
`

// deactivateBat is the Windows cmd deactivation script.
const deactivateBat = `@echo off
if defined _OLD_VIRTUAL_PROMPT (
    set "PROMPT=%_OLD_VIRTUAL_PROMPT%"
)
set _OLD_VIRTUAL_PROMPT=
if defined _OLD_VIRTUAL_BUN_INSTALL (
    set "BUN_INSTALL=%_OLD_VIRTUAL_BUN_INSTALL%"
    set _OLD_VIRTUAL_BUN_INSTALL=
)
if defined _OLD_VIRTUAL_PATH (
    set "PATH=%_OLD_VIRTUAL_PATH%"
)
set _OLD_VIRTUAL_PATH=
set BUN_VIRTUAL_ENV=
:END
`

// activatePS1 is the PowerShell activation script.
const activatePS1 = `
function global:deactivate ([switch]$NonDestructive) {
    # Revert to original values
    if (Test-Path function:_OLD_VIRTUAL_PROMPT) {
        copy-item function:_OLD_VIRTUAL_PROMPT function:prompt
        remove-item function:_OLD_VIRTUAL_PROMPT
    }
    if (Test-Path env:_OLD_VIRTUAL_BUN_INSTALL) {
        copy-item env:_OLD_VIRTUAL_BUN_INSTALL env:BUN_INSTALL
        remove-item env:_OLD_VIRTUAL_BUN_INSTALL
    }
    if (Test-Path env:_OLD_VIRTUAL_PATH) {
        copy-item env:_OLD_VIRTUAL_PATH env:PATH
        remove-item env:_OLD_VIRTUAL_PATH
    }
    if (Test-Path env:BUN_VIRTUAL_ENV) {
        remove-item env:BUN_VIRTUAL_ENV
    }
    if (!$NonDestructive) {
        # Self destruct!
        remove-item function:deactivate
    }
}

deactivate -nondestructive
$env:BUN_VIRTUAL_ENV="__BUN_VIRTUAL_ENV__"

# Set the prompt to include the env name
# Make sure _OLD_VIRTUAL_PROMPT is global
function global:_OLD_VIRTUAL_PROMPT {""}
copy-item function:prompt function:_OLD_VIRTUAL_PROMPT
function global:prompt {
    Write-Host -NoNewline -ForegroundColor Green '__BUN_VIRTUAL_PROMPT__ '
    _OLD_VIRTUAL_PROMPT
}

# Set BUN_INSTALL
if (Test-Path env:BUN_INSTALL) {
    copy-item env:BUN_INSTALL env:_OLD_VIRTUAL_BUN_INSTALL
}
$env:BUN_INSTALL = "$env:BUN_VIRTUAL_ENV"

# Add the venv to the PATH
copy-item env:PATH env:_OLD_VIRTUAL_PATH
$env:PATH = "$env:BUN_VIRTUAL_ENV\__BIN_NAME__;$env:PATH"
`

// shimScript delegates to a host-installed bun binary (system mode).
const shimScript = `#!/usr/bin/env bash
export BUN_INSTALL='__BUN_VIRTUAL_ENV__'
export BUN_INSTALL_BIN='__BUN_VIRTUAL_ENV__/__BIN_NAME__'
exec '__SHIM_BUN__' "$@"
`

// predeactivateSh is sourced by a host Python virtualenv's deactivation
// sequence so that leaving the virtualenv also leaves the bun
// environment.
const predeactivateSh = `
if type -p deactivate_bun > /dev/null; then deactivate_bun;fi
`

// disablePrompt wraps activation scripts in python-virtualenv mode: the
// prompt was already changed by the virtualenv's own script.
var disablePrompt = map[string]string{
	"activate": `
# disable bunenv's prompt
# (prompt already changed by original virtualenv's script)
BUN_VIRTUAL_ENV_DISABLE_PROMPT=1
`,
	"activate.fish": `
# disable bunenv's prompt
# (prompt already changed by original virtualenv's script)
set BUN_VIRTUAL_ENV_DISABLE_PROMPT 1
`,
}

var enablePrompt = map[string]string{
	"activate": `
unset BUN_VIRTUAL_ENV_DISABLE_PROMPT
`,
	"activate.fish": `
set -e BUN_VIRTUAL_ENV_DISABLE_PROMPT
`,
}
