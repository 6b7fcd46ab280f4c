package shell

import (
	"fmt"
	"path/filepath"
	"strings"
)

// TemplateData holds the substitution values for one environment.
type TemplateData struct {
	// EnvDir is the absolute environment root.
	EnvDir string
	// Prompt is the prompt prefix; empty falls back to the environment
	// directory's base name wrapped in parentheses.
	Prompt string
	// BinDirName is "bin", or "Scripts" on the Windows layout.
	BinDirName string
	// ShimTarget is the host bun binary path for system mode.
	ShimTarget string
	// Windows selects the cmd/PowerShell script set.
	Windows bool
	// System adds a bun shim that delegates to the host binary.
	System bool
	// PythonVirtualenv wraps POSIX and fish scripts in prompt
	// disable/enable stanzas for use inside a Python virtualenv.
	PythonVirtualenv bool
}

// Script is one rendered file destined for the environment's bin
// directory.
type Script struct {
	Name    string
	Content string
	// Append indicates the content should be appended to an existing
	// file instead of replacing it.
	Append bool
}

// DefaultPrompt derives the prompt prefix from the environment path.
func DefaultPrompt(envDir string) string {
	return fmt.Sprintf("(%s)", filepath.Base(envDir))
}

// Render produces the full activation script set for an environment.
func Render(data TemplateData) []Script {
	prompt := data.Prompt
	if prompt == "" {
		prompt = DefaultPrompt(data.EnvDir)
	}

	replacer := strings.NewReplacer(
		placeholderEnvDir, data.EnvDir,
		placeholderPrompt, prompt,
		placeholderBinName, data.BinDirName,
		placeholderShim, data.ShimTarget,
	)

	var templates map[string]string
	if data.Windows {
		templates = map[string]string{
			"activate.bat":   activateBat,
			"deactivate.bat": deactivateBat,
			"Activate.ps1":   activatePS1,
		}
	} else {
		templates = map[string]string{
			"activate":      activateSh,
			"activate.fish": activateFish,
			"shim":          shimScript,
		}
		if data.System {
			templates["bun"] = shimScript
		}
	}

	scripts := make([]Script, 0, len(templates)+1)
	for name, tmpl := range templates {
		content := tmpl
		appendMode := false
		if data.PythonVirtualenv {
			if disable, ok := disablePrompt[name]; ok {
				content = disable + content + enablePrompt[name]
				appendMode = true
			}
		}
		scripts = append(scripts, Script{
			Name:    name,
			Content: replacer.Replace(content),
			Append:  appendMode,
		})
	}

	return scripts
}

// Predeactivate returns the hook script appended to bin/predeactivate
// in python-virtualenv mode.
func Predeactivate() Script {
	return Script{Name: "predeactivate", Content: predeactivateSh, Append: true}
}
