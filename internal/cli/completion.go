package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "-" (e.g., "timeout")
	Short     string   // single-letter alias without "-" (e.g., "q")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "duration")
	IsFile    bool     // true if the flag takes a file path
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "api-url", Help: "Base URL of the lookup API", ValueName: "url"},
	{Long: "timeout", Help: "Maximum duration of a battle", Values: []string{"5s", "10s", "30s", "1m"}, ValueName: "duration"},
	{Long: "cache-ttl", Help: "Lifetime of cached lookups", Values: []string{"0", "1m", "5m", "1h"}, ValueName: "duration"},
	{Long: "roster", Help: "YAML roster file", IsFile: true, ValueName: "file"},
	{Long: "serve", Help: "Start the HTTP server", Values: []string{":8080"}, ValueName: "address"},
	{Long: "json", Help: "Print the result as JSON"},
	{Long: "quiet", Short: "q", Help: "Print only the winner name"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "interactive", Short: "i", Help: "Start an interactive battle session"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell to out. names are
// offered as positional completions (typically the roster's creatures).
func GenerateCompletion(out io.Writer, shell string, names []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, names)
	case "zsh":
		return generateZshCompletion(out, names)
	case "fish":
		return generateFishCompletion(out, names)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, names []string) error {
	var opts []string
	var cases []string
	for _, f := range flagRegistry {
		opts = append(opts, "-"+f.Long)
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
		switch {
		case f.IsFile:
			cases = append(cases, fmt.Sprintf("        -%s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;", f.Long))
		case len(f.Values) > 0:
			cases = append(cases, fmt.Sprintf("        -%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;", f.Long, strings.Join(f.Values, " ")))
		case f.ValueName != "":
			cases = append(cases, fmt.Sprintf("        -%s)\n            return 0\n            ;;", f.Long))
		}
	}

	script := fmt.Sprintf(`# Bash completion script for brawl
# Add this to your ~/.bashrc or place in /etc/bash_completion.d/

_brawl() {
    local cur prev opts names
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"
    names="%s"

    case "${prev}" in
%s
    esac

    if [[ ${cur} == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
    COMPREPLY=( $(compgen -W "${names}" -- "${cur}") )
}

complete -F _brawl brawl
`, strings.Join(opts, " "), strings.Join(names, " "), strings.Join(cases, "\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, names []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	args = append(args, "        '*:creature:(${names})'")

	script := fmt.Sprintf(`#compdef brawl

# Zsh completion script for brawl
# Add this to your ~/.zshrc or place in $fpath

_brawl() {
    local -a names
    names=(%s)

    _arguments -s \
%s
}

_brawl "$@"
`, strings.Join(names, " "), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Short != "" {
		return fmt.Sprintf("        '(-%s -%s)'{-%s,-%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, names []string) error {
	lines := []string{
		"# Fish completion script for brawl",
		"# Add this to ~/.config/fish/completions/brawl.fish",
		"",
		"# Disable file completion by default",
		"complete -c brawl -f",
		"",
		"# Options",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f))
	}
	if len(names) > 0 {
		lines = append(lines, "", "# Creatures")
		lines = append(lines, fmt.Sprintf("complete -c brawl -a '%s'", strings.Join(names, " ")))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
// Go's flag package accepts single-dash long names, which fish calls -o.
func fishCompleteLine(f FlagCompletion) string {
	var b strings.Builder
	b.WriteString("complete -c brawl")
	if f.Short != "" {
		b.WriteString(" -s " + f.Short)
	}
	b.WriteString(" -o " + f.Long)
	switch {
	case f.IsFile:
		b.WriteString(" -r -F")
	case len(f.Values) > 0:
		fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
	case f.ValueName != "":
		b.WriteString(" -x")
	}
	fmt.Fprintf(&b, " -d '%s'", strings.ReplaceAll(f.Help, "'", `\'`))
	return b.String()
}
