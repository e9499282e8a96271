package app

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Build information, set at link time:
//
//	go build -ldflags "-X github.com/agbru/brawl/internal/app.Version=v1.2.0 -X github.com/agbru/brawl/internal/app.Commit=abc123"
var (
	Version = "dev"
	Commit  = ""
)

// HasVersionFlag reports whether args request the version, so main can
// answer before the remaining flags are validated.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-version", "--version", "-V", "--V":
			return true
		case "--":
			return false
		}
	}
	return false
}

// PrintVersion writes the program version to out.
func PrintVersion(out io.Writer) {
	commit := Commit
	if commit == "" {
		commit = vcsRevision()
	}
	fmt.Fprintf(out, "brawl %s", Version)
	if commit != "" {
		fmt.Fprintf(out, " (%s)", commit)
	}
	fmt.Fprintf(out, " %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
