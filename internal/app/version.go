// Package app wires configuration, logging, the calculation service and the
// presentation layers into the fibmatrix executable.
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fibmatrix/internal/config"
	"github.com/agbru/fibmatrix/pkg/fibonacci"
)

// Build-time variables set via -ldflags.
// These are populated during builds to provide version information.
//
// Example build command:
//
//	go build -ldflags="-X github.com/agbru/fibmatrix/internal/app.Version=v1.2.3 -X github.com/agbru/fibmatrix/internal/app.Commit=abc123 -X github.com/agbru/fibmatrix/internal/app.BuildDate=2025-01-01T00:00:00Z"
var (
	// Version is the semantic version of the application (e.g., "v1.0.0").
	Version = "dev"
	// Commit is the short Git commit hash (e.g., "abc123").
	Commit = "unknown"
	// BuildDate is the ISO 8601 timestamp of the build (e.g., "2025-01-01T00:00:00Z").
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args ask for version information. The flag
// is honored in any position, e.g. "fibmatrix -server --version".
func HasVersionFlag(args []string) bool {
	return hasAnyFlag(args, "--version", "-version", "-V")
}

// HasJSONFlag reports whether args ask for JSON output. It lets the version
// shortcut honor -json before the full flag set is parsed.
func HasJSONFlag(args []string) bool {
	return hasAnyFlag(args, "--json", "-json", "--json=true", "-json=true")
}

func hasAnyFlag(args []string, names ...string) bool {
	for _, arg := range args {
		for _, name := range names {
			if arg == name {
				return true
			}
		}
	}
	return false
}

// BuildInfo describes the binary and the index range it serves.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	// MaxN is the largest accepted index.
	MaxN uint64 `json:"max_n"`
	// MaxExactIndex is the largest index whose result is not reduced mod 2^128.
	MaxExactIndex int `json:"max_exact_index"`
}

// CurrentBuildInfo collects the ldflags variables and runtime details.
func CurrentBuildInfo() BuildInfo {
	return BuildInfo{
		Version:       Version,
		Commit:        Commit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		Platform:      runtime.GOOS + "/" + runtime.GOARCH,
		MaxN:          config.MaxN,
		MaxExactIndex: fibonacci.MaxIndex,
	}
}

// PrintVersion writes the human-readable version banner.
func PrintVersion(out io.Writer) {
	info := CurrentBuildInfo()
	fmt.Fprintf(out, "fibmatrix %s (F(n) for n <= %d, 128-bit)\n", info.Version, info.MaxN)
	fmt.Fprintf(out, "  Commit:     %s\n", info.Commit)
	fmt.Fprintf(out, "  Built:      %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go version: %s\n", info.GoVersion)
	fmt.Fprintf(out, "  OS/Arch:    %s\n", info.Platform)
	fmt.Fprintf(out, "  Exact up to F(%d); larger indices are reduced mod 2^128.\n", info.MaxExactIndex)
}

// PrintVersionJSON writes CurrentBuildInfo as one JSON object.
func PrintVersionJSON(out io.Writer) error {
	return json.NewEncoder(out).Encode(CurrentBuildInfo())
}
