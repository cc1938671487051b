// Package version exposes build metadata for the tripgen binary.
package version

import (
	"fmt"
	"runtime"
)

// Version and BuildTime are injected at build time via -ldflags:
//
//	go build -ldflags "-X github.com/matiasleandrokruk/tripgen/internal/version.Version=v0.3.0"
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// String returns the one-line version banner printed by `tripgen --version`.
func String() string {
	return fmt.Sprintf("tripgen version %s (built %s, %s)", Version, BuildTime, runtime.Version())
}

// UserAgent is sent on outbound LLM requests.
func UserAgent() string {
	return "tripgen/" + Version
}
