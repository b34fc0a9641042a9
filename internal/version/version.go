package version

import (
	"fmt"
	"runtime"
)

// App names the binary; each entrypoint overrides it before printing.
var App = "Federation Service"

// Injected at build time through -ldflags "-X ...=...".
var (
	Version   string
	GitCommit string
	BuildTime string
)

// PrintVersion writes the banner for the -version flag. Platform and Go
// version come from the runtime, not the build stamp.
func PrintVersion() {
	fmt.Printf("%s version %s %s/%s\n", App, resolveVersion(), runtime.GOOS, runtime.GOARCH)
	if GitCommit != "" {
		fmt.Printf("Git commit: %s\n", shortCommit())
	}
	if BuildTime != "" {
		fmt.Printf("Build time: %s\n", BuildTime)
	}
	fmt.Printf("Go version: %s\n", runtime.Version())
}

func shortCommit() string {
	if len(GitCommit) > 7 {
		return GitCommit[:7]
	}
	return GitCommit
}

func resolveVersion() string {
	if Version != "" {
		return Version
	}
	return "dev"
}
