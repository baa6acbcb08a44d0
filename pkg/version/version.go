// Package version holds the projinspect build metadata shown by `projinspect version`.
package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags at release time; "dev" builds keep the defaults.
// go build -ldflags "-X 'projinspect/pkg/version.Version=2.1.0' -X 'projinspect/pkg/version.Commit=abcdefg' -X 'projinspect/pkg/version.BuildTime=2026-10-17T15:04:05Z'"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Info is what `projinspect version` prints.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string // GOOS/GOARCH
}

// Get snapshots the build variables and the Go runtime.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String formats Info on one line, e.g.
//
//	projinspect version 2.1.0 (commit: abcdefg) built at 2026-10-17T15:04:05Z with go1.24.4 on linux/amd64
func (i Info) String() string {
	return fmt.Sprintf(
		"projinspect version %s (commit: %s) built at %s with %s on %s",
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}
