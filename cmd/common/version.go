package common

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

const (
	ProjectName    = "Freqtrade Launcher"
	ProjectVersion = "1.0.0"
)

// Set with -ldflags "-X github.com/ducminhle1904/freqtrade-launcher/cmd/common.BuildCommit=...".
// When left empty the VCS stamp embedded by the go tool is used.
var (
	BuildDate   = ""
	BuildCommit = ""
)

// BuildInfo identifies the launcher binary
type BuildInfo struct {
	Version  string
	Commit   string
	Date     string
	Modified bool
	Go       string
	Platform string
}

// CurrentBuild resolves build information for the running binary
func CurrentBuild() BuildInfo {
	return resolveBuild(debug.ReadBuildInfo)
}

func resolveBuild(read func() (*debug.BuildInfo, bool)) BuildInfo {
	b := BuildInfo{
		Version:  ProjectVersion,
		Commit:   BuildCommit,
		Date:     BuildDate,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	if info, ok := read(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if b.Commit == "" {
					b.Commit = s.Value
				}
			case "vcs.time":
				if b.Date == "" {
					b.Date = s.Value
				}
			case "vcs.modified":
				b.Modified = s.Value == "true"
			}
		}
	}

	if len(b.Commit) > 12 {
		b.Commit = b.Commit[:12]
	}
	if b.Commit == "" {
		b.Commit = "dev"
	}
	if b.Date == "" {
		b.Date = "unknown"
	}
	return b
}

// CommitLabel returns the short revision, marked when the tree was dirty
func (b BuildInfo) CommitLabel() string {
	if b.Modified {
		return b.Commit + "+dirty"
	}
	return b.Commit
}

// PrintVersion writes the version banner for appName
func PrintVersion(w io.Writer, appName string) {
	b := CurrentBuild()
	fmt.Fprintf(w, "%s v%s (%s)\n", appName, b.Version, ProjectName)
	fmt.Fprintf(w, "Build: %s (%s)\n", b.CommitLabel(), b.Date)
	fmt.Fprintf(w, "Go: %s (%s)\n", b.Go, b.Platform)
}
