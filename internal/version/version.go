// Package version reports build metadata for the crabbysite binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time with -ldflags "-X github.com/crabby-lang/website/internal/version.Version=v1.2.3".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Info contains version and build information
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	BuildTime time.Time `json:"build_time"`
	GoVersion string    `json:"go_version"`
	Platform  string    `json:"platform"`
	Dirty     bool      `json:"dirty"`
}

// Get collects build information, falling back to the module build info
// embedded by the Go toolchain when ldflags were not set.
func Get() Info {
	mainVersion, settings := readSettings()
	return fromSettings(Version, GitCommit, BuildTime, mainVersion, settings)
}

// Short returns a one-line version such as "v1.0.0 (abc1234)".
func (i Info) Short() string {
	if i.GitCommit == "unknown" || len(i.GitCommit) < 7 {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, i.GitCommit[:7])
}

// Detailed returns a multi-line description of the build.
func (i Info) Detailed() string {
	lines := []string{"Version: " + i.Version}
	if i.GitCommit != "unknown" {
		lines = append(lines, "Commit: "+i.GitCommit)
	}
	if !i.BuildTime.IsZero() {
		lines = append(lines, "Built: "+i.BuildTime.Format(time.RFC3339))
	}
	lines = append(lines, "Go: "+i.GoVersion, "Platform: "+i.Platform)
	if i.Dirty {
		lines = append(lines, "Working directory: dirty")
	}
	return strings.Join(lines, "\n")
}

// IsRelease reports whether this is a tagged build.
func (i Info) IsRelease() bool {
	return i.Version != "dev" && !strings.HasPrefix(i.Version, "dev-")
}

func readSettings() (string, map[string]string) {
	settings := make(map[string]string)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", settings
	}
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	return info.Main.Version, settings
}

func fromSettings(ver, commit, built string, mainVersion string, settings map[string]string) Info {
	revision := settings["vcs.revision"]

	if ver == "" || ver == "dev" {
		switch {
		case mainVersion != "" && mainVersion != "(devel)":
			ver = mainVersion
		case len(revision) >= 7:
			ver = "dev-" + revision[:7]
		default:
			ver = "dev"
		}
	}
	if (commit == "" || commit == "unknown") && revision != "" {
		commit = revision
	}
	if commit == "" {
		commit = "unknown"
	}

	return Info{
		Version:   ver,
		GitCommit: commit,
		BuildTime: parseTime(built),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Dirty:     settings["vcs.modified"] == "true",
	}
}

// parseTime parses an RFC 3339 style timestamp, returning the zero time
// when the value is missing or malformed.
func parseTime(s string) time.Time {
	if s == "" || s == "unknown" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
