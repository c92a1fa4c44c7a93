package version

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromSettings(t *testing.T) {
	tests := []struct {
		name        string
		ver         string
		commit      string
		mainVersion string
		settings    map[string]string
		wantVersion string
		wantCommit  string
		wantDirty   bool
	}{
		{
			name:        "ldflags win",
			ver:         "v1.2.3",
			commit:      "0123456789abcdef",
			settings:    map[string]string{"vcs.revision": "ffffffffffff"},
			wantVersion: "v1.2.3",
			wantCommit:  "0123456789abcdef",
		},
		{
			name:        "module version",
			ver:         "dev",
			commit:      "unknown",
			mainVersion: "v0.4.0",
			settings:    map[string]string{},
			wantVersion: "v0.4.0",
			wantCommit:  "unknown",
		},
		{
			name:        "vcs revision",
			ver:         "dev",
			commit:      "unknown",
			mainVersion: "(devel)",
			settings:    map[string]string{"vcs.revision": "abcdef1234567", "vcs.modified": "true"},
			wantVersion: "dev-abcdef1",
			wantCommit:  "abcdef1234567",
			wantDirty:   true,
		},
		{
			name:        "nothing known",
			ver:         "",
			commit:      "",
			settings:    map[string]string{},
			wantVersion: "dev",
			wantCommit:  "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := fromSettings(tt.ver, tt.commit, "unknown", tt.mainVersion, tt.settings)
			assert.Equal(t, tt.wantVersion, info.Version)
			assert.Equal(t, tt.wantCommit, info.GitCommit)
			assert.Equal(t, tt.wantDirty, info.Dirty)
			assert.NotEmpty(t, info.GoVersion)
		})
	}
}

func TestShortAndRelease(t *testing.T) {
	info := Info{Version: "v1.0.0", GitCommit: "abc1234def"}
	assert.Equal(t, "v1.0.0 (abc1234)", info.Short())
	assert.True(t, info.IsRelease())

	dev := Info{Version: "dev-abc1234", GitCommit: "unknown"}
	assert.Equal(t, "dev-abc1234", dev.Short())
	assert.False(t, dev.IsRelease())
}

func TestDetailed(t *testing.T) {
	info := Info{
		Version:   "v1.0.0",
		GitCommit: "abc",
		BuildTime: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		GoVersion: "go1.24.4",
		Platform:  "linux/amd64",
		Dirty:     true,
	}
	out := info.Detailed()
	assert.Contains(t, out, "Version: v1.0.0")
	assert.Contains(t, out, "Built: 2026-01-02T03:04:05Z")
	assert.Contains(t, out, "Working directory: dirty")
}

func TestParseTime(t *testing.T) {
	assert.True(t, parseTime("unknown").IsZero())
	assert.True(t, parseTime("yesterday").IsZero())
	assert.Equal(t, 2026, parseTime("2026-10-19T10:00:00Z").Year())
	assert.Equal(t, 15, parseTime("2026-10-19 15:04:05").Hour())
}
