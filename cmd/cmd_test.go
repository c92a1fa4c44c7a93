package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crabby-lang/website/internal/config"
	"github.com/crabby-lang/website/internal/features"
)

// run executes the CLI in an empty working directory.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv(config.ConfigFileEnv, "")

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
}

func TestRenderCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("default section", func(t *testing.T) {
		out, _, err := run(t, "render")
		require.NoError(t, err)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
		require.NoError(t, err)

		var titles []string
		doc.Find("section.features h3").Each(func(_ int, s *goquery.Selection) {
			titles = append(titles, s.Text())
		})
		assert.Equal(t, []string{"Simplicity", "Efficiency", "Versatility"}, titles)
		assert.NotContains(t, out, "<html")
	})

	t.Run("full page", func(t *testing.T) {
		out, _, err := run(t, "render", "--page")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "<!doctype html>") || strings.HasPrefix(out, "<!DOCTYPE html>"))
		assert.Contains(t, out, `<section class="features">`)
	})

	t.Run("features file and output file", func(t *testing.T) {
		writeFile(t, "features.yml", `features:
  - title: Only
    icon: img/crabbylogo.svg
    description: One card
`)
		out, _, err := run(t, "render", "--features", "features.yml", "-o", "section.html")
		require.NoError(t, err)
		assert.Empty(t, out)

		data, err := os.ReadFile("section.html")
		require.NoError(t, err)
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 1, doc.Find("[data-feature-key]").Length())
		assert.Equal(t, "Only", doc.Find("h3").Text())
	})

	t.Run("empty features file", func(t *testing.T) {
		writeFile(t, "empty.yml", "")
		out, _, err := run(t, "render", "--features", "empty.yml")
		require.NoError(t, err)
		assert.Contains(t, out, `<div class="row"></div>`)
	})

	t.Run("missing features file", func(t *testing.T) {
		out, _, err := run(t, "render", "--features", "nope.yml", "-o", "nope.html")
		require.Error(t, err)
		assert.Empty(t, out)
		assert.NoFileExists(t, "nope.html")
	})
}

func TestFeaturesListCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("text", func(t *testing.T) {
		out, _, err := run(t, "features", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "1. Simplicity [img/crabbylogo.svg]")
		assert.Contains(t, out, "3. Versatility")
		assert.NotContains(t, out, "<span>")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := run(t, "features", "list", "--format", "json")
		require.NoError(t, err)

		var list features.List
		require.NoError(t, json.Unmarshal([]byte(out), &list))
		assert.Equal(t, features.Default(), list)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := run(t, "features", "list", "--format", "xml")
		assert.ErrorContains(t, err, "unsupported format")
	})
}

func TestFeaturesValidateCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("defaults are valid", func(t *testing.T) {
		out, _, err := run(t, "features", "validate")
		require.NoError(t, err)
		assert.Equal(t, "3 feature(s) OK\n", out)
	})

	t.Run("all problems reported", func(t *testing.T) {
		writeFile(t, "bad.yml", `features:
  - title: ""
    icon: img/missing.svg
    description: ""
  - title: Fine
    icon: img/crabbylogo.svg
    description: ok
`)
		_, stderr, err := run(t, "features", "validate", "--features", "bad.yml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "3 problem(s) in 2 feature(s)")
		assert.Equal(t, 3, strings.Count(stderr, "  - "))
		assert.Equal(t, 2, strings.Count(stderr, "  - content: "))
		assert.Equal(t, 1, strings.Count(stderr, "  - icon: "))
	})
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, "features.yml", `features:
  - title: From config
    icon: img/crabbylogo.svg
    description: configured
`)
	writeFile(t, ".crabbysite.yml", `site:
  title: Preview
  features_file: features.yml
`)

	out, _, err := run(t, "features", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1. From config")

	t.Run("flag overrides file", func(t *testing.T) {
		out, _, err := run(t, "features", "list", "--features", filepath.Join(dir, "missing.yml"))
		require.Error(t, err)
		assert.Empty(t, out)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("CRABBYSITE_LOGGING_LEVEL", "loud")
		_, _, err := run(t, "features", "list")
		assert.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("explicit config must exist", func(t *testing.T) {
		_, _, err := run(t, "--config", "absent.yml", "features", "list")
		assert.ErrorContains(t, err, "reading config file")
	})
}

func TestInvalidLogLevel(t *testing.T) {
	t.Chdir(t.TempDir())
	_, _, err := run(t, "--log-level", "verbose", "render")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))

	out, _, err = run(t, "version", "--format", "json")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "go_version")

	// A broken config file does not affect version output.
	writeFile(t, ".crabbysite.yml", "server: [")
	_, _, err = run(t, "version")
	assert.NoError(t, err)
}

func TestServeFlagsBound(t *testing.T) {
	t.Chdir(t.TempDir())

	root := newRootCmd()
	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	require.NoError(t, serve.ParseFlags([]string{"-p", "8081", "--host", "0.0.0.0", "--features", "serve.yml"}))

	v := viper.New()
	require.NoError(t, bindFlags(v, serve.Flags()))
	assert.Equal(t, 8081, v.GetInt("server.port"))
	assert.Equal(t, "0.0.0.0", v.GetString("server.host"))
	assert.Equal(t, "serve.yml", v.GetString("site.features_file"))
}

func TestFeaturesFlagPerCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "one.yml", `features:
  - title: OnlyOne
    icon: img/crabbylogo.svg
    description: single
`)

	for _, args := range [][]string{
		{"render", "--features", "one.yml"},
		{"features", "list", "--features", "one.yml"},
		{"features", "--features", "one.yml", "list"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			out, _, err := run(t, args...)
			require.NoError(t, err)
			assert.Contains(t, out, "OnlyOne")
			assert.NotContains(t, out, "Simplicity")
		})
	}

	t.Run("missing file fails every command", func(t *testing.T) {
		for _, args := range [][]string{
			{"render", "--features", "nope.yml"},
			{"features", "list", "--features", "nope.yml"},
			{"features", "validate", "--features", "nope.yml"},
		} {
			_, _, err := run(t, args...)
			assert.Error(t, err, strings.Join(args, " "))
		}
	})
}

func TestAssetsDirFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CRABBYSITE_SITE_ASSETS_DIR", "no-such-assets")

	_, stderr, err := run(t, "features", "validate")
	require.Error(t, err)
	assert.Equal(t, 3, strings.Count(stderr, "  - icon: "))
}
