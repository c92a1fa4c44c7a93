package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crabby-lang/website/internal/features"
)

func TestHomepage(t *testing.T) {
	out := render(t, NewRenderer().Homepage(PageOptions{
		Title:   "Crabby",
		Tagline: "A friendly <programming> language",
	}, features.Default()))

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.NotContains(t, out, "/ws")

	doc := parse(t, out)
	assert.Equal(t, "Crabby", doc.Find("head > title").Text())
	assert.Equal(t, "Crabby", doc.Find("header.hero h1").Text())
	assert.Equal(t, "A friendly <programming> language", doc.Find("header.hero p").Text())
	require.Equal(t, 1, doc.Find("main > section.features").Length())
	assert.Equal(t, 3, doc.Find("main div.col").Length())
	assert.Contains(t, doc.Find("style").Text(), ".featureSvg")
}

func TestHomepageLiveReload(t *testing.T) {
	out := render(t, NewRenderer().Homepage(PageOptions{Title: "x", LiveReload: true}, features.List{}))

	assert.Contains(t, out, `"/ws"`)
	assert.Contains(t, out, "full_reload")
	assert.Equal(t, 0, parse(t, out).Find("header.hero p").Length())
}
