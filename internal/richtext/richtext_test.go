package richtext

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHTML string
		wantText string
	}{
		{
			name:     "plain text is escaped",
			input:    "a < b & c",
			wantHTML: "a &lt; b &amp; c",
			wantText: "a < b & c",
		},
		{
			name:     "span is kept",
			input:    "<span> Crabby </span> is versatile",
			wantHTML: "<span> Crabby </span> is versatile",
			wantText: " Crabby  is versatile",
		},
		{
			name:     "event handlers are dropped",
			input:    `<span class="brand" onclick="steal()">Crabby</span>`,
			wantHTML: `<span class="brand">Crabby</span>`,
			wantText: "Crabby",
		},
		{
			name:     "script content is dropped",
			input:    "<script>alert(1)</script>safe",
			wantHTML: "safe",
			wantText: "safe",
		},
		{
			name:     "block elements are unwrapped",
			input:    "<div>block <em>text</em></div>",
			wantHTML: "block <em>text</em>",
			wantText: "block text",
		},
		{
			name:     "javascript links lose href",
			input:    `<a href="javascript:alert(1)">x</a>`,
			wantHTML: "<a>x</a>",
			wantText: "x",
		},
		{
			name:     "https links are kept",
			input:    `<a href="https://example.com/docs">docs</a>`,
			wantHTML: `<a href="https://example.com/docs">docs</a>`,
			wantText: "docs",
		},
		{
			name:     "line breaks are void",
			input:    "one<br>two",
			wantHTML: "one<br>two",
			wantText: "onetwo",
		},
		{
			name:     "unclosed tags are closed",
			input:    "<strong>bold",
			wantHTML: "<strong>bold</strong>",
			wantText: "bold",
		},
		{
			name:     "empty input",
			input:    "",
			wantHTML: "",
			wantText: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Parse(tt.input)
			assert.Equal(t, tt.wantHTML, f.HTML())
			assert.Equal(t, tt.wantText, f.Text())
			assert.Equal(t, tt.wantText, Text(tt.input))
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestRenderReturnsWriterError(t *testing.T) {
	err := Parse("<em>x</em>").Render(context.Background(), failingWriter{})
	assert.EqualError(t, err, "broken pipe")
}
