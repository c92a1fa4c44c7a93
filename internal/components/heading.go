package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// HeadingFunc renders a heading of the given level. Hosts can supply their
// own to match the surrounding site's heading markup.
type HeadingFunc func(level int, text string) templ.Component

// Heading renders <hN>text</hN>. Levels outside 1..6 are clamped.
func Heading(level int, text string) templ.Component {
	tag := "h" + strconv.Itoa(clampLevel(level))
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.raw("<" + tag + ">")
		hw.text(text)
		hw.raw("</" + tag + ">")
		return hw.err
	})
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	default:
		return level
	}
}
