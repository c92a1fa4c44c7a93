package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter keeps the first write error so markup can be emitted without
// checking every call.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) bytes(b []byte) {
	if h.err != nil {
		return
	}
	_, h.err = h.w.Write(b)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}
