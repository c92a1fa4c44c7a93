package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/crabby-lang/website/internal/features"
)

// PageOptions configures the preview homepage document.
type PageOptions struct {
	Title      string
	Tagline    string
	LiveReload bool
}

const liveReloadScript = `<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (event) {
    var msg = JSON.parse(event.data);
    if (msg.type === "full_reload") { location.reload(); }
  };
})();
</script>`

// Homepage renders a standalone HTML document with a hero banner and the
// features section. It exists for previewing the section outside the site
// generator.
func (r *Renderer) Homepage(opts PageOptions, list features.List) templ.Component {
	section := r.Section(list)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw(`<title>`)
		hw.text(opts.Title)
		hw.raw(`</title><style>`)
		hw.raw(Stylesheet)
		hw.raw(`</style></head><body>`)

		hw.raw(`<header class="hero"><div class="` + ClassContainer + `">`)
		hw.component(r.heading(1, opts.Title))
		if opts.Tagline != "" {
			hw.raw(`<p>`)
			hw.text(opts.Tagline)
			hw.raw(`</p>`)
		}
		hw.raw(`</div></header>`)

		hw.raw(`<main>`)
		hw.component(section)
		hw.raw(`</main>`)

		if opts.LiveReload {
			hw.raw(liveReloadScript)
		}
		hw.raw(`</body></html>`)
		return hw.err
	})
}
