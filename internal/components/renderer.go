package components

import (
	"context"
	"io"
	"strconv"
	"sync"

	"github.com/a-h/templ"

	"github.com/crabby-lang/website/internal/assets"
	"github.com/crabby-lang/website/internal/features"
	"github.com/crabby-lang/website/internal/logging"
	"github.com/crabby-lang/website/internal/richtext"
)

// FeatureHeadingLevel is the heading level of a card title.
const FeatureHeadingLevel = 3

// Renderer renders feature cards and the section that holds them.
type Renderer struct {
	icons   assets.Loader
	heading HeadingFunc
	logger  logging.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithIcons sets the loader used to resolve icon references.
func WithIcons(loader assets.Loader) Option {
	return func(r *Renderer) {
		if loader != nil {
			r.icons = loader
		}
	}
}

// WithHeading replaces the heading primitive.
func WithHeading(h HeadingFunc) Option {
	return func(r *Renderer) {
		if h != nil {
			r.heading = h
		}
	}
}

// WithLogger sets the logger that receives icon resolution failures.
func WithLogger(logger logging.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger.WithComponent("components")
		}
	}
}

// NewRenderer creates a renderer that uses the embedded assets and the
// default heading unless told otherwise.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		icons:   assets.Embedded(),
		heading: Heading,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Feature renders a single card.
func (r *Renderer) Feature(d features.Descriptor) templ.Component {
	return r.card(-1, d)
}

// Section renders every descriptor in order inside the features section.
// Each card carries its position as data-feature-key.
func (r *Renderer) Section(list features.List) templ.Component {
	cards := make([]templ.Component, len(list))
	for i, d := range list {
		cards[i] = r.card(i, d)
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.raw(`<section class="` + ClassFeatures + `">`)
		hw.raw(`<div class="` + ClassContainer + `">`)
		hw.raw(`<div class="` + ClassRow + `">`)
		for _, c := range cards {
			hw.component(c)
		}
		hw.raw(`</div></div></section>`)
		return hw.err
	})
}

// card renders one descriptor; key < 0 omits the position attribute.
func (r *Renderer) card(key int, d features.Descriptor) templ.Component {
	description := richtext.Parse(d.Description)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.raw(`<div class="` + ClassColumn + `"`)
		if key >= 0 {
			hw.raw(` data-feature-key="` + strconv.Itoa(key) + `"`)
		}
		hw.raw(`>`)

		hw.raw(`<div class="` + ClassCenter + `">`)
		hw.bytes(r.icon(ctx, d.Icon))
		hw.raw(`</div>`)

		hw.raw(`<div class="` + ClassBody + `">`)
		hw.component(r.heading(FeatureHeadingLevel, d.Title))
		hw.raw(`<p>`)
		hw.component(description)
		hw.raw(`</p>`)
		hw.raw(`</div>`)

		hw.raw(`</div>`)
		return hw.err
	})
}

// icon returns inline SVG markup, or nil when the reference cannot be
// resolved. Asset problems belong to whoever authored the reference, so
// they are logged rather than returned.
func (r *Renderer) icon(ctx context.Context, ref string) []byte {
	if ref == "" {
		return nil
	}
	data, err := r.icons.Open(ref)
	if err != nil {
		r.logger.Debug(ctx, "icon not rendered", "icon", ref, "reason", err.Error())
		return nil
	}
	svg, err := assets.InlineSVG(data, ClassFeatureSvg)
	if err != nil {
		r.logger.Debug(ctx, "icon not rendered", "icon", ref, "reason", err.Error())
		return nil
	}
	return svg
}

var defaultRenderer = sync.OnceValue(func() *Renderer {
	return NewRenderer()
})

// HomepageFeatures renders the authored homepage features.
func HomepageFeatures() templ.Component {
	return defaultRenderer().Section(features.Default())
}
