// Package richtext renders the inline markup allowed in feature
// descriptions.
//
// Descriptions are short HTML fragments. Parse keeps a small set of inline
// elements, unwraps every other element to its children and drops script
// and style content, so a fragment can be written straight into a <p>.
package richtext

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var allowedElements = map[atom.Atom]bool{
	atom.Span:   true,
	atom.Em:     true,
	atom.Strong: true,
	atom.B:      true,
	atom.I:      true,
	atom.Code:   true,
	atom.Br:     true,
	atom.A:      true,
}

// droppedElements lose their content as well as their tags.
var droppedElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Iframe:   true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Object:   true,
	atom.Embed:    true,
}

var allowedSchemes = map[string]bool{
	"":       true,
	"http":   true,
	"https":  true,
	"mailto": true,
}

// Fragment is a parsed description. It implements templ.Component.
type Fragment struct {
	nodes []*html.Node
}

var _ templ.Component = Fragment{}

// Parse parses an inline HTML fragment as it would appear inside a <p>.
// Parsing is total: malformed markup is repaired by the HTML5 parser.
func Parse(s string) Fragment {
	paragraph := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
	nodes, err := html.ParseFragment(strings.NewReader(s), paragraph)
	if err != nil {
		return Fragment{nodes: []*html.Node{{Type: html.TextNode, Data: s}}}
	}
	return Fragment{nodes: nodes}
}

// Render writes the sanitized fragment to w.
func (f Fragment) Render(ctx context.Context, w io.Writer) error {
	sw := &stickyWriter{w: w}
	for _, n := range f.nodes {
		renderNode(sw, n)
	}
	return sw.err
}

// Text returns the plain text of the fragment, with dropped content
// excluded.
func (f Fragment) Text() string {
	var b strings.Builder
	for _, n := range f.nodes {
		collectText(&b, n)
	}
	return b.String()
}

// Text is shorthand for Parse(s).Text().
func Text(s string) string {
	return Parse(s).Text()
}

// HTML returns the sanitized markup as a string.
func (f Fragment) HTML() string {
	var b strings.Builder
	_ = f.Render(context.Background(), &b)
	return b.String()
}

func renderNode(w *stickyWriter, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.WriteString(html.EscapeString(n.Data))
	case html.ElementNode:
		if droppedElements[n.DataAtom] {
			return
		}
		if !allowedElements[n.DataAtom] {
			renderChildren(w, n)
			return
		}
		w.WriteString("<" + n.Data)
		for _, attr := range n.Attr {
			if value, ok := allowedAttr(n.DataAtom, attr); ok {
				w.WriteString(" " + attr.Key + `="` + html.EscapeString(value) + `"`)
			}
		}
		w.WriteString(">")
		if n.DataAtom == atom.Br {
			return
		}
		renderChildren(w, n)
		w.WriteString("</" + n.Data + ">")
	case html.DocumentNode:
		renderChildren(w, n)
	}
}

func renderChildren(w *stickyWriter, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderNode(w, c)
	}
}

func allowedAttr(el atom.Atom, attr html.Attribute) (string, bool) {
	if attr.Namespace != "" {
		return "", false
	}
	switch attr.Key {
	case "class":
		return attr.Val, true
	case "href":
		if el != atom.A {
			return "", false
		}
		u, err := url.Parse(strings.TrimSpace(attr.Val))
		if err != nil || !allowedSchemes[strings.ToLower(u.Scheme)] {
			return "", false
		}
		return u.String(), true
	}
	return "", false
}

func collectText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode, html.DocumentNode:
		if droppedElements[n.DataAtom] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectText(b, c)
		}
	}
}

// stickyWriter remembers the first write error and ignores later writes.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) WriteString(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}
