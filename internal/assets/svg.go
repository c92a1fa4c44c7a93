package assets

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"

	siteerrors "github.com/crabby-lang/website/internal/errors"
)

// InlineSVG prepares an SVG document for inlining into HTML. Comments, the
// XML prolog and the doctype before the root element are dropped, and class
// plus role="img" are added to the root <svg> tag. Documents whose root is
// not <svg>, or that carry scripts or event handler attributes, are
// rejected. Everything else is copied byte for byte so authored attribute
// case (viewBox) survives.
func InlineSVG(data []byte, class string) ([]byte, error) {
	z := html.NewTokenizer(bytes.NewReader(data))
	var out bytes.Buffer
	root := false

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, invalidSVG("reading svg", z.Err())
		}
		// TagName and TagAttr lower-case the buffer in place.
		raw := bytes.Clone(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) == "script" {
				return nil, invalidSVG("svg contains a script element", nil)
			}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if activeAttr(string(key), string(val)) {
					return nil, invalidSVG("svg contains active attribute "+string(key), nil)
				}
			}
			if !root {
				if string(name) != "svg" {
					return nil, invalidSVG("root element is <"+string(name)+">, not <svg>", nil)
				}
				root = true
				const tag = len("<svg")
				out.Write(raw[:tag])
				out.Write(rootAttrs(class))
				out.Write(raw[tag:])
				continue
			}
		case html.CommentToken, html.DoctypeToken:
			if !root {
				continue
			}
		case html.TextToken:
			if !root {
				if len(bytes.TrimSpace(raw)) == 0 {
					continue
				}
				return nil, invalidSVG("text before the <svg> element", nil)
			}
		case html.EndTagToken:
			if !root {
				return nil, invalidSVG("end tag before the <svg> element", nil)
			}
		}
		out.Write(raw)
	}

	if !root {
		return nil, invalidSVG("no <svg> element", nil)
	}
	return bytes.TrimRight(out.Bytes(), "\r\n\t "), nil
}

func rootAttrs(class string) []byte {
	var attrs bytes.Buffer
	if class != "" {
		attrs.WriteString(` class="`)
		attrs.WriteString(html.EscapeString(class))
		attrs.WriteString(`"`)
	}
	attrs.WriteString(` role="img"`)
	return attrs.Bytes()
}

// activeAttr reports event handlers and javascript: links.
func activeAttr(key, val string) bool {
	if strings.HasPrefix(key, "on") {
		return true
	}
	switch key {
	case "href", "xlink:href", "src":
		v := strings.ToLower(strings.TrimSpace(val))
		return strings.HasPrefix(v, "javascript:")
	}
	return false
}

func invalidSVG(message string, cause error) error {
	return siteerrors.NewAssetError(siteerrors.CodeAssetInvalid, message, cause)
}
