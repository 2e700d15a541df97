package parser

import (
	"strings"

	"github.com/heathj/html5parse/parser/tree"
)

type nameSet map[string]struct{}

func newNameSet(names ...string) nameSet {
	s := make(nameSet, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

func (s nameSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// isHTML reports whether n is an HTML element named one of names.
func isHTML(n tree.Node, names ...string) bool {
	if n == nil || n.Namespace() != tree.HTML {
		return false
	}
	for _, name := range names {
		if n.Name() == name {
			return true
		}
	}
	return false
}

// https://html.spec.whatwg.org/multipage/parsing.html#special
var specialHTMLElements = newNameSet(
	"address", "applet", "area", "article", "aside", "base", "basefont",
	"bgsound", "blockquote", "body", "br", "button", "caption", "center",
	"col", "colgroup", "dd", "details", "dir", "div", "dl", "dt", "embed",
	"fieldset", "figcaption", "figure", "footer", "form", "frame",
	"frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header",
	"hgroup", "hr", "html", "iframe", "img", "input", "keygen", "li",
	"link", "listing", "main", "marquee", "menu", "meta", "nav",
	"noembed", "noframes", "noscript", "object", "ol", "p", "param",
	"plaintext", "pre", "script", "section", "select", "source", "style",
	"summary", "table", "tbody", "td", "textarea", "tfoot", "th", "thead",
	"title", "tr", "track", "ul", "wbr", "xmp",
)

var mathMLTextIntegrationPoints = newNameSet("mi", "mo", "mn", "ms", "mtext")

var svgHTMLIntegrationPoints = newNameSet("foreignObject", "desc", "title")

func isSpecial(n tree.Node) bool {
	switch n.Namespace() {
	case tree.HTML:
		return specialHTMLElements.has(n.Name())
	case tree.MathML:
		return mathMLTextIntegrationPoints.has(n.Name()) || n.Name() == "annotation-xml"
	case tree.SVG:
		return svgHTMLIntegrationPoints.has(n.Name())
	}
	return false
}

var scopingHTMLElements = newNameSet(
	"applet", "caption", "html", "marquee", "object", "table", "td", "th",
)

// isScoping reports whether n bounds the default element scope.
func isScoping(n tree.Node) bool {
	switch n.Namespace() {
	case tree.HTML:
		return scopingHTMLElements.has(n.Name())
	case tree.MathML:
		return mathMLTextIntegrationPoints.has(n.Name()) || n.Name() == "annotation-xml"
	case tree.SVG:
		return svgHTMLIntegrationPoints.has(n.Name())
	}
	return false
}

var formattingElements = []string{
	"a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small",
	"strike", "strong", "tt", "u",
}

var headingElements = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

func isMathMLTextIntegrationPoint(n tree.Node) bool {
	return n.Namespace() == tree.MathML && mathMLTextIntegrationPoints.has(n.Name())
}

// https://html.spec.whatwg.org/multipage/parsing.html#html-integration-point
func isHTMLIntegrationPoint(n tree.Node) bool {
	switch n.Namespace() {
	case tree.MathML:
		if n.Name() != "annotation-xml" {
			return false
		}
		encoding, _ := n.Attributes().Get("encoding")
		encoding = strings.ToLower(encoding)
		return encoding == "text/html" || encoding == "application/xhtml+xml"
	case tree.SVG:
		return svgHTMLIntegrationPoints.has(n.Name())
	}
	return false
}
