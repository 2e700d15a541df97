package parser

import (
	"io"
	"strings"

	"github.com/heathj/html5parse/parser/tree"
)

// ParseFragment parses r as the contents of a context element, the way
// innerHTML does. Foreign contexts are written with their namespace prefix,
// e.g. "svg path" or "math mi". The result's Fragment holds the parsed
// nodes.
func ParseFragment(r io.Reader, context string, opts ...Option) (*Result, error) {
	if context == "" {
		context = "body"
	}
	return parse(r, context, opts)
}

// splitContext turns a context description into a namespace and a local
// name.
func splitContext(context string) (tree.Namespace, string) {
	if prefix, name, ok := strings.Cut(context, " "); ok {
		switch prefix {
		case "svg":
			return tree.SVG, name
		case "math":
			return tree.MathML, name
		}
	}
	return tree.HTML, strings.ToLower(context)
}

// fragmentTokenizerState picks the tokenizer state the context element's
// content starts in.
func fragmentTokenizerState(name string, scripting bool) tokenizerState {
	switch name {
	case "title", "textarea":
		return rcDataState
	case "style", "xmp", "iframe", "noembed", "noframes":
		return rawTextState
	case "script":
		return scriptDataState
	case "noscript":
		if scripting {
			return rawTextState
		}
	case "plaintext":
		return plaintextState
	}
	return dataState
}

// startFragment sets the parser up for the HTML fragment parsing algorithm.
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-html-fragments
func (p *Parser) startFragment(context string) {
	ns, name := splitContext(context)
	c := p.TreeConstructor
	c.context = p.tree.CreateElement(name, ns, nil)
	if ns == tree.HTML {
		p.start = fragmentTokenizerState(name, c.config.scripting)
	}

	c.insertRoot(impliedTag(StartTagToken, "html"))
	p.root = c.stackOfOpenElements[0]
	c.resetInsertionMode()
	p.log.WithField("context", context).Debug("parsing fragment")
}
