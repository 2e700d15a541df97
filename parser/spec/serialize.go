package spec

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/heathj/html5parse/parser/tree"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "bgsound": true, "br": true, "col": true,
	"embed": true, "frame": true, "hr": true, "img": true, "input": true, "keygen": true,
	"link": true, "meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

var rawTextElements = map[string]bool{
	"style": true, "script": true, "xmp": true, "iframe": true, "noembed": true,
	"noframes": true, "plaintext": true,
}

// https://html.spec.whatwg.org/#escapingString
func escapeString(s string, attrVal bool) string {
	s = strings.Replace(s, "&", "&amp;", -1)
	s = strings.Replace(s, "\u00A0", "&nbsp;", -1)
	if attrVal {
		s = strings.Replace(s, "\"", "&quot;", -1)
	} else {
		s = strings.Replace(s, "<", "&lt;", -1)
		s = strings.Replace(s, ">", "&gt;", -1)
	}

	return s
}

// attrQualifiedName is the serialized name of an attribute.
func attrQualifiedName(attr tree.Attribute) string {
	switch attr.Namespace {
	case tree.XML:
		return "xml:" + attr.Key
	case tree.XLink:
		return "xlink:" + attr.Key
	case tree.XMLNS:
		if attr.Key == "xmlns" {
			return "xmlns"
		}
		return "xmlns:" + attr.Key
	}
	return attr.Key
}

// Render writes n as HTML markup. A document renders its children, any
// other node renders itself. scripting controls whether noscript content
// is written raw.
// https://html.spec.whatwg.org/multipage/parsing.html#serialising-html-fragments
func Render(w io.Writer, n *Node, scripting bool) error {
	var b strings.Builder
	if n.NodeType == DocumentNode {
		for _, child := range n.ChildNodes {
			renderNode(&b, child, scripting)
		}
	} else {
		renderNode(&b, n, scripting)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "render")
	}
	return nil
}

func renderNode(b *strings.Builder, n *Node, scripting bool) {
	switch n.NodeType {
	case ElementNode:
		b.WriteString("<" + n.NodeName)
		for _, attr := range n.Attrs {
			b.WriteString(" " + attrQualifiedName(attr) + "=\"" + escapeString(attr.Value, true) + "\"")
		}
		b.WriteString(">")
		if n.NamespaceURI == tree.HTML && voidElements[n.NodeName] {
			return
		}
		if n.NamespaceURI == tree.HTML {
			switch n.NodeName {
			case "pre", "textarea", "listing":
				if first := n.FirstChild(); first != nil && first.NodeType == TextNode && strings.HasPrefix(first.Data, "\n") {
					b.WriteString("\n")
				}
			}
		}
		for _, child := range n.ChildNodes {
			renderNode(b, child, scripting)
		}
		b.WriteString("</" + n.NodeName + ">")
	case TextNode:
		if p := n.ParentNode; p != nil && p.NamespaceURI == tree.HTML &&
			(rawTextElements[p.NodeName] || (scripting && p.NodeName == "noscript")) {
			b.WriteString(n.Data)
			return
		}
		b.WriteString(escapeString(n.Data, false))
	case CommentNode:
		b.WriteString("<!--" + n.Data + "-->")
	case DocumentTypeNode:
		b.WriteString("<!DOCTYPE " + n.NodeName + ">")
	}
}
