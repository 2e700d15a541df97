// Package spec is the default tree the parser builds: a small DOM with the
// html5lib test-format dump and an HTML serializer.
package spec

import (
	"sort"
	"strings"

	"github.com/heathj/html5parse/parser/tree"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	DocumentNode
	DocumentTypeNode
)

// https://dom.whatwg.org/#node
type Node struct {
	NodeType     NodeType
	NodeName     string
	NamespaceURI tree.Namespace
	Attrs        tree.Attributes
	// Data is the text of text and comment nodes.
	Data               string
	PublicID, SystemID string

	ParentNode *Node
	ChildNodes NodeList
}

func NewDOMElement(name string, namespace tree.Namespace, attrs tree.Attributes) *Node {
	return &Node{
		NodeType:     ElementNode,
		NodeName:     name,
		NamespaceURI: namespace,
		Attrs:        attrs,
	}
}

func NewTextNode(text string) *Node {
	return &Node{NodeType: TextNode, Data: text}
}

// NewComment returns a comment node with its Data section filled.
func NewComment(data string) *Node {
	return &Node{NodeType: CommentNode, Data: data}
}

func NewDocTypeNode(name, pub, sys string) *Node {
	return &Node{
		NodeType: DocumentTypeNode,
		NodeName: name,
		PublicID: pub,
		SystemID: sys,
	}
}

func (n *Node) Name() string                { return n.NodeName }
func (n *Node) Namespace() tree.Namespace   { return n.NamespaceURI }
func (n *Node) Attributes() tree.Attributes { return n.Attrs }

// Parent returns an untyped nil for detached nodes so callers can compare
// against nil.
func (n *Node) Parent() tree.Node {
	if n.ParentNode == nil {
		return nil
	}
	return n.ParentNode
}

func (n *Node) HasChildNodes() bool {
	return len(n.ChildNodes) > 0
}

func (n *Node) FirstChild() *Node {
	if len(n.ChildNodes) == 0 {
		return nil
	}
	return n.ChildNodes[0]
}

func (n *Node) LastChild() *Node {
	if len(n.ChildNodes) == 0 {
		return nil
	}
	return n.ChildNodes[len(n.ChildNodes)-1]
}

// CloneNode returns a shallow copy: same name, namespace and attributes,
// no parent and no children.
func (n *Node) CloneNode() *Node {
	c := *n
	c.Attrs = n.Attrs.Clone()
	c.ParentNode = nil
	c.ChildNodes = nil
	return &c
}

// https://dom.whatwg.org/#concept-node-append
func (n *Node) AppendChild(on *Node) *Node {
	on.detach()
	on.ParentNode = n
	n.ChildNodes = append(n.ChildNodes, on)
	return on
}

// InsertBefore inserts on right before child, or at the end when child is
// nil or not a child of n.
func (n *Node) InsertBefore(on, child *Node) *Node {
	on.detach()
	i := n.ChildNodes.Contains(child)
	if child == nil || i == -1 {
		return n.AppendChild(on)
	}
	on.ParentNode = n
	n.ChildNodes.Insert(i, on)
	return on
}

func (n *Node) RemoveChild(child *Node) *Node {
	node := n.ChildNodes.Remove(n.ChildNodes.Contains(child))
	if node != nil {
		node.ParentNode = nil
	}
	return node
}

func (n *Node) detach() {
	if n.ParentNode != nil {
		n.ParentNode.RemoveChild(n)
	}
}

// attrDisplayName is how an attribute is written in the test format.
func attrDisplayName(attr tree.Attribute) string {
	if attr.Namespace == tree.None {
		return attr.Key
	}
	return attr.Namespace.Prefix() + " " + attr.Key
}

func indent(depth int) string {
	return "| " + strings.Repeat("  ", depth)
}

func serializeNodeType(node *Node, depth int) string {
	switch node.NodeType {
	case ElementNode:
		e := "<"
		switch node.NamespaceURI {
		case tree.SVG:
			e += "svg "
		case tree.MathML:
			e += "math "
		}
		e += node.NodeName + ">"

		attrs := make([]string, 0, len(node.Attrs))
		for _, attr := range node.Attrs {
			attrs = append(attrs, attrDisplayName(attr)+"=\""+attr.Value+"\"")
		}
		sort.Strings(attrs)
		for _, attr := range attrs {
			e += "\n" + indent(depth+1) + attr
		}
		return e
	case TextNode:
		return "\"" + node.Data + "\""
	case CommentNode:
		return "<!-- " + node.Data + " -->"
	case DocumentTypeNode:
		if node.PublicID == "" && node.SystemID == "" {
			return "<!DOCTYPE " + node.NodeName + ">"
		}
		return "<!DOCTYPE " + node.NodeName + " \"" + node.PublicID + "\" \"" + node.SystemID + "\">"
	}
	return ""
}

func (node *Node) serialize(b *strings.Builder, depth int) {
	b.WriteString(indent(depth))
	b.WriteString(serializeNodeType(node, depth))
	b.WriteByte('\n')
	for _, child := range node.ChildNodes {
		child.serialize(b, depth+1)
	}
}

// String renders the subtree in the html5lib tree construction test format.
// A document renders only its children.
func (node *Node) String() string {
	var b strings.Builder
	if node.NodeType == DocumentNode {
		for _, child := range node.ChildNodes {
			child.serialize(&b, 0)
		}
	} else {
		node.serialize(&b, 0)
	}
	return strings.TrimRight(b.String(), "\n")
}

// DumpFragment renders the top level nodes of a fragment parse in the test
// format.
func DumpFragment(nodes []tree.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		n.(*Node).serialize(&b, 0)
	}
	return strings.TrimRight(b.String(), "\n")
}
