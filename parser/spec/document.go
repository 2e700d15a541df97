package spec

import (
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/sirupsen/logrus"

	"github.com/heathj/html5parse/parser/tree"
)

// Document is the tree.Tree the parser builds into by default.
type Document struct {
	Node *Node

	// trace, when set, receives a diff of the tree after every mutation.
	trace *logrus.Entry
}

func NewDocument() *Document {
	return &Document{Node: &Node{NodeType: DocumentNode}}
}

// TraceMutations logs a diff of the dumped tree after every mutation at
// debug level. It is slow and meant for debugging the tree constructor.
func (d *Document) TraceMutations(logger *logrus.Logger) {
	d.trace = logger.WithField("component", "tree")
}

func (d *Document) String() string {
	return d.Node.String()
}

func asNode(n tree.Node) *Node {
	if n == nil {
		return nil
	}
	return n.(*Node)
}

// mutate runs fn and logs the resulting change to the tree when tracing.
func (d *Document) mutate(method string, fn func()) {
	if d.trace == nil {
		fn()
		return
	}
	old := d.Node.String()
	fn()
	d.printDiff(old, d.Node.String(), method)
}

func (d *Document) printDiff(a, b, method string) {
	if a == b {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, true)
	d.trace.WithField("method", method).Debugf("[TREE]: %s\n\n", dmp.DiffPrettyText(diffs))
}

func (d *Document) Document() tree.Node {
	return d.Node
}

func (d *Document) CreateElement(name string, ns tree.Namespace, attrs tree.Attributes) tree.Node {
	return NewDOMElement(name, ns, attrs)
}

func (d *Document) CreateComment(data string) tree.Node {
	return NewComment(data)
}

func (d *Document) CreateDoctype(name, publicID, systemID string) tree.Node {
	return NewDocTypeNode(name, publicID, systemID)
}

func (d *Document) CloneNode(n tree.Node) tree.Node {
	return asNode(n).CloneNode()
}

func (d *Document) AppendChild(parent, child tree.Node) {
	d.mutate("AppendChild", func() {
		asNode(parent).AppendChild(asNode(child))
	})
}

func (d *Document) InsertBefore(parent, child, ref tree.Node) {
	d.mutate("InsertBefore", func() {
		asNode(parent).InsertBefore(asNode(child), asNode(ref))
	})
}

func (d *Document) RemoveChild(parent, child tree.Node) {
	d.mutate("RemoveChild", func() {
		asNode(parent).RemoveChild(asNode(child))
	})
}

// ReparentChildren moves every child of from to the end of to.
func (d *Document) ReparentChildren(from, to tree.Node) {
	d.mutate("ReparentChildren", func() {
		src, dst := asNode(from), asNode(to)
		children := src.ChildNodes
		src.ChildNodes = nil
		for _, child := range children {
			child.ParentNode = dst
			dst.ChildNodes = append(dst.ChildNodes, child)
		}
	})
}

// InsertText adds data before ref, or at the end of parent when ref is nil,
// extending the text node that would precede it.
func (d *Document) InsertText(parent tree.Node, data string, ref tree.Node) {
	d.mutate("InsertText", func() {
		p, r := asNode(parent), asNode(ref)
		i := len(p.ChildNodes)
		if r != nil {
			if j := p.ChildNodes.Contains(r); j != -1 {
				i = j
			}
		}
		if i > 0 && p.ChildNodes[i-1].NodeType == TextNode {
			p.ChildNodes[i-1].Data += data
			return
		}
		p.InsertBefore(NewTextNode(data), r)
	})
}

func (d *Document) AddAttributes(n tree.Node, attrs tree.Attributes) {
	d.mutate("AddAttributes", func() {
		node := asNode(n)
		for _, attr := range attrs {
			if !hasAttribute(node.Attrs, attr) {
				node.Attrs = append(node.Attrs, attr)
			}
		}
	})
}

func hasAttribute(attrs tree.Attributes, attr tree.Attribute) bool {
	for _, a := range attrs {
		if a.Namespace == attr.Namespace && a.Key == attr.Key {
			return true
		}
	}
	return false
}

func (d *Document) Children(n tree.Node) []tree.Node {
	node := asNode(n)
	children := make([]tree.Node, len(node.ChildNodes))
	for i, child := range node.ChildNodes {
		children[i] = child
	}
	return children
}
