// Package tree defines the contract between the tree constructor and the
// storage that holds the nodes it builds.
package tree

// Namespace identifies the namespace of an element or attribute.
type Namespace uint

const (
	// None is the namespace of ordinary attributes.
	None Namespace = iota
	HTML
	MathML
	SVG
	XLink
	XML
	XMLNS
)

var namespaceURIs = map[Namespace]string{
	HTML:   "http://www.w3.org/1999/xhtml",
	MathML: "http://www.w3.org/1998/Math/MathML",
	SVG:    "http://www.w3.org/2000/svg",
	XLink:  "http://www.w3.org/1999/xlink",
	XML:    "http://www.w3.org/XML/1998/namespace",
	XMLNS:  "http://www.w3.org/2000/xmlns/",
}

var namespacePrefixes = map[Namespace]string{
	MathML: "math",
	SVG:    "svg",
	XLink:  "xlink",
	XML:    "xml",
	XMLNS:  "xmlns",
}

// URI returns the namespace URI, or the empty string for None.
func (n Namespace) URI() string { return namespaceURIs[n] }

// Prefix returns the conventional prefix used when dumping foreign names.
func (n Namespace) Prefix() string { return namespacePrefixes[n] }

func (n Namespace) String() string {
	if n == HTML {
		return "html"
	}
	if n == None {
		return "none"
	}
	return n.Prefix()
}

// Attribute is a single name/value pair on an element.
type Attribute struct {
	Namespace Namespace
	Key       string
	Value     string
}

// Attributes keeps attributes in the order they were first seen.
type Attributes []Attribute

// Get returns the value of the un-namespaced attribute key.
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key && attr.Namespace == None {
			return attr.Value, true
		}
	}
	return "", false
}

// Has reports whether the un-namespaced attribute key is present.
func (a Attributes) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Clone returns a copy that does not share storage with a.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	c := make(Attributes, len(a))
	copy(c, a)
	return c
}

// Equal compares two attribute lists as sets.
func (a Attributes) Equal(b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
outer:
	for _, x := range a {
		for _, y := range b {
			if x == y {
				continue outer
			}
		}
		return false
	}
	return true
}

// Node is an opaque handle the tree constructor uses for identity and
// introspection. Handles are compared with ==.
type Node interface {
	Name() string
	Namespace() Namespace
	Attributes() Attributes
	// Parent returns nil for detached nodes.
	Parent() Node
}

// Tree is the node storage mutated by the tree constructor.
type Tree interface {
	Document() Node
	CreateElement(name string, ns Namespace, attrs Attributes) Node
	CreateComment(data string) Node
	CreateDoctype(name, publicID, systemID string) Node
	// CloneNode returns a shallow copy of an element with its own attributes.
	CloneNode(n Node) Node
	AppendChild(parent, child Node)
	// InsertBefore appends when ref is nil.
	InsertBefore(parent, child, ref Node)
	RemoveChild(parent, child Node)
	ReparentChildren(from, to Node)
	// InsertText adds data before ref (or at the end when ref is nil),
	// merging it into an adjacent text node.
	InsertText(parent Node, data string, ref Node)
	// AddAttributes adds every attribute that n does not have yet.
	AddAttributes(n Node, attrs Attributes)
	Children(n Node) []Node
}
