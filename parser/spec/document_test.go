package spec

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/html5parse/parser/tree"
)

func TestInsertTextMergesWithPrecedingText(t *testing.T) {
	t.Parallel()
	d := NewDocument()
	body := d.CreateElement("body", tree.HTML, nil)
	d.AppendChild(d.Document(), body)

	d.InsertText(body, "a", nil)
	d.InsertText(body, "b", nil)
	require.Len(t, body.(*Node).ChildNodes, 1)
	assert.Equal(t, "ab", body.(*Node).FirstChild().Data)

	table := d.CreateElement("table", tree.HTML, nil)
	d.AppendChild(body, table)
	d.InsertText(body, "c", table)
	d.InsertText(body, "d", nil)

	assert.Equal(t, "| <body>\n|   \"abc\"\n|   <table>\n|   \"d\"", d.String())
}

func TestInsertBeforeMovesNode(t *testing.T) {
	t.Parallel()
	d := NewDocument()
	root := d.CreateElement("div", tree.HTML, nil)
	a := d.CreateElement("a", tree.HTML, nil)
	b := d.CreateElement("b", tree.HTML, nil)
	d.AppendChild(root, a)
	d.AppendChild(root, b)

	d.InsertBefore(root, b, a)
	children := d.Children(root)
	require.Len(t, children, 2)
	assert.Same(t, b, children[0])
	assert.Same(t, a, children[1])

	other := d.CreateElement("p", tree.HTML, nil)
	d.AppendChild(other, a)
	assert.Len(t, d.Children(root), 1)
	assert.Same(t, other, a.Parent())

	d.RemoveChild(other, a)
	assert.Nil(t, a.Parent())
	assert.Empty(t, d.Children(other))
}

func TestReparentChildren(t *testing.T) {
	t.Parallel()
	d := NewDocument()
	from := d.CreateElement("b", tree.HTML, nil)
	to := d.CreateElement("i", tree.HTML, nil)
	d.AppendChild(to, d.CreateComment("first"))
	d.InsertText(from, "x", nil)
	d.AppendChild(from, d.CreateElement("br", tree.HTML, nil))

	d.ReparentChildren(from, to)
	assert.Empty(t, d.Children(from))
	children := d.Children(to)
	require.Len(t, children, 3)
	for _, child := range children {
		assert.Same(t, to, child.Parent())
	}
}

func TestAddAttributesKeepsExisting(t *testing.T) {
	t.Parallel()
	d := NewDocument()
	n := d.CreateElement("html", tree.HTML, tree.Attributes{{Key: "lang", Value: "en"}})
	d.AddAttributes(n, tree.Attributes{
		{Key: "lang", Value: "fr"},
		{Key: "dir", Value: "ltr"},
		{Namespace: tree.XML, Key: "lang", Value: "de"},
	})

	assert.Equal(t, tree.Attributes{
		{Key: "lang", Value: "en"},
		{Key: "dir", Value: "ltr"},
		{Namespace: tree.XML, Key: "lang", Value: "de"},
	}, n.Attributes())
}

func TestCloneNode(t *testing.T) {
	t.Parallel()
	d := NewDocument()
	orig := d.CreateElement("b", tree.HTML, tree.Attributes{{Key: "class", Value: "x"}})
	d.InsertText(orig, "child", nil)
	d.AppendChild(d.Document(), orig)

	clone := d.CloneNode(orig).(*Node)
	assert.Equal(t, "b", clone.Name())
	assert.Nil(t, clone.Parent())
	assert.Empty(t, clone.ChildNodes)

	clone.Attrs[0].Value = "y"
	v, _ := orig.Attributes().Get("class")
	assert.Equal(t, "x", v)
}

func TestDump(t *testing.T) {
	t.Parallel()
	d := NewDocument()
	doc := d.Document()
	d.AppendChild(doc, d.CreateDoctype("html", "-//W3C//DTD HTML 4.01//EN", ""))
	html := d.CreateElement("html", tree.HTML, nil)
	d.AppendChild(doc, html)
	svg := d.CreateElement("svg", tree.SVG, tree.Attributes{
		{Key: "viewBox", Value: "0 0 1 1"},
		{Namespace: tree.XLink, Key: "href", Value: "#a"},
	})
	d.AppendChild(html, svg)
	d.AppendChild(html, d.CreateElement("mi", tree.MathML, nil))
	d.AppendChild(html, d.CreateComment("c"))

	want := "| <!DOCTYPE html \"-//W3C//DTD HTML 4.01//EN\" \"\">\n" +
		"| <html>\n" +
		"|   <svg svg>\n" +
		"|     viewBox=\"0 0 1 1\"\n" +
		"|     xlink href=\"#a\"\n" +
		"|   <math mi>\n" +
		"|   <!-- c -->"
	assert.Equal(t, want, d.String())
	assert.Equal(t, "| <svg svg>\n|   viewBox=\"0 0 1 1\"\n|   xlink href=\"#a\"", DumpFragment([]tree.Node{svg}))
}

func TestRender(t *testing.T) {
	t.Parallel()
	d := NewDocument()
	doc := d.Document()
	d.AppendChild(doc, d.CreateDoctype("html", "", ""))
	body := d.CreateElement("body", tree.HTML, tree.Attributes{{Key: "title", Value: "a\"b&c"}})
	d.AppendChild(doc, body)
	d.InsertText(body, "1 < 2 & 3\u00A0", nil)
	d.AppendChild(body, d.CreateElement("br", tree.HTML, nil))

	script := d.CreateElement("script", tree.HTML, nil)
	d.AppendChild(body, script)
	d.InsertText(script, "a<b && c", nil)

	pre := d.CreateElement("pre", tree.HTML, nil)
	d.AppendChild(body, pre)
	d.InsertText(pre, "\nx", nil)

	noscript := d.CreateElement("noscript", tree.HTML, nil)
	d.AppendChild(body, noscript)
	d.InsertText(noscript, "<p>", nil)

	svg := d.CreateElement("svg", tree.SVG, tree.Attributes{{Namespace: tree.XLink, Key: "href", Value: "#a"}})
	d.AppendChild(body, svg)
	d.AppendChild(body, d.CreateComment(" c "))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d.Node, false))
	assert.Equal(t, "<!DOCTYPE html><body title=\"a&quot;b&amp;c\">1 &lt; 2 &amp; 3&nbsp;<br>"+
		"<script>a<b && c</script><pre>\n\nx</pre><noscript>&lt;p&gt;</noscript>"+
		"<svg xlink:href=\"#a\"></svg><!-- c --></body>", buf.String())

	buf.Reset()
	require.NoError(t, Render(&buf, noscript.(*Node), true))
	assert.Equal(t, "<noscript><p></noscript>", buf.String())
}

func TestTraceMutations(t *testing.T) {
	t.Parallel()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	d := NewDocument()
	d.TraceMutations(logger)
	d.AppendChild(d.Document(), d.CreateElement("html", tree.HTML, nil))
	d.AddAttributes(d.Children(d.Document())[0], nil)

	entries := hook.AllEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "AppendChild", entries[0].Data["method"])
	assert.Equal(t, "tree", entries[0].Data["component"])
}

func TestNodeList(t *testing.T) {
	t.Parallel()
	a, b, c := NewTextNode("a"), NewTextNode("b"), NewTextNode("c")
	var l NodeList
	l.Insert(0, a)
	l.Insert(1, c)
	l.Insert(1, b)
	assert.Equal(t, NodeList{a, b, c}, l)
	assert.Equal(t, 2, l.Contains(c))
	assert.Equal(t, -1, l.Contains(NewTextNode("a")))

	assert.Same(t, b, l.Remove(1))
	assert.Nil(t, l.Remove(5))
	assert.Equal(t, NodeList{a, c}, l)
}
