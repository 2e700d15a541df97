package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/html5parse/parser/inputstream"
	"github.com/heathj/html5parse/parser/spec"
	"github.com/heathj/html5parse/parser/tree"
)

func dump(t *testing.T, res *Result) string {
	t.Helper()
	n, ok := res.Document.(*spec.Node)
	require.True(t, ok)
	return n.String()
}

func TestParseErrorsAreCollected(t *testing.T) {
	t.Parallel()
	res, err := Parse(strings.NewReader("<!DOCTYPE html>\n</b>"), WithEncoding("utf-8"))
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)

	perr := res.Errors[0]
	assert.Equal(t, "unexpected-end-tag-before-html", perr.Code)
	assert.Equal(t, "b", perr.Vars["name"])
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, "2:4: unexpected-end-tag-before-html (name=b)", perr.Error())
}

func TestStrictStopsAtFirstError(t *testing.T) {
	t.Parallel()
	res, err := Parse(strings.NewReader("<p>x</b>"), WithStrict(true), WithEncoding("utf-8"))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "strict parse")

	perr, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, "expected-doctype-but-got-start-tag", perr.Code)

	_, err = Parse(strings.NewReader("<!DOCTYPE html><p>x</p>"), WithStrict(true), WithEncoding("utf-8"))
	assert.NoError(t, err)
}

func TestTokenizerErrorsReachTheLog(t *testing.T) {
	t.Parallel()
	res, err := Parse(strings.NewReader("<!DOCTYPE html>&#0;<a b=1 b=2>"), WithEncoding("utf-8"))
	require.NoError(t, err)

	codes := make([]string, 0, len(res.Errors))
	for _, perr := range res.Errors {
		codes = append(codes, perr.Code)
	}
	assert.Contains(t, codes, "illegal-codepoint-for-numeric-entity")
	assert.Contains(t, codes, "duplicate-attribute")
}

// metaAfterPrescan puts the <meta> past the bytes the sniffer looks at so
// that only the tree constructor sees it.
func metaAfterPrescan(label string) []byte {
	var b bytes.Buffer
	b.WriteString("<!--")
	b.WriteString(strings.Repeat("x", 1100))
	b.WriteString("-->")
	b.WriteString(`<meta charset="` + label + `"><p>caf`)
	b.WriteString("\xc3\xa9")
	return b.Bytes()
}

func TestMetaCharsetRestartsParse(t *testing.T) {
	t.Parallel()
	res, err := Parse(bytes.NewReader(metaAfterPrescan("utf-8")))
	require.NoError(t, err)
	assert.Equal(t, "utf-8", res.Encoding)
	assert.Contains(t, dump(t, res), `"café"`)
}

func TestCertainEncodingIgnoresMeta(t *testing.T) {
	t.Parallel()
	res, err := Parse(bytes.NewReader(metaAfterPrescan("utf-8")), WithEncoding("windows-1252"))
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", res.Encoding)
	assert.Contains(t, dump(t, res), `"cafÃ©"`)
}

func TestStartReportsEncodingChange(t *testing.T) {
	t.Parallel()
	p, err := NewParser(metaAfterPrescan("utf-8"))
	require.NoError(t, err)

	err = p.Start()
	var changed *inputstream.EncodingChangedError
	require.True(t, errors.As(err, &changed), "got %v", err)
	assert.Equal(t, "windows-1252", changed.From)
	assert.Equal(t, "utf-8", changed.To)
}

func TestSameEncodingDoesNotRestart(t *testing.T) {
	t.Parallel()
	p, err := NewParser(metaAfterPrescan("windows-1252"))
	require.NoError(t, err)
	require.NoError(t, p.Start())

	name, certain := p.stream.Encoding()
	assert.Equal(t, "windows-1252", name)
	assert.True(t, certain)
}

func TestQuirksModeFromDoctype(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want quirksMode
	}{
		{"html5", "<!DOCTYPE html>", noQuirks},
		{"missing", "<p>", quirks},
		{"html 3.2", `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 3.2 Final//EN">`, quirks},
		{"transitional with system", `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "http://www.w3.org/TR/html4/loose.dtd">`, limitedQuirks},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := NewParser([]byte(tt.in), WithEncoding("utf-8"))
			require.NoError(t, err)
			require.NoError(t, p.Start())
			assert.Equal(t, tt.want, p.TreeConstructor.quirksMode)
		})
	}
}

func TestParseFragment(t *testing.T) {
	t.Parallel()
	res, err := ParseFragment(strings.NewReader("<td>x</td><td>y"), "tr", WithEncoding("utf-8"))
	require.NoError(t, err)
	require.Len(t, res.Fragment, 2)
	for _, n := range res.Fragment {
		assert.Equal(t, "td", n.Name())
		assert.Equal(t, tree.HTML, n.Namespace())
	}

	res, err = ParseFragment(strings.NewReader("a<b>c</b>"), "", WithEncoding("utf-8"))
	require.NoError(t, err)
	assert.Equal(t, "| \"a\"\n| <b>\n|   \"c\"", spec.DumpFragment(res.Fragment))
}

func TestParseFragmentForeignContext(t *testing.T) {
	t.Parallel()
	tests := []struct {
		context string
		in      string
		want    string
	}{
		{"svg svg", "<div>", "| <svg div>"},
		{"svg path", "<nobr>X", "| <svg nobr>\n|   \"X\""},
		{"math math", "<p>x", "| <math p>\n|   \"x\""},
		{"math mi", "<div>x", "| <div>\n|   \"x\""},
		{"svg foreignObject", "<p>x", "| <p>\n|   \"x\""},
		{"div", "<svg><p>x", "| <svg svg>\n| <p>\n|   \"x\""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.context+" "+tt.in, func(t *testing.T) {
			t.Parallel()
			res, err := ParseFragment(strings.NewReader(tt.in), tt.context, WithEncoding("utf-8"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec.DumpFragment(res.Fragment))
		})
	}
}

// reprocessingPhase hands every start tag straight back to the dispatcher.
type reprocessingPhase struct {
	basePhase
}

func (p *reprocessingPhase) processStartTag(t *Token) *Token {
	return t
}

func TestReprocessLimitIsReported(t *testing.T) {
	t.Parallel()
	p, err := NewParser([]byte("<p>"), WithEncoding("utf-8"))
	require.NoError(t, err)
	c := p.TreeConstructor
	c.mappings[initial] = &reprocessingPhase{basePhase{c: c}}

	err = p.Start()
	require.Error(t, err)
	assert.Equal(t, errReprocessLimit, errors.Cause(err))
	assert.Contains(t, err.Error(), "StartTag p")
}

func TestSplitContext(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		ns   tree.Namespace
		name string
	}{
		{"div", tree.HTML, "div"},
		{"TD", tree.HTML, "td"},
		{"svg path", tree.SVG, "path"},
		{"math mi", tree.MathML, "mi"},
	}
	for _, tt := range tests {
		ns, name := splitContext(tt.in)
		assert.Equal(t, tt.ns, ns, tt.in)
		assert.Equal(t, tt.name, name, tt.in)
	}
}

func TestFragmentTokenizerState(t *testing.T) {
	t.Parallel()
	assert.Equal(t, rcDataState, fragmentTokenizerState("title", false))
	assert.Equal(t, rawTextState, fragmentTokenizerState("xmp", false))
	assert.Equal(t, scriptDataState, fragmentTokenizerState("script", false))
	assert.Equal(t, plaintextState, fragmentTokenizerState("plaintext", false))
	assert.Equal(t, dataState, fragmentTokenizerState("noscript", false))
	assert.Equal(t, rawTextState, fragmentTokenizerState("noscript", true))
	assert.Equal(t, dataState, fragmentTokenizerState("div", true))
}

func TestWithTreeFactory(t *testing.T) {
	t.Parallel()
	var built *spec.Document
	res, err := Parse(strings.NewReader("<p>x"), WithEncoding("utf-8"), WithTreeFactory(func() tree.Tree {
		built = spec.NewDocument()
		return built
	}))
	require.NoError(t, err)
	require.NotNil(t, built)
	assert.Same(t, built, res.Tree)
	assert.Same(t, built.Node, res.Document)
}

func TestParseErrorsAreLogged(t *testing.T) {
	t.Parallel()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)

	_, err := Parse(strings.NewReader("<p>x"), WithEncoding("utf-8"), WithLogger(logger))
	require.NoError(t, err)

	var parseErrors, switches int
	for _, entry := range hook.AllEntries() {
		switch entry.Message {
		case "parse error":
			parseErrors++
			assert.Equal(t, logrus.DebugLevel, entry.Level)
			assert.Equal(t, "expected-doctype-but-got-start-tag", entry.Data["code"])
		case "insertion mode":
			switches++
		}
	}
	assert.Equal(t, 1, parseErrors)
	assert.NotZero(t, switches)
}

func TestCharsetFromContent(t *testing.T) {
	t.Parallel()
	tests := []struct {
		content string
		want    string
	}{
		{"text/html; charset=utf-8", "utf-8"},
		{"text/html; CHARSET = \"koi8-r\"", "koi8-r"},
		{"text/html; charset='iso-8859-2'", "iso-8859-2"},
		{"text/html; charset=latin1; foo=bar", "latin1"},
		{"charsetfoo; charset=latin1", "latin1"},
		{"text/html; charset='unterminated", ""},
		{"text/html; charset=", ""},
		{"text/html", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, charsetFromContent(tt.content), tt.content)
	}
}
