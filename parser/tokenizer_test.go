package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/html5parse/parser/inputstream"
)

func newTestTokenizer(t *testing.T, in string) *HTMLTokenizer {
	t.Helper()
	stream, err := inputstream.New([]byte(in), inputstream.Config{Encoding: "utf-8"})
	require.NoError(t, err)
	return NewHTMLTokenizer(stream)
}

// tokenizeAll drains the tokenizer, starting in state.
func tokenizeAll(p *HTMLTokenizer, state tokenizerState, foreign bool) []*Token {
	var tokens []*Token
	progress := &Progress{TokenizerState: &state, ForeignContent: foreign}
	for {
		token, ok := p.Token(progress)
		if !ok {
			return tokens
		}
		tokens = append(tokens, token)
		progress = &Progress{ForeignContent: foreign}
	}
}

type tokenizerAttributeAccuracyTestcase struct {
	inHTML string            // snippet of HTML to tokenize (should only be one element)
	attrs  map[string]string // expected attributes of the first token that is produced
}

var tokenizerAttributeAccuracyTests = []tokenizerAttributeAccuracyTestcase{
	{"<head></head>", map[string]string{}},
	{"<script src='123' onload='test'></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<a href='https://google.com' onclick='alert(1)'>Click this</a>", map[string]string{
		"href":    "https://google.com",
		"onclick": "alert(1)",
	}},
	{"<script src='123' src='456'></script>", map[string]string{
		"src": "123",
	}},
	{"<script src=123 onload=test></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script =src='123'onload='test' ></script>", map[string]string{
		"=src":   "123",
		"onload": "test",
	}},
	{"<script src test></script>", map[string]string{
		"src":  "",
		"test": "",
	}},
	{"<script 'asd></script>", map[string]string{
		"'asd": "",
	}},
	{"<script <asd></script>", map[string]string{
		"<asd": "",
	}},
	{"<script ABC=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<script abc='\u0000123'></script>", map[string]string{
		"abc": "�123",
	}},
	{"<script abc=></script>", map[string]string{
		"abc": "",
	}},
	{"<script\tabc=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<a title='&lt;&gt;' href=\"?a=1&amp;b=2\">", map[string]string{
		"title": "<>",
		"href":  "?a=1&b=2",
	}},
	{"<a href='?x&not=1&copy=2'>", map[string]string{
		"href": "?x&not=1&copy=2",
	}},
}

// TestTokenizerAttributeAccuracy makes sure that we collect the correct
// attribute names and values.
func TestTokenizerAttributeAccuracy(t *testing.T) {
	t.Parallel()
	for _, tt := range tokenizerAttributeAccuracyTests {
		tt := tt
		t.Run(tt.inHTML, func(t *testing.T) {
			t.Parallel()
			p := newTestTokenizer(t, tt.inHTML)
			var first *Token
			for _, token := range tokenizeAll(p, dataState, false) {
				if token.TokenType == StartTagToken {
					first = token
					break
				}
			}
			require.NotNil(t, first)

			got := make(map[string]string, len(first.Attributes))
			for _, attr := range first.Attributes {
				got[attr.Key] = attr.Value
			}
			assert.Equal(t, tt.attrs, got)
		})
	}
}

type stateMachineTestCase struct {
	inRune            rune
	startingState     tokenizerState
	shouldReconsume   bool
	nextExpectedState tokenizerState
}

// TestStateParsers checks single transitions of the state machine.
func TestStateParsers(t *testing.T) {
	t.Parallel()
	tests := []stateMachineTestCase{
		{'&', dataState, false, dataState},
		{'<', dataState, false, tagOpenState},
		{'a', dataState, false, dataState},
		{'<', rcDataState, false, rcDataLessThanSignState},
		{'<', rawTextState, false, rawTextLessThanSignState},
		{'<', scriptDataState, false, scriptDataLessThanSignState},
		{'<', plaintextState, false, plaintextState},
		{'!', tagOpenState, false, markupDeclarationOpenState},
		{'/', tagOpenState, false, endTagOpenState},
		{'a', tagOpenState, false, tagNameState},
		{'?', tagOpenState, true, bogusCommentState},
		{'1', tagOpenState, true, dataState},
		{'>', tagOpenState, false, dataState},
		{'a', endTagOpenState, false, tagNameState},
		{'>', endTagOpenState, false, dataState},
		{'1', endTagOpenState, true, bogusCommentState},
		{' ', tagNameState, false, beforeAttributeNameState},
		{'/', tagNameState, false, selfClosingStartTagState},
		{'>', tagNameState, false, dataState},
		{'a', tagNameState, false, tagNameState},
		{'/', rcDataLessThanSignState, false, rcDataEndTagOpenState},
		{'a', rcDataLessThanSignState, true, rcDataState},
		{'a', rcDataEndTagOpenState, false, rcDataEndTagNameState},
		{'1', rcDataEndTagOpenState, true, rcDataState},
		{' ', rcDataEndTagNameState, true, rcDataState},
		{'/', rawTextLessThanSignState, false, rawTextEndTagOpenState},
		{'!', scriptDataLessThanSignState, false, scriptDataEscapeStartState},
		{'/', scriptDataLessThanSignState, false, scriptDataEndTagOpenState},
		{'a', scriptDataLessThanSignState, true, scriptDataState},
		{'-', scriptDataEscapeStartState, false, scriptDataEscapeStartDashState},
		{'a', scriptDataEscapeStartState, true, scriptDataState},
		{'-', scriptDataEscapeStartDashState, false, scriptDataEscapedDashDashState},
		{'-', scriptDataEscapedState, false, scriptDataEscapedDashState},
		{'<', scriptDataEscapedState, false, scriptDataEscapedLessThanSignState},
		{'>', scriptDataEscapedDashDashState, false, scriptDataState},
		{'/', scriptDataEscapedLessThanSignState, false, scriptDataEscapedEndTagOpenState},
		{'s', scriptDataEscapedLessThanSignState, false, scriptDataDoubleEscapeStartState},
		{'<', scriptDataDoubleEscapedState, false, scriptDataDoubleEscapedLessThanSignState},
		{'>', scriptDataDoubleEscapedDashDashState, false, scriptDataState},
		{'/', scriptDataDoubleEscapedLessThanSignState, false, scriptDataDoubleEscapeEndState},
		{' ', beforeAttributeNameState, false, beforeAttributeNameState},
		{'>', beforeAttributeNameState, false, dataState},
		{'/', beforeAttributeNameState, false, selfClosingStartTagState},
		{'a', beforeAttributeNameState, false, attributeNameState},
		{'=', beforeAttributeNameState, false, attributeNameState},
		{'=', attributeNameState, false, beforeAttributeValueState},
		{' ', attributeNameState, false, afterAttributeNameState},
		{'a', attributeNameState, false, attributeNameState},
		{'=', afterAttributeNameState, false, beforeAttributeValueState},
		{'"', beforeAttributeValueState, false, attributeValueDoubleQuotedState},
		{'\'', beforeAttributeValueState, false, attributeValueSingleQuotedState},
		{'&', beforeAttributeValueState, true, attributeValueUnquotedState},
		{'a', beforeAttributeValueState, false, attributeValueUnquotedState},
		{'"', attributeValueDoubleQuotedState, false, afterAttributeValueQuotedState},
		{'\'', attributeValueSingleQuotedState, false, afterAttributeValueQuotedState},
		{' ', attributeValueUnquotedState, false, beforeAttributeNameState},
		{'a', afterAttributeValueQuotedState, true, beforeAttributeNameState},
		{'>', selfClosingStartTagState, false, dataState},
		{'a', selfClosingStartTagState, true, beforeAttributeNameState},
		{'-', commentStartState, false, commentStartDashState},
		{'>', commentStartState, false, dataState},
		{'-', commentStartDashState, false, commentEndState},
		{'-', commentState, false, commentEndDashState},
		{'-', commentEndDashState, false, commentEndState},
		{'>', commentEndState, false, dataState},
		{'!', commentEndState, false, commentEndBangState},
		{'-', commentEndState, false, commentEndState},
		{'-', commentEndBangState, false, commentEndDashState},
		{' ', doctypeState, false, beforeDoctypeNameState},
		{'a', doctypeState, true, beforeDoctypeNameState},
		{'a', beforeDoctypeNameState, false, doctypeNameState},
		{' ', doctypeNameState, false, afterDoctypeNameState},
		{'x', afterDoctypeNameState, true, bogusDoctypeState},
		{'"', beforeDoctypePublicIdentifierState, false, doctypePublicIdentifierDoubleQuotedState},
		{'\'', betweenDoctypePublicAndSystemIdentifiersState, false, doctypeSystemIdentifierSingleQuotedState},
		{'x', afterDoctypeSystemIdentifierState, false, bogusDoctypeState},
		{'x', bogusDoctypeState, false, bogusDoctypeState},
		{'>', bogusDoctypeState, false, dataState},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%s-%#U", tt.startingState, tt.inRune), func(t *testing.T) {
			t.Parallel()
			p := newTestTokenizer(t, "")
			reconsume, state := p.stateToParser(tt.startingState)(tt.inRune, false)
			assert.Equal(t, tt.nextExpectedState, state, "got %s", state)
			assert.Equal(t, tt.shouldReconsume, reconsume)
		})
	}
}

type parserStatefulnessTestCase struct {
	inHTML     string                                // the HTML to tokenize
	startState tokenizerState                        // the starting state of the tokenizer
	testFunc   func(*HTMLTokenizer) (string, string) // looks inside the tokenizer, returns got and expected
}

// TestParseStatefulness runs the state machine without the EOF handlers,
// which often reset the token builder, and checks what was built.
func TestParseStatefulness(t *testing.T) {
	t.Parallel()
	name := func(want string) func(*HTMLTokenizer) (string, string) {
		return func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.Name(), want }
	}
	data := func(want string) func(*HTMLTokenizer) (string, string) {
		return func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.data.String(), want }
	}
	tests := []parserStatefulnessTestCase{
		{"b", tagOpenState, name("b")},
		{"ba", tagOpenState, name("ba")},
		{"bAc", tagOpenState, name("bac")},
		{"bA\u0000c", tagOpenState, name("ba�c")},
		{"a", endTagOpenState, name("a")},
		{"P", endTagOpenState, name("p")},
		{"U", tagNameState, name("u")},
		{"html", beforeDoctypeNameState, name("html")},
		{"HTML", beforeDoctypeNameState, name("html")},
		{"1", endTagOpenState, data("1")},
		{"x-y", commentState, data("x-y")},
		{"x--y", commentState, data("x--y")},
		{"a--!b", commentState, data("a--!b")},
		{"a=\"b\"", beforeAttributeNameState, func(p *HTMLTokenizer) (string, string) {
			return p.tokenBuilder.attributeKey.String() + "=" + p.tokenBuilder.attributeValue.String(), "a=b"
		}},
		{"A=b&amp;c", beforeAttributeNameState, func(p *HTMLTokenizer) (string, string) {
			return p.tokenBuilder.attributeKey.String() + "=" + p.tokenBuilder.attributeValue.String(), "a=b&c"
		}},
		{"\"-//W3C\"", beforeDoctypePublicIdentifierState, func(p *HTMLTokenizer) (string, string) {
			return p.tokenBuilder.publicID.String(), "-//W3C"
		}},
		{"'about:legacy-compat'", beforeDoctypeSystemIdentifierState, func(p *HTMLTokenizer) (string, string) {
			return p.tokenBuilder.systemID.String(), "about:legacy-compat"
		}},
		{"scr", scriptDataEscapedLessThanSignState, func(p *HTMLTokenizer) (string, string) {
			return p.tokenBuilder.TempBuffer(), "scr"
		}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%s-%s", tt.startState, tt.inHTML), func(t *testing.T) {
			t.Parallel()
			p := newTestTokenizer(t, tt.inHTML)
			p.currentState = tt.startState
			for {
				r, eof := p.stream.Next()
				if eof {
					break
				}
				p.processRune(r, false)
			}
			got, want := tt.testFunc(p)
			assert.Equal(t, want, got)
		})
	}
}

func TestAppropriateEndTag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		in           string
		lastStartTag string
		want         []string
	}{
		{"matching", "x</title>", "title", []string{`Characters "x"`, "EndTag title"}},
		{"case insensitive", "x</TITLE>", "title", []string{`Characters "x"`, "EndTag title"}},
		{"other name", "x</b>", "title", []string{`Characters "x</b>"`}},
		{"no start tag", "x</title>", "", []string{`Characters "x</title>"`}},
		{"prefix", "</titles>", "title", []string{`Characters "</titles>"`}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := newTestTokenizer(t, tt.in)
			p.lastEmittedStartTagName = tt.lastStartTag
			tokens, _ := flattenTokens(tokenizeAll(p, rcDataState, false))
			got := make([]string, 0, len(tokens))
			for _, token := range tokens {
				got = append(got, token.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCDATAOnlyInForeignContent(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		in      string
		foreign bool
		want    []string
		errs    []string
	}{
		{"foreign", "<![CDATA[a<b>]]>", true, []string{`Characters "a<b>"`}, nil},
		{"foreign brackets", "<![CDATA[a]b]]]>", true, []string{`Characters "a]b]"`}, nil},
		{"foreign eof", "<![CDATA[abc", true, []string{`Characters "abc"`}, nil},
		{"foreign empty", "<![CDATA[]]>x", true, []string{`Characters "x"`}, nil},
		{"html", "<![CDATA[x]]>", false, []string{`Comment "[CDATA[x]]"`}, []string{"expected-dashes-or-doctype"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := newTestTokenizer(t, tt.in)
			tokens, errs := flattenTokens(tokenizeAll(p, dataState, tt.foreign))
			got := make([]string, 0, len(tokens))
			for _, token := range tokens {
				got = append(got, token.String())
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.errs, errs)
		})
	}
}

func TestCharacterTokensSplitOnWhitespace(t *testing.T) {
	t.Parallel()
	p := newTestTokenizer(t, "a \n b")
	tokens := tokenizeAll(p, dataState, false)
	require.Len(t, tokens, 1)
	assert.Equal(t, CharacterToken, tokens[0].TokenType)

	p = newTestTokenizer(t, " \n<p>")
	tokens = tokenizeAll(p, dataState, false)
	require.Len(t, tokens, 2)
	assert.Equal(t, SpaceCharactersToken, tokens[0].TokenType)
	assert.Equal(t, " \n", tokens[0].Data)
}

// flattenTokens merges adjacent character tokens and pulls the parse
// errors out, which is how html5lib test files describe output.
func flattenTokens(tokens []*Token) ([]*Token, []string) {
	var out []*Token
	var errs []string
	for _, token := range tokens {
		switch token.TokenType {
		case ParseErrorToken:
			errs = append(errs, token.Data)
			continue
		case CharacterToken, SpaceCharactersToken:
			if n := len(out); n > 0 && out[n-1].TokenType == CharacterToken {
				out[n-1] = &Token{TokenType: CharacterToken, Data: out[n-1].Data + token.Data}
				continue
			}
			out = append(out, &Token{TokenType: CharacterToken, Data: token.Data})
			continue
		}
		out = append(out, token)
	}
	return out, errs
}

type html5libTests struct {
	Tests []html5libTest `json:"tests"`
}

type html5libTest struct {
	Description  string          `json:"description"`
	Input        string          `json:"input"`
	Output       [][]interface{} `json:"output"`
	LastStartTag string          `json:"lastStartTag"`
	Errors       []struct {
		Code string `json:"code"`
	} `json:"errors"`
	InitialStates []string `json:"initialStates"`
}

func initialState(name string) (tokenizerState, error) {
	switch name {
	case "Data state":
		return dataState, nil
	case "PLAINTEXT state":
		return plaintextState, nil
	case "RCDATA state":
		return rcDataState, nil
	case "RAWTEXT state":
		return rawTextState, nil
	case "Script data state":
		return scriptDataState, nil
	case "CDATA section state":
		return cdataSectionState, nil
	default:
		return dataState, fmt.Errorf("invalid tokenizer state %s", name)
	}
}

// html5libOutput renders tokens the way the test files write them.
func html5libOutput(tokens []*Token) [][]interface{} {
	out := make([][]interface{}, 0, len(tokens))
	for _, token := range tokens {
		switch token.TokenType {
		case DocTypeToken:
			var name, public, system interface{}
			if token.TagName != "" {
				name = token.TagName
			}
			if token.HasPublicIdentifier {
				public = token.PublicIdentifier
			}
			if token.HasSystemIdentifier {
				system = token.SystemIdentifier
			}
			out = append(out, []interface{}{"DOCTYPE", name, public, system, !token.ForceQuirks})
		case StartTagToken:
			attrs := make(map[string]interface{}, len(token.Attributes))
			for _, attr := range token.Attributes {
				attrs[attr.Key] = attr.Value
			}
			v := []interface{}{"StartTag", token.TagName, attrs}
			if token.SelfClosing {
				v = append(v, true)
			}
			out = append(out, v)
		case EndTagToken:
			out = append(out, []interface{}{"EndTag", token.TagName})
		case CommentToken:
			out = append(out, []interface{}{"Comment", token.Data})
		case CharacterToken:
			out = append(out, []interface{}{"Character", token.Data})
		}
	}
	return out
}

func TestHTML5Lib(t *testing.T) {
	t.Parallel()
	files, err := filepath.Glob(filepath.Join("testdata", "tokenizer", "*.test"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		data, err := os.ReadFile(file)
		require.NoError(t, err)

		var tests html5libTests
		require.NoError(t, json.Unmarshal(data, &tests), file)

		for _, test := range tests.Tests {
			test := test
			t.Run(filepath.Base(file)+"/"+test.Description, func(t *testing.T) {
				t.Parallel()
				states := test.InitialStates
				if len(states) == 0 {
					states = []string{"Data state"}
				}
				wantErrs := make([]string, 0, len(test.Errors))
				for _, e := range test.Errors {
					wantErrs = append(wantErrs, e.Code)
				}
				want := test.Output
				if want == nil {
					want = [][]interface{}{}
				}

				for _, name := range states {
					state, err := initialState(name)
					require.NoError(t, err)

					p := newTestTokenizer(t, test.Input)
					p.lastEmittedStartTagName = test.LastStartTag
					tokens, errs := flattenTokens(tokenizeAll(p, state, false))
					if errs == nil {
						errs = []string{}
					}
					assert.Equal(t, want, html5libOutput(tokens), name)
					assert.Equal(t, wantErrs, errs, name)
				}
			})
		}
	}
}
