package parser

import (
	"strings"
)

const (
	spaceCharacters = "\t\n\f \r"
	asciiLetters    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	asciiDigits     = "0123456789"
	asciiHexDigits  = "0123456789abcdefABCDEF"
)

// CharacterStream is what the tokenizer reads characters from.
type CharacterStream interface {
	// Next returns the next character, or true as the second result at EOF.
	Next() (rune, bool)
	// Unget pushes back the character returned by the last Next. Only one
	// character of pushback is supported.
	Unget()
	// CharsUntil consumes a run of characters not in set, or only in set
	// when invert is true.
	CharsUntil(set string, invert bool) string
	Position() (line, col int)
	// PopErrors drains the character level errors found so far.
	PopErrors() []string
	ChangeEncoding(label string) error
}

type parserStateHandler func(r rune, eof bool) (bool, tokenizerState)

// HTMLTokenizer holds state for the various state of the tokenizer.
type HTMLTokenizer struct {
	done                    bool
	currentState            tokenizerState
	stream                  CharacterStream
	emittedTokens           []*Token
	tokenBuilder            *TokenBuilder
	lastEmittedStartTagName string
	// foreignContent is true while the adjusted current node of the tree
	// constructor is not an HTML element.
	foreignContent bool
}

// NewHTMLTokenizer creates a tokenizer reading from stream.
func NewHTMLTokenizer(stream CharacterStream) *HTMLTokenizer {
	return &HTMLTokenizer{
		stream:       stream,
		tokenBuilder: newTokenBuilder(),
	}
}

func isSpace(r rune) bool {
	return strings.ContainsRune(spaceCharacters, r)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 0x20
	}
	return r
}

func (p *HTMLTokenizer) parseError(code string, vars ...string) {
	var m map[string]string
	if len(vars) > 1 {
		m = make(map[string]string, len(vars)/2)
		for i := 0; i+1 < len(vars); i += 2 {
			m[vars[i]] = vars[i+1]
		}
	}
	p.emittedTokens = append(p.emittedTokens, parseErrorToken(code, m))
}

func (p *HTMLTokenizer) emit(tokens ...*Token) {
	for _, token := range tokens {
		switch token.TokenType {
		case StartTagToken:
			p.lastEmittedStartTagName = token.TagName
		case EndTagToken:
			if len(token.Attributes) > 0 {
				p.parseError("attributes-in-end-tag")
			}
			if token.SelfClosing {
				p.parseError("self-closing-flag-on-end-tag")
			}
		}
		p.emittedTokens = append(p.emittedTokens, token)
	}
}

func (p *HTMLTokenizer) emitChars(data string) {
	p.emit(&Token{TokenType: CharacterToken, Data: data})
}

func (p *HTMLTokenizer) emitCurrentTag() tokenizerState {
	p.emit(p.tokenBuilder.TagToken())
	return dataState
}

func (p *HTMLTokenizer) emitComment() tokenizerState {
	p.emit(p.tokenBuilder.CommentToken())
	return dataState
}

func (p *HTMLTokenizer) emitDoctype() tokenizerState {
	p.emit(p.tokenBuilder.DocTypeToken())
	return dataState
}

func (p *HTMLTokenizer) isApprEndTagToken() bool {
	return p.lastEmittedStartTagName != "" &&
		strings.EqualFold(p.lastEmittedStartTagName, p.tokenBuilder.TempBuffer())
}

// startAppropriateEndTag turns the temporary buffer into the current end tag.
func (p *HTMLTokenizer) startAppropriateEndTag() {
	p.tokenBuilder.NewTag(endTag)
	p.tokenBuilder.WriteNameString(strings.ToLower(p.tokenBuilder.TempBuffer()))
}

// Done reports whether the input is exhausted and every token was taken.
func (p *HTMLTokenizer) Done() bool {
	return p.done && len(p.emittedTokens) == 0
}

func (p *HTMLTokenizer) takeLastEmittedToken() *Token {
	if len(p.emittedTokens) > 0 {
		ret := p.emittedTokens[0]
		p.emittedTokens = p.emittedTokens[1:]
		return ret
	}
	return nil
}

// Token returns the next token, or false once the input is exhausted.
// progress carries the tree constructor's feedback from the previous token.
func (p *HTMLTokenizer) Token(progress *Progress) (*Token, bool) {
	if progress != nil {
		if progress.TokenizerState != nil {
			p.currentState = *progress.TokenizerState
		}
		p.foreignContent = progress.ForeignContent
	}

	// some states emit more than 1 token at a time and sometimes no tokens.
	// loop until at least 1 token is emitted and then take them.
	for {
		if token := p.takeLastEmittedToken(); token != nil {
			return token, true
		}
		if p.done {
			return nil, false
		}
		r, eof := p.stream.Next()
		p.processRune(r, eof)
		p.relayStreamErrors()
	}
}

func (p *HTMLTokenizer) processRune(r rune, eof bool) {
	reconsume := true
	for reconsume {
		reconsume, p.currentState = p.stateToParser(p.currentState)(r, eof)
	}
}

// relayStreamErrors puts character level errors ahead of the tokens the
// step produced.
func (p *HTMLTokenizer) relayStreamErrors() {
	errs := p.stream.PopErrors()
	if len(errs) == 0 {
		return
	}
	tokens := make([]*Token, 0, len(errs)+len(p.emittedTokens))
	for _, code := range errs {
		tokens = append(tokens, parseErrorToken(code, nil))
	}
	p.emittedTokens = append(tokens, p.emittedTokens...)
}

func (p *HTMLTokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.done = true
		return false, dataState
	}
	switch r {
	case '&':
		p.consumeEntity(0, false)
	case '<':
		return false, tagOpenState
	case '\u0000':
		p.parseError("invalid-codepoint")
		p.emitChars("\u0000")
	default:
		if isSpace(r) {
			p.emit(&Token{TokenType: SpaceCharactersToken, Data: string(r) + p.stream.CharsUntil(spaceCharacters, true)})
		} else {
			p.emitChars(string(r) + p.stream.CharsUntil("&<\u0000", false))
		}
	}
	return false, dataState
}

func (p *HTMLTokenizer) rcDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.done = true
		return false, rcDataState
	}
	switch r {
	case '&':
		p.consumeEntity(0, false)
	case '<':
		return false, rcDataLessThanSignState
	case '\u0000':
		p.parseError("invalid-codepoint")
		p.emitChars("�")
	default:
		if isSpace(r) {
			p.emit(&Token{TokenType: SpaceCharactersToken, Data: string(r) + p.stream.CharsUntil(spaceCharacters, true)})
		} else {
			p.emitChars(string(r) + p.stream.CharsUntil("&<\u0000", false))
		}
	}
	return false, rcDataState
}

// rawRun handles the shared body of the RAWTEXT, script data and plaintext
// states: NUL replacement and runs up to the next stop character.
func (p *HTMLTokenizer) rawRun(r rune, stop string) {
	if r == '\u0000' {
		p.parseError("invalid-codepoint")
		p.emitChars("�")
		return
	}
	p.emitChars(string(r) + p.stream.CharsUntil(stop, false))
}

func (p *HTMLTokenizer) rawTextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.done = true
		return false, rawTextState
	}
	if r == '<' {
		return false, rawTextLessThanSignState
	}
	p.rawRun(r, "<\u0000")
	return false, rawTextState
}

func (p *HTMLTokenizer) scriptDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.done = true
		return false, scriptDataState
	}
	if r == '<' {
		return false, scriptDataLessThanSignState
	}
	p.rawRun(r, "<\u0000")
	return false, scriptDataState
}

func (p *HTMLTokenizer) plaintextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.done = true
		return false, plaintextState
	}
	p.rawRun(r, "\u0000")
	return false, plaintextState
}

func (p *HTMLTokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("expected-tag-name")
		p.emitChars("<")
		return true, dataState
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, endTagOpenState
	case isASCIILetter(r):
		p.tokenBuilder.NewTag(startTag)
		p.tokenBuilder.WriteName(toLowerASCII(r))
		return false, tagNameState
	case r == '>':
		p.parseError("expected-tag-name-but-got-right-bracket")
		p.emitChars("<>")
		return false, dataState
	case r == '?':
		p.parseError("expected-tag-name-but-got-question-mark")
		p.tokenBuilder.NewToken()
		return true, bogusCommentState
	default:
		p.parseError("expected-tag-name")
		p.emitChars("<")
		return true, dataState
	}
}

func (p *HTMLTokenizer) endTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("expected-closing-tag-but-got-eof")
		p.emitChars("</")
		return true, dataState
	case isASCIILetter(r):
		p.tokenBuilder.NewTag(endTag)
		p.tokenBuilder.WriteName(toLowerASCII(r))
		return false, tagNameState
	case r == '>':
		p.parseError("expected-closing-tag-but-got-right-bracket")
		return false, dataState
	default:
		p.parseError("expected-closing-tag-but-got-char", "data", string(r))
		p.tokenBuilder.NewToken()
		return true, bogusCommentState
	}
}

func (p *HTMLTokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-tag-name")
		return true, dataState
	case isSpace(r):
		return false, beforeAttributeNameState
	case r == '>':
		return false, p.emitCurrentTag()
	case r == '/':
		return false, selfClosingStartTagState
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.WriteName('�')
	default:
		p.tokenBuilder.WriteName(toLowerASCII(r))
	}
	return false, tagNameState
}

// textLessThanSign is shared by the RCDATA and RAWTEXT less-than sign states.
func (p *HTMLTokenizer) textLessThanSign(r rune, text, endTagOpen tokenizerState) (bool, tokenizerState) {
	if r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		return false, endTagOpen
	}
	p.emitChars("<")
	return true, text
}

// textEndTagOpen is shared by the RCDATA, RAWTEXT, script data and escaped
// script data end tag open states.
func (p *HTMLTokenizer) textEndTagOpen(r rune, eof bool, text, endTagName tokenizerState) (bool, tokenizerState) {
	if !eof && isASCIILetter(r) {
		p.tokenBuilder.WriteTempBuffer(r)
		return false, endTagName
	}
	p.emitChars("</")
	return true, text
}

// textEndTagName implements the appropriate end tag check for every text
// region.
func (p *HTMLTokenizer) textEndTagName(r rune, eof bool, text, self tokenizerState) (bool, tokenizerState) {
	appropriate := p.isApprEndTagToken()
	switch {
	case !eof && isSpace(r) && appropriate:
		p.startAppropriateEndTag()
		return false, beforeAttributeNameState
	case !eof && r == '/' && appropriate:
		p.startAppropriateEndTag()
		return false, selfClosingStartTagState
	case !eof && r == '>' && appropriate:
		p.startAppropriateEndTag()
		return false, p.emitCurrentTag()
	case !eof && isASCIILetter(r):
		p.tokenBuilder.WriteTempBuffer(r)
		return false, self
	default:
		p.emitChars("</" + p.tokenBuilder.TempBuffer())
		return true, text
	}
}

func (p *HTMLTokenizer) rcDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textLessThanSign(r, rcDataState, rcDataEndTagOpenState)
}

func (p *HTMLTokenizer) rcDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagOpen(r, eof, rcDataState, rcDataEndTagNameState)
}

func (p *HTMLTokenizer) rcDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagName(r, eof, rcDataState, rcDataEndTagNameState)
}

func (p *HTMLTokenizer) rawTextLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textLessThanSign(r, rawTextState, rawTextEndTagOpenState)
}

func (p *HTMLTokenizer) rawTextEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagOpen(r, eof, rawTextState, rawTextEndTagNameState)
}

func (p *HTMLTokenizer) rawTextEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagName(r, eof, rawTextState, rawTextEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case !eof && r == '/':
		p.tokenBuilder.ResetTempBuffer()
		return false, scriptDataEndTagOpenState
	case !eof && r == '!':
		p.emitChars("<!")
		return false, scriptDataEscapeStartState
	default:
		p.emitChars("<")
		return true, scriptDataState
	}
}

func (p *HTMLTokenizer) scriptDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagOpen(r, eof, scriptDataState, scriptDataEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagName(r, eof, scriptDataState, scriptDataEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		p.emitChars("-")
		return false, scriptDataEscapeStartDashState
	}
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEscapeStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		p.emitChars("-")
		return false, scriptDataEscapedDashDashState
	}
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return true, dataState
	case r == '-':
		p.emitChars("-")
		return false, scriptDataEscapedDashState
	case r == '<':
		return false, scriptDataEscapedLessThanSignState
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.emitChars("�")
	default:
		p.emitChars(string(r) + p.stream.CharsUntil("<-\u0000", false))
	}
	return false, scriptDataEscapedState
}

func (p *HTMLTokenizer) scriptDataEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return true, dataState
	case r == '-':
		p.emitChars("-")
		return false, scriptDataEscapedDashDashState
	case r == '<':
		return false, scriptDataEscapedLessThanSignState
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.emitChars("�")
	default:
		p.emitChars(string(r))
	}
	return false, scriptDataEscapedState
}

func (p *HTMLTokenizer) scriptDataEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return true, dataState
	case r == '-':
		p.emitChars("-")
		return false, scriptDataEscapedDashDashState
	case r == '<':
		return false, scriptDataEscapedLessThanSignState
	case r == '>':
		p.emitChars(">")
		return false, scriptDataState
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.emitChars("�")
	default:
		p.emitChars(string(r))
	}
	return false, scriptDataEscapedState
}

func (p *HTMLTokenizer) scriptDataEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case !eof && r == '/':
		p.tokenBuilder.ResetTempBuffer()
		return false, scriptDataEscapedEndTagOpenState
	case !eof && isASCIILetter(r):
		p.emitChars("<" + string(r))
		p.tokenBuilder.ResetTempBuffer()
		p.tokenBuilder.WriteTempBuffer(r)
		return false, scriptDataDoubleEscapeStartState
	default:
		p.emitChars("<")
		return true, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagOpen(r, eof, scriptDataEscapedState, scriptDataEscapedEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagName(r, eof, scriptDataEscapedState, scriptDataEscapedEndTagNameState)
}

// doubleEscapeBoundary is shared by the double escape start and end states:
// it decides on "script" once the tag name is complete.
func (p *HTMLTokenizer) doubleEscapeBoundary(r rune, eof bool, self, match, noMatch tokenizerState) (bool, tokenizerState) {
	switch {
	case !eof && (isSpace(r) || r == '/' || r == '>'):
		p.emitChars(string(r))
		if strings.ToLower(p.tokenBuilder.TempBuffer()) == "script" {
			return false, match
		}
		return false, noMatch
	case !eof && isASCIILetter(r):
		p.emitChars(string(r))
		p.tokenBuilder.WriteTempBuffer(r)
		return false, self
	default:
		return true, noMatch
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doubleEscapeBoundary(r, eof, scriptDataDoubleEscapeStartState, scriptDataDoubleEscapedState, scriptDataEscapedState)
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-script-in-script")
		return true, dataState
	case r == '-':
		p.emitChars("-")
		return false, scriptDataDoubleEscapedDashState
	case r == '<':
		p.emitChars("<")
		return false, scriptDataDoubleEscapedLessThanSignState
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.emitChars("�")
	default:
		p.emitChars(string(r))
	}
	return false, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-script-in-script")
		return true, dataState
	case r == '-':
		p.emitChars("-")
		return false, scriptDataDoubleEscapedDashDashState
	case r == '<':
		p.emitChars("<")
		return false, scriptDataDoubleEscapedLessThanSignState
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.emitChars("�")
	default:
		p.emitChars(string(r))
	}
	return false, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-script-in-script")
		return true, dataState
	case r == '-':
		p.emitChars("-")
		return false, scriptDataDoubleEscapedDashDashState
	case r == '<':
		p.emitChars("<")
		return false, scriptDataDoubleEscapedLessThanSignState
	case r == '>':
		p.emitChars(">")
		return false, scriptDataState
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.emitChars("�")
	default:
		p.emitChars(string(r))
	}
	return false, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		p.emitChars("/")
		p.tokenBuilder.ResetTempBuffer()
		return false, scriptDataDoubleEscapeEndState
	}
	return true, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doubleEscapeBoundary(r, eof, scriptDataDoubleEscapeEndState, scriptDataEscapedState, scriptDataDoubleEscapedState)
}

func (p *HTMLTokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("expected-attribute-name-but-got-eof")
		return true, dataState
	case isSpace(r):
		p.stream.CharsUntil(spaceCharacters, true)
		return false, beforeAttributeNameState
	case r == '>':
		return false, p.emitCurrentTag()
	case r == '/':
		return false, selfClosingStartTagState
	case r == '\'', r == '"', r == '=', r == '<':
		p.parseError("invalid-character-in-attribute-name")
		p.tokenBuilder.StartAttribute()
		p.tokenBuilder.WriteAttributeName(r)
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.StartAttribute()
		p.tokenBuilder.WriteAttributeName('�')
	default:
		p.tokenBuilder.StartAttribute()
		p.tokenBuilder.WriteAttributeName(toLowerASCII(r))
	}
	return false, attributeNameState
}

func (p *HTMLTokenizer) attributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	var next tokenizerState
	switch {
	case eof:
		p.parseError("eof-in-attribute-name")
		return true, dataState
	case r == '=':
		next = beforeAttributeValueState
	case isASCIILetter(r):
		p.tokenBuilder.WriteAttributeName(toLowerASCII(r))
		p.tokenBuilder.WriteAttributeNameString(strings.ToLower(p.stream.CharsUntil(asciiLetters, true)))
		return false, attributeNameState
	case r == '>':
		next = dataState
	case isSpace(r):
		next = afterAttributeNameState
	case r == '/':
		next = selfClosingStartTagState
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.WriteAttributeName('�')
		return false, attributeNameState
	case r == '\'', r == '"', r == '<':
		p.parseError("invalid-character-in-attribute-name")
		p.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	default:
		p.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	}

	// leaving the attribute name: the first occurrence of a name wins.
	if p.tokenBuilder.RemoveDuplicateAttributeName() {
		p.parseError("duplicate-attribute")
	}
	if r == '>' {
		return false, p.emitCurrentTag()
	}
	return false, next
}

func (p *HTMLTokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("expected-end-of-tag-but-got-eof")
		return true, dataState
	case isSpace(r):
		p.stream.CharsUntil(spaceCharacters, true)
		return false, afterAttributeNameState
	case r == '=':
		return false, beforeAttributeValueState
	case r == '>':
		return false, p.emitCurrentTag()
	case r == '/':
		return false, selfClosingStartTagState
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.StartAttribute()
		p.tokenBuilder.WriteAttributeName('�')
	case r == '\'', r == '"', r == '<':
		p.parseError("invalid-character-after-attribute-name")
		p.tokenBuilder.StartAttribute()
		p.tokenBuilder.WriteAttributeName(r)
	default:
		p.tokenBuilder.StartAttribute()
		p.tokenBuilder.WriteAttributeName(toLowerASCII(r))
	}
	return false, attributeNameState
}

func (p *HTMLTokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("expected-attribute-value-but-got-eof")
		return true, dataState
	case isSpace(r):
		p.stream.CharsUntil(spaceCharacters, true)
		return false, beforeAttributeValueState
	case r == '"':
		return false, attributeValueDoubleQuotedState
	case r == '&':
		return true, attributeValueUnquotedState
	case r == '\'':
		return false, attributeValueSingleQuotedState
	case r == '>':
		p.parseError("expected-attribute-value-but-got-right-bracket")
		return false, p.emitCurrentTag()
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.WriteAttributeValue('�')
	case r == '=', r == '<', r == '`':
		p.parseError("equals-in-unquoted-attribute-value")
		p.tokenBuilder.WriteAttributeValue(r)
	default:
		p.tokenBuilder.WriteAttributeValue(r)
	}
	return false, attributeValueUnquotedState
}

func (p *HTMLTokenizer) quotedAttributeValue(r rune, eof bool, quote rune, self tokenizerState, eofCode string) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(eofCode)
		return true, dataState
	case r == quote:
		return false, afterAttributeValueQuotedState
	case r == '&':
		p.consumeEntity(quote, true)
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.WriteAttributeValue('�')
	default:
		p.tokenBuilder.WriteAttributeValue(r)
		p.tokenBuilder.WriteAttributeValueString(p.stream.CharsUntil(string(quote)+"&\u0000", false))
	}
	return false, self
}

func (p *HTMLTokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.quotedAttributeValue(r, eof, '"', attributeValueDoubleQuotedState, "eof-in-attribute-value-double-quote")
}

func (p *HTMLTokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.quotedAttributeValue(r, eof, '\'', attributeValueSingleQuotedState, "eof-in-attribute-value-single-quote")
}

func (p *HTMLTokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-attribute-value-no-quotes")
		return true, dataState
	case isSpace(r):
		return false, beforeAttributeNameState
	case r == '&':
		p.consumeEntity('>', true)
	case r == '>':
		return false, p.emitCurrentTag()
	case r == '"', r == '\'', r == '=', r == '<', r == '`':
		p.parseError("unexpected-character-in-unquoted-attribute-value")
		p.tokenBuilder.WriteAttributeValue(r)
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.WriteAttributeValue('�')
	default:
		p.tokenBuilder.WriteAttributeValue(r)
		p.tokenBuilder.WriteAttributeValueString(p.stream.CharsUntil("&>\"'=<`\u0000"+spaceCharacters, false))
	}
	return false, attributeValueUnquotedState
}

func (p *HTMLTokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("unexpected-EOF-after-attribute-value")
		return true, dataState
	case isSpace(r):
		return false, beforeAttributeNameState
	case r == '>':
		return false, p.emitCurrentTag()
	case r == '/':
		return false, selfClosingStartTagState
	default:
		p.parseError("unexpected-character-after-attribute-value")
		return true, beforeAttributeNameState
	}
}

func (p *HTMLTokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("unexpected-EOF-after-solidus-in-tag")
		return true, dataState
	case r == '>':
		p.tokenBuilder.EnableSelfClosing()
		return false, p.emitCurrentTag()
	default:
		p.parseError("unexpected-character-after-solidus-in-tag")
		return true, beforeAttributeNameState
	}
}

// bogusCommentStateParser collects everything up to the next '>' into a
// comment. The comment data may already be seeded by the markup
// declaration open state.
func (p *HTMLTokenizer) bogusCommentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r != '>' {
		data := string(r) + p.stream.CharsUntil(">", false)
		p.tokenBuilder.WriteDataString(strings.ReplaceAll(data, "\u0000", "�"))
		// the '>' or EOF that ended the run.
		p.stream.Next()
	}
	p.emitComment()
	if eof {
		return true, dataState
	}
	return false, dataState
}

func (p *HTMLTokenizer) markupDeclarationOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	var consumed []rune
	if !eof {
		consumed = append(consumed, r)
	}
	lastEOF := eof
	read := func() rune {
		c, ceof := p.stream.Next()
		lastEOF = ceof
		if !ceof {
			consumed = append(consumed, c)
		}
		return c
	}
	matches := func(word string) bool {
		for _, want := range word[1:] {
			c := read()
			if lastEOF || toLowerASCII(c) != want {
				return false
			}
		}
		return true
	}

	switch {
	case eof:
	case r == '-':
		if c := read(); !lastEOF && c == '-' {
			p.tokenBuilder.NewToken()
			return false, commentStartState
		}
	case r == 'd' || r == 'D':
		if matches("doctype") {
			p.tokenBuilder.NewToken()
			return false, doctypeState
		}
	case r == '[' && p.foreignContent:
		matched := true
		for _, want := range "CDATA[" {
			if c := read(); lastEOF || c != want {
				matched = false
				break
			}
		}
		if matched {
			return false, cdataSectionState
		}
	}

	p.parseError("expected-dashes-or-doctype")
	p.tokenBuilder.NewToken()
	if len(consumed) == 1 && !lastEOF {
		return true, bogusCommentState
	}
	// everything but the last character seeds the comment; the last one
	// is pushed back and read again by the bogus comment state.
	seed := consumed
	if !lastEOF {
		seed = consumed[:len(consumed)-1]
	}
	p.tokenBuilder.WriteDataString(strings.ReplaceAll(string(seed), "\u0000", "�"))
	p.stream.Unget()
	return false, bogusCommentState
}

func (p *HTMLTokenizer) commentStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-comment")
		return true, p.emitComment()
	case r == '-':
		return false, commentStartDashState
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.WriteData('�')
	case r == '>':
		p.parseError("incorrect-comment")
		return false, p.emitComment()
	default:
		p.tokenBuilder.WriteData(r)
	}
	return false, commentState
}

func (p *HTMLTokenizer) commentStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-comment")
		return true, p.emitComment()
	case r == '-':
		return false, commentEndState
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.WriteDataString("-�")
	case r == '>':
		p.parseError("incorrect-comment")
		return false, p.emitComment()
	default:
		p.tokenBuilder.WriteData('-')
		p.tokenBuilder.WriteData(r)
	}
	return false, commentState
}

func (p *HTMLTokenizer) commentStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-comment")
		return true, p.emitComment()
	case r == '-':
		return false, commentEndDashState
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.WriteData('�')
	default:
		p.tokenBuilder.WriteData(r)
		p.tokenBuilder.WriteDataString(p.stream.CharsUntil("-\u0000", false))
	}
	return false, commentState
}

func (p *HTMLTokenizer) commentEndDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-comment-end-dash")
		return true, p.emitComment()
	case r == '-':
		return false, commentEndState
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.WriteDataString("-�")
	default:
		p.tokenBuilder.WriteData('-')
		p.tokenBuilder.WriteData(r)
	}
	return false, commentState
}

func (p *HTMLTokenizer) commentEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-comment-double-dash")
		return true, p.emitComment()
	case r == '>':
		return false, p.emitComment()
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.WriteDataString("--�")
	case r == '!':
		p.parseError("unexpected-bang-after-double-dash-in-comment")
		return false, commentEndBangState
	case r == '-':
		p.parseError("unexpected-dash-after-double-dash-in-comment")
		p.tokenBuilder.WriteData('-')
		return false, commentEndState
	default:
		p.parseError("unexpected-char-in-comment")
		p.tokenBuilder.WriteDataString("--")
		p.tokenBuilder.WriteData(r)
	}
	return false, commentState
}

func (p *HTMLTokenizer) commentEndBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-comment-end-bang-state")
		return true, p.emitComment()
	case r == '>':
		return false, p.emitComment()
	case r == '-':
		p.tokenBuilder.WriteDataString("--!")
		return false, commentEndDashState
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.WriteDataString("--!�")
	default:
		p.tokenBuilder.WriteDataString("--!")
		p.tokenBuilder.WriteData(r)
	}
	return false, commentState
}

func (p *HTMLTokenizer) doctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("expected-doctype-name-but-got-eof")
		p.tokenBuilder.EnableForceQuirks()
		return true, p.emitDoctype()
	case isSpace(r):
		return false, beforeDoctypeNameState
	default:
		p.parseError("need-space-after-doctype")
		return true, beforeDoctypeNameState
	}
}

func (p *HTMLTokenizer) beforeDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("expected-doctype-name-but-got-eof")
		p.tokenBuilder.EnableForceQuirks()
		return true, p.emitDoctype()
	case isSpace(r):
		return false, beforeDoctypeNameState
	case r == '>':
		p.parseError("expected-doctype-name-but-got-right-bracket")
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitDoctype()
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.WriteName('�')
	default:
		p.tokenBuilder.WriteName(toLowerASCII(r))
	}
	return false, doctypeNameState
}

func (p *HTMLTokenizer) doctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-doctype-name")
		p.tokenBuilder.EnableForceQuirks()
		return true, p.emitDoctype()
	case isSpace(r):
		return false, afterDoctypeNameState
	case r == '>':
		return false, p.emitDoctype()
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		p.tokenBuilder.WriteName('�')
	default:
		p.tokenBuilder.WriteName(toLowerASCII(r))
	}
	return false, doctypeNameState
}

func (p *HTMLTokenizer) afterDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return true, p.emitDoctype()
	case isSpace(r):
		return false, afterDoctypeNameState
	case r == '>':
		return false, p.emitDoctype()
	}

	var keyword string
	var next tokenizerState
	switch toLowerASCII(r) {
	case 'p':
		keyword, next = "ublic", afterDoctypePublicKeywordState
	case 's':
		keyword, next = "ystem", afterDoctypeSystemKeywordState
	}
	if keyword != "" {
		matched := true
		for _, want := range keyword {
			c, ceof := p.stream.Next()
			if ceof || toLowerASCII(c) != want {
				// the letters read so far are garbage in a bogus doctype;
				// only the last one can be '>' or EOF.
				p.stream.Unget()
				matched = false
				break
			}
		}
		if matched {
			return false, next
		}
		p.parseError("expected-space-or-right-bracket-in-doctype", "data", string(r))
		p.tokenBuilder.EnableForceQuirks()
		return false, bogusDoctypeState
	}

	p.parseError("expected-space-or-right-bracket-in-doctype", "data", string(r))
	p.tokenBuilder.EnableForceQuirks()
	return true, bogusDoctypeState
}

func (p *HTMLTokenizer) afterDoctypeKeyword(r rune, eof bool, before tokenizerState) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return true, p.emitDoctype()
	case isSpace(r):
		return false, before
	case r == '\'', r == '"':
		p.parseError("unexpected-char-in-doctype")
		return true, before
	default:
		return true, before
	}
}

func (p *HTMLTokenizer) afterDoctypePublicKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.afterDoctypeKeyword(r, eof, beforeDoctypePublicIdentifierState)
}

func (p *HTMLTokenizer) afterDoctypeSystemKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.afterDoctypeKeyword(r, eof, beforeDoctypeSystemIdentifierState)
}

func (p *HTMLTokenizer) beforeDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return true, p.emitDoctype()
	case isSpace(r):
		return false, beforeDoctypePublicIdentifierState
	case r == '"':
		p.tokenBuilder.StartPublicIdentifier()
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		p.tokenBuilder.StartPublicIdentifier()
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		p.parseError("unexpected-end-of-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitDoctype()
	default:
		p.parseError("unexpected-char-in-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return false, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) beforeDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return true, p.emitDoctype()
	case isSpace(r):
		return false, beforeDoctypeSystemIdentifierState
	case r == '"':
		p.tokenBuilder.StartSystemIdentifier()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		p.tokenBuilder.StartSystemIdentifier()
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		p.parseError("unexpected-char-in-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitDoctype()
	default:
		p.parseError("unexpected-char-in-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return false, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) doctypeIdentifier(r rune, eof bool, quote rune, self, after tokenizerState, write func(rune)) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return true, p.emitDoctype()
	case r == quote:
		return false, after
	case r == '\u0000':
		p.parseError("invalid-codepoint")
		write('�')
	case r == '>':
		p.parseError("unexpected-end-of-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitDoctype()
	default:
		write(r)
	}
	return false, self
}

func (p *HTMLTokenizer) doctypePublicIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifier(r, eof, '"', doctypePublicIdentifierDoubleQuotedState, afterDoctypePublicIdentifierState, p.tokenBuilder.WritePublicIdentifier)
}

func (p *HTMLTokenizer) doctypePublicIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifier(r, eof, '\'', doctypePublicIdentifierSingleQuotedState, afterDoctypePublicIdentifierState, p.tokenBuilder.WritePublicIdentifier)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifier(r, eof, '"', doctypeSystemIdentifierDoubleQuotedState, afterDoctypeSystemIdentifierState, p.tokenBuilder.WriteSystemIdentifier)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifier(r, eof, '\'', doctypeSystemIdentifierSingleQuotedState, afterDoctypeSystemIdentifierState, p.tokenBuilder.WriteSystemIdentifier)
}

func (p *HTMLTokenizer) afterDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return true, p.emitDoctype()
	case isSpace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		return false, p.emitDoctype()
	case r == '"':
		p.parseError("unexpected-char-in-doctype")
		p.tokenBuilder.StartSystemIdentifier()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		p.parseError("unexpected-char-in-doctype")
		p.tokenBuilder.StartSystemIdentifier()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		p.parseError("unexpected-char-in-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return false, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) betweenDoctypePublicAndSystemIdentifiersStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return true, p.emitDoctype()
	case isSpace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		return false, p.emitDoctype()
	case r == '"':
		p.tokenBuilder.StartSystemIdentifier()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		p.tokenBuilder.StartSystemIdentifier()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		p.parseError("unexpected-char-in-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return false, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) afterDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError("eof-in-doctype")
		p.tokenBuilder.EnableForceQuirks()
		return true, p.emitDoctype()
	case isSpace(r):
		return false, afterDoctypeSystemIdentifierState
	case r == '>':
		return false, p.emitDoctype()
	default:
		p.parseError("unexpected-char-in-doctype")
		return false, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) bogusDoctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return true, p.emitDoctype()
	case r == '>':
		return false, p.emitDoctype()
	}
	return false, bogusDoctypeState
}

// cdataSectionStateParser consumes everything up to "]]>" in one step.
func (p *HTMLTokenizer) cdataSectionStateParser(r rune, eof bool) (bool, tokenizerState) {
	var data strings.Builder
	if !eof {
		p.stream.Unget()
		for {
			data.WriteString(p.stream.CharsUntil("]", false))
			run := p.stream.CharsUntil(">", false)
			if _, ceof := p.stream.Next(); ceof {
				data.WriteString(run)
				break
			}
			if strings.HasSuffix(run, "]]") {
				data.WriteString(strings.TrimSuffix(run, "]]"))
				break
			}
			data.WriteString(run)
			data.WriteRune('>')
		}
	}

	text := data.String()
	for i := strings.Count(text, "\u0000"); i > 0; i-- {
		p.parseError("invalid-codepoint")
	}
	if text != "" {
		p.emitChars(strings.ReplaceAll(text, "\u0000", "�"))
	}
	if eof {
		return true, dataState
	}
	return false, dataState
}
