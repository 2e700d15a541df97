package parser

import (
	"strings"
)

// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
type initialPhase struct {
	basePhase
}

func newInitialPhase(c *HTMLTreeConstructor) *initialPhase {
	return &initialPhase{basePhase{c: c}}
}

func (p *initialPhase) anythingElse() {
	p.c.quirksMode = quirks
	p.c.switchMode(beforeHTML)
}

func (p *initialPhase) processEOF() bool {
	p.c.parseError("expected-doctype-but-got-eof")
	p.anythingElse()
	return true
}

func (p *initialPhase) processComment(t *Token) *Token {
	p.c.insertComment(t, p.c.document)
	return nil
}

func (p *initialPhase) processDoctype(t *Token) *Token {
	if !isConformingDoctype(t) {
		p.c.parseError("unknown-doctype")
	}
	p.c.insertDoctype(t)
	p.c.quirksMode = doctypeQuirksMode(t)
	p.c.switchMode(beforeHTML)
	return nil
}

func (p *initialPhase) processSpaceCharacters(t *Token) *Token {
	return nil
}

func (p *initialPhase) processCharacters(t *Token) *Token {
	p.c.parseError("expected-doctype-but-got-chars")
	p.anythingElse()
	return t
}

func (p *initialPhase) processStartTag(t *Token) *Token {
	p.c.parseError("expected-doctype-but-got-start-tag", "name", t.TagName)
	p.anythingElse()
	return t
}

func (p *initialPhase) processEndTag(t *Token) *Token {
	p.c.parseError("expected-doctype-but-got-end-tag", "name", t.TagName)
	p.anythingElse()
	return t
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-html-insertion-mode
type beforeHTMLPhase struct {
	basePhase
}

func newBeforeHTMLPhase(c *HTMLTreeConstructor) *beforeHTMLPhase {
	return &beforeHTMLPhase{basePhase{c: c}}
}

func (p *beforeHTMLPhase) insertHTMLElement() {
	p.c.insertRoot(impliedTag(StartTagToken, "html"))
	p.c.switchMode(beforeHead)
}

func (p *beforeHTMLPhase) processEOF() bool {
	p.insertHTMLElement()
	return true
}

func (p *beforeHTMLPhase) processComment(t *Token) *Token {
	p.c.insertComment(t, p.c.document)
	return nil
}

func (p *beforeHTMLPhase) processSpaceCharacters(t *Token) *Token {
	return nil
}

func (p *beforeHTMLPhase) processCharacters(t *Token) *Token {
	p.insertHTMLElement()
	return t
}

func (p *beforeHTMLPhase) processStartTag(t *Token) *Token {
	if t.TagName == "html" {
		p.c.firstStartTag = true
	}
	p.insertHTMLElement()
	return t
}

func (p *beforeHTMLPhase) processEndTag(t *Token) *Token {
	switch t.TagName {
	case "head", "body", "html", "br":
		p.insertHTMLElement()
		return t
	}
	p.c.parseError("unexpected-end-tag-before-html", "name", t.TagName)
	return nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-head-insertion-mode
type beforeHeadPhase struct {
	basePhase
}

func newBeforeHeadPhase(c *HTMLTreeConstructor) *beforeHeadPhase {
	p := &beforeHeadPhase{basePhase{c: c}}
	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(c.startTagHTML, "html")
	p.startTags.add(p.startTagHead, "head")

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagImplyHead, "head", "body", "html", "br")
	return p
}

func (p *beforeHeadPhase) processEOF() bool {
	p.startTagHead(impliedTag(StartTagToken, "head"))
	return true
}

func (p *beforeHeadPhase) processSpaceCharacters(t *Token) *Token {
	return nil
}

func (p *beforeHeadPhase) processCharacters(t *Token) *Token {
	p.startTagHead(impliedTag(StartTagToken, "head"))
	return t
}

func (p *beforeHeadPhase) startTagHead(t *Token) *Token {
	p.c.headElementPointer = p.c.insertHTMLElement(t)
	p.c.switchMode(inHead)
	return nil
}

func (p *beforeHeadPhase) startTagOther(t *Token) *Token {
	p.startTagHead(impliedTag(StartTagToken, "head"))
	return t
}

func (p *beforeHeadPhase) endTagImplyHead(t *Token) *Token {
	p.startTagHead(impliedTag(StartTagToken, "head"))
	return t
}

func (p *beforeHeadPhase) endTagOther(t *Token) *Token {
	p.c.parseError("end-tag-after-implied-root", "name", t.TagName)
	return nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inhead
type inHeadPhase struct {
	basePhase
}

func newInHeadPhase(c *HTMLTreeConstructor) *inHeadPhase {
	p := &inHeadPhase{basePhase{c: c}}
	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(c.startTagHTML, "html")
	p.startTags.add(p.startTagTitle, "title")
	p.startTags.add(p.startTagNoFramesStyle, "noframes", "style")
	p.startTags.add(p.startTagNoscript, "noscript")
	p.startTags.add(p.startTagScript, "script")
	p.startTags.add(p.startTagBaseLinkCommand, "base", "basefont", "bgsound", "command", "link")
	p.startTags.add(p.startTagMeta, "meta")
	p.startTags.add(p.startTagHead, "head")

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagHead, "head")
	p.endTags.add(p.endTagHTMLBodyBr, "br", "html", "body")
	return p
}

func (p *inHeadPhase) anythingElse() {
	p.endTagHead(impliedTag(EndTagToken, "head"))
}

func (p *inHeadPhase) processEOF() bool {
	p.anythingElse()
	return true
}

func (p *inHeadPhase) processCharacters(t *Token) *Token {
	p.anythingElse()
	return t
}

func (p *inHeadPhase) startTagHead(t *Token) *Token {
	p.c.parseError("two-heads-are-not-better-than-one")
	return nil
}

func (p *inHeadPhase) startTagBaseLinkCommand(t *Token) *Token {
	p.c.insertVoidElement(t)
	return nil
}

func (p *inHeadPhase) startTagMeta(t *Token) *Token {
	p.c.insertVoidElement(t)

	if charset, ok := t.Attributes.Get("charset"); ok {
		p.c.changeEncoding(charset)
		return nil
	}
	httpEquiv, _ := t.Attributes.Get("http-equiv")
	content, ok := t.Attributes.Get("content")
	if ok && strings.EqualFold(httpEquiv, "content-type") {
		p.c.changeEncoding(charsetFromContent(content))
	}
	return nil
}

func (p *inHeadPhase) startTagTitle(t *Token) *Token {
	p.c.parseRawText(t, rcDataState)
	return nil
}

func (p *inHeadPhase) startTagNoFramesStyle(t *Token) *Token {
	p.c.parseRawText(t, rawTextState)
	return nil
}

func (p *inHeadPhase) startTagNoscript(t *Token) *Token {
	if p.c.config.scripting {
		p.c.parseRawText(t, rawTextState)
		return nil
	}
	p.c.insertHTMLElement(t)
	p.c.switchMode(inHeadNoScript)
	return nil
}

func (p *inHeadPhase) startTagScript(t *Token) *Token {
	p.c.insertHTMLElement(t)
	p.c.switchTokenizer(scriptDataState)
	p.c.originalInsertionMode = p.c.mode
	p.c.switchMode(text)
	return nil
}

func (p *inHeadPhase) startTagOther(t *Token) *Token {
	p.anythingElse()
	return t
}

func (p *inHeadPhase) endTagHead(t *Token) *Token {
	p.c.popOpenElement()
	p.c.switchMode(afterHead)
	return nil
}

func (p *inHeadPhase) endTagHTMLBodyBr(t *Token) *Token {
	p.anythingElse()
	return t
}

func (p *inHeadPhase) endTagOther(t *Token) *Token {
	p.c.parseError("unexpected-end-tag", "name", t.TagName)
	return nil
}

// charsetFromContent extracts the encoding label from the content attribute
// of a <meta http-equiv="content-type">.
// https://html.spec.whatwg.org/multipage/urls-and-fetching.html#algorithm-for-extracting-a-character-encoding-from-a-meta-element
func charsetFromContent(content string) string {
	lower := lowerASCII(content)
	for pos := 0; ; {
		i := strings.Index(lower[pos:], "charset")
		if i == -1 {
			return ""
		}
		pos += i + len("charset")
		rest := strings.TrimLeft(lower[pos:], spaceCharacters)
		if !strings.HasPrefix(rest, "=") {
			continue
		}
		start := len(content) - len(rest) + 1
		value := strings.TrimLeft(content[start:], spaceCharacters)
		if value == "" {
			return ""
		}
		if quote := value[0]; quote == '"' || quote == '\'' {
			end := strings.IndexByte(value[1:], quote)
			if end == -1 {
				return ""
			}
			return value[1 : end+1]
		}
		if end := strings.IndexAny(value, spaceCharacters+";"); end != -1 {
			return value[:end]
		}
		return value
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inheadnoscript
type inHeadNoScriptPhase struct {
	basePhase
}

func newInHeadNoScriptPhase(c *HTMLTreeConstructor) *inHeadNoScriptPhase {
	p := &inHeadNoScriptPhase{basePhase{c: c}}
	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(c.startTagHTML, "html")
	p.startTags.add(p.startTagFromHead, "basefont", "bgsound", "link", "meta", "noframes", "style")
	p.startTags.add(p.startTagHeadNoscript, "head", "noscript")

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagNoscript, "noscript")
	p.endTags.add(p.endTagBr, "br")
	return p
}

func (p *inHeadNoScriptPhase) anythingElse() {
	p.endTagNoscript(impliedTag(EndTagToken, "noscript"))
}

func (p *inHeadNoScriptPhase) processEOF() bool {
	p.c.parseError("eof-in-head-noscript")
	p.anythingElse()
	return true
}

func (p *inHeadNoScriptPhase) processCharacters(t *Token) *Token {
	p.c.parseError("char-in-head-noscript")
	p.anythingElse()
	return t
}

func (p *inHeadNoScriptPhase) startTagFromHead(t *Token) *Token {
	return p.c.mappings[inHead].processStartTag(t)
}

func (p *inHeadNoScriptPhase) startTagHeadNoscript(t *Token) *Token {
	p.c.parseError("unexpected-start-tag", "name", t.TagName)
	return nil
}

func (p *inHeadNoScriptPhase) startTagOther(t *Token) *Token {
	p.c.parseError("unexpected-inhead-noscript-tag", "name", t.TagName)
	p.anythingElse()
	return t
}

func (p *inHeadNoScriptPhase) endTagNoscript(t *Token) *Token {
	p.c.popOpenElement()
	p.c.switchMode(inHead)
	return nil
}

func (p *inHeadNoScriptPhase) endTagBr(t *Token) *Token {
	p.c.parseError("unexpected-inhead-noscript-tag", "name", t.TagName)
	p.anythingElse()
	return t
}

func (p *inHeadNoScriptPhase) endTagOther(t *Token) *Token {
	p.c.parseError("unexpected-end-tag", "name", t.TagName)
	return nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-head-insertion-mode
type afterHeadPhase struct {
	basePhase
}

func newAfterHeadPhase(c *HTMLTreeConstructor) *afterHeadPhase {
	p := &afterHeadPhase{basePhase{c: c}}
	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(c.startTagHTML, "html")
	p.startTags.add(p.startTagBody, "body")
	p.startTags.add(p.startTagFrameset, "frameset")
	p.startTags.add(p.startTagFromHead, "base", "basefont", "bgsound", "link", "meta",
		"noframes", "script", "style", "title")
	p.startTags.add(p.startTagHead, "head")

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagHTMLBodyBr, "body", "html", "br")
	return p
}

func (p *afterHeadPhase) anythingElse() {
	p.c.insertHTMLElement(impliedTag(StartTagToken, "body"))
	p.c.switchMode(inBody)
	p.c.framesetOK = true
}

func (p *afterHeadPhase) processEOF() bool {
	p.anythingElse()
	return true
}

func (p *afterHeadPhase) processCharacters(t *Token) *Token {
	p.anythingElse()
	return t
}

func (p *afterHeadPhase) startTagBody(t *Token) *Token {
	p.c.framesetOK = false
	p.c.insertHTMLElement(t)
	p.c.switchMode(inBody)
	return nil
}

func (p *afterHeadPhase) startTagFrameset(t *Token) *Token {
	p.c.insertHTMLElement(t)
	p.c.switchMode(inFrameset)
	return nil
}

func (p *afterHeadPhase) startTagFromHead(t *Token) *Token {
	p.c.parseError("unexpected-start-tag-out-of-my-head", "name", t.TagName)
	head := p.c.headElementPointer
	p.c.pushOpenElement(head)
	p.c.mappings[inHead].processStartTag(t)
	p.c.stackOfOpenElements = removeNode(p.c.stackOfOpenElements, head)
	return nil
}

func (p *afterHeadPhase) startTagHead(t *Token) *Token {
	p.c.parseError("unexpected-start-tag", "name", t.TagName)
	return nil
}

func (p *afterHeadPhase) startTagOther(t *Token) *Token {
	p.anythingElse()
	return t
}

func (p *afterHeadPhase) endTagHTMLBodyBr(t *Token) *Token {
	p.anythingElse()
	return t
}

func (p *afterHeadPhase) endTagOther(t *Token) *Token {
	p.c.parseError("unexpected-end-tag", "name", t.TagName)
	return nil
}

// lowerASCII lowers ASCII letters only, keeping byte offsets intact.
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 0x20
		}
	}
	return string(b)
}
