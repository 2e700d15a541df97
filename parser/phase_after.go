package parser

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterbody
type afterBodyPhase struct {
	basePhase
}

func newAfterBodyPhase(c *HTMLTreeConstructor) *afterBodyPhase {
	p := &afterBodyPhase{basePhase{c: c}}
	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(p.startTagHTML, "html")
	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagHTML, "html")
	return p
}

func (p *afterBodyPhase) processComment(t *Token) *Token {
	p.c.insertComment(t, p.c.stackOfOpenElements[0])
	return nil
}

func (p *afterBodyPhase) processSpaceCharacters(t *Token) *Token {
	return p.c.mappings[inBody].processSpaceCharacters(t)
}

func (p *afterBodyPhase) processCharacters(t *Token) *Token {
	p.c.parseError("unexpected-char-after-body")
	p.c.switchMode(inBody)
	return t
}

func (p *afterBodyPhase) startTagHTML(t *Token) *Token {
	return p.c.mappings[inBody].processStartTag(t)
}

func (p *afterBodyPhase) startTagOther(t *Token) *Token {
	p.c.parseError("unexpected-start-tag-after-body", "name", t.TagName)
	p.c.switchMode(inBody)
	return t
}

func (p *afterBodyPhase) endTagHTML(t *Token) *Token {
	if p.c.context != nil {
		p.c.parseError("unexpected-end-tag-after-body-innerhtml")
		return nil
	}
	p.c.switchMode(afterAfterBody)
	return nil
}

func (p *afterBodyPhase) endTagOther(t *Token) *Token {
	p.c.parseError("unexpected-end-tag-after-body", "name", t.TagName)
	p.c.switchMode(inBody)
	return t
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inframeset
type inFramesetPhase struct {
	basePhase
}

func newInFramesetPhase(c *HTMLTreeConstructor) *inFramesetPhase {
	p := &inFramesetPhase{basePhase{c: c}}
	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(c.startTagHTML, "html")
	p.startTags.add(p.startTagFrameset, "frameset")
	p.startTags.add(p.startTagFrame, "frame")
	p.startTags.add(p.startTagNoframes, "noframes")

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagFrameset, "frameset")
	return p
}

func (p *inFramesetPhase) processEOF() bool {
	if !p.c.currentNodeIs("html") {
		p.c.parseError("eof-in-frameset")
	}
	return false
}

func (p *inFramesetPhase) processCharacters(t *Token) *Token {
	p.c.parseError("unexpected-char-in-frameset")
	if spaces := keepSpaces(t.Data); spaces != "" {
		p.c.insertText(spaces)
	}
	return nil
}

func (p *inFramesetPhase) startTagFrameset(t *Token) *Token {
	p.c.insertHTMLElement(t)
	return nil
}

func (p *inFramesetPhase) startTagFrame(t *Token) *Token {
	p.c.insertVoidElement(t)
	return nil
}

func (p *inFramesetPhase) startTagNoframes(t *Token) *Token {
	return p.c.mappings[inBody].processStartTag(t)
}

func (p *inFramesetPhase) startTagOther(t *Token) *Token {
	p.c.parseError("unexpected-start-tag-in-frameset", "name", t.TagName)
	return nil
}

func (p *inFramesetPhase) endTagFrameset(t *Token) *Token {
	if p.c.currentNodeIs("html") {
		p.c.parseError("unexpected-frameset-in-frameset-innerhtml")
	} else {
		p.c.popOpenElement()
	}
	if p.c.context == nil && !p.c.currentNodeIs("frameset") {
		p.c.switchMode(afterFrameset)
	}
	return nil
}

func (p *inFramesetPhase) endTagOther(t *Token) *Token {
	p.c.parseError("unexpected-end-tag-in-frameset", "name", t.TagName)
	return nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterframeset
type afterFramesetPhase struct {
	basePhase
}

func newAfterFramesetPhase(c *HTMLTreeConstructor) *afterFramesetPhase {
	p := &afterFramesetPhase{basePhase{c: c}}
	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(c.startTagHTML, "html")
	p.startTags.add(p.startTagNoframes, "noframes")

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagHTML, "html")
	return p
}

func (p *afterFramesetPhase) processCharacters(t *Token) *Token {
	p.c.parseError("unexpected-char-after-frameset")
	if spaces := keepSpaces(t.Data); spaces != "" {
		p.c.insertText(spaces)
	}
	return nil
}

func (p *afterFramesetPhase) startTagNoframes(t *Token) *Token {
	return p.c.mappings[inHead].processStartTag(t)
}

func (p *afterFramesetPhase) startTagOther(t *Token) *Token {
	p.c.parseError("unexpected-start-tag-after-frameset", "name", t.TagName)
	return nil
}

func (p *afterFramesetPhase) endTagHTML(t *Token) *Token {
	p.c.switchMode(afterAfterFrameset)
	return nil
}

func (p *afterFramesetPhase) endTagOther(t *Token) *Token {
	p.c.parseError("unexpected-end-tag-after-frameset", "name", t.TagName)
	return nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-body-insertion-mode
type afterAfterBodyPhase struct {
	basePhase
}

func newAfterAfterBodyPhase(c *HTMLTreeConstructor) *afterAfterBodyPhase {
	p := &afterAfterBodyPhase{basePhase{c: c}}
	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(p.startTagHTML, "html")
	return p
}

func (p *afterAfterBodyPhase) processComment(t *Token) *Token {
	p.c.insertComment(t, p.c.document)
	return nil
}

func (p *afterAfterBodyPhase) processDoctype(t *Token) *Token {
	return p.c.mappings[inBody].processDoctype(t)
}

func (p *afterAfterBodyPhase) processSpaceCharacters(t *Token) *Token {
	return p.c.mappings[inBody].processSpaceCharacters(t)
}

func (p *afterAfterBodyPhase) processCharacters(t *Token) *Token {
	p.c.parseError("expected-eof-but-got-char")
	p.c.switchMode(inBody)
	return t
}

func (p *afterAfterBodyPhase) startTagHTML(t *Token) *Token {
	return p.c.mappings[inBody].processStartTag(t)
}

func (p *afterAfterBodyPhase) startTagOther(t *Token) *Token {
	p.c.parseError("expected-eof-but-got-start-tag", "name", t.TagName)
	p.c.switchMode(inBody)
	return t
}

func (p *afterAfterBodyPhase) processEndTag(t *Token) *Token {
	p.c.parseError("expected-eof-but-got-end-tag", "name", t.TagName)
	p.c.switchMode(inBody)
	return t
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-frameset-insertion-mode
type afterAfterFramesetPhase struct {
	basePhase
}

func newAfterAfterFramesetPhase(c *HTMLTreeConstructor) *afterAfterFramesetPhase {
	p := &afterAfterFramesetPhase{basePhase{c: c}}
	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(p.startTagHTML, "html")
	p.startTags.add(p.startTagNoframes, "noframes")
	return p
}

func (p *afterAfterFramesetPhase) processComment(t *Token) *Token {
	p.c.insertComment(t, p.c.document)
	return nil
}

func (p *afterAfterFramesetPhase) processDoctype(t *Token) *Token {
	return p.c.mappings[inBody].processDoctype(t)
}

func (p *afterAfterFramesetPhase) processSpaceCharacters(t *Token) *Token {
	return p.c.mappings[inBody].processSpaceCharacters(t)
}

func (p *afterAfterFramesetPhase) processCharacters(t *Token) *Token {
	p.c.parseError("expected-eof-but-got-char")
	return nil
}

func (p *afterAfterFramesetPhase) startTagHTML(t *Token) *Token {
	return p.c.mappings[inBody].processStartTag(t)
}

func (p *afterAfterFramesetPhase) startTagNoframes(t *Token) *Token {
	return p.c.mappings[inHead].processStartTag(t)
}

func (p *afterAfterFramesetPhase) startTagOther(t *Token) *Token {
	p.c.parseError("expected-eof-but-got-start-tag", "name", t.TagName)
	return nil
}

func (p *afterAfterFramesetPhase) processEndTag(t *Token) *Token {
	p.c.parseError("expected-eof-but-got-end-tag", "name", t.TagName)
	return nil
}
