package parser

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inselect
type inSelectPhase struct {
	basePhase
}

func newInSelectPhase(c *HTMLTreeConstructor) *inSelectPhase {
	p := &inSelectPhase{basePhase{c: c}}

	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(c.startTagHTML, "html")
	p.startTags.add(p.startTagOption, "option")
	p.startTags.add(p.startTagOptgroup, "optgroup")
	p.startTags.add(p.startTagSelect, "select")
	p.startTags.add(p.startTagInput, "input", "keygen", "textarea")
	p.startTags.add(p.startTagScript, "script")

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagOption, "option")
	p.endTags.add(p.endTagOptgroup, "optgroup")
	p.endTags.add(p.endTagSelect, "select")
	return p
}

func (p *inSelectPhase) processEOF() bool {
	if !p.c.currentNodeIs("html") {
		p.c.parseError("eof-in-select")
	}
	return false
}

func (p *inSelectPhase) processCharacters(t *Token) *Token {
	if t.Data == "\u0000" {
		return nil
	}
	p.c.insertText(t.Data)
	return nil
}

func (p *inSelectPhase) startTagOption(t *Token) *Token {
	if p.c.currentNodeIs("option") {
		p.c.popOpenElement()
	}
	p.c.insertHTMLElement(t)
	return nil
}

func (p *inSelectPhase) startTagOptgroup(t *Token) *Token {
	if p.c.currentNodeIs("option") {
		p.c.popOpenElement()
	}
	if p.c.currentNodeIs("optgroup") {
		p.c.popOpenElement()
	}
	p.c.insertHTMLElement(t)
	return nil
}

func (p *inSelectPhase) startTagSelect(t *Token) *Token {
	p.c.parseError("unexpected-select-in-select")
	p.endTagSelect(impliedTag(EndTagToken, "select"))
	return nil
}

func (p *inSelectPhase) startTagInput(t *Token) *Token {
	p.c.parseError("unexpected-input-in-select")
	if !p.c.elementInScope("select", selectScope) {
		return nil
	}
	p.endTagSelect(impliedTag(EndTagToken, "select"))
	return t
}

func (p *inSelectPhase) startTagScript(t *Token) *Token {
	return p.c.mappings[inHead].processStartTag(t)
}

func (p *inSelectPhase) startTagOther(t *Token) *Token {
	p.c.parseError("unexpected-start-tag-in-select", "name", t.TagName)
	return nil
}

func (p *inSelectPhase) endTagOption(t *Token) *Token {
	if !p.c.currentNodeIs("option") {
		p.c.parseError("unexpected-end-tag-in-select", "name", "option")
		return nil
	}
	p.c.popOpenElement()
	return nil
}

func (p *inSelectPhase) endTagOptgroup(t *Token) *Token {
	stack := p.c.stackOfOpenElements
	if p.c.currentNodeIs("option") && len(stack) > 1 && isHTML(stack[len(stack)-2], "optgroup") {
		p.c.popOpenElement()
	}
	if !p.c.currentNodeIs("optgroup") {
		p.c.parseError("unexpected-end-tag-in-select", "name", "optgroup")
		return nil
	}
	p.c.popOpenElement()
	return nil
}

func (p *inSelectPhase) endTagSelect(t *Token) *Token {
	if !p.c.elementInScope("select", selectScope) {
		p.c.parseError("unexpected-end-tag", "name", "select")
		return nil
	}
	p.c.popUntil("select")
	p.c.resetInsertionMode()
	return nil
}

func (p *inSelectPhase) endTagOther(t *Token) *Token {
	p.c.parseError("unexpected-end-tag-in-select", "name", t.TagName)
	return nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inselectintable
type inSelectInTablePhase struct {
	basePhase
}

var tableElementsInSelect = []string{"caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th"}

func newInSelectInTablePhase(c *HTMLTreeConstructor) *inSelectInTablePhase {
	p := &inSelectInTablePhase{basePhase{c: c}}

	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(p.startTagTable, tableElementsInSelect...)

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagTable, tableElementsInSelect...)
	return p
}

func (p *inSelectInTablePhase) processEOF() bool {
	return p.c.mappings[inSelect].processEOF()
}

func (p *inSelectInTablePhase) processCharacters(t *Token) *Token {
	return p.c.mappings[inSelect].processCharacters(t)
}

func (p *inSelectInTablePhase) startTagTable(t *Token) *Token {
	p.c.parseError("unexpected-table-element-start-tag-in-select-in-table", "name", t.TagName)
	p.endTagOther(impliedTag(EndTagToken, "select"))
	return t
}

func (p *inSelectInTablePhase) startTagOther(t *Token) *Token {
	return p.c.mappings[inSelect].processStartTag(t)
}

func (p *inSelectInTablePhase) endTagTable(t *Token) *Token {
	p.c.parseError("unexpected-table-element-end-tag-in-select-in-table", "name", t.TagName)
	if !p.c.elementInScope(t.TagName, tableScope) {
		return nil
	}
	p.endTagOther(impliedTag(EndTagToken, "select"))
	return t
}

func (p *inSelectInTablePhase) endTagOther(t *Token) *Token {
	return p.c.mappings[inSelect].processEndTag(t)
}
