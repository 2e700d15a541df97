package parser

import (
	"strings"
)

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intable
type inTablePhase struct {
	basePhase
}

func newInTablePhase(c *HTMLTreeConstructor) *inTablePhase {
	p := &inTablePhase{basePhase{c: c}}

	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(c.startTagHTML, "html")
	p.startTags.add(p.startTagCaption, "caption")
	p.startTags.add(p.startTagColgroup, "colgroup")
	p.startTags.add(p.startTagCol, "col")
	p.startTags.add(p.startTagRowGroup, "tbody", "tfoot", "thead")
	p.startTags.add(p.startTagImplyTbody, "td", "th", "tr")
	p.startTags.add(p.startTagTable, "table")
	p.startTags.add(p.startTagStyleScript, "style", "script")
	p.startTags.add(p.startTagInput, "input")
	p.startTags.add(p.startTagForm, "form")

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagTable, "table")
	p.endTags.add(p.endTagIgnore, "body", "caption", "col", "colgroup", "html", "tbody", "td",
		"tfoot", "th", "thead", "tr")
	return p
}

func (p *inTablePhase) clearStackToTableContext() {
	p.c.clearStackBackTo("table", "html")
}

func (p *inTablePhase) processEOF() bool {
	if !p.c.currentNodeIs("html") {
		p.c.parseError("eof-in-table")
	}
	return false
}

// switchToText buffers character tokens in the in table text mode.
func (p *inTablePhase) switchToText(t *Token) *Token {
	p.c.tableTextOriginalMode = p.c.mode
	p.c.switchMode(inTableText)
	return t
}

func (p *inTablePhase) processSpaceCharacters(t *Token) *Token {
	return p.switchToText(t)
}

func (p *inTablePhase) processCharacters(t *Token) *Token {
	return p.switchToText(t)
}

func (p *inTablePhase) startTagCaption(t *Token) *Token {
	p.clearStackToTableContext()
	p.c.pushMarker()
	p.c.insertHTMLElement(t)
	p.c.switchMode(inCaption)
	return nil
}

func (p *inTablePhase) startTagColgroup(t *Token) *Token {
	p.clearStackToTableContext()
	p.c.insertHTMLElement(t)
	p.c.switchMode(inColumnGroup)
	return nil
}

func (p *inTablePhase) startTagCol(t *Token) *Token {
	p.startTagColgroup(impliedTag(StartTagToken, "colgroup"))
	return t
}

func (p *inTablePhase) startTagRowGroup(t *Token) *Token {
	p.clearStackToTableContext()
	p.c.insertHTMLElement(t)
	p.c.switchMode(inTableBody)
	return nil
}

func (p *inTablePhase) startTagImplyTbody(t *Token) *Token {
	p.startTagRowGroup(impliedTag(StartTagToken, "tbody"))
	return t
}

func (p *inTablePhase) startTagTable(t *Token) *Token {
	p.c.parseError("unexpected-start-tag-implies-end-tag", "startName", "table", "endName", "table")
	if !p.c.elementInScope("table", tableScope) {
		return nil
	}
	p.endTagTable(impliedTag(EndTagToken, "table"))
	return t
}

func (p *inTablePhase) startTagStyleScript(t *Token) *Token {
	return p.c.mappings[inHead].processStartTag(t)
}

func (p *inTablePhase) startTagInput(t *Token) *Token {
	typ, ok := t.Attributes.Get("type")
	if !ok || !strings.EqualFold(typ, "hidden") {
		return p.startTagOther(t)
	}
	p.c.parseError("unexpected-hidden-input-in-table")
	p.c.insertVoidElement(t)
	return nil
}

func (p *inTablePhase) startTagForm(t *Token) *Token {
	p.c.parseError("unexpected-form-in-table")
	if p.c.formElementPointer == nil {
		p.c.formElementPointer = p.c.insertHTMLElement(t)
		p.c.popOpenElement()
	}
	return nil
}

func (p *inTablePhase) startTagOther(t *Token) *Token {
	p.c.parseError("unexpected-start-tag-implies-table-voodoo", "name", t.TagName)
	p.c.fosterParenting = true
	reprocess := p.c.mappings[inBody].processStartTag(t)
	p.c.fosterParenting = false
	return reprocess
}

func (p *inTablePhase) endTagTable(t *Token) *Token {
	if !p.c.elementInScope("table", tableScope) {
		p.c.parseError("unexpected-end-tag", "name", "table")
		return nil
	}
	p.c.generateImpliedEndTags("")
	if !p.c.currentNodeIs("table") {
		p.c.parseError("end-tag-too-early-named", "gotName", "table", "expectedName", p.c.currentNode().Name())
	}
	p.c.popUntil("table")
	p.c.resetInsertionMode()
	return nil
}

func (p *inTablePhase) endTagIgnore(t *Token) *Token {
	p.c.parseError("unexpected-end-tag", "name", t.TagName)
	return nil
}

func (p *inTablePhase) endTagOther(t *Token) *Token {
	p.c.parseError("unexpected-end-tag-implies-table-voodoo", "name", t.TagName)
	p.c.fosterParenting = true
	reprocess := p.c.mappings[inBody].processEndTag(t)
	p.c.fosterParenting = false
	return reprocess
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intabletext
type inTableTextPhase struct {
	basePhase
}

func newInTableTextPhase(c *HTMLTreeConstructor) *inTableTextPhase {
	return &inTableTextPhase{basePhase{c: c}}
}

// leave commits the buffered characters and returns to the mode that
// switched here.
func (p *inTableTextPhase) leave() {
	p.c.flushPendingTableCharacters()
	p.c.switchMode(p.c.tableTextOriginalMode)
}

func (p *inTableTextPhase) processEOF() bool {
	p.leave()
	return true
}

func (p *inTableTextPhase) processCharacters(t *Token) *Token {
	if t.Data == "\u0000" {
		return nil
	}
	p.c.pendingTableCharacters = append(p.c.pendingTableCharacters, t)
	return nil
}

func (p *inTableTextPhase) processSpaceCharacters(t *Token) *Token {
	p.c.pendingTableCharacters = append(p.c.pendingTableCharacters, t)
	return nil
}

func (p *inTableTextPhase) processComment(t *Token) *Token {
	p.leave()
	return t
}

func (p *inTableTextPhase) processDoctype(t *Token) *Token {
	p.leave()
	return t
}

func (p *inTableTextPhase) processStartTag(t *Token) *Token {
	p.leave()
	return t
}

func (p *inTableTextPhase) processEndTag(t *Token) *Token {
	p.leave()
	return t
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incaption
type inCaptionPhase struct {
	basePhase
}

func newInCaptionPhase(c *HTMLTreeConstructor) *inCaptionPhase {
	p := &inCaptionPhase{basePhase{c: c}}

	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(c.startTagHTML, "html")
	p.startTags.add(p.startTagTableElement, "caption", "col", "colgroup", "tbody", "td",
		"tfoot", "th", "thead", "tr")

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagCaption, "caption")
	p.endTags.add(p.endTagTable, "table")
	p.endTags.add(p.endTagIgnore, "body", "col", "colgroup", "html", "tbody", "td", "tfoot",
		"th", "thead", "tr")
	return p
}

func (p *inCaptionPhase) ignoreEndTagCaption() bool {
	return !p.c.elementInScope("caption", tableScope)
}

func (p *inCaptionPhase) processEOF() bool {
	return p.c.mappings[inBody].processEOF()
}

func (p *inCaptionPhase) processCharacters(t *Token) *Token {
	return p.c.mappings[inBody].processCharacters(t)
}

func (p *inCaptionPhase) processSpaceCharacters(t *Token) *Token {
	return p.c.mappings[inBody].processSpaceCharacters(t)
}

// closeCaption closes the caption and hands t back when there was one.
func (p *inCaptionPhase) closeCaption(t *Token) *Token {
	p.c.parseError("unexpected-end-tag", "name", t.TagName)
	ignore := p.ignoreEndTagCaption()
	p.endTagCaption(impliedTag(EndTagToken, "caption"))
	if ignore {
		return nil
	}
	return t
}

func (p *inCaptionPhase) startTagTableElement(t *Token) *Token {
	return p.closeCaption(t)
}

func (p *inCaptionPhase) startTagOther(t *Token) *Token {
	return p.c.mappings[inBody].processStartTag(t)
}

func (p *inCaptionPhase) endTagCaption(t *Token) *Token {
	if p.ignoreEndTagCaption() {
		p.c.parseError("unexpected-end-tag", "name", "caption")
		return nil
	}
	p.c.generateImpliedEndTags("")
	if !p.c.currentNodeIs("caption") {
		p.c.parseError("expected-one-end-tag-but-got-another",
			"gotName", "caption", "expectedName", p.c.currentNode().Name())
	}
	p.c.popUntil("caption")
	p.c.clearActiveFormattingElements()
	p.c.switchMode(inTable)
	return nil
}

func (p *inCaptionPhase) endTagTable(t *Token) *Token {
	return p.closeCaption(t)
}

func (p *inCaptionPhase) endTagIgnore(t *Token) *Token {
	p.c.parseError("unexpected-end-tag", "name", t.TagName)
	return nil
}

func (p *inCaptionPhase) endTagOther(t *Token) *Token {
	return p.c.mappings[inBody].processEndTag(t)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incolgroup
type inColumnGroupPhase struct {
	basePhase
}

func newInColumnGroupPhase(c *HTMLTreeConstructor) *inColumnGroupPhase {
	p := &inColumnGroupPhase{basePhase{c: c}}

	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(c.startTagHTML, "html")
	p.startTags.add(p.startTagCol, "col")

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagColgroup, "colgroup")
	p.endTags.add(p.endTagCol, "col")
	return p
}

func (p *inColumnGroupPhase) ignoreEndTagColgroup() bool {
	return p.c.currentNodeIs("html")
}

// anythingElse closes the colgroup and reports whether the token must be
// reprocessed.
func (p *inColumnGroupPhase) anythingElse() bool {
	ignore := p.ignoreEndTagColgroup()
	p.endTagColgroup(impliedTag(EndTagToken, "colgroup"))
	return !ignore
}

func (p *inColumnGroupPhase) processEOF() bool {
	if p.c.currentNodeIs("html") {
		return false
	}
	return p.anythingElse()
}

func (p *inColumnGroupPhase) processCharacters(t *Token) *Token {
	if p.anythingElse() {
		return t
	}
	return nil
}

func (p *inColumnGroupPhase) startTagCol(t *Token) *Token {
	p.c.insertVoidElement(t)
	return nil
}

func (p *inColumnGroupPhase) startTagOther(t *Token) *Token {
	return p.processCharacters(t)
}

func (p *inColumnGroupPhase) endTagColgroup(t *Token) *Token {
	if p.ignoreEndTagColgroup() {
		p.c.parseError("unexpected-end-tag", "name", "colgroup")
		return nil
	}
	p.c.popOpenElement()
	p.c.switchMode(inTable)
	return nil
}

func (p *inColumnGroupPhase) endTagCol(t *Token) *Token {
	p.c.parseError("no-end-tag", "name", "col")
	return nil
}

func (p *inColumnGroupPhase) endTagOther(t *Token) *Token {
	return p.processCharacters(t)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intbody
type inTableBodyPhase struct {
	basePhase
}

func newInTableBodyPhase(c *HTMLTreeConstructor) *inTableBodyPhase {
	p := &inTableBodyPhase{basePhase{c: c}}

	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(c.startTagHTML, "html")
	p.startTags.add(p.startTagTr, "tr")
	p.startTags.add(p.startTagTableCell, "td", "th")
	p.startTags.add(p.startTagTableOther, "caption", "col", "colgroup", "tbody", "tfoot", "thead")

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagTableRowGroup, "tbody", "tfoot", "thead")
	p.endTags.add(p.endTagTable, "table")
	p.endTags.add(p.endTagIgnore, "body", "caption", "col", "colgroup", "html", "td", "th", "tr")
	return p
}

func (p *inTableBodyPhase) clearStackToTableBodyContext() {
	p.c.clearStackBackTo("tbody", "tfoot", "thead", "html")
}

func (p *inTableBodyPhase) processEOF() bool {
	return p.c.mappings[inTable].processEOF()
}

func (p *inTableBodyPhase) processSpaceCharacters(t *Token) *Token {
	return p.c.mappings[inTable].processSpaceCharacters(t)
}

func (p *inTableBodyPhase) processCharacters(t *Token) *Token {
	return p.c.mappings[inTable].processCharacters(t)
}

func (p *inTableBodyPhase) startTagTr(t *Token) *Token {
	p.clearStackToTableBodyContext()
	p.c.insertHTMLElement(t)
	p.c.switchMode(inRow)
	return nil
}

func (p *inTableBodyPhase) startTagTableCell(t *Token) *Token {
	p.c.parseError("unexpected-cell-in-table-body", "name", t.TagName)
	p.startTagTr(impliedTag(StartTagToken, "tr"))
	return t
}

// closeRowGroup ends the open row group and hands t back, or drops t when
// no row group is in table scope.
func (p *inTableBodyPhase) closeRowGroup(t *Token) *Token {
	if !p.c.elementInScope("tbody", tableScope) &&
		!p.c.elementInScope("thead", tableScope) &&
		!p.c.elementInScope("tfoot", tableScope) {
		p.c.parseError("unexpected-end-tag", "name", t.TagName)
		return nil
	}
	p.clearStackToTableBodyContext()
	p.endTagTableRowGroup(impliedTag(EndTagToken, p.c.currentNode().Name()))
	return t
}

func (p *inTableBodyPhase) startTagTableOther(t *Token) *Token {
	return p.closeRowGroup(t)
}

func (p *inTableBodyPhase) startTagOther(t *Token) *Token {
	return p.c.mappings[inTable].processStartTag(t)
}

func (p *inTableBodyPhase) endTagTableRowGroup(t *Token) *Token {
	if !p.c.elementInScope(t.TagName, tableScope) {
		p.c.parseError("unexpected-end-tag-in-table-body", "name", t.TagName)
		return nil
	}
	p.clearStackToTableBodyContext()
	p.c.popOpenElement()
	p.c.switchMode(inTable)
	return nil
}

func (p *inTableBodyPhase) endTagTable(t *Token) *Token {
	return p.closeRowGroup(t)
}

func (p *inTableBodyPhase) endTagIgnore(t *Token) *Token {
	p.c.parseError("unexpected-end-tag-in-table-body", "name", t.TagName)
	return nil
}

func (p *inTableBodyPhase) endTagOther(t *Token) *Token {
	return p.c.mappings[inTable].processEndTag(t)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intr
type inRowPhase struct {
	basePhase
}

func newInRowPhase(c *HTMLTreeConstructor) *inRowPhase {
	p := &inRowPhase{basePhase{c: c}}

	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(c.startTagHTML, "html")
	p.startTags.add(p.startTagTableCell, "td", "th")
	p.startTags.add(p.startTagTableOther, "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr")

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagTr, "tr")
	p.endTags.add(p.endTagTable, "table")
	p.endTags.add(p.endTagTableRowGroup, "tbody", "tfoot", "thead")
	p.endTags.add(p.endTagIgnore, "body", "caption", "col", "colgroup", "html", "td", "th")
	return p
}

func (p *inRowPhase) clearStackToTableRowContext() {
	for !p.c.currentNodeIs("tr", "html") {
		p.c.parseError("unexpected-implied-end-tag-in-table-row", "name", p.c.currentNode().Name())
		p.c.popOpenElement()
	}
}

func (p *inRowPhase) ignoreEndTagTr() bool {
	return !p.c.elementInScope("tr", tableScope)
}

func (p *inRowPhase) processEOF() bool {
	return p.c.mappings[inTable].processEOF()
}

func (p *inRowPhase) processSpaceCharacters(t *Token) *Token {
	return p.c.mappings[inTable].processSpaceCharacters(t)
}

func (p *inRowPhase) processCharacters(t *Token) *Token {
	return p.c.mappings[inTable].processCharacters(t)
}

func (p *inRowPhase) startTagTableCell(t *Token) *Token {
	p.clearStackToTableRowContext()
	p.c.insertHTMLElement(t)
	p.c.switchMode(inCell)
	p.c.pushMarker()
	return nil
}

// closeRow ends the row and hands t back when there was one.
func (p *inRowPhase) closeRow(t *Token) *Token {
	ignore := p.ignoreEndTagTr()
	p.endTagTr(impliedTag(EndTagToken, "tr"))
	if ignore {
		return nil
	}
	return t
}

func (p *inRowPhase) startTagTableOther(t *Token) *Token {
	return p.closeRow(t)
}

func (p *inRowPhase) startTagOther(t *Token) *Token {
	return p.c.mappings[inTable].processStartTag(t)
}

func (p *inRowPhase) endTagTr(t *Token) *Token {
	if p.ignoreEndTagTr() {
		p.c.parseError("unexpected-end-tag", "name", "tr")
		return nil
	}
	p.clearStackToTableRowContext()
	p.c.popOpenElement()
	p.c.switchMode(inTableBody)
	return nil
}

func (p *inRowPhase) endTagTable(t *Token) *Token {
	return p.closeRow(t)
}

func (p *inRowPhase) endTagTableRowGroup(t *Token) *Token {
	if !p.c.elementInScope(t.TagName, tableScope) {
		p.c.parseError("unexpected-end-tag", "name", t.TagName)
		return nil
	}
	p.endTagTr(impliedTag(EndTagToken, "tr"))
	return t
}

func (p *inRowPhase) endTagIgnore(t *Token) *Token {
	p.c.parseError("unexpected-end-tag-in-table-row", "name", t.TagName)
	return nil
}

func (p *inRowPhase) endTagOther(t *Token) *Token {
	return p.c.mappings[inTable].processEndTag(t)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intd
type inCellPhase struct {
	basePhase
}

func newInCellPhase(c *HTMLTreeConstructor) *inCellPhase {
	p := &inCellPhase{basePhase{c: c}}

	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(c.startTagHTML, "html")
	p.startTags.add(p.startTagTableOther, "caption", "col", "colgroup", "tbody", "td", "tfoot",
		"th", "thead", "tr")

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagTableCell, "td", "th")
	p.endTags.add(p.endTagIgnore, "body", "caption", "col", "colgroup", "html")
	p.endTags.add(p.endTagImply, "table", "tbody", "tfoot", "thead", "tr")
	return p
}

func (p *inCellPhase) closeCell() {
	if p.c.elementInScope("td", tableScope) {
		p.endTagTableCell(impliedTag(EndTagToken, "td"))
	} else if p.c.elementInScope("th", tableScope) {
		p.endTagTableCell(impliedTag(EndTagToken, "th"))
	}
}

func (p *inCellPhase) processEOF() bool {
	return p.c.mappings[inBody].processEOF()
}

func (p *inCellPhase) processCharacters(t *Token) *Token {
	return p.c.mappings[inBody].processCharacters(t)
}

func (p *inCellPhase) processSpaceCharacters(t *Token) *Token {
	return p.c.mappings[inBody].processSpaceCharacters(t)
}

func (p *inCellPhase) startTagTableOther(t *Token) *Token {
	if !p.c.elementInScope("td", tableScope) && !p.c.elementInScope("th", tableScope) {
		p.c.parseError("unexpected-start-tag", "name", t.TagName)
		return nil
	}
	p.closeCell()
	return t
}

func (p *inCellPhase) startTagOther(t *Token) *Token {
	return p.c.mappings[inBody].processStartTag(t)
}

func (p *inCellPhase) endTagTableCell(t *Token) *Token {
	if !p.c.elementInScope(t.TagName, tableScope) {
		p.c.parseError("unexpected-end-tag", "name", t.TagName)
		return nil
	}
	p.c.generateImpliedEndTags(t.TagName)
	if !p.c.currentNodeIs(t.TagName) {
		p.c.parseError("unexpected-cell-end-tag", "name", t.TagName)
	}
	p.c.popUntil(t.TagName)
	p.c.clearActiveFormattingElements()
	p.c.switchMode(inRow)
	return nil
}

func (p *inCellPhase) endTagIgnore(t *Token) *Token {
	p.c.parseError("unexpected-end-tag", "name", t.TagName)
	return nil
}

func (p *inCellPhase) endTagImply(t *Token) *Token {
	if !p.c.elementInScope(t.TagName, tableScope) {
		p.c.parseError("unexpected-end-tag", "name", t.TagName)
		return nil
	}
	p.closeCell()
	return t
}

func (p *inCellPhase) endTagOther(t *Token) *Token {
	return p.c.mappings[inBody].processEndTag(t)
}
