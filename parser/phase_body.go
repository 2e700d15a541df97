package parser

import (
	"strings"

	"github.com/heathj/html5parse/parser/tree"
)

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
type inBodyPhase struct {
	basePhase
}

func newInBodyPhase(c *HTMLTreeConstructor) *inBodyPhase {
	p := &inBodyPhase{basePhase{c: c}}

	p.startTags = newTagTable(p.startTagOther)
	p.startTags.add(c.startTagHTML, "html")
	p.startTags.add(p.startTagProcessInHead, "base", "basefont", "bgsound", "command", "link",
		"meta", "script", "style", "title", "noframes")
	p.startTags.add(p.startTagBody, "body")
	p.startTags.add(p.startTagFrameset, "frameset")
	p.startTags.add(p.startTagCloseP, "address", "article", "aside", "blockquote", "center",
		"details", "dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure", "footer",
		"header", "hgroup", "main", "menu", "nav", "ol", "p", "section", "summary", "ul")
	p.startTags.add(p.startTagPreListing, "pre", "listing")
	p.startTags.add(p.startTagForm, "form")
	p.startTags.add(p.startTagListItem, "li", "dd", "dt")
	p.startTags.add(p.startTagPlaintext, "plaintext")
	p.startTags.add(p.startTagHeading, headingElements...)
	p.startTags.add(p.startTagA, "a")
	p.startTags.add(p.startTagFormatting, "b", "big", "code", "em", "font", "i", "s", "small",
		"strike", "strong", "tt", "u")
	p.startTags.add(p.startTagNobr, "nobr")
	p.startTags.add(p.startTagButton, "button")
	p.startTags.add(p.startTagAppletMarqueeObject, "applet", "marquee", "object")
	p.startTags.add(p.startTagXmp, "xmp")
	p.startTags.add(p.startTagTable, "table")
	p.startTags.add(p.startTagVoidFormatting, "area", "br", "embed", "img", "keygen", "wbr")
	p.startTags.add(p.startTagParamSource, "param", "source", "track")
	p.startTags.add(p.startTagInput, "input")
	p.startTags.add(p.startTagHr, "hr")
	p.startTags.add(p.startTagImage, "image")
	p.startTags.add(p.startTagTextarea, "textarea")
	p.startTags.add(p.startTagIFrame, "iframe")
	p.startTags.add(p.startTagNoscript, "noscript")
	p.startTags.add(p.startTagRawText, "noembed")
	p.startTags.add(p.startTagSelect, "select")
	p.startTags.add(p.startTagOpt, "optgroup", "option")
	p.startTags.add(p.startTagRpRt, "rp", "rt")
	p.startTags.add(p.startTagMath, "math")
	p.startTags.add(p.startTagSvg, "svg")
	p.startTags.add(p.startTagMisplaced, "caption", "col", "colgroup", "frame", "head",
		"tbody", "td", "tfoot", "th", "thead", "tr")

	p.endTags = newTagTable(p.endTagOther)
	p.endTags.add(p.endTagBody, "body")
	p.endTags.add(p.endTagHTML, "html")
	p.endTags.add(p.endTagBlock, "address", "article", "aside", "blockquote", "button",
		"center", "details", "dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure",
		"footer", "header", "hgroup", "listing", "main", "menu", "nav", "ol", "pre", "section",
		"summary", "ul")
	p.endTags.add(p.endTagForm, "form")
	p.endTags.add(p.endTagP, "p")
	p.endTags.add(p.endTagListItem, "dd", "dt", "li")
	p.endTags.add(p.endTagHeading, headingElements...)
	p.endTags.add(p.endTagFormatting, formattingElements...)
	p.endTags.add(p.endTagAppletMarqueeObject, "applet", "marquee", "object")
	p.endTags.add(p.endTagBr, "br")
	return p
}

func (p *inBodyPhase) processEOF() bool {
	for i := len(p.c.stackOfOpenElements) - 1; i >= 0; i-- {
		if !isHTML(p.c.stackOfOpenElements[i], "dd", "dt", "li", "p", "tbody", "td", "tfoot",
			"th", "thead", "tr", "body", "html") {
			p.c.parseError("expected-closing-tag-but-got-eof")
			break
		}
	}
	return false
}

func (p *inBodyPhase) processCharacters(t *Token) *Token {
	if t.Data == "\u0000" {
		return nil
	}
	p.c.reconstructActiveFormattingElements()
	p.c.insertText(t.Data)
	if p.c.framesetOK && strings.Trim(t.Data, spaceCharacters) != "" {
		p.c.framesetOK = false
	}
	return nil
}

func (p *inBodyPhase) processSpaceCharacters(t *Token) *Token {
	p.c.reconstructActiveFormattingElements()
	p.c.insertText(t.Data)
	return nil
}

// addFormattingElement inserts a formatting element and records it in the
// list of active formatting elements.
func (p *inBodyPhase) addFormattingElement(t *Token) {
	p.c.pushActiveFormattingElement(p.c.insertHTMLElement(t))
}

// closeP closes a p element in button scope.
func (p *inBodyPhase) closeP() {
	if p.c.elementInScope("p", buttonScope) {
		p.endTagP(impliedTag(EndTagToken, "p"))
	}
}

func (p *inBodyPhase) startTagProcessInHead(t *Token) *Token {
	return p.c.mappings[inHead].processStartTag(t)
}

func (p *inBodyPhase) startTagBody(t *Token) *Token {
	p.c.parseError("unexpected-start-tag", "name", "body")
	stack := p.c.stackOfOpenElements
	if len(stack) == 1 || !isHTML(stack[1], "body") {
		return nil
	}
	p.c.framesetOK = false
	p.c.tree.AddAttributes(stack[1], t.Attributes)
	return nil
}

func (p *inBodyPhase) startTagFrameset(t *Token) *Token {
	p.c.parseError("unexpected-start-tag", "name", "frameset")
	stack := p.c.stackOfOpenElements
	if len(stack) == 1 || !isHTML(stack[1], "body") || !p.c.framesetOK {
		return nil
	}
	body := stack[1]
	if parent := body.Parent(); parent != nil {
		p.c.tree.RemoveChild(parent, body)
	}
	for !p.c.currentNodeIs("html") {
		p.c.popOpenElement()
	}
	p.c.insertHTMLElement(t)
	p.c.switchMode(inFrameset)
	return nil
}

func (p *inBodyPhase) startTagCloseP(t *Token) *Token {
	p.closeP()
	p.c.insertHTMLElement(t)
	return nil
}

func (p *inBodyPhase) startTagPreListing(t *Token) *Token {
	p.closeP()
	p.c.insertHTMLElement(t)
	p.c.framesetOK = false
	p.c.dropNewline = true
	return nil
}

func (p *inBodyPhase) startTagForm(t *Token) *Token {
	if p.c.formElementPointer != nil {
		p.c.parseError("unexpected-start-tag", "name", "form")
		return nil
	}
	p.closeP()
	p.c.formElementPointer = p.c.insertHTMLElement(t)
	return nil
}

func (p *inBodyPhase) startTagListItem(t *Token) *Token {
	p.c.framesetOK = false

	stopNames := []string{"dt", "dd"}
	if t.TagName == "li" {
		stopNames = []string{"li"}
	}
	for i := len(p.c.stackOfOpenElements) - 1; i >= 0; i-- {
		node := p.c.stackOfOpenElements[i]
		if isHTML(node, stopNames...) {
			p.processEndTag(impliedTag(EndTagToken, node.Name()))
			break
		}
		if isSpecial(node) && !isHTML(node, "address", "div", "p") {
			break
		}
	}

	p.closeP()
	p.c.insertHTMLElement(t)
	return nil
}

func (p *inBodyPhase) startTagPlaintext(t *Token) *Token {
	p.closeP()
	p.c.insertHTMLElement(t)
	p.c.switchTokenizer(plaintextState)
	return nil
}

func (p *inBodyPhase) startTagHeading(t *Token) *Token {
	p.closeP()
	if p.c.currentNodeIs(headingElements...) {
		p.c.parseError("unexpected-start-tag", "name", t.TagName)
		p.c.popOpenElement()
	}
	p.c.insertHTMLElement(t)
	return nil
}

func (p *inBodyPhase) startTagA(t *Token) *Token {
	if a := p.c.activeFormattingElement("a"); a != nil {
		p.c.parseError("unexpected-start-tag-implies-end-tag", "startName", "a", "endName", "a")
		p.endTagFormatting(impliedTag(EndTagToken, "a"))
		p.c.stackOfOpenElements = removeNode(p.c.stackOfOpenElements, a)
		p.c.activeFormattingElements = removeNode(p.c.activeFormattingElements, a)
	}
	p.c.reconstructActiveFormattingElements()
	p.addFormattingElement(t)
	return nil
}

func (p *inBodyPhase) startTagFormatting(t *Token) *Token {
	p.c.reconstructActiveFormattingElements()
	p.addFormattingElement(t)
	return nil
}

func (p *inBodyPhase) startTagNobr(t *Token) *Token {
	p.c.reconstructActiveFormattingElements()
	if p.c.elementInScope("nobr", defaultScope) {
		p.c.parseError("unexpected-start-tag-implies-end-tag", "startName", "nobr", "endName", "nobr")
		p.processEndTag(impliedTag(EndTagToken, "nobr"))
		p.c.reconstructActiveFormattingElements()
	}
	p.addFormattingElement(t)
	return nil
}

func (p *inBodyPhase) startTagButton(t *Token) *Token {
	if p.c.elementInScope("button", defaultScope) {
		p.c.parseError("unexpected-start-tag-implies-end-tag", "startName", "button", "endName", "button")
		p.processEndTag(impliedTag(EndTagToken, "button"))
		return t
	}
	p.c.reconstructActiveFormattingElements()
	p.c.insertHTMLElement(t)
	p.c.framesetOK = false
	return nil
}

func (p *inBodyPhase) startTagAppletMarqueeObject(t *Token) *Token {
	p.c.reconstructActiveFormattingElements()
	p.c.insertHTMLElement(t)
	p.c.pushMarker()
	p.c.framesetOK = false
	return nil
}

func (p *inBodyPhase) startTagXmp(t *Token) *Token {
	p.closeP()
	p.c.reconstructActiveFormattingElements()
	p.c.framesetOK = false
	p.c.parseRawText(t, rawTextState)
	return nil
}

func (p *inBodyPhase) startTagTable(t *Token) *Token {
	if p.c.quirksMode != quirks {
		p.closeP()
	}
	p.c.insertHTMLElement(t)
	p.c.framesetOK = false
	p.c.switchMode(inTable)
	return nil
}

func (p *inBodyPhase) startTagVoidFormatting(t *Token) *Token {
	p.c.reconstructActiveFormattingElements()
	p.c.insertVoidElement(t)
	p.c.framesetOK = false
	return nil
}

func (p *inBodyPhase) startTagInput(t *Token) *Token {
	framesetOK := p.c.framesetOK
	p.startTagVoidFormatting(t)
	if typ, ok := t.Attributes.Get("type"); ok && strings.EqualFold(typ, "hidden") {
		p.c.framesetOK = framesetOK
	}
	return nil
}

func (p *inBodyPhase) startTagParamSource(t *Token) *Token {
	p.c.insertVoidElement(t)
	return nil
}

func (p *inBodyPhase) startTagHr(t *Token) *Token {
	p.closeP()
	p.c.insertVoidElement(t)
	p.c.framesetOK = false
	return nil
}

func (p *inBodyPhase) startTagImage(t *Token) *Token {
	p.c.parseError("unexpected-start-tag-treated-as", "originalName", "image", "newName", "img")
	img := impliedTag(StartTagToken, "img")
	img.Attributes = t.Attributes
	img.SelfClosing = t.SelfClosing
	p.processStartTag(img)
	t.SelfClosingAcknowledged = img.SelfClosingAcknowledged
	return nil
}

func (p *inBodyPhase) startTagTextarea(t *Token) *Token {
	p.c.insertHTMLElement(t)
	p.c.switchTokenizer(rcDataState)
	p.c.dropNewline = true
	p.c.framesetOK = false
	p.c.originalInsertionMode = p.c.mode
	p.c.switchMode(text)
	return nil
}

func (p *inBodyPhase) startTagIFrame(t *Token) *Token {
	p.c.framesetOK = false
	return p.startTagRawText(t)
}

func (p *inBodyPhase) startTagNoscript(t *Token) *Token {
	if p.c.config.scripting {
		return p.startTagRawText(t)
	}
	return p.startTagOther(t)
}

func (p *inBodyPhase) startTagRawText(t *Token) *Token {
	p.c.parseRawText(t, rawTextState)
	return nil
}

func (p *inBodyPhase) startTagOpt(t *Token) *Token {
	if p.c.currentNodeIs("option") {
		p.processEndTag(impliedTag(EndTagToken, "option"))
	}
	p.c.reconstructActiveFormattingElements()
	p.c.insertHTMLElement(t)
	return nil
}

func (p *inBodyPhase) startTagSelect(t *Token) *Token {
	p.c.reconstructActiveFormattingElements()
	p.c.insertHTMLElement(t)
	p.c.framesetOK = false
	switch p.c.mode {
	case inTable, inCaption, inColumnGroup, inTableBody, inRow, inCell:
		p.c.switchMode(inSelectInTable)
	default:
		p.c.switchMode(inSelect)
	}
	return nil
}

func (p *inBodyPhase) startTagRpRt(t *Token) *Token {
	if p.c.elementInScope("ruby", defaultScope) {
		p.c.generateImpliedEndTags("")
		if !p.c.currentNodeIs("ruby") {
			p.c.parseError("unexpected-start-tag", "name", t.TagName)
		}
	}
	p.c.insertHTMLElement(t)
	return nil
}

func (p *inBodyPhase) startTagForeign(t *Token, ns tree.Namespace) {
	p.c.reconstructActiveFormattingElements()
	if ns == tree.MathML {
		adjustMathMLAttributes(t)
	} else {
		adjustSVGAttributes(t)
	}
	adjustForeignAttributes(t)
	p.c.insertForeignElement(t, ns)
	if t.SelfClosing {
		p.c.popOpenElement()
		t.SelfClosingAcknowledged = true
	}
}

func (p *inBodyPhase) startTagMath(t *Token) *Token {
	p.startTagForeign(t, tree.MathML)
	return nil
}

func (p *inBodyPhase) startTagSvg(t *Token) *Token {
	p.startTagForeign(t, tree.SVG)
	return nil
}

func (p *inBodyPhase) startTagMisplaced(t *Token) *Token {
	p.c.parseError("unexpected-start-tag-ignored", "name", t.TagName)
	return nil
}

func (p *inBodyPhase) startTagOther(t *Token) *Token {
	p.c.reconstructActiveFormattingElements()
	p.c.insertHTMLElement(t)
	return nil
}

func (p *inBodyPhase) endTagP(t *Token) *Token {
	if !p.c.elementInScope("p", buttonScope) {
		p.startTagCloseP(impliedTag(StartTagToken, "p"))
		p.c.parseError("unexpected-end-tag", "name", "p")
		p.endTagP(impliedTag(EndTagToken, "p"))
		return nil
	}
	p.c.generateImpliedEndTags("p")
	if !p.c.currentNodeIs("p") {
		p.c.parseError("unexpected-end-tag", "name", "p")
	}
	p.c.popUntil("p")
	return nil
}

func (p *inBodyPhase) endTagBody(t *Token) *Token {
	if !p.c.elementInScope("body", defaultScope) {
		p.c.parseError("unexpected-end-tag", "name", "body")
		return nil
	}
	if !p.c.currentNodeIs("body") {
		for _, node := range p.c.stackOfOpenElements[2:] {
			if !isHTML(node, "dd", "dt", "li", "optgroup", "option", "p", "rp", "rt", "tbody",
				"td", "tfoot", "th", "thead", "tr", "body", "html") {
				p.c.parseError("expected-one-end-tag-but-got-another",
					"gotName", "body", "expectedName", node.Name())
				break
			}
		}
	}
	p.c.switchMode(afterBody)
	return nil
}

func (p *inBodyPhase) endTagHTML(t *Token) *Token {
	if p.c.elementInScope("body", defaultScope) {
		p.endTagBody(impliedTag(EndTagToken, "body"))
		return t
	}
	p.c.parseError("unexpected-end-tag", "name", "html")
	return nil
}

func (p *inBodyPhase) endTagBlock(t *Token) *Token {
	inScope := p.c.elementInScope(t.TagName, defaultScope)
	if inScope {
		p.c.generateImpliedEndTags("")
	}
	if !p.c.currentNodeIs(t.TagName) {
		p.c.parseError("end-tag-too-early", "name", t.TagName)
	}
	if inScope {
		p.c.popUntil(t.TagName)
	}
	return nil
}

func (p *inBodyPhase) endTagForm(t *Token) *Token {
	node := p.c.formElementPointer
	p.c.formElementPointer = nil
	if node == nil || !p.c.nodeInScope(node, defaultScope) {
		p.c.parseError("unexpected-end-tag", "name", "form")
		return nil
	}
	p.c.generateImpliedEndTags("")
	if p.c.currentNode() != node {
		p.c.parseError("end-tag-too-early-ignored", "name", "form")
	}
	p.c.stackOfOpenElements = removeNode(p.c.stackOfOpenElements, node)
	return nil
}

func (p *inBodyPhase) endTagListItem(t *Token) *Token {
	variant := defaultScope
	if t.TagName == "li" {
		variant = listItemScope
	}
	if !p.c.elementInScope(t.TagName, variant) {
		p.c.parseError("unexpected-end-tag", "name", t.TagName)
		return nil
	}
	p.c.generateImpliedEndTags(t.TagName)
	if !p.c.currentNodeIs(t.TagName) {
		p.c.parseError("end-tag-too-early", "name", t.TagName)
	}
	p.c.popUntil(t.TagName)
	return nil
}

func (p *inBodyPhase) endTagHeading(t *Token) *Token {
	for _, heading := range headingElements {
		if p.c.elementInScope(heading, defaultScope) {
			p.c.generateImpliedEndTags("")
			break
		}
	}
	if !p.c.currentNodeIs(t.TagName) {
		p.c.parseError("end-tag-too-early", "name", t.TagName)
	}
	for _, heading := range headingElements {
		if p.c.elementInScope(heading, defaultScope) {
			p.c.popUntil(headingElements...)
			break
		}
	}
	return nil
}

func (p *inBodyPhase) endTagFormatting(t *Token) *Token {
	p.c.adoptionAgencyAlgorithm(t)
	return nil
}

func (p *inBodyPhase) endTagAppletMarqueeObject(t *Token) *Token {
	if p.c.elementInScope(t.TagName, defaultScope) {
		p.c.generateImpliedEndTags("")
	}
	if !p.c.currentNodeIs(t.TagName) {
		p.c.parseError("end-tag-too-early", "name", t.TagName)
	}
	if p.c.elementInScope(t.TagName, defaultScope) {
		p.c.popUntil(t.TagName)
		p.c.clearActiveFormattingElements()
	}
	return nil
}

func (p *inBodyPhase) endTagBr(t *Token) *Token {
	p.c.parseError("unexpected-end-tag-treated-as", "originalName", "br", "newName", "br element")
	p.c.reconstructActiveFormattingElements()
	p.c.insertHTMLElement(impliedTag(StartTagToken, "br"))
	p.c.popOpenElement()
	return nil
}

func (p *inBodyPhase) endTagOther(t *Token) *Token {
	p.c.inBodyEndTagOther(t)
	return nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incdata
type textPhase struct {
	basePhase
}

func newTextPhase(c *HTMLTreeConstructor) *textPhase {
	p := &textPhase{basePhase{c: c}}
	p.startTags = newTagTable(p.startTagOther)
	p.endTags = newTagTable(p.endTagOther)
	return p
}

func (p *textPhase) processEOF() bool {
	p.c.parseError("expected-named-closing-tag-but-got-eof", "name", p.c.currentNode().Name())
	p.c.popOpenElement()
	p.c.switchMode(p.c.originalInsertionMode)
	return true
}

// startTagOther cannot happen: the tokenizer emits no tags in the text
// states. The tag is dropped.
func (p *textPhase) startTagOther(t *Token) *Token {
	p.c.parseError("unexpected-start-tag", "name", t.TagName)
	return nil
}

func (p *textPhase) endTagOther(t *Token) *Token {
	p.c.popOpenElement()
	p.c.switchMode(p.c.originalInsertionMode)
	return nil
}
