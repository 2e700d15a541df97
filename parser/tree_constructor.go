package parser

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/html5parse/parser/tree"
)

type quirksMode string

const (
	noQuirks      quirksMode = "no-quirks"
	quirks        quirksMode = "quirks"
	limitedQuirks quirksMode = "limited-quirks"
)

// maxReprocess bounds the reprocess chain of a single token.
const maxReprocess = 64

// scopeMarker separates the formatting elements opened in different
// scopes in the list of active formatting elements.
type scopeMarker struct{}

func (*scopeMarker) Name() string               { return "" }
func (*scopeMarker) Namespace() tree.Namespace  { return tree.None }
func (*scopeMarker) Attributes() tree.Attributes { return nil }
func (*scopeMarker) Parent() tree.Node          { return nil }

var marker tree.Node = &scopeMarker{}

// treeConfig is the part of the parser configuration the dispatcher uses.
type treeConfig struct {
	scripting bool
	strict    bool
}

// HTMLTreeConstructor holds the state for various state of the tree construction phase.
type HTMLTreeConstructor struct {
	tree     tree.Tree
	document tree.Node
	stream   CharacterStream
	log      *logrus.Entry
	config   treeConfig
	// context is the detached context element of a fragment parse.
	context tree.Node

	quirksMode                                    quirksMode
	stackOfOpenElements, activeFormattingElements []tree.Node
	headElementPointer                            tree.Node
	formElementPointer                            tree.Node
	// fosterParenting redirects insertions into table structure to before
	// the table.
	fosterParenting bool
	framesetOK      bool
	firstStartTag   bool
	// dropNewline drops a leading newline from the next token.
	dropNewline bool

	mode                  insertionMode
	originalInsertionMode insertionMode
	mappings              map[insertionMode]phase

	// pendingTableCharacters are buffered by the in table text mode.
	pendingTableCharacters []*Token
	tableTextOriginalMode  insertionMode

	// tokenizerState is a state switch the tokenizer picks up before the
	// next token.
	tokenizerState *tokenizerState

	errs     []*ParseError
	abortErr error
}

// NewHTMLTreeConstructor creates an HTMLTreeConstructor building into t.
func NewHTMLTreeConstructor(stream CharacterStream, t tree.Tree, log *logrus.Entry, config treeConfig) *HTMLTreeConstructor {
	c := &HTMLTreeConstructor{
		tree:       t,
		document:   t.Document(),
		stream:     stream,
		log:        log,
		config:     config,
		quirksMode: noQuirks,
		framesetOK: true,
		mode:       initial,
	}
	c.createMappings()
	return c
}

func (c *HTMLTreeConstructor) createMappings() {
	c.mappings = map[insertionMode]phase{
		initial:            newInitialPhase(c),
		beforeHTML:         newBeforeHTMLPhase(c),
		beforeHead:         newBeforeHeadPhase(c),
		inHead:             newInHeadPhase(c),
		inHeadNoScript:     newInHeadNoScriptPhase(c),
		afterHead:          newAfterHeadPhase(c),
		inBody:             newInBodyPhase(c),
		text:               newTextPhase(c),
		inTable:            newInTablePhase(c),
		inTableText:        newInTableTextPhase(c),
		inCaption:          newInCaptionPhase(c),
		inColumnGroup:      newInColumnGroupPhase(c),
		inTableBody:        newInTableBodyPhase(c),
		inRow:              newInRowPhase(c),
		inCell:             newInCellPhase(c),
		inSelect:           newInSelectPhase(c),
		inSelectInTable:    newInSelectInTablePhase(c),
		inForeignContent:   newInForeignContentPhase(c),
		afterBody:          newAfterBodyPhase(c),
		inFrameset:         newInFramesetPhase(c),
		afterFrameset:      newAfterFramesetPhase(c),
		afterAfterBody:     newAfterAfterBodyPhase(c),
		afterAfterFrameset: newAfterAfterFramesetPhase(c),
	}
}

// Errors returns the parse error log.
func (c *HTMLTreeConstructor) Errors() []*ParseError {
	return c.errs
}

// Err returns the error that stopped tree construction, if any.
func (c *HTMLTreeConstructor) Err() error {
	return c.abortErr
}

func (c *HTMLTreeConstructor) parseError(code string, vars ...string) {
	var m map[string]string
	if len(vars) > 1 {
		m = make(map[string]string, len(vars)/2)
		for i := 0; i+1 < len(vars); i += 2 {
			m[vars[i]] = vars[i+1]
		}
	}
	c.logParseError(code, m)
}

func (c *HTMLTreeConstructor) logParseError(code string, vars map[string]string) {
	line, col := c.stream.Position()
	perr := &ParseError{Line: line, Col: col, Code: code, Vars: vars}
	c.errs = append(c.errs, perr)
	c.log.WithFields(logrus.Fields{
		"line": line,
		"col":  col,
		"code": code,
	}).Debug("parse error")

	if c.config.strict && c.abortErr == nil {
		c.abortErr = errors.Wrap(perr, "strict parse")
	}
}

func (c *HTMLTreeConstructor) phase() phase {
	return c.mappings[c.mode]
}

func (c *HTMLTreeConstructor) switchMode(mode insertionMode) {
	if mode == c.mode {
		return
	}
	c.log.WithFields(logrus.Fields{
		"from": c.mode,
		"to":   mode,
	}).Trace("insertion mode")
	c.mode = mode
}

func (c *HTMLTreeConstructor) switchTokenizer(state tokenizerState) {
	c.tokenizerState = &state
}

// progress returns the feedback the tokenizer needs before the next token.
func (c *HTMLTreeConstructor) progress() *Progress {
	node := c.adjustedCurrentNode()
	p := &Progress{
		TokenizerState: c.tokenizerState,
		ForeignContent: node != nil && node.Namespace() != tree.HTML,
	}
	c.tokenizerState = nil
	return p
}

// actingPhase picks the phase that handles t: the current insertion mode,
// or the foreign content rules when the current node is a foreign element
// that is not an integration point for t.
func (c *HTMLTreeConstructor) actingPhase(t *Token) phase {
	node := c.adjustedCurrentNode()
	if node == nil || node.Namespace() == tree.HTML {
		return c.phase()
	}

	isChars := t.TokenType == CharacterToken || t.TokenType == SpaceCharactersToken
	isStart := t.TokenType == StartTagToken
	switch {
	case isMathMLTextIntegrationPoint(node) &&
		((isStart && t.TagName != "mglyph" && t.TagName != "malignmark") || isChars):
		return c.phase()
	case node.Namespace() == tree.MathML && node.Name() == "annotation-xml" && isStart && t.TagName == "svg":
		return c.phase()
	case isHTMLIntegrationPoint(node) && (isStart || isChars):
		return c.phase()
	}
	return c.mappings[inForeignContent]
}

// ProcessToken runs t through the dispatcher and returns the feedback for
// the tokenizer.
func (c *HTMLTreeConstructor) ProcessToken(t *Token) *Progress {
	if c.abortErr != nil {
		return c.progress()
	}

	if t.TokenType == ParseErrorToken {
		c.logParseError(t.Data, t.ErrorVars)
		return c.progress()
	}

	if c.dropNewline {
		c.dropNewline = false
		if (t.TokenType == SpaceCharactersToken || t.TokenType == CharacterToken) && strings.HasPrefix(t.Data, "\n") {
			t.Data = t.Data[1:]
			if t.Data == "" {
				return c.progress()
			}
		}
	}

	current := t
	for i := 0; current != nil; i++ {
		if i == maxReprocess {
			panic(errors.Wrapf(errReprocessLimit, "token %s in %s", t, c.mode))
		}
		if c.abortErr != nil {
			return c.progress()
		}
		p := c.actingPhase(current)
		switch current.TokenType {
		case CharacterToken:
			current = p.processCharacters(current)
		case SpaceCharactersToken:
			current = p.processSpaceCharacters(current)
		case StartTagToken:
			current = p.processStartTag(current)
		case EndTagToken:
			current = p.processEndTag(current)
		case CommentToken:
			current = p.processComment(current)
		case DocTypeToken:
			current = p.processDoctype(current)
		default:
			current = nil
		}
	}

	if t.TokenType == StartTagToken && t.SelfClosing && !t.SelfClosingAcknowledged {
		c.parseError("non-void-element-with-trailing-solidus", "name", t.TagName)
	}
	return c.progress()
}

// ProcessEOF runs the end of file handling of the current insertion mode
// until it stops asking to be reprocessed.
func (c *HTMLTreeConstructor) ProcessEOF() {
	for i := 0; i < len(c.mappings) && c.abortErr == nil; i++ {
		if !c.phase().processEOF() {
			return
		}
	}
}

// Open elements.

func (c *HTMLTreeConstructor) currentNode() tree.Node {
	return c.stackOfOpenElements[len(c.stackOfOpenElements)-1]
}

// adjustedCurrentNode is the context element while only the root is open
// in a fragment parse, and the current node otherwise.
// https://html.spec.whatwg.org/multipage/parsing.html#adjusted-current-node
func (c *HTMLTreeConstructor) adjustedCurrentNode() tree.Node {
	switch {
	case len(c.stackOfOpenElements) == 0:
		return nil
	case c.context != nil && len(c.stackOfOpenElements) == 1:
		return c.context
	}
	return c.currentNode()
}

// inForeignFragment reports whether this is a fragment parse whose context
// element is foreign content. HTML elements cannot break out of it, since
// the context stays the adjusted current node once everything above the
// root is popped.
func (c *HTMLTreeConstructor) inForeignFragment() bool {
	if c.context == nil {
		return false
	}
	return c.context.Namespace() != tree.HTML &&
		!isHTMLIntegrationPoint(c.context) &&
		!isMathMLTextIntegrationPoint(c.context)
}

func (c *HTMLTreeConstructor) currentNodeIs(names ...string) bool {
	return isHTML(c.currentNode(), names...)
}

func (c *HTMLTreeConstructor) pushOpenElement(n tree.Node) {
	c.stackOfOpenElements = append(c.stackOfOpenElements, n)
}

func (c *HTMLTreeConstructor) popOpenElement() tree.Node {
	last := len(c.stackOfOpenElements) - 1
	n := c.stackOfOpenElements[last]
	c.stackOfOpenElements = c.stackOfOpenElements[:last]
	return n
}

// popUntil pops elements until an HTML element with one of names was popped.
func (c *HTMLTreeConstructor) popUntil(names ...string) {
	for len(c.stackOfOpenElements) > 0 {
		if isHTML(c.popOpenElement(), names...) {
			return
		}
	}
}

// popUntilNode pops elements until n was popped.
func (c *HTMLTreeConstructor) popUntilNode(n tree.Node) {
	for len(c.stackOfOpenElements) > 0 {
		if c.popOpenElement() == n {
			return
		}
	}
}

func indexOf(nodes []tree.Node, n tree.Node) int {
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i] == n {
			return i
		}
	}
	return -1
}

func removeNode(nodes []tree.Node, n tree.Node) []tree.Node {
	if i := indexOf(nodes, n); i != -1 {
		return append(nodes[:i], nodes[i+1:]...)
	}
	return nodes
}

func insertNodeAt(nodes []tree.Node, i int, n tree.Node) []tree.Node {
	nodes = append(nodes, nil)
	copy(nodes[i+1:], nodes[i:])
	nodes[i] = n
	return nodes
}

func (c *HTMLTreeConstructor) isOpen(n tree.Node) bool {
	return indexOf(c.stackOfOpenElements, n) != -1
}

// clearStackBackTo pops until the current node is an HTML element with one
// of names.
func (c *HTMLTreeConstructor) clearStackBackTo(names ...string) {
	for !c.currentNodeIs(names...) {
		c.popOpenElement()
	}
}

// Scope.

type scopeVariant uint

const (
	defaultScope scopeVariant = iota
	buttonScope
	listItemScope
	tableScope
	selectScope
)

func (v scopeVariant) isBoundary(n tree.Node) bool {
	switch v {
	case buttonScope:
		return isScoping(n) || isHTML(n, "button")
	case listItemScope:
		return isScoping(n) || isHTML(n, "ol", "ul")
	case tableScope:
		return isHTML(n, "html", "table")
	case selectScope:
		// select scope is made of everything but optgroup and option.
		return !isHTML(n, "optgroup", "option")
	}
	return isScoping(n)
}

// https://html.spec.whatwg.org/multipage/parsing.html#has-an-element-in-the-specific-scope
func (c *HTMLTreeConstructor) elementInScope(target string, variant scopeVariant) bool {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		n := c.stackOfOpenElements[i]
		if isHTML(n, target) {
			return true
		}
		if variant.isBoundary(n) {
			return false
		}
	}
	return false
}

func (c *HTMLTreeConstructor) nodeInScope(target tree.Node, variant scopeVariant) bool {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		n := c.stackOfOpenElements[i]
		if n == target {
			return true
		}
		if variant.isBoundary(n) {
			return false
		}
	}
	return false
}

// https://html.spec.whatwg.org/multipage/parsing.html#generate-implied-end-tags
func (c *HTMLTreeConstructor) generateImpliedEndTags(exclude string) {
	for len(c.stackOfOpenElements) > 0 {
		n := c.currentNode()
		if n.Name() == exclude || !isHTML(n, "dd", "dt", "li", "option", "optgroup", "p", "rp", "rt") {
			return
		}
		c.popOpenElement()
	}
}

// Active formatting elements.

func sameFormattingElement(a, b tree.Node) bool {
	return a.Name() == b.Name() &&
		a.Namespace() == b.Namespace() &&
		a.Attributes().Equal(b.Attributes())
}

// pushActiveFormattingElement appends elem, evicting the earliest of three
// identical entries after the last marker first.
func (c *HTMLTreeConstructor) pushActiveFormattingElement(elem tree.Node) {
	var matching []tree.Node
	for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
		n := c.activeFormattingElements[i]
		if n == marker {
			break
		}
		if sameFormattingElement(n, elem) {
			matching = append(matching, n)
		}
	}
	if len(matching) >= 3 {
		c.activeFormattingElements = removeNode(c.activeFormattingElements, matching[len(matching)-1])
	}
	c.activeFormattingElements = append(c.activeFormattingElements, elem)
}

func (c *HTMLTreeConstructor) pushMarker() {
	c.activeFormattingElements = append(c.activeFormattingElements, marker)
}

// https://html.spec.whatwg.org/multipage/parsing.html#clear-the-list-of-active-formatting-elements-up-to-the-last-marker
func (c *HTMLTreeConstructor) clearActiveFormattingElements() {
	for len(c.activeFormattingElements) > 0 {
		last := len(c.activeFormattingElements) - 1
		n := c.activeFormattingElements[last]
		c.activeFormattingElements = c.activeFormattingElements[:last]
		if n == marker {
			return
		}
	}
}

// activeFormattingElement returns the last element named name after the
// last marker.
func (c *HTMLTreeConstructor) activeFormattingElement(name string) tree.Node {
	for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
		n := c.activeFormattingElements[i]
		if n == marker {
			return nil
		}
		if n.Name() == name {
			return n
		}
	}
	return nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#reconstruct-the-active-formatting-elements
func (c *HTMLTreeConstructor) reconstructActiveFormattingElements() {
	if len(c.activeFormattingElements) == 0 {
		return
	}
	i := len(c.activeFormattingElements) - 1
	entry := c.activeFormattingElements[i]
	if entry == marker || c.isOpen(entry) {
		return
	}

	// rewind to the entry after the last marker or open element.
	for entry != marker && !c.isOpen(entry) {
		if i == 0 {
			i = -1
			break
		}
		i--
		entry = c.activeFormattingElements[i]
	}

	for {
		i++
		entry = c.activeFormattingElements[i]
		elem := c.insertElement(entry.Name(), entry.Namespace(), entry.Attributes().Clone())
		c.activeFormattingElements[i] = elem
		if i == len(c.activeFormattingElements)-1 {
			return
		}
	}
}

// Insertion.

func (c *HTMLTreeConstructor) createElement(t *Token, ns tree.Namespace) tree.Node {
	return c.tree.CreateElement(t.TagName, ns, t.Attributes.Clone())
}

// insertElement creates an element and inserts it at the appropriate place,
// fostering it out of table structure when needed, and pushes it onto the
// stack of open elements.
// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-foreign-element
func (c *HTMLTreeConstructor) insertElement(name string, ns tree.Namespace, attrs tree.Attributes) tree.Node {
	elem := c.tree.CreateElement(name, ns, attrs)
	if c.fosterParenting && c.currentNodeIs("table", "tbody", "tfoot", "thead", "tr") {
		parent, ref := c.fosterParentPosition()
		c.tree.InsertBefore(parent, elem, ref)
	} else {
		c.tree.AppendChild(c.currentNode(), elem)
	}
	c.pushOpenElement(elem)
	return elem
}

func (c *HTMLTreeConstructor) insertHTMLElement(t *Token) tree.Node {
	return c.insertElement(t.TagName, tree.HTML, t.Attributes.Clone())
}

func (c *HTMLTreeConstructor) insertForeignElement(t *Token, ns tree.Namespace) tree.Node {
	return c.insertElement(t.TagName, ns, t.Attributes.Clone())
}

// insertVoidElement inserts an element that is popped right away and
// acknowledges the self-closing flag.
func (c *HTMLTreeConstructor) insertVoidElement(t *Token) {
	c.insertHTMLElement(t)
	c.popOpenElement()
	t.SelfClosingAcknowledged = true
}

// insertRoot creates the html element as the child of the document.
func (c *HTMLTreeConstructor) insertRoot(t *Token) {
	elem := c.createElement(t, tree.HTML)
	c.pushOpenElement(elem)
	c.tree.AppendChild(c.document, elem)
}

// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-character
func (c *HTMLTreeConstructor) insertText(data string) {
	if c.fosterParenting && c.currentNodeIs("table", "tbody", "tfoot", "thead", "tr") {
		parent, ref := c.fosterParentPosition()
		c.tree.InsertText(parent, data, ref)
		return
	}
	c.tree.InsertText(c.currentNode(), data, nil)
}

// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-comment
func (c *HTMLTreeConstructor) insertComment(t *Token, parent tree.Node) {
	if parent == nil {
		parent = c.currentNode()
	}
	c.tree.AppendChild(parent, c.tree.CreateComment(t.Data))
}

func (c *HTMLTreeConstructor) insertDoctype(t *Token) {
	c.tree.AppendChild(c.document, c.tree.CreateDoctype(t.TagName, t.PublicIdentifier, t.SystemIdentifier))
}

// fosterParentPosition finds where content that is misnested in a table
// goes: right before the last table, or at the end of the element below it
// when the table has no parent.
// https://html.spec.whatwg.org/multipage/parsing.html#foster-parent
func (c *HTMLTreeConstructor) fosterParentPosition() (parent, ref tree.Node) {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		table := c.stackOfOpenElements[i]
		if !isHTML(table, "table") {
			continue
		}
		if p := table.Parent(); p != nil {
			return p, table
		}
		return c.stackOfOpenElements[i-1], nil
	}
	return c.stackOfOpenElements[0], nil
}

// parseRawText inserts an element whose content is tokenized as RCDATA or
// RAWTEXT and switches to the text insertion mode.
// https://html.spec.whatwg.org/multipage/parsing.html#generic-raw-text-element-parsing-algorithm
func (c *HTMLTreeConstructor) parseRawText(t *Token, state tokenizerState) {
	c.insertHTMLElement(t)
	c.switchTokenizer(state)
	c.originalInsertionMode = c.mode
	c.switchMode(text)
}

// https://html.spec.whatwg.org/multipage/parsing.html#reset-the-insertion-mode-appropriately
func (c *HTMLTreeConstructor) resetInsertionMode() {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		node := c.stackOfOpenElements[i]
		name := node.Name()
		last := i == 0
		if last && c.context != nil {
			node = c.context
			name = node.Name()
		}
		if node.Namespace() != tree.HTML {
			if last {
				c.switchMode(inBody)
				return
			}
			continue
		}

		switch name {
		case "select":
			c.switchMode(inSelect)
			return
		case "td", "th":
			c.switchMode(inCell)
			return
		case "tr":
			c.switchMode(inRow)
			return
		case "tbody", "thead", "tfoot":
			c.switchMode(inTableBody)
			return
		case "caption":
			c.switchMode(inCaption)
			return
		case "colgroup":
			c.switchMode(inColumnGroup)
			return
		case "table":
			c.switchMode(inTable)
			return
		case "head", "body":
			c.switchMode(inBody)
			return
		case "frameset":
			c.switchMode(inFrameset)
			return
		case "html":
			if c.headElementPointer == nil {
				c.switchMode(beforeHead)
			} else {
				c.switchMode(afterHead)
			}
			return
		}
		if last {
			c.switchMode(inBody)
			return
		}
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#adoption-agency-algorithm
func (c *HTMLTreeConstructor) adoptionAgencyAlgorithm(t *Token) {
	for outer := 0; outer < 8; outer++ {
		formattingElement := c.activeFormattingElement(t.TagName)
		if formattingElement == nil ||
			(c.isOpen(formattingElement) && !c.elementInScope(formattingElement.Name(), defaultScope)) {
			c.inBodyEndTagOther(t)
			return
		}
		if !c.isOpen(formattingElement) {
			c.parseError("adoption-agency-1.2", "name", t.TagName)
			c.activeFormattingElements = removeNode(c.activeFormattingElements, formattingElement)
			return
		}
		if formattingElement != c.currentNode() {
			c.parseError("adoption-agency-1.3", "name", t.TagName)
		}

		// the furthest block is the topmost special element below the
		// formatting element.
		feIndex := indexOf(c.stackOfOpenElements, formattingElement)
		var furthestBlock tree.Node
		for _, n := range c.stackOfOpenElements[feIndex:] {
			if isSpecial(n) {
				furthestBlock = n
				break
			}
		}
		if furthestBlock == nil {
			c.popUntilNode(formattingElement)
			c.activeFormattingElements = removeNode(c.activeFormattingElements, formattingElement)
			return
		}

		commonAncestor := c.stackOfOpenElements[feIndex-1]
		bookmark := indexOf(c.activeFormattingElements, formattingElement)

		node, lastNode := furthestBlock, furthestBlock
		index := indexOf(c.stackOfOpenElements, node)
		for inner := 0; inner < 3; inner++ {
			index--
			node = c.stackOfOpenElements[index]
			if indexOf(c.activeFormattingElements, node) == -1 {
				c.stackOfOpenElements = removeNode(c.stackOfOpenElements, node)
				continue
			}
			if node == formattingElement {
				break
			}
			if lastNode == furthestBlock {
				bookmark = indexOf(c.activeFormattingElements, node) + 1
			}
			clone := c.tree.CloneNode(node)
			c.activeFormattingElements[indexOf(c.activeFormattingElements, node)] = clone
			c.stackOfOpenElements[indexOf(c.stackOfOpenElements, node)] = clone
			node = clone
			if p := lastNode.Parent(); p != nil {
				c.tree.RemoveChild(p, lastNode)
			}
			c.tree.AppendChild(node, lastNode)
			lastNode = node
		}

		if p := lastNode.Parent(); p != nil {
			c.tree.RemoveChild(p, lastNode)
		}
		if isHTML(commonAncestor, "table", "tbody", "tfoot", "thead", "tr") {
			parent, ref := c.fosterParentPosition()
			c.tree.InsertBefore(parent, lastNode, ref)
		} else {
			c.tree.AppendChild(commonAncestor, lastNode)
		}

		clone := c.tree.CloneNode(formattingElement)
		c.tree.ReparentChildren(furthestBlock, clone)
		c.tree.AppendChild(furthestBlock, clone)

		c.activeFormattingElements = removeNode(c.activeFormattingElements, formattingElement)
		if bookmark > len(c.activeFormattingElements) {
			bookmark = len(c.activeFormattingElements)
		}
		c.activeFormattingElements = insertNodeAt(c.activeFormattingElements, bookmark, clone)

		c.stackOfOpenElements = removeNode(c.stackOfOpenElements, formattingElement)
		c.stackOfOpenElements = insertNodeAt(c.stackOfOpenElements, indexOf(c.stackOfOpenElements, furthestBlock)+1, clone)
	}
}

// inBodyEndTagOther is the "any other end tag" rule of the in body mode.
func (c *HTMLTreeConstructor) inBodyEndTagOther(t *Token) {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		node := c.stackOfOpenElements[i]
		if isHTML(node, t.TagName) {
			c.generateImpliedEndTags(t.TagName)
			if !c.currentNodeIs(t.TagName) {
				c.parseError("unexpected-end-tag", "name", t.TagName)
			}
			c.popUntilNode(node)
			return
		}
		if isSpecial(node) {
			c.parseError("unexpected-end-tag", "name", t.TagName)
			return
		}
	}
}

// insertTextFromTable inserts characters that are not all whitespace while
// a table is open, fostering them out of the table.
func (c *HTMLTreeConstructor) insertTextFromTable(t *Token) {
	c.fosterParenting = true
	c.mappings[inBody].processCharacters(t)
	c.fosterParenting = false
}

// flushPendingTableCharacters commits the characters buffered by the in
// table text mode.
func (c *HTMLTreeConstructor) flushPendingTableCharacters() {
	var data strings.Builder
	for _, t := range c.pendingTableCharacters {
		data.WriteString(t.Data)
	}
	c.pendingTableCharacters = nil

	s := data.String()
	if strings.Trim(s, spaceCharacters) != "" {
		c.parseError("unexpected-char-in-table")
		c.insertTextFromTable(&Token{TokenType: CharacterToken, Data: s})
	} else if s != "" {
		c.insertText(s)
	}
}

// changeEncoding forwards a <meta> encoding declaration to the stream.
func (c *HTMLTreeConstructor) changeEncoding(label string) {
	if label == "" {
		return
	}
	if err := c.stream.ChangeEncoding(label); err != nil && c.abortErr == nil {
		c.abortErr = err
	}
}
