package parser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/atom"
)

type insertionMode uint

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	inHeadNoScript
	afterHead
	inBody
	text
	inTable
	inTableText
	inCaption
	inColumnGroup
	inTableBody
	inRow
	inCell
	inSelect
	inSelectInTable
	inForeignContent
	afterBody
	inFrameset
	afterFrameset
	afterAfterBody
	afterAfterFrameset
)

var insertionModeNames = [...]string{
	initial:            "initial",
	beforeHTML:         "before html",
	beforeHead:         "before head",
	inHead:             "in head",
	inHeadNoScript:     "in head noscript",
	afterHead:          "after head",
	inBody:             "in body",
	text:               "text",
	inTable:            "in table",
	inTableText:        "in table text",
	inCaption:          "in caption",
	inColumnGroup:      "in column group",
	inTableBody:        "in table body",
	inRow:              "in row",
	inCell:             "in cell",
	inSelect:           "in select",
	inSelectInTable:    "in select in table",
	inForeignContent:   "in foreign content",
	afterBody:          "after body",
	inFrameset:         "in frameset",
	afterFrameset:      "after frameset",
	afterAfterBody:     "after after body",
	afterAfterFrameset: "after after frameset",
}

func (m insertionMode) String() string {
	if int(m) < len(insertionModeNames) {
		return insertionModeNames[m]
	}
	return fmt.Sprintf("insertionMode(%d)", m)
}

// phase handles tokens for one insertion mode. A non-nil token returned from
// a process method is handed to the dispatcher again, usually after the
// insertion mode changed. processEOF returns true when the end of file must
// be processed again.
type phase interface {
	processEOF() bool
	processComment(t *Token) *Token
	processDoctype(t *Token) *Token
	processCharacters(t *Token) *Token
	processSpaceCharacters(t *Token) *Token
	processStartTag(t *Token) *Token
	processEndTag(t *Token) *Token
}

type tagHandler func(t *Token) *Token

// tagTable dispatches tags by name, falling back to other.
type tagTable struct {
	byAtom map[atom.Atom]tagHandler
	byName map[string]tagHandler
	other  tagHandler
}

func newTagTable(other tagHandler) *tagTable {
	return &tagTable{
		byAtom: map[atom.Atom]tagHandler{},
		byName: map[string]tagHandler{},
		other:  other,
	}
}

func (tt *tagTable) add(h tagHandler, names ...string) {
	for _, name := range names {
		if a := atom.Lookup([]byte(name)); a != 0 {
			tt.byAtom[a] = h
			continue
		}
		tt.byName[name] = h
	}
}

func (tt *tagTable) lookup(t *Token) tagHandler {
	if t.Atom != 0 {
		if h, ok := tt.byAtom[t.Atom]; ok {
			return h
		}
	} else if h, ok := tt.byName[t.TagName]; ok {
		return h
	}
	return tt.other
}

// basePhase holds the behaviour most insertion modes share.
type basePhase struct {
	c         *HTMLTreeConstructor
	startTags *tagTable
	endTags   *tagTable
}

func (p *basePhase) processEOF() bool {
	return false
}

func (p *basePhase) processComment(t *Token) *Token {
	p.c.insertComment(t, nil)
	return nil
}

func (p *basePhase) processDoctype(t *Token) *Token {
	p.c.parseError("unexpected-doctype")
	return nil
}

func (p *basePhase) processCharacters(t *Token) *Token {
	p.c.insertText(t.Data)
	return nil
}

// keepSpaces drops everything but the space characters from s.
func keepSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if isSpace(r) {
			return r
		}
		return -1
	}, s)
}

func (p *basePhase) processSpaceCharacters(t *Token) *Token {
	p.c.insertText(t.Data)
	return nil
}

func (p *basePhase) processStartTag(t *Token) *Token {
	return p.startTags.lookup(t)(t)
}

func (p *basePhase) processEndTag(t *Token) *Token {
	return p.endTags.lookup(t)(t)
}

// startTagHTML is the "html" start tag rule shared by most modes: merge
// attributes onto the root element.
func (c *HTMLTreeConstructor) startTagHTML(t *Token) *Token {
	if !c.firstStartTag && t.TagName == "html" {
		c.parseError("non-html-root")
	}
	c.tree.AddAttributes(c.stackOfOpenElements[0], t.Attributes)
	c.firstStartTag = false
	return nil
}
