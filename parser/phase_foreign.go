package parser

import (
	"strings"

	"github.com/heathj/html5parse/parser/tree"
)

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inforeign
type inForeignContentPhase struct {
	basePhase
}

func newInForeignContentPhase(c *HTMLTreeConstructor) *inForeignContentPhase {
	return &inForeignContentPhase{basePhase{c: c}}
}

func (p *inForeignContentPhase) processCharacters(t *Token) *Token {
	if t.Data == "\u0000" {
		t.Data = "�"
	} else if p.c.framesetOK && strings.Trim(t.Data, spaceCharacters) != "" {
		p.c.framesetOK = false
	}
	p.c.insertText(t.Data)
	return nil
}

func (p *inForeignContentPhase) processStartTag(t *Token) *Token {
	if isForeignBreakout(t) && !p.c.inForeignFragment() {
		p.c.parseError("unexpected-html-element-in-foreign-content", "name", t.TagName)
		for {
			node := p.c.currentNode()
			if node.Namespace() == tree.HTML || isHTMLIntegrationPoint(node) || isMathMLTextIntegrationPoint(node) {
				break
			}
			p.c.popOpenElement()
		}
		return p.c.phase().processStartTag(t)
	}

	ns := p.c.adjustedCurrentNode().Namespace()
	switch ns {
	case tree.MathML:
		adjustMathMLAttributes(t)
	case tree.SVG:
		adjustSVGTagName(t)
		adjustSVGAttributes(t)
	}
	adjustForeignAttributes(t)
	p.c.insertForeignElement(t, ns)
	if t.SelfClosing {
		p.c.popOpenElement()
		t.SelfClosingAcknowledged = true
	}
	return nil
}

func (p *inForeignContentPhase) processEndTag(t *Token) *Token {
	i := len(p.c.stackOfOpenElements) - 1
	node := p.c.stackOfOpenElements[i]
	if strings.ToLower(node.Name()) != t.TagName {
		p.c.parseError("unexpected-end-tag", "name", t.TagName)
	}

	for i > 0 {
		if strings.ToLower(node.Name()) == t.TagName {
			if p.c.mode == inTableText {
				p.c.flushPendingTableCharacters()
				p.c.switchMode(p.c.tableTextOriginalMode)
			}
			p.c.popUntilNode(node)
			return nil
		}
		i--
		node = p.c.stackOfOpenElements[i]
		if node.Namespace() == tree.HTML {
			return p.c.phase().processEndTag(t)
		}
	}
	return nil
}
