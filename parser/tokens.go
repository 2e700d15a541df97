package parser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/heathj/html5parse/parser/tree"
)

// TokenType is the kind of a Token.
type TokenType uint

const (
	CharacterToken TokenType = iota
	SpaceCharactersToken
	StartTagToken
	EndTagToken
	CommentToken
	DocTypeToken
	ParseErrorToken
)

var tokenTypeNames = [...]string{
	CharacterToken:       "Characters",
	SpaceCharactersToken: "SpaceCharacters",
	StartTagToken:        "StartTag",
	EndTagToken:          "EndTag",
	CommentToken:         "Comment",
	DocTypeToken:         "DOCTYPE",
	ParseErrorToken:      "ParseError",
}

func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

type tagType uint

const (
	startTag tagType = iota
	endTag
)

// Token is a concrete token that is ready to be emitted.
type Token struct {
	TokenType TokenType
	TagName   string
	// Atom is the interned TagName, or zero when the name is not a known
	// atom.
	Atom       atom.Atom
	Attributes tree.Attributes
	// Data holds character data, comment text or a parse error code.
	Data string
	// ErrorVars carries the context of a parse error token.
	ErrorVars map[string]string

	PublicIdentifier    string
	SystemIdentifier    string
	HasPublicIdentifier bool
	HasSystemIdentifier bool
	ForceQuirks         bool

	SelfClosing             bool
	SelfClosingAcknowledged bool
}

func (t *Token) String() string {
	switch t.TokenType {
	case StartTagToken, EndTagToken:
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s", t.TokenType, t.TagName)
		for _, attr := range t.Attributes {
			fmt.Fprintf(&b, " %s=%q", attr.Key, attr.Value)
		}
		if t.SelfClosing {
			b.WriteString(" /")
		}
		return b.String()
	case DocTypeToken:
		s := fmt.Sprintf("%s %s", t.TokenType, t.TagName)
		if t.HasPublicIdentifier {
			s += fmt.Sprintf(" public=%q", t.PublicIdentifier)
		}
		if t.HasSystemIdentifier {
			s += fmt.Sprintf(" system=%q", t.SystemIdentifier)
		}
		if t.ForceQuirks {
			s += " force-quirks"
		}
		return s
	default:
		return fmt.Sprintf("%s %q", t.TokenType, t.Data)
	}
}

func impliedTag(tt TokenType, name string) *Token {
	return &Token{TokenType: tt, TagName: name, Atom: atom.Lookup([]byte(name))}
}

func characterToken(data string) *Token {
	if strings.Trim(data, spaceCharacters) == "" {
		return &Token{TokenType: SpaceCharactersToken, Data: data}
	}
	return &Token{TokenType: CharacterToken, Data: data}
}

func parseErrorToken(code string, vars map[string]string) *Token {
	return &Token{TokenType: ParseErrorToken, Data: code, ErrorVars: vars}
}

// TokenBuilder builds various tokens up during the tokenization
// phase.
type TokenBuilder struct {
	attributes     tree.Attributes
	attributeKey   strings.Builder
	attributeValue strings.Builder
	attrPending    bool
	removeNextAttr bool
	name           strings.Builder
	data           strings.Builder
	tempBuffer     strings.Builder
	publicID       strings.Builder
	systemID       strings.Builder
	hasPublicID    bool
	hasSystemID    bool
	selfClosing    bool
	forceQuirks    bool
	curTagType     tagType
}

func newTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

// NewToken clears everything but the temporary buffer, which has its own
// lifetime in the end tag states.
func (t *TokenBuilder) NewToken() {
	t.attributes = nil
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.attrPending = false
	t.removeNextAttr = false
	t.publicID.Reset()
	t.systemID.Reset()
	t.hasPublicID = false
	t.hasSystemID = false
	t.data.Reset()
	t.name.Reset()
	t.selfClosing = false
	t.forceQuirks = false
}

// NewTag starts a start or end tag token.
func (t *TokenBuilder) NewTag(tt tagType) {
	t.NewToken()
	t.curTagType = tt
}

// EnableSelfClosing changes to the self-closing flag to "set".
func (t *TokenBuilder) EnableSelfClosing() {
	t.selfClosing = true
}

// EnableForceQuirks changes to the force-quirks flag to "set".
func (t *TokenBuilder) EnableForceQuirks() {
	t.forceQuirks = true
}

// WriteName appends a character to the current name value.
func (t *TokenBuilder) WriteName(r rune) {
	t.name.WriteRune(r)
}

// WriteNameString appends a string to the current name value.
func (t *TokenBuilder) WriteNameString(s string) {
	t.name.WriteString(s)
}

// Name returns the name built so far.
func (t *TokenBuilder) Name() string {
	return t.name.String()
}

// WriteData appends a character to the current data section.
func (t *TokenBuilder) WriteData(r rune) {
	t.data.WriteRune(r)
}

// WriteDataString appends a string to the current data section.
func (t *TokenBuilder) WriteDataString(s string) {
	t.data.WriteString(s)
}

// StartAttribute commits the attribute in progress, if any, and begins a
// new one.
func (t *TokenBuilder) StartAttribute() {
	t.CommitAttribute()
	t.attrPending = true
}

// WriteAttributeName appends a character to the current
// attribute's name.
func (t *TokenBuilder) WriteAttributeName(r rune) {
	t.attributeKey.WriteRune(r)
}

// WriteAttributeNameString appends a string to the current attribute's name.
func (t *TokenBuilder) WriteAttributeNameString(s string) {
	t.attributeKey.WriteString(s)
}

// WriteAttributeValue appends a character to the current
// attribute's value.
func (t *TokenBuilder) WriteAttributeValue(r rune) {
	t.attributeValue.WriteRune(r)
}

// WriteAttributeValueString appends a string to the current attribute's
// value.
func (t *TokenBuilder) WriteAttributeValueString(s string) {
	t.attributeValue.WriteString(s)
}

// RemoveDuplicateAttributeName checks if the current name is already
// in the list of commited attributes. If so, the attribute is dropped when
// it is committed.
func (t *TokenBuilder) RemoveDuplicateAttributeName() bool {
	if t.attributes.Has(t.attributeKey.String()) {
		t.removeNextAttr = true
		return true
	}
	return false
}

// CommitAttribute stores the attribute in progress unless it was marked
// as a duplicate.
func (t *TokenBuilder) CommitAttribute() {
	if !t.attrPending {
		return
	}
	if !t.removeNextAttr {
		t.attributes = append(t.attributes, tree.Attribute{
			Key:   t.attributeKey.String(),
			Value: t.attributeValue.String(),
		})
	}
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.attrPending = false
	t.removeNextAttr = false
}

// StartPublicIdentifier marks the public identifier as present and empty.
func (t *TokenBuilder) StartPublicIdentifier() {
	t.publicID.Reset()
	t.hasPublicID = true
}

// WritePublicIdentifier appends a rune to the public identifier buffer.
func (t *TokenBuilder) WritePublicIdentifier(r rune) {
	t.publicID.WriteRune(r)
}

// StartSystemIdentifier marks the system identifier as present and empty.
func (t *TokenBuilder) StartSystemIdentifier() {
	t.systemID.Reset()
	t.hasSystemID = true
}

// WriteSystemIdentifier appends a rune to the system identifier buffer.
func (t *TokenBuilder) WriteSystemIdentifier(r rune) {
	t.systemID.WriteRune(r)
}

// WriteTempBuffer appends a rune to the temporary buffer.
func (t *TokenBuilder) WriteTempBuffer(r rune) {
	t.tempBuffer.WriteRune(r)
}

// ResetTempBuffer clears the temporary buffer.
func (t *TokenBuilder) ResetTempBuffer() {
	t.tempBuffer.Reset()
}

// TempBuffer returns the contents of the temporary buffer.
func (t *TokenBuilder) TempBuffer() string {
	return t.tempBuffer.String()
}

// TagToken returns the start or end tag being built.
func (t *TokenBuilder) TagToken() *Token {
	t.CommitAttribute()
	tt := StartTagToken
	if t.curTagType == endTag {
		tt = EndTagToken
	}
	name := t.name.String()
	return &Token{
		TokenType:   tt,
		TagName:     name,
		Atom:        atom.Lookup([]byte(name)),
		Attributes:  t.attributes,
		SelfClosing: t.selfClosing,
	}
}

// CommentToken returns the comment being built.
func (t *TokenBuilder) CommentToken() *Token {
	return &Token{
		TokenType: CommentToken,
		Data:      t.data.String(),
	}
}

// DocTypeToken returns the doctype being built.
func (t *TokenBuilder) DocTypeToken() *Token {
	return &Token{
		TokenType:           DocTypeToken,
		TagName:             t.name.String(),
		PublicIdentifier:    t.publicID.String(),
		SystemIdentifier:    t.systemID.String(),
		HasPublicIdentifier: t.hasPublicID,
		HasSystemIdentifier: t.hasSystemID,
		ForceQuirks:         t.forceQuirks,
	}
}
