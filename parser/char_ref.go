package parser

import (
	"strconv"
	"strings"
)

// numericCharacterReferenceTable remaps code points that windows-1252
// documents commonly reference by number.
var numericCharacterReferenceTable = map[int]rune{
	0x00: 0xFFFD,
	0x0D: 0x000D,
	0x80: 0x20AC,
	0x81: 0x0081,
	0x82: 0x201A,
	0x83: 0x0192,
	0x84: 0x201E,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02C6,
	0x89: 0x2030,
	0x8A: 0x0160,
	0x8B: 0x2039,
	0x8C: 0x0152,
	0x8D: 0x008D,
	0x8E: 0x017D,
	0x8F: 0x008F,
	0x90: 0x0090,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201C,
	0x94: 0x201D,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02DC,
	0x99: 0x2122,
	0x9A: 0x0161,
	0x9B: 0x203A,
	0x9C: 0x0153,
	0x9D: 0x009D,
	0x9E: 0x017E,
	0x9F: 0x0178,
}

func isNonCharacter(c int) bool {
	return (c >= 0xFDD0 && c <= 0xFDEF) || (c&0xFFFE == 0xFFFE && c <= 0x10FFFF)
}

func isControl(c int) bool {
	return (c >= 0x01 && c <= 0x08) || c == 0x0B || (c >= 0x0E && c <= 0x1F) || (c >= 0x7F && c <= 0x9F)
}

func isSurrogate(c int) bool {
	return c >= 0xD800 && c <= 0xDFFF
}

func isDigit(r rune, hex bool) bool {
	if hex {
		return strings.ContainsRune(asciiHexDigits, r)
	}
	return strings.ContainsRune(asciiDigits, r)
}

// consumeEntity reads a character reference after an '&'. allowedChar, when
// not zero, is a character that makes the '&' literal. Attribute references
// append to the current attribute value, others are emitted as text.
func (p *HTMLTokenizer) consumeEntity(allowedChar rune, fromAttribute bool) {
	output := "&"
	c, eof := p.stream.Next()
	switch {
	case eof || isSpace(c) || c == '<' || c == '&' || (allowedChar != 0 && c == allowedChar):
		p.stream.Unget()
	case c == '#':
		output = p.consumeNumeric()
	default:
		output = p.consumeNamed(c, fromAttribute)
	}

	if fromAttribute {
		p.tokenBuilder.WriteAttributeValueString(output)
		return
	}
	p.emit(characterToken(output))
}

func (p *HTMLTokenizer) consumeNumeric() string {
	prefix := "&#"
	hex := false
	c, eof := p.stream.Next()
	if !eof && (c == 'x' || c == 'X') {
		hex = true
		prefix += string(c)
		c, eof = p.stream.Next()
	}
	p.stream.Unget()
	if eof || !isDigit(c, hex) {
		p.parseError("expected-numeric-entity")
		return prefix
	}
	return p.consumeNumberEntity(hex)
}

func (p *HTMLTokenizer) consumeNumberEntity(hex bool) string {
	radix := 10
	if hex {
		radix = 16
	}

	// values past the last code point all end up as U+FFFD, so stop
	// accumulating there.
	value := 0
	c, eof := p.stream.Next()
	for !eof && isDigit(c, hex) {
		d, _ := strconv.ParseInt(string(c), 16, 32)
		if value <= 0x10FFFF {
			value = value*radix + int(d)
		}
		c, eof = p.stream.Next()
	}

	var char rune
	charAsInt := strconv.Itoa(value)
	if replacement, ok := numericCharacterReferenceTable[value]; ok {
		char = replacement
		p.parseError("illegal-codepoint-for-numeric-entity", "charAsInt", charAsInt)
	} else if isSurrogate(value) || value > 0x10FFFF {
		char = '�'
		p.parseError("illegal-codepoint-for-numeric-entity", "charAsInt", charAsInt)
	} else {
		if isControl(value) || isNonCharacter(value) {
			p.parseError("illegal-codepoint-for-numeric-entity", "charAsInt", charAsInt)
		}
		char = rune(value)
	}

	if eof || c != ';' {
		p.parseError("numeric-entity-without-semicolon")
		p.stream.Unget()
	}
	return string(char)
}

// consumeNamed matches the longest named reference starting with first.
func (p *HTMLTokenizer) consumeNamed(first rune, fromAttribute bool) string {
	chars := []rune{first}
	lastEOF := false
	node := entityTrie().child(first)
	for node != nil {
		c, eof := p.stream.Next()
		if eof {
			lastEOF = true
			break
		}
		chars = append(chars, c)
		node = node.child(c)
	}

	// the character that ended the walk is read again by the caller's state.
	p.stream.Unget()
	consumed := chars
	if !lastEOF {
		consumed = chars[:len(chars)-1]
	}

	m := longestEntityPrefix(consumed)
	if m.length == 0 {
		p.parseError("expected-named-entity")
		return "&" + string(consumed)
	}

	if !strings.HasSuffix(string(consumed[:m.length]), ";") {
		p.parseError("named-entity-without-semicolon")
		if fromAttribute {
			var next rune
			hasNext := false
			if m.length < len(consumed) {
				next, hasNext = consumed[m.length], true
			} else if !lastEOF {
				next, hasNext = chars[len(chars)-1], true
			}
			if hasNext && (isASCIILetter(next) || isDigit(next, false) || next == '=') {
				return "&" + string(consumed)
			}
		}
	}
	return m.value + string(consumed[m.length:])
}
