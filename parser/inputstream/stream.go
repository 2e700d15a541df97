// Package inputstream turns raw document bytes into the character stream the
// tokenizer reads from.
package inputstream

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

const invalidCodepoint = "invalid-codepoint"

// Config controls how the bytes are decoded.
type Config struct {
	// Encoding is a transport layer encoding label. When set the
	// encoding is certain and <meta> declarations are ignored.
	Encoding string
	// ContentType is an HTTP Content-Type header used by the sniffer.
	ContentType string
}

// Stream is a decoded, newline normalised character stream with a single
// character of pushback.
type Stream struct {
	raw      []byte
	chars    []rune
	pos      int
	line     int
	col      int
	prevLine int
	prevCol  int

	encoding encoding.Encoding
	encName  string
	certain  bool

	// checked is the index below which characters were already validated.
	checked    int
	errors     []string
	canUnget   bool
	lastWasEOF bool
}

// New decodes raw according to cfg, sniffing the encoding when cfg does not
// name one.
func New(raw []byte, cfg Config) (*Stream, error) {
	s := &Stream{raw: raw, line: 1}
	if cfg.Encoding != "" {
		enc, err := htmlindex.Get(cfg.Encoding)
		if err != nil {
			return nil, errors.Wrapf(err, "unknown encoding %q", cfg.Encoding)
		}
		name, err := htmlindex.Name(enc)
		if err != nil {
			return nil, errors.Wrapf(err, "unnamed encoding %q", cfg.Encoding)
		}
		s.encoding, s.encName, s.certain = enc, name, true
	} else {
		s.encoding, s.encName, s.certain = charset.DetermineEncoding(raw, cfg.ContentType)
	}

	if err := s.decode(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stream) decode() error {
	decoded, err := s.encoding.NewDecoder().Bytes(s.raw)
	if err != nil {
		return errors.Wrapf(err, "decoding input as %s", s.encName)
	}
	decoded = bytes.TrimPrefix(decoded, []byte("\xef\xbb\xbf"))

	text := strings.ReplaceAll(string(decoded), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	s.chars = []rune(text)
	return nil
}

// Encoding returns the canonical name of the encoding in use and whether it
// is certain.
func (s *Stream) Encoding() (string, bool) {
	return s.encName, s.certain
}

// Next returns the next character. The second result is true at EOF; EOF is
// returned for every call past the end.
func (s *Stream) Next() (rune, bool) {
	if s.pos >= len(s.chars) {
		s.canUnget = true
		s.lastWasEOF = true
		return 0, true
	}
	s.canUnget = true
	s.lastWasEOF = false
	return s.advance(), false
}

func (s *Stream) advance() rune {
	r := s.chars[s.pos]
	if s.pos >= s.checked {
		s.checked = s.pos + 1
		if isInvalidCodepoint(r) {
			s.errors = append(s.errors, invalidCodepoint)
		}
	}
	s.pos++
	s.prevLine, s.prevCol = s.line, s.col
	if r == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	return r
}

// Unget pushes the character returned by the last Next back onto the
// stream. Ungetting EOF is a no-op.
func (s *Stream) Unget() {
	if !s.canUnget {
		panic(errors.New("inputstream: unget without a preceding read"))
	}
	s.canUnget = false
	if s.lastWasEOF {
		return
	}
	s.pos--
	s.line, s.col = s.prevLine, s.prevCol
}

// CharsUntil consumes the longest run of characters not in set (or, when
// invert is true, only characters in set) and returns it.
func (s *Stream) CharsUntil(set string, invert bool) string {
	s.canUnget = false
	start := s.pos
	for s.pos < len(s.chars) {
		if strings.ContainsRune(set, s.chars[s.pos]) != invert {
			break
		}
		s.advance()
	}
	return string(s.chars[start:s.pos])
}

// Position returns the 1-based line and the column of the next character.
func (s *Stream) Position() (int, int) {
	return s.line, s.col
}

// PopErrors returns and clears the character level errors seen so far.
func (s *Stream) PopErrors() []string {
	errs := s.errors
	s.errors = nil
	return errs
}

// ChangeEncoding is called when a <meta> element declares an encoding. It
// returns an *EncodingChangedError when the document must be parsed again.
func (s *Stream) ChangeEncoding(label string) error {
	if s.certain {
		return nil
	}
	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil
	}
	if name == "utf-16be" || name == "utf-16le" {
		_, name = charset.Lookup("utf-8")
	}
	if name == s.encName {
		s.certain = true
		return nil
	}
	return &EncodingChangedError{From: s.encName, To: name}
}

func isInvalidCodepoint(r rune) bool {
	switch {
	case r >= 0x01 && r <= 0x08, r == 0x0B, r >= 0x0E && r <= 0x1F:
		return true
	case r >= 0x7F && r <= 0x9F:
		return true
	case r >= 0xD800 && r <= 0xDFFF:
		return true
	case r >= 0xFDD0 && r <= 0xFDEF:
		return true
	case r&0xFFFE == 0xFFFE && r <= 0x10FFFF:
		return true
	}
	return false
}
