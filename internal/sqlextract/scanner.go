// Package sqlextract derives lineage nodes from SQL source: every
// schema-qualified CREATE TABLE / CREATE VIEW becomes a node, and the
// statement body's table references become its select_from list.
//
// The scanner below tokenizes just enough SQL to find CREATE targets and
// table references. It is not a dialect-aware parser and does not try to
// be; anything it cannot recognize it skips.
package sqlextract

import "strings"

// tokenKind classifies scanner output.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenSymbol
)

// token is one lexical unit. Ident values are lowercased unless quoted.
type token struct {
	kind  tokenKind
	value string
}

// scanner tokenizes SQL input byte-wise.
type scanner struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
}

func newScanner(input string) *scanner {
	s := &scanner{input: input}
	s.readChar()
	return s
}

// readChar advances to the next character.
func (s *scanner) readChar() {
	if s.readPos >= len(s.input) {
		s.ch = 0 // ASCII NUL = EOF
	} else {
		s.ch = s.input[s.readPos]
	}
	s.pos = s.readPos
	s.readPos++
}

// peekChar returns the next character without advancing.
func (s *scanner) peekChar() byte {
	if s.readPos >= len(s.input) {
		return 0
	}
	return s.input[s.readPos]
}

// next returns the next token, skipping whitespace, comments, and string
// literals (their contents never name a table).
func (s *scanner) next() token {
	for {
		s.skipWhitespace()

		switch {
		case s.ch == 0:
			return token{kind: tokenEOF}
		case s.ch == '-' && s.peekChar() == '-':
			s.skipLineComment()
		case s.ch == '/' && s.peekChar() == '*':
			s.skipBlockComment()
		case s.ch == '\'':
			s.skipString()
		case s.ch == '"':
			return s.readQuotedIdent()
		case isIdentStart(s.ch):
			return s.readIdent()
		default:
			ch := s.ch
			s.readChar()
			return token{kind: tokenSymbol, value: string(ch)}
		}
	}
}

func (s *scanner) skipWhitespace() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
		s.readChar()
	}
}

func (s *scanner) skipLineComment() {
	for s.ch != '\n' && s.ch != 0 {
		s.readChar()
	}
}

func (s *scanner) skipBlockComment() {
	s.readChar() // consume /
	s.readChar() // consume *
	for s.ch != 0 {
		if s.ch == '*' && s.peekChar() == '/' {
			s.readChar()
			s.readChar()
			return
		}
		s.readChar()
	}
}

func (s *scanner) skipString() {
	s.readChar() // consume opening quote
	for s.ch != 0 {
		if s.ch == '\'' {
			// '' escapes a quote inside the literal
			if s.peekChar() == '\'' {
				s.readChar()
				s.readChar()
				continue
			}
			s.readChar()
			return
		}
		s.readChar()
	}
}

// readQuotedIdent reads a "double-quoted" identifier, preserving case.
func (s *scanner) readQuotedIdent() token {
	s.readChar() // consume opening quote
	start := s.pos
	for s.ch != '"' && s.ch != 0 {
		s.readChar()
	}
	value := s.input[start:s.pos]
	if s.ch == '"' {
		s.readChar()
	}
	return token{kind: tokenIdent, value: value}
}

// readIdent reads an unquoted identifier or keyword, lowercased.
func (s *scanner) readIdent() token {
	start := s.pos
	for isIdentPart(s.ch) {
		s.readChar()
	}
	return token{kind: tokenIdent, value: strings.ToLower(s.input[start:s.pos])}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || ('0' <= ch && ch <= '9') || ch == '$'
}
