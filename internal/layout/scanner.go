package layout

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenLifetime
	tokenLiteral
	tokenPunct
)

// token is a lexical unit of declaration text. start and end are byte
// offsets into the scanned input.
type token struct {
	kind  tokenKind
	text  string
	start int
	end   int
}

func (t token) is(text string) bool {
	return t.kind == tokenPunct && t.text == text
}

func (t token) isKeyword(text string) bool {
	return t.kind == tokenIdent && t.text == text
}

// scanner splits declaration text into tokens. Comments are dropped and
// literals are kept opaque so that their contents never look like syntax.
type scanner struct {
	input      string
	pos        int
	lineStarts []int
}

func newScanner(input string) *scanner {
	lineStarts := []int{0}
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	return &scanner{input: input, lineStarts: lineStarts}
}

// line returns the 1-based line of a byte offset.
func (s *scanner) line(offset int) int {
	return sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	})
}

func (s *scanner) peekAt(n int) byte {
	if s.pos+n >= len(s.input) {
		return 0
	}
	return s.input[s.pos+n]
}

func (s *scanner) hasPrefix(prefix string) bool {
	return strings.HasPrefix(s.input[s.pos:], prefix)
}

func (s *scanner) tokenize() ([]token, error) {
	var tokens []token
	for {
		if err := s.skipTrivia(); err != nil {
			return nil, err
		}
		if s.pos >= len(s.input) {
			return tokens, nil
		}

		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

// skipTrivia advances past whitespace, line comments and nested block comments.
func (s *scanner) skipTrivia() error {
	for s.pos < len(s.input) {
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		switch {
		case unicode.IsSpace(r):
			s.pos += size
		case s.hasPrefix("//"):
			end := strings.IndexByte(s.input[s.pos:], '\n')
			if end < 0 {
				s.pos = len(s.input)
			} else {
				s.pos += end + 1
			}
		case s.hasPrefix("/*"):
			if err := s.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (s *scanner) skipBlockComment() error {
	start := s.pos
	depth := 0
	for s.pos < len(s.input) {
		switch {
		case s.hasPrefix("/*"):
			depth++
			s.pos += 2
		case s.hasPrefix("*/"):
			depth--
			s.pos += 2
			if depth == 0 {
				return nil
			}
		default:
			s.pos++
		}
	}
	return fmt.Errorf("line %d: unterminated block comment", s.line(start))
}

func (s *scanner) next() (token, error) {
	start := s.pos
	ch := s.input[s.pos]

	switch {
	case s.hasPrefix("r#\"") || s.hasPrefix("r\"") || s.hasPrefix("br\"") || s.hasPrefix("br#"):
		return s.readRawString()
	case s.hasPrefix("b\""):
		s.pos++
		return s.readQuoted('"', start)
	case s.hasPrefix("b'"):
		s.pos++
		return s.readQuoted('\'', start)
	case s.hasPrefix("r#") && isIdentStart(s.peekAt(2)):
		s.pos += 2
		s.readIdentTail()
		return s.emit(tokenIdent, start), nil
	case ch == '"':
		return s.readQuoted('"', start)
	case ch == '\'':
		return s.readQuote(start)
	case isIdentStart(ch) || ch >= utf8.RuneSelf && s.letterAt(s.pos):
		s.readIdentTail()
		return s.emit(tokenIdent, start), nil
	case isDigit(ch):
		s.readNumber()
		return s.emit(tokenLiteral, start), nil
	case s.hasPrefix("::") || s.hasPrefix("->"):
		s.pos += 2
		return s.emit(tokenPunct, start), nil
	default:
		_, size := utf8.DecodeRuneInString(s.input[s.pos:])
		s.pos += size
		return s.emit(tokenPunct, start), nil
	}
}

func (s *scanner) emit(kind tokenKind, start int) token {
	return token{kind: kind, text: s.input[start:s.pos], start: start, end: s.pos}
}

func (s *scanner) letterAt(offset int) bool {
	r, _ := utf8.DecodeRuneInString(s.input[offset:])
	return unicode.IsLetter(r)
}

func (s *scanner) readIdentTail() {
	for s.pos < len(s.input) {
		ch := s.input[s.pos]
		if ch < utf8.RuneSelf {
			if !isIdentChar(ch) {
				return
			}
			s.pos++
			continue
		}
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return
		}
		s.pos += size
	}
}

func (s *scanner) readNumber() {
	for s.pos < len(s.input) {
		ch := s.input[s.pos]
		if isIdentChar(ch) || (ch == '.' && isDigit(s.peekAt(1))) {
			s.pos++
			continue
		}
		return
	}
}

// readQuoted reads a string or byte literal whose opening quote is at pos.
func (s *scanner) readQuoted(quote byte, start int) (token, error) {
	s.pos++
	for s.pos < len(s.input) {
		switch s.input[s.pos] {
		case '\\':
			s.pos += 2
		case quote:
			s.pos++
			return s.emit(tokenLiteral, start), nil
		default:
			s.pos++
		}
	}
	return token{}, fmt.Errorf("line %d: unterminated literal", s.line(start))
}

func (s *scanner) readRawString() (token, error) {
	start := s.pos
	if s.input[s.pos] == 'b' {
		s.pos++
	}
	s.pos++ // r

	hashes := 0
	for s.peekAt(0) == '#' {
		hashes++
		s.pos++
	}
	if s.peekAt(0) != '"' {
		return token{}, fmt.Errorf("line %d: malformed raw string", s.line(start))
	}
	s.pos++

	closing := "\"" + strings.Repeat("#", hashes)
	end := strings.Index(s.input[s.pos:], closing)
	if end < 0 {
		return token{}, fmt.Errorf("line %d: unterminated raw string", s.line(start))
	}
	s.pos += end + len(closing)
	return s.emit(tokenLiteral, start), nil
}

// readQuote disambiguates char literals from lifetimes.
func (s *scanner) readQuote(start int) (token, error) {
	if s.peekAt(1) == '\\' {
		return s.readQuoted('\'', start)
	}

	if s.pos+1 < len(s.input) {
		_, size := utf8.DecodeRuneInString(s.input[s.pos+1:])
		if s.peekAt(1+size) == '\'' {
			s.pos += size + 2
			return s.emit(tokenLiteral, start), nil
		}
	}

	if isIdentStart(s.peekAt(1)) {
		s.pos++
		s.readIdentTail()
		return s.emit(tokenLifetime, start), nil
	}

	s.pos++
	return s.emit(tokenPunct, start), nil
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// nesting tracks open delimiters. Angle brackets are closed only by '>' when
// an '<' is on top; a closing bracket discards any unclosed '<' above its
// opener, so comparison operators inside array lengths cannot leak out.
type nesting struct {
	stack []token
}

var closers = map[string]string{")": "(", "]": "[", "}": "{"}

func (n *nesting) depth() int {
	return len(n.stack)
}

func (n *nesting) step(tok token) error {
	if tok.kind != tokenPunct {
		return nil
	}

	switch tok.text {
	case "(", "[", "{", "<":
		n.stack = append(n.stack, tok)
	case ">":
		if top := len(n.stack) - 1; top >= 0 && n.stack[top].text == "<" {
			n.stack = n.stack[:top]
		}
	case ")", "]", "}":
		opener := closers[tok.text]
		for len(n.stack) > 0 && n.stack[len(n.stack)-1].text == "<" {
			n.stack = n.stack[:len(n.stack)-1]
		}
		if len(n.stack) == 0 || n.stack[len(n.stack)-1].text != opener {
			return fmt.Errorf("unexpected %q", tok.text)
		}
		n.stack = n.stack[:len(n.stack)-1]
	}

	return nil
}

// matching returns the index of the token closing the group opened at open.
func matching(tokens []token, open int) (int, error) {
	var n nesting
	for i := open; i < len(tokens); i++ {
		if err := n.step(tokens[i]); err != nil {
			return 0, err
		}
		if n.depth() == 0 {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unterminated %q", tokens[open].text)
}

// joinTokens renders tokens back to text, collapsing any gap between two
// tokens (whitespace or a removed comment) into a single space.
func joinTokens(tokens []token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && tok.start > tokens[i-1].end {
			b.WriteByte(' ')
		}
		b.WriteString(tok.text)
	}
	return b.String()
}
