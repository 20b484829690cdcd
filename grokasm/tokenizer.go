package grokasm

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"unicode"
)

type Tokenizer struct {
	source  *bufio.Reader
	current *Token

	currPos Pos
	prevPos Pos
}

func NewTokenizer(source io.Reader) *Tokenizer {
	return &Tokenizer{
		source: bufio.NewReader(source),
		currPos: Pos{
			Line:   1,
			Column: 1,
		},
	}
}

func (t *Tokenizer) readRune() (rune, error) {
	r, _, err := t.source.ReadRune()
	if err != nil {
		return 0, err
	}

	t.prevPos = t.currPos
	if r == '\n' {
		t.currPos.Line++
		t.currPos.Column = 1
	} else {
		t.currPos.Column++
	}

	return r, nil
}

func (t *Tokenizer) unreadRune() {
	t.source.UnreadRune()
	t.currPos = t.prevPos
}

func (t *Tokenizer) Current() (*Token, error) {
	if t.current == nil {
		var err error
		t.current, err = t.parseNext()
		if err != nil {
			return nil, err
		}
	}
	return t.current, nil
}

func (t *Tokenizer) Consume() {
	t.current = nil
}

func (t *Tokenizer) parseNext() (*Token, error) {
	t.skipSpaces()
	startPos := t.currPos

	r, err := t.readRune()
	if err == io.EOF {
		return &Token{Kind: TokenEOF, Pos: startPos}, nil
	}
	if err != nil {
		return nil, err
	}

	switch {
	case r == '\n':
		return &Token{Kind: TokenNewline, Pos: startPos}, nil
	case r == '#' || r == ';':
		t.skipComment()
		return t.parseNext()
	case r == '"':
		return t.parseString(startPos)
	case unicode.IsDigit(r):
		t.unreadRune()
		return t.parseNumber(startPos, false)
	case r == '-' || r == '+':
		next, err := t.readRune()
		if err != nil && err != io.EOF {
			return nil, err
		}
		if err == nil {
			t.unreadRune()
		}
		if err == nil && (unicode.IsDigit(next) || next == '.') {
			return t.parseNumber(startPos, r == '-')
		}
		return t.parseIdentifier(startPos, string(r))
	case r == '(' || r == ')' || r == ',' || r == ':' || r == '@':
		return &Token{
			Kind: TokenSymbol,
			Text: string(r),
			Pos:  startPos,
		}, nil
	}

	if isIdentRune(r) {
		t.unreadRune()
		return t.parseIdentifier(startPos, "")
	}

	return &Token{Kind: TokenInvalid, Text: string(r), Pos: startPos}, nil
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '_' || r == '$' || r == '.' || r == '-' || r == '+'
}

func (t *Tokenizer) skipSpaces() {
	for {
		r, err := t.readRune()
		if err != nil {
			return
		}
		if r == '\n' || !unicode.IsSpace(r) {
			t.unreadRune()
			return
		}
	}
}

// skipComment stops before the newline so that the line still ends.
func (t *Tokenizer) skipComment() {
	for {
		r, err := t.readRune()
		if err != nil {
			return
		}
		if r == '\n' {
			t.unreadRune()
			return
		}
	}
}

func (t *Tokenizer) parseIdentifier(startPos Pos, prefix string) (*Token, error) {
	var buf bytes.Buffer
	buf.WriteString(prefix)
	for {
		r, err := t.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !isIdentRune(r) {
			t.unreadRune()
			break
		}
		buf.WriteRune(r)
	}
	return &Token{
		Kind: TokenIdentifier,
		Text: buf.String(),
		Pos:  startPos,
	}, nil
}

func (t *Tokenizer) parseNumber(startPos Pos, negative bool) (*Token, error) {
	var buf bytes.Buffer
	if negative {
		buf.WriteRune('-')
	}
	var prev rune
	for {
		r, err := t.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if unicode.IsDigit(r) || r == '.' || r == 'e' || r == 'E' ||
			((r == '-' || r == '+') && (prev == 'e' || prev == 'E')) {
			buf.WriteRune(r)
			prev = r
			continue
		}
		t.unreadRune()
		break
	}
	return &Token{
		Kind: TokenNumber,
		Text: buf.String(),
		Pos:  startPos,
	}, nil
}

// parseString reads a double-quoted literal with Go escape sequences.
func (t *Tokenizer) parseString(startPos Pos) (*Token, error) {
	var buf bytes.Buffer
	buf.WriteRune('"')
	escaped := false
	for {
		r, err := t.readRune()
		if err == io.EOF || r == '\n' {
			if err == nil {
				t.unreadRune()
			}
			// unmatched quote
			return &Token{Kind: TokenInvalid, Text: buf.String(), Pos: startPos}, nil
		}
		if err != nil {
			return nil, err
		}
		buf.WriteRune(r)
		if escaped {
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if r == '"' {
			break
		}
	}
	str, err := strconv.Unquote(buf.String())
	if err != nil {
		return &Token{Kind: TokenInvalid, Text: buf.String(), Pos: startPos}, nil
	}
	return &Token{
		Kind: TokenString,
		Text: str,
		Pos:  startPos,
	}, nil
}
