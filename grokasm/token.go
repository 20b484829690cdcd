package grokasm

import "fmt"

type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenNewline
	TokenIdentifier
	TokenNumber
	TokenString
	TokenSymbol
	TokenInvalid
)

var tokenKindNames = [...]string{
	TokenEOF:        "end of input",
	TokenNewline:    "end of line",
	TokenIdentifier: "identifier",
	TokenNumber:     "number",
	TokenString:     "string",
	TokenSymbol:     "symbol",
	TokenInvalid:    "invalid token",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("token(%d)", uint8(k))
}

type Pos struct {
	Line   int
	Column int
}

type Token struct {
	Kind TokenKind
	// Text is the unquoted value for strings
	Text string
	Pos  Pos
}

func (t *Token) is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}

func (t *Token) String() string {
	switch t.Kind {
	case TokenEOF, TokenNewline:
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}
