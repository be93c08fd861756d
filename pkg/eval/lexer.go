package eval

import "fmt"

// TokenType is the type of a Token.
type TokenType int

// Possible values for TokenType.
const (
	// Item is a plain word, such as a program name or an argument.
	Item TokenType = iota
	// EnvVar is a $NAME reference. The Text of the token is NAME.
	EnvVar
	// OutGreaterThan is the > that introduces an output file.
	OutGreaterThan
	// EOF marks the end of the input. Every token list ends with one.
	EOF
)

var tokenTypeNames = [...]string{
	Item:           "Item",
	EnvVar:         "EnvVar",
	OutGreaterThan: "OutGreaterThan",
	EOF:            "EOF",
}

func (t TokenType) String() string {
	if 0 <= t && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical unit of a command line.
type Token struct {
	Type TokenType
	Text string
}

type lexState int

const (
	inGeneral lexState = iota
	inItem
	inEnvVar
)

type lexer struct {
	state  lexState
	acc    []rune
	tokens []Token
}

// Lex splits a command line into tokens. Words are separated by spaces and
// tabs; a word starting with $ is an environment variable reference; > is a
// token by itself even when it is not surrounded by spaces. A newline ends the
// input.
func Lex(src string) []Token {
	var l lexer
	for _, r := range src {
		if r == '\n' {
			break
		}
		l.lex(r)
	}
	l.flush()
	return append(l.tokens, Token{Type: EOF})
}

func (l *lexer) lex(r rune) {
	switch {
	case r == '>':
		l.flush()
		l.tokens = append(l.tokens, Token{Type: OutGreaterThan})
	case r == ' ' || r == '\t':
		l.flush()
	case r == '$' && l.state == inGeneral:
		l.state = inEnvVar
	default:
		if l.state == inGeneral {
			l.state = inItem
		}
		l.acc = append(l.acc, r)
	}
}

// Emits the word being accumulated, if any.
func (l *lexer) flush() {
	switch l.state {
	case inItem:
		l.tokens = append(l.tokens, Token{Type: Item, Text: string(l.acc)})
	case inEnvVar:
		if len(l.acc) == 0 {
			// A lone $ is just a dollar sign.
			l.tokens = append(l.tokens, Token{Type: Item, Text: "$"})
		} else {
			l.tokens = append(l.tokens, Token{Type: EnvVar, Text: string(l.acc)})
		}
	}
	l.state = inGeneral
	l.acc = l.acc[:0]
}
