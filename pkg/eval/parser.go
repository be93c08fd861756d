package eval

import (
	"errors"
	"strings"
)

// Parse errors.
var (
	ErrNoOutputFile       = errors.New("> must be followed by a file name")
	ErrMultipleOutputFile = errors.New("only one > is allowed")
	ErrNoProgram          = errors.New("command has no program name")
)

// Cmd is a parsed command line, with environment variables already
// substituted.
type Cmd struct {
	Program string
	Args    []string
	// Output is the file that receives the standard output of the command.
	// Empty means the output of the shell.
	Output string
}

// String returns the command line the Cmd was parsed from, normalized.
func (c *Cmd) String() string {
	var sb strings.Builder
	sb.WriteString(c.Program)
	for _, arg := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(arg)
	}
	if c.Output != "" {
		sb.WriteString(" > ")
		sb.WriteString(c.Output)
	}
	return sb.String()
}

// Parse builds a Cmd from tokens produced by Lex. Environment variable
// references are resolved with lookup; a reference to an unset variable is
// kept as the literal $NAME. Parse returns a nil Cmd and no error when there
// are no words at all.
func Parse(tokens []Token, lookup func(string) (string, bool)) (*Cmd, error) {
	var words []string
	var output string
	seenOutput := false

	for i := 0; i < len(tokens) && tokens[i].Type != EOF; i++ {
		tok := tokens[i]
		switch tok.Type {
		case Item, EnvVar:
			words = append(words, expand(tok, lookup))
		case OutGreaterThan:
			if seenOutput {
				return nil, ErrMultipleOutputFile
			}
			seenOutput = true
			i++
			if i == len(tokens) || (tokens[i].Type != Item && tokens[i].Type != EnvVar) {
				return nil, ErrNoOutputFile
			}
			output = expand(tokens[i], lookup)
		}
	}

	if len(words) == 0 {
		if seenOutput {
			return nil, ErrNoProgram
		}
		return nil, nil
	}
	args := append([]string(nil), words[1:]...)
	return &Cmd{Program: words[0], Args: args, Output: output}, nil
}

func expand(tok Token, lookup func(string) (string, bool)) string {
	if tok.Type != EnvVar {
		return tok.Text
	}
	if value, ok := lookup(tok.Text); ok {
		return value
	}
	return "$" + tok.Text
}
