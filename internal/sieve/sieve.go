// Package sieve performs a structural check of a sieve filter script: the
// shape errors a user can fix from an error message, not full RFC 5228
// execution semantics. The validate API reports the first failure found.
package sieve

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CompileError is a script failure tied to a line number.
type CompileError struct {
	Line    int
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

type checker struct {
	src  string
	pos  int
	line int
}

// Check scans a script and returns the first structural error, or nil.
func Check(script string) error {
	if !utf8.ValidString(script) {
		return &CompileError{Line: 1, Message: "script is not valid UTF-8"}
	}
	c := &checker{src: script, line: 1}
	return c.run()
}

func (c *checker) run() error {
	var blocks, tests int
	sawCommand := false

	for c.pos < len(c.src) {
		r, width := utf8.DecodeRuneInString(c.src[c.pos:])
		switch {
		case r == '#':
			c.skipLine()
		case r == '/' && strings.HasPrefix(c.src[c.pos:], "/*"):
			if err := c.skipBracketComment(); err != nil {
				return err
			}
		case r == '"':
			if err := c.skipQuoted(); err != nil {
				return err
			}
		case r == 't' && c.atMultilineStart():
			if err := c.skipMultiline(); err != nil {
				return err
			}
		case r == '{':
			blocks++
			c.advance(width)
		case r == '}':
			blocks--
			if blocks < 0 {
				return &CompileError{Line: c.line, Message: "unmatched '}'"}
			}
			c.advance(width)
		case r == '(':
			tests++
			c.advance(width)
		case r == ')':
			tests--
			if tests < 0 {
				return &CompileError{Line: c.line, Message: "unmatched ')'"}
			}
			c.advance(width)
		case unicode.IsLetter(r):
			word, line := c.readWord()
			if word == "require" {
				if err := c.checkRequire(line); err != nil {
					return err
				}
			}
			sawCommand = true
		case unicode.IsDigit(r) || r == ';' || r == ',' || r == ':' || r == '*' || r == '[' || r == ']' || unicode.IsSpace(r):
			c.advance(width)
		default:
			return &CompileError{Line: c.line, Message: fmt.Sprintf("unexpected character %q", r)}
		}
	}

	if blocks > 0 {
		return &CompileError{Line: c.line, Message: "unterminated block"}
	}
	if tests > 0 {
		return &CompileError{Line: c.line, Message: "unterminated test list"}
	}
	if !sawCommand {
		return &CompileError{Line: 1, Message: "empty script"}
	}
	return nil
}

func (c *checker) advance(width int) {
	if c.src[c.pos] == '\n' {
		c.line++
	}
	c.pos += width
}

func (c *checker) skipLine() {
	for c.pos < len(c.src) && c.src[c.pos] != '\n' {
		c.pos++
	}
}

func (c *checker) skipBracketComment() error {
	start := c.line
	c.pos += 2
	for c.pos < len(c.src) {
		if strings.HasPrefix(c.src[c.pos:], "*/") {
			c.pos += 2
			return nil
		}
		c.advance(1)
	}
	return &CompileError{Line: start, Message: "unterminated comment"}
}

func (c *checker) skipQuoted() error {
	start := c.line
	c.pos++
	for c.pos < len(c.src) {
		switch c.src[c.pos] {
		case '\\':
			c.pos++
			if c.pos < len(c.src) {
				c.pos++
			}
		case '"':
			c.pos++
			return nil
		case '\n':
			return &CompileError{Line: start, Message: "unterminated string"}
		default:
			c.pos++
		}
	}
	return &CompileError{Line: start, Message: "unterminated string"}
}

// atMultilineStart reports whether the cursor sits on a "text:" literal.
func (c *checker) atMultilineStart() bool {
	rest := c.src[c.pos:]
	if !strings.HasPrefix(rest, "text:") {
		return false
	}
	// "text" must be a whole word, not a prefix of an identifier.
	if c.pos > 0 {
		prev, _ := utf8.DecodeLastRuneInString(c.src[:c.pos])
		if unicode.IsLetter(prev) || unicode.IsDigit(prev) {
			return false
		}
	}
	return true
}

// skipMultiline consumes a text: literal, terminated by a line holding a
// single dot.
func (c *checker) skipMultiline() error {
	start := c.line
	c.skipLine()
	if c.pos < len(c.src) {
		c.advance(1) // the newline
	}
	for c.pos < len(c.src) {
		end := strings.IndexByte(c.src[c.pos:], '\n')
		if end < 0 {
			end = len(c.src) - c.pos
		}
		lineText := c.src[c.pos : c.pos+end]
		c.pos += end
		if c.pos < len(c.src) {
			c.advance(1)
		}
		if strings.TrimRight(lineText, "\r") == "." {
			return nil
		}
	}
	return &CompileError{Line: start, Message: "unterminated text literal"}
}

func (c *checker) readWord() (string, int) {
	line := c.line
	start := c.pos
	for c.pos < len(c.src) {
		r, width := utf8.DecodeRuneInString(c.src[c.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		c.pos += width
	}
	return c.src[start:c.pos], line
}

// checkRequire verifies that require's argument is a string or string list.
func (c *checker) checkRequire(line int) error {
	for c.pos < len(c.src) && unicode.IsSpace(rune(c.src[c.pos])) {
		c.advance(1)
	}
	if c.pos >= len(c.src) {
		return &CompileError{Line: line, Message: "require without argument"}
	}
	switch c.src[c.pos] {
	case '"', '[':
		return nil
	default:
		return &CompileError{Line: line, Message: "require expects a string or string list"}
	}
}
