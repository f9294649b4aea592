package tk

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"
)

// Scanner reads lines from r and yields the tokens of each one that has any.
type Scanner struct {
	rd     *bufio.Reader
	tk     *Tokenizer
	line   int
	tokens []string
	max    int
	err    error
}

func NewScanner(r io.Reader, tk *Tokenizer) *Scanner {
	return &Scanner{
		rd: bufio.NewReaderSize(r, 64*1024),
		tk: tk,
	}
}

// Scan advances to the next line holding at least one token.
// It returns false at end of input or on the first error.
func (sc *Scanner) Scan() bool {
	if sc.err != nil {
		return false
	}

	for {
		text, err := sc.rd.ReadString('\n')
		if len(text) == 0 && err != nil {
			if err != io.EOF {
				sc.err = err
			}
			sc.tokens = nil
			return false
		}
		if err != nil && err != io.EOF {
			sc.err = err
			sc.tokens = nil
			return false
		}
		sc.line++

		if !utf8.ValidString(text) {
			sc.err = &DecodeError{Line: sc.line, Offset: invalid_offset(text)}
			sc.tokens = nil
			return false
		}

		tokens := sc.tk.Tokenize(text)
		if len(tokens) == 0 {
			continue
		}

		for _, token := range tokens {
			if n := utf8.RuneCountInString(token); n > sc.max {
				sc.max = n
			}
		}

		sc.tokens = tokens
		return true
	}
}

// Tokens of the current line. Valid until the next call to Scan.
func (sc *Scanner) Tokens() []string { return sc.tokens }

// Line is the 1-based number of the current line.
func (sc *Scanner) Line() int { return sc.line }

// Max_word is the longest token seen so far, in runes.
func (sc *Scanner) Max_word() int { return sc.max }

func (sc *Scanner) Err() error { return sc.err }

type DecodeError struct {
	Line   int
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: invalid UTF-8 at byte %d", e.Line, e.Offset)
}

func invalid_offset(s string) int {
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && n == 1 {
			return i
		}
		i += n
	}
	return len(s)
}
