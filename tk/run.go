package tk

import (
	"bufio"
	"strings"
)

// Emitter receives the tokens of one input line.
type Emitter func(line int, tokens []string) error

type Summary struct {
	Lines    int
	Tokens   int
	Max_word int
}

// Run drains sc into emit. On error the summary still counts what was emitted.
func Run(sc *Scanner, emit Emitter) (Summary, error) {
	var sum Summary

	for sc.Scan() {
		tokens := sc.Tokens()
		if err := emit(sc.Line(), tokens); err != nil {
			sum.Lines = sc.Line()
			sum.Max_word = sc.Max_word()
			return sum, err
		}
		sum.Tokens += len(tokens)
	}

	sum.Lines = sc.Line()
	sum.Max_word = sc.Max_word()
	return sum, sc.Err()
}

// Text_emitter writes one token per output line.
func Text_emitter(w *bufio.Writer) Emitter {
	return func(line int, tokens []string) error {
		_, err := w.WriteString(strings.Join(tokens, "\n"))
		if err != nil {
			return err
		}
		return w.WriteByte('\n')
	}
}
