package tk

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Footnote_marker is the annotation artifact left behind in converted texts, e.g. "word[(сноска12]".
const Footnote_marker = "[(сноска"

type Options struct {
	Strip_marker bool
	Marker       string // defaults to Footnote_marker
}

// Tokenizer turns a line of text into lowercase runs of letters.
// Not safe for concurrent use: the caser keeps state between calls.
type Tokenizer struct {
	marker string
	lower  cases.Caser
}

func Init_tokenizer(opts Options) *Tokenizer {
	t := &Tokenizer{lower: cases.Lower(language.Und)}
	if opts.Strip_marker {
		t.marker = opts.Marker
		if t.marker == "" {
			t.marker = Footnote_marker
		}
	}
	return t
}

func letter_or_space(r rune) rune {
	if unicode.IsLetter(r) {
		return r
	}
	return ' '
}

// Tokenize returns the tokens of line in left-to-right order.
// The marker (if enabled) is removed before anything else, so letters on
// either side of it join into one token.
func (t *Tokenizer) Tokenize(line string) []string {
	if t.marker != "" {
		line = strings.ReplaceAll(line, t.marker, "")
	}

	// full Unicode lowering: final sigma, İ to i + U+0307
	line = t.lower.String(strings.Map(letter_or_space, line))
	return strings.Fields(line)
}
