package ng

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var ErrDictionaryFull = errors.New("dictionary exceeds 21-bit word index")

// Dictionary maps words to dense indices. Index 0 is always the empty word.
type Dictionary struct {
	index map[string]uint32
	words []string
}

func New_dictionary() *Dictionary {
	d := &Dictionary{index: make(map[string]uint32)}
	d.index[""] = 0
	d.words = append(d.words, "")
	return d
}

// Load_dictionary reads one word per line up to the first empty line.
func Load_dictionary(r io.Reader) (*Dictionary, error) {
	d := New_dictionary()
	lr := New_line_reader(r)
	for {
		word, err := lr.Read_word()
		if err == io.EOF {
			return d, nil
		}
		if err != nil {
			return nil, err
		}
		if word == "" {
			return d, nil
		}
		if _, err = d.Put(word); err != nil {
			return nil, err
		}
	}
}

func (d *Dictionary) Put(word string) (uint32, error) {
	if i, ok := d.index[word]; ok {
		return i, nil
	}

	next := uint64(len(d.words))
	if next > word_mask {
		return 0, ErrDictionaryFull
	}
	d.index[word] = uint32(next)
	d.words = append(d.words, word)
	return uint32(next), nil
}

func (d *Dictionary) Get(i uint32) (string, bool) {
	if int(i) >= len(d.words) {
		return "", false
	}
	return d.words[i], true
}

// Words in index order, starting with the empty word.
func (d *Dictionary) Words() []string {
	return append([]string(nil), d.words...)
}

func (d *Dictionary) Size() int { return len(d.words) }

// Word_reader yields one word at a time and io.EOF at the end.
type Word_reader interface {
	Read_word() (string, error)
}

// Line_reader reads one word per text line.
type Line_reader struct {
	rd *bufio.Reader
}

func New_line_reader(r io.Reader) *Line_reader {
	return &Line_reader{rd: bufio.NewReader(r)}
}

func (lr *Line_reader) Read_word() (string, error) {
	text, err := lr.rd.ReadString('\n')
	if len(text) == 0 && err != nil {
		return "", err
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSuffix(text, "\n"), nil
}
