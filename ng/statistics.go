package ng

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

type Statistics struct {
	dict  *Dictionary
	table map[uint64]uint32
}

type Result struct {
	Phrase Phrase
	Count  uint32
}

// New_statistics counts against dict, which grows as new words show up. nil starts empty.
func New_statistics(dict *Dictionary) *Statistics {
	if dict == nil {
		dict = New_dictionary()
	}
	return &Statistics{
		dict:  dict,
		table: make(map[uint64]uint32),
	}
}

func (s *Statistics) Dictionary() *Dictionary { return s.dict }

func (s *Statistics) Size() int { return len(s.table) }

func (s *Statistics) next(src Word_reader) (uint32, error) {
	word, err := src.Read_word()
	if err == io.EOF {
		word = ""
	} else if err != nil {
		return 0, err
	}
	return s.dict.Put(word)
}

// Process counts every 1-, 2- and 3-word phrase of src.
// Input ends at EOF or at the first empty word.
func (s *Statistics) Process(src Word_reader) error {
	var current Phrase

	for i := 0; i < Phrase_words-1; i++ {
		w, err := s.next(src)
		if err != nil {
			return err
		}
		current.Push(w)
	}

	for {
		w, err := s.next(src)
		if err != nil {
			return err
		}
		if !current.Push(w) {
			break
		}
		s.table[current.Key(0)]++
		s.table[current.Key(1)]++
		s.table[current.Key(2)]++
	}
	s.table[current.Key(0)]++
	s.table[current.Key(1)]++

	current.Push(0)
	s.table[current.Key(0)]++
	return nil
}

// Results are ordered by count, most frequent first; equal counts by descending phrase value.
func (s *Statistics) Results() []Result {
	data := make([]Result, 0, len(s.table))
	for k, v := range s.table {
		data = append(data, Result{Phrase: Phrase(k), Count: v})
	}

	sort.Slice(data, func(i, j int) bool {
		if data[i].Count == data[j].Count {
			return data[i].Phrase > data[j].Phrase
		}
		return data[i].Count > data[j].Count
	})
	return data
}

// Write_report prints "<count>: " and then, for each of the three slots, the word
// (a single space when the slot is empty) followed by a space.
func (s *Statistics) Write_report(w io.Writer) error {
	wr := bufio.NewWriter(w)
	for _, res := range s.Results() {
		fmt.Fprintf(wr, "%d: ", res.Count)
		for i := 0; i < Phrase_words; i++ {
			word, _ := s.dict.Get(res.Phrase.Word(i))
			if word == "" {
				word = " "
			}
			wr.WriteString(word)
			wr.WriteByte(' ')
		}
		wr.WriteByte('\n')
	}
	return wr.Flush()
}

// Dump_dictionary loads a word list from r and writes it back in descending order,
// the empty word last.
func Dump_dictionary(r io.Reader, w io.Writer) error {
	d, err := Load_dictionary(r)
	if err != nil {
		return err
	}

	data := d.Words()
	sort.Sort(sort.Reverse(sort.StringSlice(data)))

	wr := bufio.NewWriter(w)
	for _, word := range data {
		wr.WriteString(word)
		wr.WriteByte('\n')
	}
	return wr.Flush()
}
