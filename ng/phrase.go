package ng

const (
	Word_bits    = 21
	Phrase_words = 3

	word_mask = uint64(1)<<Word_bits - 1
)

// Phrase packs the indices of the last Phrase_words words, oldest in the high bits:
//
//	[word N][word N+1][word N+2]
type Phrase uint64

func downshift(i int) uint { return uint(Word_bits * (Phrase_words - (i + 1))) }
func mask(i int) uint64 { return uint64(1)<<uint(Word_bits*(i+1)) - 1 }

// Key is the n-gram of the i+1 oldest words: 0 - one word, 1 - two words, 2 - three words.
func (p Phrase) Key(i int) uint64 {
	return (uint64(p) >> downshift(i)) & mask(i)
}

func (p Phrase) Word(i int) uint32 {
	return uint32((uint64(p) >> downshift(i)) & word_mask)
}

// Push shifts word in as the newest slot and reports whether it was a real word.
func (p *Phrase) Push(word uint32) bool {
	*p = Phrase(((uint64(*p) << Word_bits) | (uint64(word) & word_mask)) & mask(Phrase_words-1))
	return word != 0
}
