package markov

// Trigram is a window of three consecutive words from an ingested word
// sequence.
type Trigram struct {
	First  string
	Second string
	Third  string
}

// Prefix returns the leading word pair of the trigram, the key under which
// Third is recorded in a Store.
func (t Trigram) Prefix() Prefix {
	return Prefix{First: t.First, Second: t.Second}
}

// Window is a fixed-size sliding buffer over a stream of words that emits
// every overlapping trigram. Words are pushed one at a time with Slide;
// once three have been seen, each further push completes another window.
// Only the last three words are retained, so memory use is constant
// regardless of stream length.
//
// The zero value is an empty window ready for use.
type Window struct {
	buf  [3]string
	seen int
}

// Slide pushes word into the window. It returns the completed trigram and
// true once word is the third or later word pushed, otherwise a zero
// Trigram and false.
func (w *Window) Slide(word string) (Trigram, bool) {
	w.buf[0], w.buf[1], w.buf[2] = w.buf[1], w.buf[2], word
	if w.seen < 3 {
		w.seen++
		if w.seen < 3 {
			return Trigram{}, false
		}
	}
	return Trigram{First: w.buf[0], Second: w.buf[1], Third: w.buf[2]}, true
}

// Trigrams returns every overlapping trigram in words, in order: for
// [a, b, c, d] it returns (a, b, c) and (b, c, d). It returns nil when
// words has fewer than three elements.
func Trigrams(words []string) []Trigram {
	if len(words) < 3 {
		return nil
	}
	out := make([]Trigram, 0, len(words)-2)
	var w Window
	for _, word := range words {
		if t, ok := w.Slide(word); ok {
			out = append(out, t)
		}
	}
	return out
}
