// Package osb generates Orthogonal Sparse Bigram features from a stream of
// words. Each word becomes an anchor that is paired with every later word
// inside a fixed-size sliding window; the anchor alone is emitted first at
// offset 0, then one bigram per offset. Classifier weights are keyed by
// feature identity and offset, so emission order is part of the contract.
package osb

import "errors"

// ErrZeroWindow is returned by New when the window size is not positive.
// All slot arithmetic is modulo the window size, so a zero window is
// unrepresentable.
var ErrZeroWindow = errors.New("osb: window size must be at least 1")

// Gram is one unigram or ordered bigram drawn from the current window.
// T1 is always the anchor word. For a bigram, Bi is true and T2 is the word
// at the emitted offset. Grams borrow their strings from the tokenizer's
// buffer; a Builder must not retain them past the call.
type Gram struct {
	T1 string
	T2 string
	Bi bool
}

// Token is one emitted feature together with the window offset it was taken
// at: 0 for the unpaired anchor, 1..windowSize-1 for bigrams.
type Token[T any] struct {
	Inner T
	Idx   int
}

// Source is a single-pass stream of words. Exhaustion is permanent: once
// More reports false it must never report true again, and Next must keep
// returning false.
type Source interface {
	// Next returns the next word and advances the stream.
	Next() (string, bool)
	// More reports whether Next would succeed, without advancing.
	More() bool
}

// Builder converts a Gram into the caller's feature representation. It must
// be total over both gram shapes, deterministic, side-effect free, and must
// copy or hash the gram's strings before returning.
type Builder[T any] func(Gram) T

type slot struct {
	word string
	ok   bool
}

// Tokenizer drives a Source through a circular buffer of windowSize slots
// and emits one feature per call to Next. It holds at most windowSize words
// at any time and pulls at most one word from the source per call.
//
// A Tokenizer is single-use and single-goroutine: re-scanning a message
// means constructing a new instance over a fresh source.
type Tokenizer[T any] struct {
	src   Source
	build Builder[T]
	buf   []slot
	pos   int // anchor position, monotonically increasing
	idx   int // offset of the next gram within the current window
}

// New constructs a Tokenizer over src with the given window size.
func New[T any](src Source, windowSize int, build Builder[T]) (*Tokenizer[T], error) {
	if windowSize < 1 {
		return nil, ErrZeroWindow
	}
	return &Tokenizer[T]{
		src:   src,
		build: build,
		buf:   make([]slot, windowSize),
	}, nil
}

// fill pulls at most one word from the source into the slot at i.
func (t *Tokenizer[T]) fill(i int) {
	if t.buf[i].ok {
		return
	}
	if word, ok := t.src.Next(); ok {
		t.buf[i] = slot{word: word, ok: true}
	}
}

// Next emits the next feature in anchor-then-offset order. It returns false
// exactly when the source is exhausted and every anchor has been emitted;
// after that it keeps returning false.
func (t *Tokenizer[T]) Next() (Token[T], bool) {
	size := len(t.buf)
	for {
		end := (t.pos + t.idx) % size
		t.fill(end)

		anchor := t.buf[t.pos%size]
		if !anchor.ok {
			// Source exhausted before this anchor existed: terminal.
			return Token[T]{}, false
		}

		var gram Gram
		if t.idx != 0 {
			pair := t.buf[end]
			if !pair.ok {
				// Source ran out before the paired slot. The anchor has
				// emitted everything it can; move on to the next one.
				t.roll()
				continue
			}
			gram = Gram{T1: anchor.word, T2: pair.word, Bi: true}
		} else {
			gram = Gram{T1: anchor.word}
		}

		token := Token[T]{Inner: t.build(gram), Idx: t.idx}

		t.idx++
		// Roll to the next anchor when the window is spent, or when the
		// source is exhausted and the slot the next offset needs is empty.
		// The second arm is what shrinks the window at the tail of a finite
		// stream instead of cutting it off.
		if t.idx == size || (!t.src.More() && !t.buf[(t.pos+t.idx)%size].ok) {
			t.roll()
		}

		return token, true
	}
}

// roll retires the current anchor and starts the next window.
func (t *Tokenizer[T]) roll() {
	t.buf[t.pos%len(t.buf)] = slot{}
	t.idx = 0
	t.pos++
}

// live reports how many buffer slots currently hold a word.
func (t *Tokenizer[T]) live() int {
	n := 0
	for _, s := range t.buf {
		if s.ok {
			n++
		}
	}
	return n
}
