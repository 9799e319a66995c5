// Package words splits message text into the word stream consumed by the
// OSB generator. The split is deliberately crude: maximal runs of letters
// and digits, lowercased. The generator treats words as opaque, so language
// boundary detection belongs to whoever feeds text in, not here.
package words

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxWordLen guards against undecoded binary attachments and base64 blobs
// masquerading as text; runs longer than this are dropped.
const maxWordLen = 40

// Splitter scans a string left to right and yields one word at a time. It
// implements osb.Source: a single lookahead word is memoized so More can
// answer without consuming input.
type Splitter struct {
	text    string
	pos     int
	pending string
	ready   bool
}

// NewSplitter returns a Splitter over text.
func NewSplitter(text string) *Splitter {
	return &Splitter{text: text}
}

// More reports whether another word remains.
func (s *Splitter) More() bool {
	s.scan()
	return s.ready
}

// Next returns the next word. Words are lowercased.
func (s *Splitter) Next() (string, bool) {
	s.scan()
	if !s.ready {
		return "", false
	}
	s.ready = false
	return s.pending, true
}

// scan advances to the next word unless one is already memoized.
func (s *Splitter) scan() {
	for !s.ready && s.pos < len(s.text) {
		r, width := utf8.DecodeRuneInString(s.text[s.pos:])
		if !isWordRune(r) {
			s.pos += width
			continue
		}
		start := s.pos
		runes := 0
		for s.pos < len(s.text) {
			r, width = utf8.DecodeRuneInString(s.text[s.pos:])
			if !isWordRune(r) {
				break
			}
			s.pos += width
			runes++
		}
		if runes > maxWordLen {
			continue
		}
		s.pending = strings.ToLower(s.text[start:s.pos])
		s.ready = true
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// SliceSource adapts a word slice to the osb.Source contract. Used by tests
// and by callers that already hold tokenized input.
type SliceSource struct {
	words []string
	pos   int
}

// NewSliceSource returns a SliceSource over words. The slice is not copied.
func NewSliceSource(words []string) *SliceSource {
	return &SliceSource{words: words}
}

func (s *SliceSource) More() bool {
	return s.pos < len(s.words)
}

func (s *SliceSource) Next() (string, bool) {
	if s.pos >= len(s.words) {
		return "", false
	}
	word := s.words[s.pos]
	s.pos++
	return word, true
}
