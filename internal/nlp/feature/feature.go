// Package feature provides the stock constructors for turning grams into
// classifier features.
package feature

import (
	"hash/fnv"

	"github.com/mailprobe/mailprobe/internal/nlp/osb"
)

// Text joins a gram into a human-readable feature string. Used for corpus
// generation and debugging output; a unigram is just the anchor word.
func Text(g osb.Gram) string {
	if !g.Bi {
		return g.T1
	}
	return g.T1 + " " + g.T2
}

// Hash folds a gram into a stable 64-bit key for classifier weight tables.
// The NUL separator keeps ("ab","c") and ("a","bc") apart; unigrams hash the
// anchor alone so they never collide with a bigram by construction.
func Hash(g osb.Gram) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(g.T1))
	if g.Bi {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(g.T2))
	}
	return h.Sum64()
}
