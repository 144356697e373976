// Package editdist computes bounded Damerau-Levenshtein distances and
// ranked correction candidates against the lexicon vocabulary.
package editdist

import (
	"sort"

	"detecterreur/pkg/options"
)

// Candidate is a dictionary word within the distance bound of a token.
type Candidate struct {
	Term      string
	Distance  int
	Frequency float64
}

// Engine owns a length-bucketed index over the vocabulary. It is built
// once and read-only afterwards, so concurrent use is safe.
type Engine struct {
	byLen map[int][]string
	freq  func(string) float64
	opts  options.EngineOptions
}

// NewEngine indexes words by rune length. freq supplies the corpus
// frequency used for ranking; nil means all frequencies are zero.
func NewEngine(words []string, freq func(string) float64, opts ...options.Engine) *Engine {
	o := options.DefaultEngine
	for _, opt := range opts {
		opt.Apply(&o)
	}
	if freq == nil {
		freq = func(string) float64 { return 0 }
	}
	e := &Engine{byLen: make(map[int][]string), freq: freq, opts: o}
	for _, w := range words {
		n := len([]rune(w))
		e.byLen[n] = append(e.byLen[n], w)
	}
	return e
}

// Bound returns the effective distance bound for word: the configured
// maximum, tightened for short words.
func (e *Engine) Bound(word string) int {
	bound := e.opts.MaxEditDistance
	if len([]rune(word)) <= e.opts.ShortWordLen && e.opts.ShortWordMaxDistance < bound {
		bound = e.opts.ShortWordMaxDistance
	}
	return bound
}

// Candidates returns every vocabulary word within maxDist (clamped to the
// engine bound) of word, ordered by distance ascending, frequency
// descending, then lexicographically. The order is total, so repeated
// runs are stable. An empty result means the caller must leave the token
// unchanged.
func (e *Engine) Candidates(word string, maxDist int) []Candidate {
	if word == "" {
		return nil
	}
	if b := e.Bound(word); maxDist > b {
		maxDist = b
	}
	if maxDist <= 0 {
		return nil
	}
	n := len([]rune(word))
	var out []Candidate
	for l := n - maxDist; l <= n+maxDist; l++ {
		for _, cand := range e.byLen[l] {
			if cand == word {
				continue
			}
			d := Distance(word, cand)
			if d <= maxDist {
				out = append(out, Candidate{Term: cand, Distance: d, Frequency: e.freq(cand)})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Term < out[j].Term
	})
	return out
}

// Distance is the unit-cost Damerau-Levenshtein distance: insertion,
// deletion, substitution and adjacent transposition each cost 1.
// Three sliding DP rows keep memory linear in len(b).
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			x := prev[j] + 1
			if y := curr[j-1] + 1; y < x {
				x = y
			}
			if z := prev[j-1] + cost; z < x {
				x = z
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if t := prev2[j-2] + 1; t < x {
					x = t
				}
			}
			curr[j] = x
		}
		copy(prev2, prev)
		copy(prev, curr)
	}
	return prev[lb]
}

// IsSubsequence reports whether sub can be formed by deleting runes from
// main without reordering.
func IsSubsequence(sub, main string) bool {
	rs, rm := []rune(sub), []rune(main)
	i := 0
	for _, r := range rm {
		if i < len(rs) && rs[i] == r {
			i++
		}
	}
	return i == len(rs)
}

// Hamming returns the number of differing positions, or -1 when the
// lengths differ.
func Hamming(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return -1
	}
	diff := 0
	for i := range ra {
		if ra[i] != rb[i] {
			diff++
		}
	}
	return diff
}

// IsOneAdjacentSwap reports whether b is a with exactly one pair of
// adjacent runes transposed.
func IsOneAdjacentSwap(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) || len(ra) < 2 {
		return false
	}
	diff := -1
	for i := 0; i < len(ra); i++ {
		if ra[i] != rb[i] {
			diff = i
			break
		}
	}
	if diff == -1 || diff+1 >= len(ra) {
		return false
	}
	if ra[diff] != rb[diff+1] || ra[diff+1] != rb[diff] {
		return false
	}
	for j := diff + 2; j < len(ra); j++ {
		if ra[j] != rb[j] {
			return false
		}
	}
	return true
}
