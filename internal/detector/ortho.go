package detector

import (
	"detecterreur/internal/editdist"
	"detecterreur/internal/lexicon"
	"detecterreur/internal/textseg"
)

// Edit-operation shape a candidate must exhibit relative to the token.
type orthoShape int

const (
	shapeInsertion    orthoShape = iota // token has one letter too many
	shapeMissing                        // token is missing a letter
	shapeSubstitution                   // one letter replaced, same length
	shapeOrder                          // two adjacent letters swapped
)

// orthoDetector is the shared body of OINS, OMIS, OSUB and OORD. All four
// gate on the validator: a valid word is never touched. For invalid words
// the engine's ranked candidates are filtered down to the detector's shape
// and the first survivor wins. An invalid word with no candidate at all
// within the bound is reported as unresolved: the error is flagged but the
// token is left unchanged.
type orthoDetector struct {
	code  Code
	shape orthoShape
	lex   *lexicon.Lexicon
	eng   *editdist.Engine
}

func newOrtho(code Code, shape orthoShape, lex *lexicon.Lexicon, eng *editdist.Engine) *orthoDetector {
	return &orthoDetector{code: code, shape: shape, lex: lex, eng: eng}
}

func (d *orthoDetector) Category() Category { return Orthographe }
func (d *orthoDetector) Code() Code         { return d.code }

func (d *orthoDetector) HasError(text string) bool {
	return anyWord(text, func(tok textseg.Token) bool {
		if d.lex.IsValid(tok.Norm) {
			return false
		}
		cands := d.eng.Candidates(tok.Norm, d.eng.Bound(tok.Norm))
		if len(cands) == 0 {
			// Out of vocabulary with nothing in reach: unresolved.
			return len([]rune(tok.Norm)) >= 2
		}
		_, ok := d.pick(tok.Norm, cands)
		return ok
	})
}

func (d *orthoDetector) Correct(text string) string {
	return rewriteWords(text, func(tok textseg.Token) (string, bool) {
		if d.lex.IsValid(tok.Norm) {
			return "", false
		}
		cands := d.eng.Candidates(tok.Norm, d.eng.Bound(tok.Norm))
		best, ok := d.pick(tok.Norm, cands)
		if !ok {
			return "", false
		}
		return textseg.ApplyCase(best, tok.Case), true
	})
}

// pick returns the first candidate matching the detector's shape.
// Candidates arrive ordered by distance, frequency, term, so the choice
// is deterministic.
func (d *orthoDetector) pick(word string, cands []editdist.Candidate) (string, bool) {
	for _, c := range cands {
		if d.matches(word, c.Term) {
			return c.Term, true
		}
	}
	return "", false
}

func (d *orthoDetector) matches(word, cand string) bool {
	lw, lc := len([]rune(word)), len([]rune(cand))
	switch d.shape {
	case shapeInsertion:
		return lc < lw && editdist.IsSubsequence(cand, word)
	case shapeMissing:
		return lc > lw && editdist.IsSubsequence(word, cand)
	case shapeSubstitution:
		h := editdist.Hamming(word, cand)
		return h >= 1 && h <= d.eng.Bound(word) && !editdist.IsOneAdjacentSwap(word, cand)
	case shapeOrder:
		return editdist.IsOneAdjacentSwap(word, cand)
	}
	return false
}
