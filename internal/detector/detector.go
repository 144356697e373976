// Package detector implements the error detectors for learner French and
// the orchestrator that runs them, either independently against one input
// or as a cascaded correction pipeline.
package detector

import (
	"detecterreur/internal/textseg"
)

// Category groups error codes. The processing order over categories is
// fixed and identical in both orchestrator modes.
type Category string

const (
	Forme       Category = "FORME"
	Orthographe Category = "ORTHOGRAPHE"
	Grammaire   Category = "GRAMMAIRE"
	Syntaxe     Category = "SYNTAXE"
	Ponctuation Category = "PONCTUATION"
)

// Code identifies one detector. Each code belongs to exactly one category.
type Code string

const (
	FAGL Code = "FAGL" // agglutination
	FDIA Code = "FDIA" // diacritics
	FMAJ Code = "FMAJ" // capitalization
	OINS Code = "OINS" // inserted letter
	OMIS Code = "OMIS" // missing letter
	OSUB Code = "OSUB" // substituted letter
	OORD Code = "OORD" // transposed letters
	GCON Code = "GCON" // conjugation
	GACC Code = "GACC" // agreement
	GEUF Code = "GEUF" // euphony / elision
	SORD Code = "SORD" // word order
	SMIS Code = "SMIS" // missing word
	SINS Code = "SINS" // extra word
	SRED Code = "SRED" // redundancy
	PUNC Code = "PUNC" // punctuation spacing
)

// Detector is the shared contract. Both operations are total: any input,
// including empty or degenerate text, yields a result, and Correct on
// error-free input returns its input unchanged.
type Detector interface {
	Category() Category
	Code() Code
	HasError(text string) bool
	Correct(text string) string
}

// Suggestion is one detector's independent report for an input.
type Suggestion struct {
	Category Category `json:"category"`
	Code     Code     `json:"code"`
	HasError bool     `json:"has_error"`
	Text     string   `json:"text"`
}

// rewriteWords applies fn to every word token and reassembles the text.
// fn receives the token and returns the replacement raw text. Returning
// ok=false keeps the token.
func rewriteWords(text string, fn func(tok textseg.Token) (string, bool)) string {
	toks := textseg.Tokenize(text)
	changed := false
	for i, t := range toks {
		if !t.Lexical() {
			continue
		}
		if rep, ok := fn(t); ok && rep != t.Text {
			toks[i].Text = rep
			changed = true
		}
	}
	if !changed {
		return text
	}
	return textseg.Join(toks)
}

// anyWord reports whether fn holds for some lexical token of text.
func anyWord(text string, fn func(tok textseg.Token) bool) bool {
	for _, t := range textseg.Tokenize(text) {
		if t.Lexical() && fn(t) {
			return true
		}
	}
	return false
}

func nextWord(toks []textseg.Token, from int) int {
	for i := from + 1; i < len(toks); i++ {
		if toks[i].Kind == textseg.Word {
			return i
		}
	}
	return -1
}

func prevWord(toks []textseg.Token, from int) int {
	for i := from - 1; i >= 0; i-- {
		if toks[i].Kind == textseg.Word {
			return i
		}
	}
	return -1
}
