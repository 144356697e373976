package detector

import (
	"strings"

	"detecterreur/internal/editdist"
	"detecterreur/internal/lexicon"
	"detecterreur/internal/textseg"
)

// Closed set of glue words: short grammatical function words that show up
// on one side of an agglutination. A split is only accepted when one half
// is in this set, which keeps genuine compounds intact.
var glueWords = map[string]bool{
	// articles, determiners
	"le": true, "la": true, "les": true, "l": true, "un": true, "une": true,
	"des": true, "du": true, "de": true, "d": true, "au": true, "aux": true,
	"ce": true, "cet": true, "cette": true, "ces": true,
	"ma": true, "ta": true, "sa": true, "mes": true, "tes": true, "ses": true,
	"mon": true, "ton": true, "son": true, "notre": true, "votre": true,
	"leur": true, "nos": true, "vos": true, "leurs": true,
	// pronouns
	"je": true, "tu": true, "il": true, "elle": true, "on": true,
	"nous": true, "vous": true, "ils": true, "elles": true,
	"me": true, "te": true, "se": true, "y": true, "en": true, "lui": true,
	"moi": true, "toi": true, "soi": true, "qui": true, "que": true,
	// prepositions, conjunctions
	"a": true, "à": true, "et": true, "ou": true, "où": true, "si": true,
	"ni": true, "car": true, "par": true, "pour": true, "sans": true,
	"dans": true, "sur": true, "sous": true, "vers": true, "avec": true,
	"chez": true, "mais": true, "donc": true, "or": true,
}

// Single letters acceptable as a split half.
var (
	singleLeft  = map[string]bool{"y": true, "a": true, "à": true, "l": true, "d": true}
	singleRight = map[string]bool{"y": true, "a": true, "à": true}
)

// agglutination splits invalid words that are two valid words glued
// together without a space (FAGL).
type agglutination struct {
	lex *lexicon.Lexicon
}

func (d *agglutination) Category() Category { return Forme }
func (d *agglutination) Code() Code         { return FAGL }

func (d *agglutination) HasError(text string) bool {
	return anyWord(text, func(tok textseg.Token) bool {
		_, ok := d.split(tok)
		return ok
	})
}

func (d *agglutination) Correct(text string) string {
	return rewriteWords(text, func(tok textseg.Token) (string, bool) {
		return d.split(tok)
	})
}

// split returns the raw token text with one space inserted at the chosen
// split point. Among acceptable splits the one covering the most
// lexicon-validated letters wins, leftmost on ties.
func (d *agglutination) split(tok textseg.Token) (string, bool) {
	if d.lex.IsValid(tok.Norm) {
		return "", false
	}
	runes := []rune(tok.Norm)
	if len(runes) < 3 {
		return "", false
	}
	bestAt, bestScore := -1, -1
	for i := 1; i < len(runes); i++ {
		left, right := string(runes[:i]), string(runes[i:])
		if len([]rune(left)) == 1 && !singleLeft[left] {
			continue
		}
		if len([]rune(right)) == 1 && !singleRight[right] {
			continue
		}
		if !glueWords[left] && !glueWords[right] {
			continue
		}
		if !d.halfValid(left) || !d.halfValid(right) {
			continue
		}
		score := 0
		if d.lex.IsValid(left) {
			score += len([]rune(left))
		}
		if d.lex.IsValid(right) {
			score += len([]rune(right))
		}
		if score > bestScore {
			bestAt, bestScore = i, score
		}
	}
	if bestAt < 0 {
		return "", false
	}
	raw := []rune(tok.Text)
	return string(raw[:bestAt]) + " " + string(raw[bestAt:]), true
}

func (d *agglutination) halfValid(w string) bool {
	return glueWords[w] || d.lex.IsValid(w)
}

// diacritics corrects invalid words whose accent-stripped form matches a
// known word (FDIA): "ecole" -> "école".
type diacritics struct {
	lex *lexicon.Lexicon
	eng *editdist.Engine
}

func (d *diacritics) Category() Category { return Forme }
func (d *diacritics) Code() Code         { return FDIA }

func (d *diacritics) HasError(text string) bool {
	return anyWord(text, func(tok textseg.Token) bool {
		_, ok := d.fix(tok.Norm)
		return ok
	})
}

func (d *diacritics) Correct(text string) string {
	return rewriteWords(text, func(tok textseg.Token) (string, bool) {
		fix, ok := d.fix(tok.Norm)
		if !ok {
			return "", false
		}
		return textseg.ApplyCase(fix, tok.Case), true
	})
}

func (d *diacritics) fix(norm string) (string, bool) {
	if d.lex.IsValid(norm) {
		return "", false
	}
	stripped := textseg.StripAccents(norm)
	for _, c := range d.eng.Candidates(norm, d.eng.Bound(norm)) {
		if c.Term != norm && textseg.StripAccents(c.Term) == stripped {
			return c.Term, true
		}
	}
	return "", false
}

// capitalization enforces sentence-initial capitals and proper-noun
// capitals (FMAJ). Only casing changes, never letters.
type capitalization struct {
	lex *lexicon.Lexicon
}

func (d *capitalization) Category() Category { return Forme }
func (d *capitalization) Code() Code         { return FMAJ }

var sentenceEnd = map[string]bool{".": true, "!": true, "?": true, "…": true}

func (d *capitalization) HasError(text string) bool {
	toks := textseg.Tokenize(text)
	for i, tok := range toks {
		if tok.Kind != textseg.Word {
			continue
		}
		if d.needsCapital(toks, i) && startsLower(tok.Text) {
			return true
		}
	}
	return false
}

func (d *capitalization) Correct(text string) string {
	toks := textseg.Tokenize(text)
	changed := false
	for i, tok := range toks {
		if tok.Kind != textseg.Word {
			continue
		}
		if d.needsCapital(toks, i) && startsLower(tok.Text) {
			toks[i].Text = textseg.TitleCase(tok.Text)
			changed = true
		}
	}
	if !changed {
		return text
	}
	return textseg.Join(toks)
}

// needsCapital: the word opens a sentence, or the lexicon only knows it as
// a proper noun.
func (d *capitalization) needsCapital(toks []textseg.Token, i int) bool {
	if d.properNounOnly(toks[i].Norm) {
		return true
	}
	for j := i - 1; j >= 0; j-- {
		switch toks[j].Kind {
		case textseg.Space:
			continue
		case textseg.Punct:
			return sentenceEnd[toks[j].Text]
		default:
			return false
		}
	}
	return true // first word of the text
}

func (d *capitalization) properNounOnly(norm string) bool {
	es := d.lex.Entries(norm)
	if len(es) == 0 {
		return false
	}
	for _, e := range es {
		if e.POS != "PROPN" {
			return false
		}
	}
	return true
}

func startsLower(s string) bool {
	if s == "" {
		return false
	}
	first := string([]rune(s)[:1])
	return first != strings.ToUpper(first)
}
