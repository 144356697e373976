package detector

import (
	"strings"

	"detecterreur/internal/editdist"
	"detecterreur/internal/lexicon"
	"detecterreur/internal/textseg"
)

// Subject pronouns with person and number, for conjugation agreement.
type personNumber struct {
	person int
	number string
}

var subjectPronouns = map[string]personNumber{
	"je": {1, "s"}, "j": {1, "s"},
	"tu":    {2, "s"},
	"il":    {3, "s"},
	"elle":  {3, "s"},
	"on":    {3, "s"},
	"nous":  {1, "p"},
	"vous":  {2, "p"},
	"ils":   {3, "p"},
	"elles": {3, "p"},
}

// How far back (in word tokens) a verb looks for its subject pronoun.
const subjectWindow = 3

// conjugation checks a finite verb against the nearest preceding subject
// pronoun and substitutes the lemma's form matching that person and
// number (GCON).
type conjugation struct {
	lex *lexicon.Lexicon
}

func (d *conjugation) Category() Category { return Grammaire }
func (d *conjugation) Code() Code         { return GCON }

func (d *conjugation) HasError(text string) bool {
	_, has := d.pass(textseg.Tokenize(text), false)
	return has
}

func (d *conjugation) Correct(text string) string {
	toks := textseg.Tokenize(text)
	out, has := d.pass(toks, true)
	if !has {
		return text
	}
	return textseg.Join(out)
}

// pass flags, and when apply is set rewrites, mis-conjugated verbs.
func (d *conjugation) pass(toks []textseg.Token, apply bool) ([]textseg.Token, bool) {
	found := false
	for i, tok := range toks {
		if tok.Kind != textseg.Word {
			continue
		}
		subj, ok := subjectBefore(d.lex, toks, i)
		if !ok {
			continue
		}
		entry, ok := finiteVerb(d.lex, tok.Norm)
		if !ok {
			continue
		}
		if d.agrees(tok.Norm, subj) {
			continue
		}
		found = true
		if !apply {
			return nil, true
		}
		if fix, ok := d.bestForm(entry.Lemma, tok.Norm, subj); ok {
			toks[i].Text = textseg.ApplyCase(fix, tok.Case)
		}
	}
	return toks, found
}

// subjectBefore finds the nearest subject pronoun within the window,
// stopping at sentence punctuation. Shared by conjugation and the word
// order rules.
func subjectBefore(lex *lexicon.Lexicon, toks []textseg.Token, i int) (personNumber, bool) {
	seen := 0
	for j := i - 1; j >= 0 && seen < subjectWindow; j-- {
		switch toks[j].Kind {
		case textseg.Punct:
			if sentenceEnd[toks[j].Text] {
				return personNumber{}, false
			}
		case textseg.Word:
			seen++
			if pn, ok := subjectPronouns[toks[j].Norm]; ok {
				return pn, true
			}
			// Another finite verb in between claims the subject.
			if _, isVerb := finiteVerb(lex, toks[j].Norm); isVerb {
				return personNumber{}, false
			}
		}
	}
	return personNumber{}, false
}

// finiteVerb returns a V analysis carrying a person mark. Infinitives and
// participles (person 0) are out of scope for subject agreement.
func finiteVerb(lex *lexicon.Lexicon, norm string) (lexicon.Entry, bool) {
	for _, e := range lex.Entries(norm) {
		if e.POS == "V" && e.Person != 0 {
			return e, true
		}
	}
	return lexicon.Entry{}, false
}

func (d *conjugation) agrees(norm string, subj personNumber) bool {
	for _, e := range d.lex.Entries(norm) {
		if e.POS != "V" {
			continue
		}
		if e.Person == subj.person && (e.Number == "" || e.Number == subj.number) {
			return true
		}
	}
	return false
}

// bestForm picks the lemma's form agreeing with subj, nearest to the
// current form by edit distance, then most frequent, then lexicographic.
func (d *conjugation) bestForm(lemma, current string, subj personNumber) (string, bool) {
	best := ""
	bestDist := 0
	for _, form := range d.lex.FormsOf(lemma) {
		ok := false
		for _, e := range d.lex.Entries(form) {
			if e.POS == "V" && e.Lemma == lemma && e.Person == subj.person &&
				(e.Number == "" || e.Number == subj.number) {
				ok = true
				break
			}
		}
		if !ok {
			continue
		}
		dist := editdist.Distance(current, form)
		if best == "" || dist < bestDist ||
			(dist == bestDist && d.lex.Freq(form) > d.lex.Freq(best)) ||
			(dist == bestDist && d.lex.Freq(form) == d.lex.Freq(best) && form < best) {
			best, bestDist = form, dist
		}
	}
	return best, best != ""
}

// Determiner inflection table: lemma -> gender+number -> form. Plural
// articles are gender-neutral.
var determinerForms = map[string]map[string]string{
	"le":  {"ms": "le", "fs": "la", "mp": "les", "fp": "les"},
	"un":  {"ms": "un", "fs": "une", "mp": "des", "fp": "des"},
	"ce":  {"ms": "ce", "fs": "cette", "mp": "ces", "fp": "ces"},
	"mon": {"ms": "mon", "fs": "ma", "mp": "mes", "fp": "mes"},
	"ton": {"ms": "ton", "fs": "ta", "mp": "tes", "fp": "tes"},
	"son": {"ms": "son", "fs": "sa", "mp": "ses", "fp": "ses"},
}

// agreement aligns a determiner or adjacent adjective with its noun's
// gender and number (GACC).
type agreement struct {
	lex *lexicon.Lexicon
}

func (d *agreement) Category() Category { return Grammaire }
func (d *agreement) Code() Code         { return GACC }

func (d *agreement) HasError(text string) bool {
	_, has := d.pass(textseg.Tokenize(text), false)
	return has
}

func (d *agreement) Correct(text string) string {
	toks := textseg.Tokenize(text)
	out, has := d.pass(toks, true)
	if !has {
		return text
	}
	return textseg.Join(out)
}

func (d *agreement) pass(toks []textseg.Token, apply bool) ([]textseg.Token, bool) {
	found := false
	for i, tok := range toks {
		if tok.Kind != textseg.Word {
			continue
		}
		noun, ok := d.lex.EntryWithPOS(tok.Norm, "N")
		if !ok || d.lex.HasPOS(tok.Norm, "DET") {
			continue
		}
		// Determiner: previous word, possibly with one adjective between.
		di := prevWord(toks, i)
		if di >= 0 && d.lex.HasPOS(toks[di].Norm, "ADJ") && !d.lex.HasPOS(toks[di].Norm, "DET") {
			di = prevWord(toks, di)
		}
		if di >= 0 {
			if det, ok := d.lex.EntryWithPOS(toks[di].Norm, "DET"); ok && conflicts(det, noun) {
				found = true
				if !apply {
					return nil, true
				}
				if fix, ok := d.determinerFor(det.Lemma, noun); ok {
					toks[di].Text = textseg.ApplyCase(fix, toks[di].Case)
				}
			}
		}
		// Adjectives on either side of the noun.
		for _, ai := range []int{prevWord(toks, i), nextWord(toks, i)} {
			if ai < 0 || d.lex.HasPOS(toks[ai].Norm, "DET") {
				continue
			}
			adj, ok := d.lex.EntryWithPOS(toks[ai].Norm, "ADJ")
			if !ok || !conflicts(adj, noun) {
				continue
			}
			found = true
			if !apply {
				return nil, true
			}
			if fix, ok := d.adjectiveFor(adj.Lemma, noun); ok {
				toks[ai].Text = textseg.ApplyCase(fix, toks[ai].Case)
			}
		}
	}
	return toks, found
}

func conflicts(a, noun lexicon.Entry) bool {
	if a.Gender != "" && noun.Gender != "" && a.Gender != noun.Gender {
		return true
	}
	if a.Number != "" && noun.Number != "" && a.Number != noun.Number {
		return true
	}
	return false
}

func featureKey(noun lexicon.Entry) string {
	g, n := noun.Gender, noun.Number
	if g == "" {
		g = "m"
	}
	if n == "" {
		n = "s"
	}
	return g + n
}

func (d *agreement) determinerFor(lemma string, noun lexicon.Entry) (string, bool) {
	if forms, ok := determinerForms[lemma]; ok {
		if f, ok := forms[featureKey(noun)]; ok {
			return f, true
		}
	}
	return d.formMatching(lemma, "DET", noun)
}

func (d *agreement) adjectiveFor(lemma string, noun lexicon.Entry) (string, bool) {
	return d.formMatching(lemma, "ADJ", noun)
}

func (d *agreement) formMatching(lemma, pos string, noun lexicon.Entry) (string, bool) {
	for _, form := range d.lex.FormsOf(lemma) {
		for _, e := range d.lex.Entries(form) {
			if e.POS == pos && e.Lemma == lemma && !conflicts(e, noun) {
				return form, true
			}
		}
	}
	return "", false
}

// Elision table: these words drop their final vowel before a vowel sound.
// Domain data, kept as a package-level table so it can evolve without
// touching the detection logic.
var elisions = map[string]string{
	"le": "l'", "la": "l'",
	"de": "d'", "ne": "n'",
	"me": "m'", "te": "t'", "se": "s'",
	"je": "j'", "que": "qu'",
}

// Aspirated-h words block elision ("le haricot", never "l'haricot").
var aspiratedH = map[string]bool{
	"haricot": true, "héros": true, "hibou": true, "honte": true,
	"hasard": true, "haut": true, "haute": true, "hors": true,
	"huit": true, "hérisson": true, "hache": true, "hanche": true,
}

// euphony applies mandatory elision before vowel-initial words (GEUF):
// "le arbre" -> "l'arbre". Purely table-driven, no lexicon needed.
type euphony struct{}

func (d *euphony) Category() Category { return Grammaire }
func (d *euphony) Code() Code         { return GEUF }

func (d *euphony) HasError(text string) bool {
	toks := textseg.Tokenize(text)
	for i := range toks {
		if d.elidableAt(toks, i) {
			return true
		}
	}
	return false
}

func (d *euphony) Correct(text string) string {
	toks := textseg.Tokenize(text)
	var b strings.Builder
	changed := false
	for i := 0; i < len(toks); i++ {
		if !d.elidableAt(toks, i) {
			b.WriteString(toks[i].Text)
			continue
		}
		elided := elisions[toks[i].Norm]
		b.WriteString(textseg.ApplyCase(elided, toks[i].Case))
		// Swallow the separating whitespace: the elided form glues onto
		// the next word.
		if i+1 < len(toks) && toks[i+1].Kind == textseg.Space {
			i++
		}
		changed = true
	}
	if !changed {
		return text
	}
	return b.String()
}

// elidableAt: word in the elision table, separated by plain whitespace
// from a vowel-initial word that does not carry an aspirated h.
func (d *euphony) elidableAt(toks []textseg.Token, i int) bool {
	tok := toks[i]
	if tok.Kind != textseg.Word {
		return false
	}
	if _, ok := elisions[tok.Norm]; !ok {
		return false
	}
	if i+2 >= len(toks) || toks[i+1].Kind != textseg.Space {
		return false
	}
	next := toks[i+2]
	if next.Kind != textseg.Word {
		return false
	}
	return textseg.VowelInitial(next.Norm) && !aspiratedH[next.Norm]
}
