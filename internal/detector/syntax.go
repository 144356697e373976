package detector

import (
	"strings"

	"detecterreur/internal/lexicon"
	"detecterreur/internal/textseg"
)

// BAGS adjectives (beauty, age, goodness, size) precede their noun.
// Lemma set.
var preNounAdjectives = map[string]bool{
	"beau": true, "joli": true, "laid": true, "jeune": true, "vieux": true,
	"nouveau": true, "ancien": true, "bon": true, "mauvais": true,
	"meilleur": true, "pire": true, "grand": true, "gros": true,
	"petit": true, "long": true, "court": true, "haut": true, "bas": true,
	"énorme": true, "immense": true, "minuscule": true, "large": true,
	"étroit": true, "autre": true, "premier": true, "deuxième": true,
	"dernier": true,
}

// Object clitics: pronouns that belong before a conjugated verb.
var objectPronouns = map[string]bool{
	"me": true, "te": true, "se": true, "le": true, "la": true,
	"les": true, "lui": true, "leur": true, "y": true, "en": true,
}

// wordOrder fixes BAGS adjectives placed after their noun, the negation
// particle "pas" placed before the verb, and object clitics left after
// the verb (SORD).
type wordOrder struct {
	lex *lexicon.Lexicon
}

func (d *wordOrder) Category() Category { return Syntaxe }
func (d *wordOrder) Code() Code         { return SORD }

func (d *wordOrder) HasError(text string) bool {
	_, has := d.pass(textseg.Tokenize(text), false)
	return has
}

func (d *wordOrder) Correct(text string) string {
	toks := textseg.Tokenize(text)
	out, has := d.pass(toks, true)
	if !has {
		return text
	}
	return textseg.Join(out)
}

func (d *wordOrder) pass(toks []textseg.Token, apply bool) ([]textseg.Token, bool) {
	found := false
	for i, tok := range toks {
		if tok.Kind != textseg.Word {
			continue
		}
		// Noun followed by a pre-noun adjective: swap.
		if d.lex.HasPOS(tok.Norm, "N") {
			ni := nextWord(toks, i)
			if ni >= 0 && d.bagsAdjective(toks[ni].Norm) {
				found = true
				if !apply {
					return nil, true
				}
				swapTokens(toks, i, ni)
				continue
			}
		}
		// "ne pas <verbe>" -> "ne <verbe> pas".
		if tok.Norm == "pas" {
			pi, ni := prevWord(toks, i), nextWord(toks, i)
			if pi >= 0 && ni >= 0 && (toks[pi].Norm == "ne" || toks[pi].Norm == "n") &&
				d.lex.HasPOS(toks[ni].Norm, "V") {
				found = true
				if !apply {
					return nil, true
				}
				swapTokens(toks, i, ni)
				continue
			}
		}
		// Verb followed by a bare object clitic: the pronoun belongs in
		// front ("Je vois le." -> "Je le vois.").
		if d.cliticAfterVerb(toks, i) {
			found = true
			if !apply {
				return nil, true
			}
			swapTokens(toks, i, nextWord(toks, i))
		}
	}
	return toks, found
}

// cliticAfterVerb: a conjugated verb with its own subject, directly
// followed by an object pronoun that ends the clause. A word after the
// pronoun means it is a determiner; a missing subject means an
// imperative, where the clitic legitimately trails the verb.
func (d *wordOrder) cliticAfterVerb(toks []textseg.Token, i int) bool {
	if toks[i].Kind != textseg.Word {
		return false
	}
	if _, ok := finiteVerb(d.lex, toks[i].Norm); !ok {
		return false
	}
	if _, ok := subjectBefore(d.lex, toks, i); !ok {
		return false
	}
	if i+2 >= len(toks) || toks[i+1].Kind != textseg.Space ||
		toks[i+2].Kind != textseg.Word || !objectPronouns[toks[i+2].Norm] {
		return false
	}
	for j := i + 3; j < len(toks); j++ {
		switch toks[j].Kind {
		case textseg.Space:
			continue
		case textseg.Word:
			return false
		default:
			return true
		}
	}
	return true
}

func (d *wordOrder) bagsAdjective(norm string) bool {
	e, ok := d.lex.EntryWithPOS(norm, "ADJ")
	return ok && preNounAdjectives[e.Lemma] && !d.lex.HasPOS(norm, "N")
}

func swapTokens(toks []textseg.Token, i, j int) {
	toks[i].Text, toks[j].Text = toks[j].Text, toks[i].Text
	toks[i].Norm, toks[j].Norm = toks[j].Norm, toks[i].Norm
	toks[i].Case, toks[j].Case = toks[j].Case, toks[i].Case
}

// missingWord inserts a determiner before a bare common noun and a dummy
// subject before a subject-less conjugated verb (SMIS):
// "Je mange pomme" -> "Je mange la pomme",
// "Hier mange une pomme" -> "Hier il mange une pomme".
type missingWord struct {
	lex *lexicon.Lexicon
}

func (d *missingWord) Category() Category { return Syntaxe }
func (d *missingWord) Code() Code         { return SMIS }

func (d *missingWord) HasError(text string) bool {
	toks := textseg.Tokenize(text)
	for i := range toks {
		if d.bareNounAt(toks, i) || d.missingSubjectAt(toks, i) {
			return true
		}
	}
	return false
}

func (d *missingWord) Correct(text string) string {
	toks := textseg.Tokenize(text)
	var b strings.Builder
	changed := false
	for i, tok := range toks {
		if d.missingSubjectAt(toks, i) {
			b.WriteString("il ")
			b.WriteString(tok.Text)
			changed = true
			continue
		}
		if !d.bareNounAt(toks, i) {
			b.WriteString(tok.Text)
			continue
		}
		noun, _ := d.lex.EntryWithPOS(tok.Norm, "N")
		det := guessDeterminer(noun, tok.Norm)
		raw := tok.Text
		if prevWord(toks, i) < 0 && tok.Case == textseg.Title {
			// Sentence-initial noun: the capital moves to the article.
			det = textseg.TitleCase(det)
			raw = strings.ToLower(raw)
		}
		if strings.HasSuffix(det, "'") {
			b.WriteString(det + raw)
		} else {
			b.WriteString(det + " " + raw)
		}
		changed = true
	}
	if !changed {
		return text
	}
	return b.String()
}

// bareNounAt: a common noun with no determiner (or preposition) in front.
// One adjective may sit between determiner and noun.
func (d *missingWord) bareNounAt(toks []textseg.Token, i int) bool {
	tok := toks[i]
	if tok.Kind != textseg.Word {
		return false
	}
	if _, ok := d.lex.EntryWithPOS(tok.Norm, "N"); !ok {
		return false
	}
	// Words that double as determiners, pronouns or proper nouns are too
	// ambiguous to flag.
	if d.lex.HasPOS(tok.Norm, "DET") || d.lex.HasPOS(tok.Norm, "PRON") || d.lex.HasPOS(tok.Norm, "PROPN") {
		return false
	}
	pi := prevWord(toks, i)
	if pi >= 0 && d.lex.HasPOS(toks[pi].Norm, "ADJ") && !d.lex.HasPOS(toks[pi].Norm, "V") {
		pi = prevWord(toks, pi)
	}
	if pi < 0 {
		return true
	}
	prev := toks[pi].Norm
	if d.lex.HasPOS(prev, "DET") || d.lex.HasPOS(prev, "ADP") || elided(prev) {
		return false
	}
	// A noun right after another noun or adjective is likely a compound;
	// leave it alone.
	if d.lex.HasPOS(prev, "N") {
		return false
	}
	return d.lex.HasPOS(prev, "V") || d.lex.HasPOS(prev, "PRON") || d.lex.HasPOS(prev, "ADV")
}

func elided(norm string) bool {
	_, ok := elisions[norm]
	return ok || norm == "l" || norm == "d"
}

// missingSubjectAt: a conjugated verb with no plausible subject earlier
// in the sentence. Sentence-initial verbs read as imperatives; a subject
// pronoun right after the verb is an inversion. Both stay.
func (d *missingWord) missingSubjectAt(toks []textseg.Token, i int) bool {
	if toks[i].Kind != textseg.Word {
		return false
	}
	if _, ok := finiteVerb(d.lex, toks[i].Norm); !ok {
		return false
	}
	if ni := nextWord(toks, i); ni >= 0 {
		if _, ok := subjectPronouns[toks[ni].Norm]; ok {
			return false
		}
	}
	sawWord := false
	for j := i - 1; j >= 0; j-- {
		switch toks[j].Kind {
		case textseg.Punct:
			if sentenceEnd[toks[j].Text] {
				return sawWord
			}
		case textseg.Word:
			sawWord = true
			if d.subjectCandidate(toks[j].Norm) {
				return false
			}
		}
	}
	return sawWord
}

// subjectCandidate: a word that can head a subject. Out-of-vocabulary
// words get the benefit of the doubt.
func (d *missingWord) subjectCandidate(norm string) bool {
	if _, ok := subjectPronouns[norm]; ok {
		return true
	}
	if len(d.lex.Entries(norm)) == 0 {
		return true
	}
	return d.lex.HasPOS(norm, "N") || d.lex.HasPOS(norm, "PROPN") || d.lex.HasPOS(norm, "PRON")
}

// guessDeterminer mirrors the noun's features: les for plurals, l' before
// a vowel, la for feminine, le otherwise.
func guessDeterminer(noun lexicon.Entry, norm string) string {
	if noun.Number == "p" {
		return "les"
	}
	if textseg.VowelInitial(norm) && !aspiratedH[norm] {
		return "l'"
	}
	if noun.Gender == "f" {
		return "la"
	}
	return "le"
}

// Pre-determiners and quantifiers that legitimately precede another
// determiner ("tous les jours").
var (
	predeterminers = map[string]bool{"tout": true, "tous": true, "toute": true, "toutes": true}
	quantifiers    = map[string]bool{
		"plusieurs": true, "quelques": true, "certains": true, "certaines": true,
		"divers": true, "diverses": true, "chaque": true, "aucun": true, "aucune": true,
	}
)

// extraWord removes a doubled determiner or doubled subject pronoun
// (SINS): "le mon frère" -> "mon frère". The first of the pair goes,
// matching how learners usually pile the extra word in front.
type extraWord struct {
	lex *lexicon.Lexicon
}

func (d *extraWord) Category() Category { return Syntaxe }
func (d *extraWord) Code() Code         { return SINS }

func (d *extraWord) HasError(text string) bool {
	toks := textseg.Tokenize(text)
	for i := range toks {
		if d.extraAt(toks, i) {
			return true
		}
	}
	return false
}

func (d *extraWord) Correct(text string) string {
	toks := textseg.Tokenize(text)
	var b strings.Builder
	changed := false
	for i := 0; i < len(toks); i++ {
		if d.extraAt(toks, i) {
			// Drop this word and the whitespace after it.
			if i+1 < len(toks) && toks[i+1].Kind == textseg.Space {
				i++
			}
			changed = true
			continue
		}
		b.WriteString(toks[i].Text)
	}
	if !changed {
		return text
	}
	return b.String()
}

func (d *extraWord) extraAt(toks []textseg.Token, i int) bool {
	tok := toks[i]
	if tok.Kind != textseg.Word {
		return false
	}
	ni := nextWord(toks, i)
	if ni < 0 {
		return false
	}
	next := toks[ni].Norm
	// Doubled determiners.
	if d.plainDeterminer(tok.Norm) && d.plainDeterminer(next) {
		return true
	}
	// Doubled subject pronouns (distinct ones: "je tu manges"; identical
	// doubles belong to SRED).
	if _, ok := subjectPronouns[tok.Norm]; ok {
		if _, ok := subjectPronouns[next]; ok && tok.Norm != next {
			return true
		}
	}
	return false
}

func (d *extraWord) plainDeterminer(norm string) bool {
	if predeterminers[norm] || quantifiers[norm] {
		return false
	}
	return d.lex.HasPOS(norm, "DET") && !d.lex.HasPOS(norm, "PRON")
}

// Doubles that are legitimate French.
var (
	reflexivePronouns = map[string]bool{"me": true, "te": true, "se": true, "nous": true, "vous": true}
	intensifiers      = map[string]bool{"très": true, "bien": true, "tout": true, "super": true}
)

// redundancy collapses an immediately repeated word (SRED): "je je" ->
// "je". Reflexive doubles ("nous nous lavons") and intensifier doubles
// ("très très bon") stay.
type redundancy struct{}

func (d *redundancy) Category() Category { return Syntaxe }
func (d *redundancy) Code() Code         { return SRED }

func (d *redundancy) HasError(text string) bool {
	toks := textseg.Tokenize(text)
	for i := range toks {
		if duplicatedAt(toks, i) {
			return true
		}
	}
	return false
}

func (d *redundancy) Correct(text string) string {
	toks := textseg.Tokenize(text)
	var b strings.Builder
	changed := false
	for i := 0; i < len(toks); i++ {
		b.WriteString(toks[i].Text)
		if duplicatedAt(toks, i) {
			// Skip the separator and the repeated word.
			i += 2
			changed = true
		}
	}
	if !changed {
		return text
	}
	return b.String()
}

func duplicatedAt(toks []textseg.Token, i int) bool {
	if toks[i].Kind != textseg.Word {
		return false
	}
	if i+2 >= len(toks) || toks[i+1].Kind != textseg.Space || toks[i+2].Kind != textseg.Word {
		return false
	}
	if toks[i].Norm != toks[i+2].Norm {
		return false
	}
	return !reflexivePronouns[toks[i].Norm] && !intensifiers[toks[i].Norm]
}
