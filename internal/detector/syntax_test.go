package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordOrderAdjective(t *testing.T) {
	lx := newTestLexicon(t)
	d := &wordOrder{lex: lx}

	assert.Equal(t, Syntaxe, d.Category())
	assert.Equal(t, SORD, d.Code())

	assert.True(t, d.HasError("le chien grand est beau."))
	assert.Equal(t, "le grand chien est beau.", d.Correct("le chien grand est beau."))

	// only pre-noun adjectives move; BAGS membership is per lemma
	assert.Equal(t, "la grande maison", d.Correct("la maison grande"))
	assert.False(t, d.HasError("le grand chien"))
}

func TestWordOrderNegation(t *testing.T) {
	lx := newTestLexicon(t)
	d := &wordOrder{lex: lx}

	assert.True(t, d.HasError("Je ne pas mange."))
	assert.Equal(t, "Je ne mange pas.", d.Correct("Je ne pas mange."))
	assert.False(t, d.HasError("Je ne mange pas."))
}

func TestWordOrderObjectClitic(t *testing.T) {
	lx := newTestLexicon(t)
	d := &wordOrder{lex: lx}

	assert.True(t, d.HasError("Je vois le."))
	assert.Equal(t, "Je le vois.", d.Correct("Je vois le."))
	assert.Equal(t, "Tu les manges.", d.Correct("Tu manges les."))

	// "le" followed by a word is a determiner, not a clitic
	assert.False(t, d.HasError("Je vois le chien."))
	// imperatives keep the pronoun after the verb
	assert.False(t, d.HasError("Mange le !"))
	assert.False(t, d.HasError("Je le vois."))
}

func TestMissingDeterminer(t *testing.T) {
	lx := newTestLexicon(t)
	d := &missingWord{lex: lx}

	assert.Equal(t, SMIS, d.Code())

	tests := []struct{ in, want string }{
		{"Je mange pomme.", "Je mange la pomme."},
		{"Je mange fromage.", "Je mange le fromage."},
		{"Je visite école.", "Je visite l'école."},
		// sentence-initial noun hands its capital to the article
		{"Pomme est grande.", "La pomme est grande."},
	}
	for _, tc := range tests {
		assert.True(t, d.HasError(tc.in), "HasError(%q)", tc.in)
		assert.Equal(t, tc.want, d.Correct(tc.in))
	}
}

func TestMissingDeterminerNoFalsePositives(t *testing.T) {
	lx := newTestLexicon(t)
	d := &missingWord{lex: lx}

	for _, text := range []string{
		"Je mange la pomme.",
		"Je vais à paris.",
		"l'école est grande.",
		"Le marché est grand.",
		"Bonjour, comment allez-vous ?",
	} {
		assert.False(t, d.HasError(text), "HasError(%q)", text)
		assert.Equal(t, text, d.Correct(text))
	}
}

func TestMissingSubject(t *testing.T) {
	lx := newTestLexicon(t)
	d := &missingWord{lex: lx}

	assert.True(t, d.HasError("Hier mange une pomme."))
	assert.Equal(t, "Hier il mange une pomme.", d.Correct("Hier mange une pomme."))
}

func TestMissingSubjectNoFalsePositives(t *testing.T) {
	lx := newTestLexicon(t)
	d := &missingWord{lex: lx}

	for _, text := range []string{
		// sentence-initial verb reads as an imperative
		"Mange une pomme !",
		// noun subjects and inversions stay
		"Le chien mange.",
		"Hier il mange une pomme.",
		"Bonjour, comment allez-vous ?",
	} {
		assert.False(t, d.HasError(text), "HasError(%q)", text)
		assert.Equal(t, text, d.Correct(text))
	}
}

func TestExtraWord(t *testing.T) {
	lx := newTestLexicon(t)
	d := &extraWord{lex: lx}

	assert.Equal(t, SINS, d.Code())

	assert.True(t, d.HasError("le mon frère"))
	assert.Equal(t, "mon frère", d.Correct("le mon frère"))

	assert.True(t, d.HasError("je tu manges."))
	assert.Equal(t, "tu manges.", d.Correct("je tu manges."))
}

func TestExtraWordKeepsLegitimateSequences(t *testing.T) {
	lx := newTestLexicon(t)
	d := &extraWord{lex: lx}

	for _, text := range []string{
		"Je mange la pomme.",
		// predeterminer before an article is fine
		"tous les chiens",
		// identical doubles belong to redundancy, not here
		"je je mange",
	} {
		assert.False(t, d.HasError(text), "HasError(%q)", text)
	}
}

func TestRedundancy(t *testing.T) {
	d := &redundancy{}

	assert.Equal(t, SRED, d.Code())

	assert.True(t, d.HasError("Je je mange."))
	assert.Equal(t, "Je mange.", d.Correct("Je je mange."))

	assert.True(t, d.HasError("le le chien"))
	assert.Equal(t, "le chien", d.Correct("le le chien"))

	// case-insensitive match keeps the first occurrence
	assert.Equal(t, "Le chien", d.Correct("Le le chien"))
}

func TestRedundancyExceptions(t *testing.T) {
	d := &redundancy{}

	for _, text := range []string{
		"nous nous avons",
		"vous vous avez",
		"très très grand",
		"bien bien",
	} {
		assert.False(t, d.HasError(text), "HasError(%q)", text)
		assert.Equal(t, text, d.Correct(text))
	}
}
