package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgglutinationSplit(t *testing.T) {
	lx := newTestLexicon(t)
	d := &agglutination{lex: lx}

	assert.Equal(t, Forme, d.Category())
	assert.Equal(t, FAGL, d.Code())

	tests := []struct{ in, want string }{
		{"Je vais au lemarché.", "Je vais au le marché."},
		{"dansle chien", "dans le chien"},
		{"Jesuis grand.", "Je suis grand."},
	}
	for _, tc := range tests {
		assert.True(t, d.HasError(tc.in), "HasError(%q)", tc.in)
		assert.Equal(t, tc.want, d.Correct(tc.in))
	}
}

func TestAgglutinationKeepsCompoundsAndValidWords(t *testing.T) {
	lx := newTestLexicon(t)
	d := &agglutination{lex: lx}

	// both halves valid but neither is a glue word
	assert.False(t, d.HasError("chienmaison"))
	assert.Equal(t, "chienmaison", d.Correct("chienmaison"))

	// valid words are never split
	assert.False(t, d.HasError("des grandes maisons"))

	// an unsplittable unknown is not this detector's business
	assert.False(t, d.HasError("zzzz"))
}

func TestAgglutinationIdempotent(t *testing.T) {
	lx := newTestLexicon(t)
	d := &agglutination{lex: lx}

	once := d.Correct("dansle chien")
	assert.Equal(t, once, d.Correct(once))
}

func TestDiacritics(t *testing.T) {
	lx, eng := newTestKit(t)
	d := &diacritics{lex: lx, eng: eng}

	assert.Equal(t, FDIA, d.Code())

	assert.True(t, d.HasError("une ecole"))
	assert.Equal(t, "une école", d.Correct("une ecole"))
	assert.Equal(t, "École", d.Correct("Ecole"), "casing survives the accent fix")
	assert.Equal(t, "Je suis allée.", d.Correct("Je suis allee."))

	// misspellings that are not pure accent slips stay for the
	// orthography detectors
	assert.False(t, d.HasError("vaiture"))
	assert.False(t, d.HasError("le chien mange."))
}

func TestCapitalizationSentenceStart(t *testing.T) {
	lx := newTestLexicon(t)
	d := &capitalization{lex: lx}

	assert.Equal(t, FMAJ, d.Code())

	assert.True(t, d.HasError("il mange. elle mange."))
	assert.Equal(t, "Il mange. Elle mange.", d.Correct("il mange. elle mange."))

	// a comma does not open a new sentence
	assert.False(t, d.HasError("Bonjour, comment allez-vous ?"))
	assert.False(t, d.HasError("Il mange."))
}

func TestCapitalizationProperNoun(t *testing.T) {
	lx := newTestLexicon(t)
	d := &capitalization{lex: lx}

	assert.Equal(t, "Je visite Paris.", d.Correct("je visite paris."))
	assert.False(t, d.HasError("Je visite Paris."))

	// "marché" is a common noun, lowercase mid-sentence is fine
	assert.False(t, d.HasError("Le marché est grand."))
}
