// Package textseg splits French text into word, punctuation and whitespace
// tokens while keeping enough provenance (offsets, casing) to rebuild the
// original string after a correction touched part of it.
package textseg

import (
	"regexp"
	"strings"
	"unicode"
)

type Kind int

const (
	Word Kind = iota
	Punct
	Space
)

type CasePattern int

const (
	Lower CasePattern = iota
	Title
	Upper
	Mixed
)

// Token is an immutable span of the input. Norm is the lowercase form with
// accents preserved; detectors that match accent-insensitively strip them
// explicitly via StripAccents.
type Token struct {
	Kind  Kind
	Text  string
	Norm  string
	Start int
	End   int
	Case  CasePattern
}

var tokenRe = regexp.MustCompile(`[\p{L}]+|\d+|\s+|[^\s\p{L}\d]`)

// Tokenize produces a fresh token slice for text. Concatenating the Text
// fields in order yields text byte-for-byte.
func Tokenize(text string) []Token {
	spans := tokenRe.FindAllStringIndex(text, -1)
	tokens := make([]Token, 0, len(spans))
	for _, sp := range spans {
		raw := text[sp[0]:sp[1]]
		tok := Token{Text: raw, Start: sp[0], End: sp[1]}
		switch {
		case isWordRun(raw) || isDigitRun(raw):
			tok.Kind = Word
			tok.Norm = strings.ToLower(raw)
			tok.Case = CaseOf(raw)
		case strings.TrimSpace(raw) == "":
			tok.Kind = Space
			tok.Norm = raw
		default:
			tok.Kind = Punct
			tok.Norm = raw
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Join reassembles a token slice into a string.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

func isWordRun(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func isDigitRun(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// Lexical reports whether the token is a natural-language word (as
// opposed to a digit run). Only lexical tokens go through the validator
// and the detectors.
func (t Token) Lexical() bool {
	if t.Kind != Word || t.Text == "" {
		return false
	}
	return unicode.IsLetter([]rune(t.Text)[0])
}

// CaseOf classifies the casing pattern of a word.
func CaseOf(s string) CasePattern {
	r := []rune(s)
	if len(r) == 0 {
		return Lower
	}
	lower := strings.ToLower(s)
	upper := strings.ToUpper(s)
	switch {
	case s == lower:
		return Lower
	case s == upper && len(r) > 1:
		return Upper
	case string(r[:1]) == strings.ToUpper(string(r[:1])) && strings.ToLower(string(r[1:])) == string(r[1:]):
		return Title
	default:
		return Mixed
	}
}

// ApplyCase rewrites s (assumed lowercase) to match pattern. Mixed patterns
// fall back to the lowercase form since the original shape is unrecoverable
// after a replacement.
func ApplyCase(s string, pattern CasePattern) string {
	switch pattern {
	case Title:
		return TitleCase(s)
	case Upper:
		return strings.ToUpper(s)
	default:
		return s
	}
}

// TitleCase uppercases the first rune only.
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// French accented letters folded to their bare form. Ligatures expand.
var accentFold = map[rune]string{
	'à': "a", 'â': "a", 'ä': "a",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'î': "i", 'ï': "i",
	'ô': "o", 'ö': "o",
	'ù': "u", 'û': "u", 'ü': "u",
	'ç': "c", 'ÿ': "y",
	'œ': "oe", 'æ': "ae",
	'À': "A", 'Â': "A", 'Ä': "A",
	'É': "E", 'È': "E", 'Ê': "E", 'Ë': "E",
	'Î': "I", 'Ï': "I",
	'Ô': "O", 'Ö': "O",
	'Ù': "U", 'Û': "U", 'Ü': "U",
	'Ç': "C", 'Œ': "OE", 'Æ': "AE",
}

// StripAccents removes French diacritics. Non-French letters pass through.
func StripAccents(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if folded, ok := accentFold[r]; ok {
			b.WriteString(folded)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// VowelInitial reports whether the word starts with a vowel sound for
// elision purposes. Mute-h words elide too; aspirated-h exceptions live in
// the caller's rule table.
func VowelInitial(word string) bool {
	if word == "" {
		return false
	}
	r := []rune(strings.ToLower(word))[0]
	switch StripAccents(string(r)) {
	case "a", "e", "i", "o", "u", "y", "h":
		return true
	}
	return false
}
