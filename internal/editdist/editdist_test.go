package editdist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"detecterreur/pkg/options"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"chat", "chat", 0},
		{"chat", "chats", 1},
		{"chat", "cht", 1},
		{"chat", "chot", 1},
		{"setp", "step", 1},
		{"formage", "fromage", 1},
		{"chat", "chien", 3},
		{"école", "ecole", 1},
		{"ab", "ba", 1},
		{"abcd", "badc", 2},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Distance(tc.a, tc.b), "Distance(%q, %q)", tc.a, tc.b)
		assert.Equal(t, tc.want, Distance(tc.b, tc.a), "Distance(%q, %q)", tc.b, tc.a)
	}
}

func TestCandidatesOrdering(t *testing.T) {
	freq := map[string]float64{
		"voiture":  35000,
		"voitures": 15000,
		"toiture":  4000,
	}
	eng := NewEngine([]string{"toiture", "voitures", "voiture"}, func(w string) float64 { return freq[w] })

	got := eng.Candidates("vaiture", 2)
	require.Len(t, got, 3)
	// distance first, then frequency among the distance-2 pair.
	assert.Equal(t, "voiture", got[0].Term)
	assert.Equal(t, 1, got[0].Distance)
	assert.Equal(t, "voitures", got[1].Term)
	assert.Equal(t, 2, got[1].Distance)
	assert.Equal(t, "toiture", got[2].Term)
}

func TestCandidatesLexicographicTieBreak(t *testing.T) {
	eng := NewEngine([]string{"abce", "abcd"}, nil)
	got := eng.Candidates("abcf", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "abcd", got[0].Term)
	assert.Equal(t, "abce", got[1].Term)
}

func TestCandidatesExcludesExactWord(t *testing.T) {
	eng := NewEngine([]string{"chat", "chats"}, nil)
	got := eng.Candidates("chat", 2)
	require.Len(t, got, 1)
	assert.Equal(t, "chats", got[0].Term)
}

func TestShortWordBound(t *testing.T) {
	eng := NewEngine([]string{"ab", "abc", "abcd"}, nil)

	assert.Equal(t, 1, eng.Bound("ac"))
	assert.Equal(t, 1, eng.Bound("abc"))
	assert.Equal(t, 2, eng.Bound("abcd"))

	// len("ac") <= 3 clamps the requested distance to 1.
	got := eng.Candidates("ac", 2)
	require.Len(t, got, 2)
	for _, c := range got {
		assert.LessOrEqual(t, c.Distance, 1)
	}
}

func TestEngineOptions(t *testing.T) {
	eng := NewEngine([]string{"abcde"}, nil,
		options.WithMaxEditDistance(3),
		options.WithShortWordLength(4),
		options.WithShortWordMaxDistance(2),
	)
	assert.Equal(t, 2, eng.Bound("abcd"))
	assert.Equal(t, 3, eng.Bound("abcde"))
}

func TestCandidatesEmptyInput(t *testing.T) {
	eng := NewEngine([]string{"chat"}, nil)
	assert.Empty(t, eng.Candidates("", 2))
	assert.Empty(t, eng.Candidates("zzzzzz", 2))
}

func TestIsSubsequence(t *testing.T) {
	assert.True(t, IsSubsequence("est", "estt"))
	assert.True(t, IsSubsequence("commne", "commune"))
	assert.True(t, IsSubsequence("", "chat"))
	assert.False(t, IsSubsequence("formage", "fromage"))
	assert.False(t, IsSubsequence("chat", "cht"))
}

func TestHamming(t *testing.T) {
	assert.Equal(t, 1, Hamming("vaiture", "voiture"))
	assert.Equal(t, 0, Hamming("chat", "chat"))
	assert.Equal(t, 2, Hamming("formage", "fromage"))
	assert.Equal(t, -1, Hamming("chat", "chats"))
}

func TestIsOneAdjacentSwap(t *testing.T) {
	assert.True(t, IsOneAdjacentSwap("setp", "step"))
	assert.True(t, IsOneAdjacentSwap("formage", "fromage"))
	assert.False(t, IsOneAdjacentSwap("chat", "chat"))
	assert.False(t, IsOneAdjacentSwap("abcd", "badc"))
	assert.True(t, IsOneAdjacentSwap("chat", "chta"))
	assert.False(t, IsOneAdjacentSwap("chat", "chut"))
}
