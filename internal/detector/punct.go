package detector

import (
	"strings"

	"detecterreur/internal/textseg"
)

// French typographic spacing rules. The marks themselves are never
// changed, only the whitespace around them and doubled marks.
var (
	noSpaceBefore = map[string]bool{",": true, ".": true, "…": true}
	spaceBefore   = map[string]bool{":": true, ";": true, "!": true, "?": true}
	spaceAfter    = map[string]bool{",": true, ".": true, "…": true, ":": true, ";": true, "!": true, "?": true}
	collapsible   = map[string]bool{",": true, ":": true, ";": true, "!": true, "?": true}
)

// punctuation normalizes spacing around punctuation (PUNC):
// "Bonjour ,comment" -> "Bonjour, comment".
type punctuation struct{}

func (d *punctuation) Category() Category { return Ponctuation }
func (d *punctuation) Code() Code         { return PUNC }

// Any deviation from the spacing table is an error.
func (d *punctuation) HasError(text string) bool {
	return d.Correct(text) != text
}

func (d *punctuation) Correct(text string) string {
	toks := textseg.Tokenize(text)
	var out []string
	last := func() string {
		if len(out) == 0 {
			return ""
		}
		return out[len(out)-1]
	}
	// A comma or period glued between two digit runs is a decimal
	// separator, not punctuation.
	decimal := func(i int) bool {
		t := toks[i]
		if t.Kind != textseg.Punct || (t.Text != "," && t.Text != ".") {
			return false
		}
		return i > 0 && i+1 < len(toks) && digitRun(toks[i-1]) && digitRun(toks[i+1])
	}
	inDecimal := false
	for i, t := range toks {
		switch t.Kind {
		case textseg.Space:
			out = append(out, t.Text)
		case textseg.Punct:
			if decimal(i) {
				out = append(out, t.Text)
				inDecimal = true
				continue
			}
			inDecimal = false
			p := t.Text
			if collapsible[p] && last() == p {
				continue
			}
			switch {
			case noSpaceBefore[p]:
				trimTrailingSpace(&out)
			case spaceBefore[p]:
				trimTrailingSpace(&out)
				if len(out) > 0 {
					out = append(out, " ")
				}
			}
			out = append(out, p)
		default:
			if spaceAfter[last()] && !inDecimal {
				out = append(out, " ")
			}
			inDecimal = false
			out = append(out, t.Text)
		}
	}
	return strings.Join(out, "")
}

func digitRun(t textseg.Token) bool {
	return t.Kind == textseg.Word && !t.Lexical()
}

func trimTrailingSpace(out *[]string) {
	s := *out
	for len(s) > 0 && strings.TrimSpace(s[len(s)-1]) == "" {
		s = s[:len(s)-1]
	}
	*out = s
}
