package detector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"detecterreur/internal/editdist"
	"detecterreur/internal/lexicon"
)

// Small French resource shared by the detector tests. Rows are
// form, lemma, pos, features, freq.
var fixtureRows = [][5]string{
	{"je", "je", "PRON", "p=1;n=s", "95000"},
	{"tu", "tu", "PRON", "p=2;n=s", "60000"},
	{"il", "il", "PRON", "p=3;n=s", "90000"},
	{"elle", "elle", "PRON", "p=3;n=s", "70000"},
	{"on", "on", "PRON", "p=3;n=s", "50000"},
	{"nous", "nous", "PRON", "p=1;n=p", "55000"},
	{"vous", "vous", "PRON", "p=2;n=p", "65000"},
	{"ils", "ils", "PRON", "p=3;n=p", "60000"},
	{"elles", "elles", "PRON", "p=3;n=p", "40000"},
	{"ceci", "ceci", "PRON", "-", "9000"},

	{"le", "le", "DET", "g=m;n=s", "100000"},
	{"la", "le", "DET", "g=f;n=s", "95000"},
	{"les", "le", "DET", "n=p", "98000"},
	{"un", "un", "DET", "g=m;n=s", "85000"},
	{"une", "un", "DET", "g=f;n=s", "80000"},
	{"des", "un", "DET", "n=p", "70000"},
	{"mon", "mon", "DET", "g=m;n=s", "35000"},
	{"ma", "mon", "DET", "g=f;n=s", "30000"},
	{"mes", "mon", "DET", "n=p", "20000"},

	{"suis", "être", "V", "p=1;n=s", "90000"},
	{"es", "être", "V", "p=2;n=s", "50000"},
	{"est", "être", "V", "p=3;n=s", "99000"},
	{"sommes", "être", "V", "p=1;n=p", "30000"},
	{"êtes", "être", "V", "p=2;n=p", "25000"},
	{"sont", "être", "V", "p=3;n=p", "60000"},
	{"ai", "avoir", "V", "p=1;n=s", "88000"},
	{"as", "avoir", "V", "p=2;n=s", "40000"},
	{"a", "avoir", "V", "p=3;n=s", "99000"},
	{"avons", "avoir", "V", "p=1;n=p", "30000"},
	{"avez", "avoir", "V", "p=2;n=p", "28000"},
	{"ont", "avoir", "V", "p=3;n=p", "55000"},
	{"mange", "manger", "V", "p=1;n=s", "20000"},
	{"mange", "manger", "V", "p=3;n=s", "20000"},
	{"manges", "manger", "V", "p=2;n=s", "8000"},
	{"mangeons", "manger", "V", "p=1;n=p", "5000"},
	{"mangez", "manger", "V", "p=2;n=p", "7000"},
	{"mangent", "manger", "V", "p=3;n=p", "9000"},
	{"vois", "voir", "V", "p=1;n=s", "30000"},
	{"vois", "voir", "V", "p=2;n=s", "30000"},
	{"voit", "voir", "V", "p=3;n=s", "35000"},
	{"visite", "visiter", "V", "p=1;n=s", "6000"},
	{"visite", "visiter", "V", "p=3;n=s", "6000"},
	{"allé", "aller", "V", "g=m;n=s", "12000"},
	{"allée", "aller", "V", "g=f;n=s", "11000"},
	{"allez", "aller", "V", "p=2;n=p", "15000"},

	{"marché", "marché", "N", "g=m;n=s", "30000"},
	{"maison", "maison", "N", "g=f;n=s", "40000"},
	{"chien", "chien", "N", "g=m;n=s", "25000"},
	{"chiens", "chien", "N", "g=m;n=p", "15000"},
	{"pomme", "pomme", "N", "g=f;n=s", "18000"},
	{"voiture", "voiture", "N", "g=f;n=s", "35000"},
	{"école", "école", "N", "g=f;n=s", "30000"},
	{"arbre", "arbre", "N", "g=m;n=s", "20000"},
	{"test", "test", "N", "g=m;n=s", "15000"},
	{"commune", "commune", "N", "g=f;n=s", "22000"},
	{"fromage", "fromage", "N", "g=m;n=s", "17000"},
	{"frère", "frère", "N", "g=m;n=s", "21000"},
	{"haricot", "haricot", "N", "g=m;n=s", "3000"},

	{"grand", "grand", "ADJ", "g=m;n=s", "30000"},
	{"grande", "grand", "ADJ", "g=f;n=s", "25000"},
	{"grands", "grand", "ADJ", "g=m;n=p", "15000"},
	{"grandes", "grand", "ADJ", "g=f;n=p", "12000"},
	{"beau", "beau", "ADJ", "g=m;n=s", "20000"},
	{"belle", "beau", "ADJ", "g=f;n=s", "18000"},

	{"ne", "ne", "ADV", "-", "90000"},
	{"pas", "pas", "ADV", "-", "88000"},
	{"très", "très", "ADV", "-", "40000"},
	{"bien", "bien", "ADV", "-", "45000"},
	{"hier", "hier", "ADV", "-", "10000"},
	{"comment", "comment", "ADV", "-", "30000"},

	{"à", "à", "ADP", "-", "99000"},
	{"de", "de", "ADP", "-", "100000"},
	{"dans", "dans", "ADP", "-", "60000"},
	{"et", "et", "CONJ", "-", "95000"},
	{"paris", "paris", "PROPN", "-", "5000"},
	{"bonjour", "bonjour", "INTJ", "-", "50000"},
}

func newTestLexicon(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	var buf []byte
	for _, r := range fixtureRows {
		buf = append(buf, (r[0] + "\t" + r[1] + "\t" + r[2] + "\t" + r[3] + "\t" + r[4] + "\n")...)
	}
	path := filepath.Join(t.TempDir(), "fr.lex")
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	lx, err := lexicon.Open(path, nil, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { lx.Close() })
	return lx
}

func newTestKit(t *testing.T) (*lexicon.Lexicon, *editdist.Engine) {
	t.Helper()
	lx := newTestLexicon(t)
	return lx, editdist.NewEngine(lx.Words(), lx.Freq)
}

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	lx, eng := newTestKit(t)
	return New(lx, eng, zap.NewNop())
}
