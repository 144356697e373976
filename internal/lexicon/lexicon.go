// Package lexicon wraps the French lexical resource behind the validator
// contract: is this token a valid word, and what are its lemma, part of
// speech and morphological features. The resource is loaded once at
// construction and is read-only afterwards.
package lexicon

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	mmap "github.com/edsrzf/mmap-go"
	"go.uber.org/zap"

	"detecterreur/internal/customdict"
)

// Frequency assigned to personal-lexicon words so they outrank every
// native candidate.
const personalFreq = 1_000_000_000

// Entry is one inflected form of the lexical resource.
type Entry struct {
	Form   string
	Lemma  string
	POS    string // N, PROPN, V, ADJ, DET, PRON, ADP, ADV, CONJ
	Gender string // m, f or empty
	Number string // s, p or empty
	Person int    // 1..3, 0 when not applicable
	Freq   float64
}

// Lexicon is the shared validator resource. Native entries are immutable
// after Open; only the personal set mutates, behind its own lock.
type Lexicon struct {
	entries map[string][]Entry
	forms   map[string][]string
	words   []string

	mu       sync.RWMutex
	personal map[string]bool
	dict     *customdict.CustomDict

	data mmap.MMap
	file *os.File
	log  *zap.Logger
}

// Open memory-maps and parses the lexicon file. Each line is
// form<TAB>lemma<TAB>pos<TAB>features<TAB>freq; features look like
// "g=f;n=p;p=3". A missing or unreadable resource is a fatal
// configuration error. dict may be nil when no personal lexicon is wired.
func Open(path string, dict *customdict.CustomDict, logger *zap.Logger) (*Lexicon, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %s: %w", path, err)
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("lexicon: mmap %s: %w", path, err)
	}

	lx := &Lexicon{
		entries:  make(map[string][]Entry),
		forms:    make(map[string][]string),
		personal: make(map[string]bool),
		dict:     dict,
		data:     data,
		file:     f,
		log:      logger,
	}
	if err := lx.parse(data); err != nil {
		lx.Close()
		return nil, err
	}
	lx.indexWords()
	lx.loadPersonal()
	logger.Info("lexicon loaded",
		zap.String("path", path),
		zap.Int("forms", len(lx.entries)),
		zap.Int("personal", len(lx.personal)))
	return lx, nil
}

func (lx *Lexicon) parse(data []byte) error {
	lineNo := 0
	for len(data) > 0 {
		lineNo++
		nl := bytes.IndexByte(data, '\n')
		var line []byte
		if nl < 0 {
			line, data = data, nil
		} else {
			line, data = data[:nl], data[nl+1:]
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		fields := strings.Split(string(line), "\t")
		if len(fields) < 5 {
			return fmt.Errorf("lexicon: line %d: want 5 tab-separated fields, got %d", lineNo, len(fields))
		}
		freq, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return fmt.Errorf("lexicon: line %d: bad frequency %q: %w", lineNo, fields[4], err)
		}
		e := Entry{
			Form:  strings.ToLower(fields[0]),
			Lemma: strings.ToLower(fields[1]),
			POS:   fields[2],
			Freq:  freq,
		}
		for _, kv := range strings.Split(fields[3], ";") {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				continue
			}
			switch k {
			case "g":
				e.Gender = v
			case "n":
				e.Number = v
			case "p":
				e.Person, _ = strconv.Atoi(v)
			}
		}
		lx.entries[e.Form] = append(lx.entries[e.Form], e)
		lx.forms[e.Lemma] = appendUnique(lx.forms[e.Lemma], e.Form)
	}
	return nil
}

func (lx *Lexicon) indexWords() {
	lx.words = make([]string, 0, len(lx.entries))
	for w := range lx.entries {
		lx.words = append(lx.words, w)
	}
	sort.Strings(lx.words)
}

func (lx *Lexicon) loadPersonal() {
	if lx.dict == nil {
		return
	}
	words, err := lx.dict.All(context.Background())
	if err != nil {
		lx.log.Warn("personal lexicon unavailable", zap.Error(err))
		return
	}
	for _, w := range words {
		lx.personal[strings.ToLower(w)] = true
	}
}

// Close unmaps the resource. Queries after Close are invalid.
func (lx *Lexicon) Close() error {
	if lx.data != nil {
		if err := lx.data.Unmap(); err != nil {
			return err
		}
		lx.data = nil
	}
	if lx.file != nil {
		err := lx.file.Close()
		lx.file = nil
		return err
	}
	return nil
}

// One-letter words valid on their own.
var validSingles = map[string]bool{"y": true, "a": true, "à": true}

// IsValid reports whether word is a known French form or a personal-lexicon
// word. Tokens this returns true for are never rewritten by the orthography
// detectors.
func (lx *Lexicon) IsValid(word string) bool {
	lw := strings.ToLower(word)
	if len([]rune(lw)) < 2 {
		return validSingles[lw]
	}
	if _, ok := lx.entries[lw]; ok {
		return true
	}
	lx.mu.RLock()
	defer lx.mu.RUnlock()
	return lx.personal[lw]
}

// Entries returns every analysis of word, nil when unknown.
func (lx *Lexicon) Entries(word string) []Entry {
	return lx.entries[strings.ToLower(word)]
}

// Lookup returns the first (most frequent first is not guaranteed; file
// order) analysis of word.
func (lx *Lexicon) Lookup(word string) (Entry, bool) {
	es := lx.entries[strings.ToLower(word)]
	if len(es) == 0 {
		return Entry{}, false
	}
	return es[0], true
}

// LemmaAndPOS returns the lemma and part-of-speech tag of word.
func (lx *Lexicon) LemmaAndPOS(word string) (lemma, pos string, ok bool) {
	e, ok := lx.Lookup(word)
	if !ok {
		return "", "", false
	}
	return e.Lemma, e.POS, true
}

// HasPOS reports whether any analysis of word carries the given tag.
func (lx *Lexicon) HasPOS(word, pos string) bool {
	for _, e := range lx.entries[strings.ToLower(word)] {
		if e.POS == pos {
			return true
		}
	}
	return false
}

// EntryWithPOS returns the first analysis of word with the given tag.
func (lx *Lexicon) EntryWithPOS(word, pos string) (Entry, bool) {
	for _, e := range lx.entries[strings.ToLower(word)] {
		if e.POS == pos {
			return e, true
		}
	}
	return Entry{}, false
}

// FormsOf returns every inflected form of lemma, in file order.
func (lx *Lexicon) FormsOf(lemma string) []string {
	return lx.forms[strings.ToLower(lemma)]
}

// Freq returns the corpus frequency of word, 0 when unknown. Personal
// words report a frequency above every native entry.
func (lx *Lexicon) Freq(word string) float64 {
	lw := strings.ToLower(word)
	lx.mu.RLock()
	personal := lx.personal[lw]
	lx.mu.RUnlock()
	if personal {
		return personalFreq
	}
	best := 0.0
	for _, e := range lx.entries[lw] {
		if e.Freq > best {
			best = e.Freq
		}
	}
	return best
}

// Words returns the sorted native vocabulary, for building the candidate
// index. The returned slice must not be mutated.
func (lx *Lexicon) Words() []string {
	return lx.words
}

// AddPersonal stores word in the personal lexicon and, when a Redis-backed
// store is wired, writes it through.
func (lx *Lexicon) AddPersonal(ctx context.Context, word string) error {
	lw := strings.ToLower(word)
	if lx.dict != nil {
		if err := lx.dict.Add(ctx, lw); err != nil {
			return err
		}
	}
	lx.mu.Lock()
	lx.personal[lw] = true
	lx.mu.Unlock()
	return nil
}

// RemovePersonal deletes word from the personal lexicon.
func (lx *Lexicon) RemovePersonal(ctx context.Context, word string) error {
	lw := strings.ToLower(word)
	if lx.dict != nil {
		if err := lx.dict.Remove(ctx, lw); err != nil {
			return err
		}
	}
	lx.mu.Lock()
	delete(lx.personal, lw)
	lx.mu.Unlock()
	return nil
}

func appendUnique(s []string, v string) []string {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}
