package detector

import (
	"go.uber.org/zap"

	"detecterreur/internal/editdist"
	"detecterreur/internal/lexicon"
	"detecterreur/pkg/options"
)

// Orchestrator owns the fixed detector registry. It is stateless between
// calls; the registry and its shared resources are read-only, so one
// Orchestrator serves concurrent callers.
type Orchestrator struct {
	detectors []Detector
	log       *zap.Logger
}

// New builds the registry in the fixed category/code order:
// FORME (FAGL FDIA FMAJ), ORTHOGRAPHE (OINS OMIS OSUB OORD),
// GRAMMAIRE (GCON GACC GEUF), SYNTAXE (SORD SMIS SINS SRED),
// PONCTUATION (PUNC). The same order drives both modes; only the input
// fed to each detector differs.
func New(lex *lexicon.Lexicon, eng *editdist.Engine, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		log: logger,
		detectors: []Detector{
			&agglutination{lex: lex},
			&diacritics{lex: lex, eng: eng},
			&capitalization{lex: lex},
			newOrtho(OINS, shapeInsertion, lex, eng),
			newOrtho(OMIS, shapeMissing, lex, eng),
			newOrtho(OSUB, shapeSubstitution, lex, eng),
			newOrtho(OORD, shapeOrder, lex, eng),
			&conjugation{lex: lex},
			&agreement{lex: lex},
			&euphony{},
			&wordOrder{lex: lex},
			&missingWord{lex: lex},
			&extraWord{lex: lex},
			&redundancy{},
			&punctuation{},
		},
	}
}

// Detectors returns the registry in processing order.
func (o *Orchestrator) Detectors() []Detector {
	out := make([]Detector, len(o.detectors))
	copy(out, o.detectors)
	return out
}

// GetSuggestions runs every selected detector against the original,
// unmodified text and reports one Suggestion each, in registry order.
// Detectors never see each other's output here. Without filters the
// result always has one entry per registered detector.
func (o *Orchestrator) GetSuggestions(text string, opts ...options.Run) []Suggestion {
	run := runOptions(opts)
	// Non-nil even when filters exclude everything, so the HTTP layer
	// encodes an empty array rather than null.
	out := make([]Suggestion, 0, len(o.detectors))
	for _, d := range o.detectors {
		if !selected(d, run) {
			continue
		}
		s := Suggestion{Category: d.Category(), Code: d.Code(), Text: text}
		if d.HasError(text) {
			s.HasError = true
			s.Text = d.Correct(text)
		}
		out = append(out, s)
	}
	return out
}

// Correct runs the cascaded pipeline: each selected detector consumes the
// previous detector's output. A detector only rewrites when it detects an
// error, so correcting clean text is the identity.
func (o *Orchestrator) Correct(text string, opts ...options.Run) string {
	run := runOptions(opts)
	current := text
	for _, d := range o.detectors {
		if !selected(d, run) {
			continue
		}
		if d.HasError(current) {
			next := d.Correct(current)
			if next != current {
				o.log.Debug("applied correction",
					zap.String("code", string(d.Code())),
					zap.String("text", next))
			}
			current = next
		}
	}
	return current
}

// Report bundles both modes for one input.
type Report struct {
	Original    string       `json:"original"`
	Corrected   string       `json:"corrected"`
	Suggestions []Suggestion `json:"suggestions"`
	ErrorCount  int          `json:"error_count"`
}

// GetReport runs the cascaded correction and the independent suggestions
// for text.
func (o *Orchestrator) GetReport(text string, opts ...options.Run) Report {
	suggestions := o.GetSuggestions(text, opts...)
	count := 0
	for _, s := range suggestions {
		if s.HasError {
			count++
		}
	}
	return Report{
		Original:    text,
		Corrected:   o.Correct(text, opts...),
		Suggestions: suggestions,
		ErrorCount:  count,
	}
}

func runOptions(opts []options.Run) options.RunOptions {
	var run options.RunOptions
	for _, o := range opts {
		o.Apply(&run)
	}
	return run
}

func selected(d Detector, run options.RunOptions) bool {
	if len(run.Categories) > 0 && !contains(run.Categories, string(d.Category())) {
		return false
	}
	if len(run.Codes) > 0 && !contains(run.Codes, string(d.Code())) {
		return false
	}
	return true
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
