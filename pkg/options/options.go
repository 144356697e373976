// Package options configures the edit-distance engine and the pipeline
// runs through functional options.
package options

// EngineOptions bound the candidate search. ShortWordLen and
// ShortWordMaxDistance implement the short-word guard: words of
// ShortWordLen runes or fewer use the tighter bound so valid short forms
// are not over-corrected.
var DefaultEngine = EngineOptions{
	MaxEditDistance:      2,
	ShortWordLen:         3,
	ShortWordMaxDistance: 1,
}

type EngineOptions struct {
	MaxEditDistance      int
	ShortWordLen         int
	ShortWordMaxDistance int
}

type Engine interface {
	Apply(*EngineOptions)
}

type engineFunc struct {
	ops func(*EngineOptions)
}

func (f engineFunc) Apply(o *EngineOptions) { f.ops(o) }

func newEngineFunc(fn func(*EngineOptions)) engineFunc {
	return engineFunc{ops: fn}
}

func WithMaxEditDistance(d int) Engine {
	return newEngineFunc(func(o *EngineOptions) {
		o.MaxEditDistance = d
	})
}

func WithShortWordLength(n int) Engine {
	return newEngineFunc(func(o *EngineOptions) {
		o.ShortWordLen = n
	})
}

func WithShortWordMaxDistance(d int) Engine {
	return newEngineFunc(func(o *EngineOptions) {
		o.ShortWordMaxDistance = d
	})
}

// RunOptions filter a single orchestrator call. Empty filters run the full
// registry.
type RunOptions struct {
	Categories []string
	Codes      []string
}

type Run interface {
	Apply(*RunOptions)
}

type runFunc struct {
	ops func(*RunOptions)
}

func (f runFunc) Apply(o *RunOptions) { f.ops(o) }

// WithCategories restricts a run to the named categories.
func WithCategories(categories ...string) Run {
	return runFunc{ops: func(o *RunOptions) {
		o.Categories = append(o.Categories, categories...)
	}}
}

// WithCodes restricts a run to the named error codes.
func WithCodes(codes ...string) Run {
	return runFunc{ops: func(o *RunOptions) {
		o.Codes = append(o.Codes, codes...)
	}}
}
