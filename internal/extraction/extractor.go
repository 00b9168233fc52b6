// Package extraction turns raw document text into canonical skill sets.
package extraction

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/cv-ranker/internal/dictionary"
)

// Analyzer is the part of the analysis backend the extractor consumes.
type Analyzer interface {
	Tokenize(text string) []string
	Sentences(text string) []string
	NounChunks(text string) []string
}

// Deps aggregates dependencies shared across all scans.
type Deps struct {
	Dict     *dictionary.Dictionary
	Analyzer Analyzer
	Logger   *zap.Logger
}

// Extractor extracts deduplicated canonical skills from free text by running
// a fixed pipeline of scan strategies. It holds no per-request state and is
// safe for concurrent use.
type Extractor struct {
	deps  Deps
	scans []Scan
}

// New creates an extractor over the given dictionary and analysis backend.
func New(dict *dictionary.Dictionary, analyzer Analyzer, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		deps: Deps{
			Dict:     dict,
			Analyzer: analyzer,
			Logger:   logger,
		},
		scans: defaultScans(),
	}
}

// ExtractSkills returns the canonical skills found in text, sorted and
// deduplicated. Empty or blank text yields an empty result, never an error.
// When isJD is true the JD context scan also runs.
func (e *Extractor) ExtractSkills(text string, isJD bool) []string {
	if strings.TrimSpace(text) == "" {
		e.deps.Logger.Debug("no text provided for skill extraction")
		return []string{}
	}

	doc := &Document{Text: text, IsJD: isJD}
	skills := NewSkillSet()

	for _, scan := range e.scans {
		step := scan.Apply(e.deps, doc, skills)
		e.deps.Logger.Debug("extraction scan",
			zap.String("name", scan.Name()),
			zap.Int("added", step.Added),
			zap.Int("total", step.Total),
		)
	}

	return skills.List()
}

// BatchExtractSkills extracts skills for every text. The result at index i is
// always identical to ExtractSkills(texts[i], isJD[i]); batching exists for
// throughput, not semantics. A missing flag defaults to false and a failed or
// empty text degrades to an empty set without aborting the batch.
func (e *Extractor) BatchExtractSkills(texts []string, isJD []bool) [][]string {
	results := make([][]string, len(texts))

	for i, text := range texts {
		flag := i < len(isJD) && isJD[i]
		results[i] = e.ExtractSkills(text, flag)
	}

	e.deps.Logger.Debug("batch extraction finished", zap.Int("documents", len(texts)))

	return results
}
