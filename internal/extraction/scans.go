package extraction

import (
	"strings"
)

// jdIndicators mark sentences that introduce requirements in a job
// description. The JD context scan only looks inside such sentences.
var jdIndicators = []string{"required", "qualifications", "skills", "must have"}

// Scan is a single extraction strategy. Scans run in order and union their
// contributions into the shared skill set.
type Scan interface {
	Name() string
	Apply(deps Deps, doc *Document, skills *SkillSet) Step
}

// Step describes the result of executing a scan.
type Step struct {
	Added int
	Total int
}

// substringScan adds every dictionary token contained anywhere in the
// lowercased text. Deliberately coarse: a short token embedded in a longer
// unrelated word still matches. Tightening this to word boundaries would
// change output for existing inputs.
type substringScan struct{}

func (s *substringScan) Name() string { return "substring" }

func (s *substringScan) Apply(deps Deps, doc *Document, skills *SkillSet) Step {
	added := 0
	for _, token := range deps.Dict.Tokens() {
		if !strings.Contains(doc.Lower(), token) {
			continue
		}
		if canonical, ok := deps.Dict.Canonicalize(token); ok && skills.Add(canonical) {
			added++
		}
	}

	return Step{Added: added, Total: skills.Len()}
}

// nounChunkScan adds the canonical skill for every dictionary token contained
// in a syntactic noun chunk of the text.
type nounChunkScan struct{}

func (s *nounChunkScan) Name() string { return "noun_chunk" }

func (s *nounChunkScan) Apply(deps Deps, doc *Document, skills *SkillSet) Step {
	added := 0
	for _, chunk := range doc.Chunks(deps.Analyzer) {
		for _, token := range deps.Dict.Tokens() {
			if !strings.Contains(chunk, token) {
				continue
			}
			if canonical, ok := deps.Dict.Canonicalize(token); ok && skills.Add(canonical) {
				added++
			}
		}
	}

	return Step{Added: added, Total: skills.Len()}
}

// jdContextScan applies only to job descriptions: inside sentences that carry
// a requirement indicator, individual tokens are matched exactly (not by
// substring) against the dictionary.
type jdContextScan struct{}

func (s *jdContextScan) Name() string { return "jd_context" }

func (s *jdContextScan) Apply(deps Deps, doc *Document, skills *SkillSet) Step {
	if !doc.IsJD {
		return Step{Added: 0, Total: skills.Len()}
	}

	added := 0
	for _, sentence := range doc.Sentences(deps.Analyzer) {
		if !containsIndicator(sentence) {
			continue
		}
		for _, token := range deps.Analyzer.Tokenize(sentence) {
			if canonical, ok := deps.Dict.Canonicalize(token); ok && skills.Add(canonical) {
				added++
			}
		}
	}

	return Step{Added: added, Total: skills.Len()}
}

func containsIndicator(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, indicator := range jdIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// defaultScans returns the extraction strategies in their fixed order.
func defaultScans() []Scan {
	return []Scan{
		&substringScan{},
		&nounChunkScan{},
		&jdContextScan{},
	}
}
