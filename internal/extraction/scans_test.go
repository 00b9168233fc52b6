package extraction

import (
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/cv-ranker/internal/analysis"
)

func testDeps(t *testing.T, categories map[string]map[string][]string) Deps {
	t.Helper()

	return Deps{
		Dict:     testDict(t, categories),
		Analyzer: analysis.New(nil, zap.NewNop()),
		Logger:   zap.NewNop(),
	}
}

func TestSubstringScan(t *testing.T) {
	t.Parallel()

	deps := testDeps(t, map[string]map[string][]string{
		"lang": {"python": {"py"}, "sql": {}},
	})

	doc := &Document{Text: "I write SQL and Py scripts"}
	skills := NewSkillSet()

	step := (&substringScan{}).Apply(deps, doc, skills)
	if step.Added != 2 || step.Total != 2 {
		t.Fatalf("unexpected step: %+v", step)
	}
}

func TestNounChunkScan(t *testing.T) {
	t.Parallel()

	deps := testDeps(t, map[string]map[string][]string{
		"ml": {"machine learning": {}},
	})

	doc := &Document{Text: "I enjoy machine learning projects."}
	skills := NewSkillSet()

	step := (&nounChunkScan{}).Apply(deps, doc, skills)
	if step.Added != 1 {
		t.Fatalf("expected chunk match, got %+v", step)
	}

	if got := skills.List(); len(got) != 1 || got[0] != "machine learning" {
		t.Fatalf("unexpected skills: %v", got)
	}
}

func TestJDContextScanRequiresJDFlag(t *testing.T) {
	t.Parallel()

	deps := testDeps(t, map[string]map[string][]string{
		"lang": {"python": {"py"}},
	})

	scan := &jdContextScan{}

	cv := &Document{Text: "Required skills: py", IsJD: false}
	if step := scan.Apply(deps, cv, NewSkillSet()); step.Added != 0 {
		t.Fatalf("expected no additions for non-JD document, got %+v", step)
	}

	jd := &Document{Text: "Required skills: py", IsJD: true}
	skills := NewSkillSet()
	if step := scan.Apply(deps, jd, skills); step.Added != 1 {
		t.Fatalf("expected addition for JD document, got %+v", step)
	}

	if got := skills.List(); got[0] != "python" {
		t.Fatalf("expected canonical name, got %v", got)
	}
}

func TestJDContextScanMatchesExactTokensOnly(t *testing.T) {
	t.Parallel()

	deps := testDeps(t, map[string]map[string][]string{
		"lang": {"java": {}},
	})

	// "javascript" contains "java" but is not an exact token match.
	jd := &Document{Text: "Must have javascript", IsJD: true}
	if step := (&jdContextScan{}).Apply(deps, jd, NewSkillSet()); step.Added != 0 {
		t.Fatalf("expected exact-token matching, got %+v", step)
	}
}

func TestJDContextScanIgnoresSentencesWithoutIndicator(t *testing.T) {
	t.Parallel()

	deps := testDeps(t, map[string]map[string][]string{
		"lang": {"python": {"py"}},
	})

	jd := &Document{Text: "We are a friendly team using py", IsJD: true}
	if step := (&jdContextScan{}).Apply(deps, jd, NewSkillSet()); step.Added != 0 {
		t.Fatalf("expected no additions without indicator phrase, got %+v", step)
	}
}
