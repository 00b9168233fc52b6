package matching

import (
	"context"
	"math"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func removeFile(t *testing.T, name string) {
	t.Helper()
	if err := os.Remove(name); err != nil {
		t.Fatalf("removing %s: %v", name, err)
	}
}

// scoreBackend returns a fixed similarity for every candidate skill against
// the target. With single-skill candidates the aggregate score equals that
// similarity, which keeps ranking scenarios easy to read.
type scoreBackend struct {
	scores map[string]float64
}

func (s *scoreBackend) Similarity(_ context.Context, a, b string) (float64, error) {
	if score, ok := s.scores[a]; ok {
		return score, nil
	}
	if score, ok := s.scores[b]; ok {
		return score, nil
	}
	return 0, nil
}

func (s *scoreBackend) Model() string { return "stub-model" }

func rankFixture() (*Matcher, []Candidate, []string) {
	backend := &scoreBackend{scores: map[string]float64{
		"alpha": 0.9,
		"beta":  0.4,
		"gamma": 0.9,
	}}

	candidates := []Candidate{
		{ID: "cv-alpha", Skills: []string{"alpha"}},
		{ID: "cv-beta", Skills: []string{"beta"}},
		{ID: "cv-gamma", Skills: []string{"gamma"}},
	}

	return NewMatcher(backend, zap.NewNop()), candidates, []string{"target"}
}

func TestRankTiedScoresKeepInputOrder(t *testing.T) {
	m, candidates, jdSkills := rankFixture()

	results := m.Rank(context.Background(), candidates, jdSkills, 0.5, 2)

	if results.Len() != 2 {
		t.Fatalf("expected 2 results, got %d", results.Len())
	}

	if results.Items[0].CVID != "cv-alpha" || results.Items[1].CVID != "cv-gamma" {
		t.Fatalf("expected tied candidates in input order, got %v and %v",
			results.Items[0].CVID, results.Items[1].CVID)
	}

	for _, result := range results.Items {
		if math.Abs(result.SimilarityScore-0.9) > 1e-9 {
			t.Fatalf("expected score 0.9, got %v", result.SimilarityScore)
		}
	}
}

func TestRankBounds(t *testing.T) {
	m, candidates, jdSkills := rankFixture()

	results := m.Rank(context.Background(), candidates, jdSkills, 0.3, 10)

	if results.Len() != 3 {
		t.Fatalf("expected all candidates above threshold, got %d", results.Len())
	}

	for i := 1; i < results.Len(); i++ {
		if results.Items[i-1].SimilarityScore < results.Items[i].SimilarityScore {
			t.Fatalf("results not sorted descending: %v", results.Items)
		}
	}

	for _, result := range results.Items {
		if result.SimilarityScore < 0.3 {
			t.Fatalf("result below threshold included: %+v", result)
		}
	}
}

func TestRankNoCandidateAboveThreshold(t *testing.T) {
	m, candidates, jdSkills := rankFixture()

	results := m.Rank(context.Background(), candidates, jdSkills, 0.95, 5)

	if results.Len() != 0 {
		t.Fatalf("expected empty results, got %d", results.Len())
	}
}

func TestRankTruncatesToTopN(t *testing.T) {
	m, candidates, jdSkills := rankFixture()

	results := m.Rank(context.Background(), candidates, jdSkills, 0.1, 1)

	if results.Len() != 1 {
		t.Fatalf("expected 1 result, got %d", results.Len())
	}

	if results.Items[0].CVID != "cv-alpha" {
		t.Fatalf("expected best candidate first, got %v", results.Items[0].CVID)
	}
}

func TestResultsReportAndDump(t *testing.T) {
	m, candidates, jdSkills := rankFixture()

	results := m.Rank(context.Background(), candidates, jdSkills, 0.5, 5)

	report := results.Report()
	if len(report) != results.Len() {
		t.Fatalf("expected %d report entries, got %d", results.Len(), len(report))
	}
	if report[0]["cv_id"] != "cv-alpha" || report[0]["score"] != "0.90" {
		t.Fatalf("unexpected report entry: %v", report[0])
	}

	filename, err := results.DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer removeFile(t, filename)

	if !strings.Contains(filename, "matches_") {
		t.Fatalf("unexpected dump filename: %q", filename)
	}
}
