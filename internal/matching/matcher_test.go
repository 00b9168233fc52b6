package matching

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
)

// stubBackend resolves similarities from a symmetric lookup table. Identical
// texts score 1, unknown pairs score 0.
type stubBackend struct {
	sims  map[string]float64
	err   error
	calls int
}

func pairKey(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}

func (s *stubBackend) Similarity(_ context.Context, a, b string) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	if a == b {
		return 1, nil
	}
	return s.sims[pairKey(a, b)], nil
}

func (s *stubBackend) Model() string { return "stub-model" }

func TestComputeSimilarityEmptyInputSymmetry(t *testing.T) {
	stub := &stubBackend{}
	m := NewMatcher(stub, zap.NewNop())

	for _, tc := range [][2][]string{
		{nil, {"python"}},
		{{"python"}, nil},
		{nil, nil},
		{{}, {"python", "sql"}},
	} {
		score, evidence := m.ComputeSimilarity(context.Background(), tc[0], tc[1], 0.5)
		if score != 0 || len(evidence) != 0 {
			t.Fatalf("expected (0, none) for %v vs %v, got (%v, %v)", tc[0], tc[1], score, evidence)
		}
	}

	if stub.calls != 0 {
		t.Fatalf("expected no backend calls for empty inputs, got %d", stub.calls)
	}
}

func TestComputeSimilarityIdenticalSkills(t *testing.T) {
	m := NewMatcher(&stubBackend{}, zap.NewNop())

	score, evidence := m.ComputeSimilarity(context.Background(), []string{"python"}, []string{"python"}, 0.8)

	if math.Abs(score-1.0) > 1e-9 {
		t.Fatalf("expected score 1.0, got %v", score)
	}

	if len(evidence) != 1 || evidence[0] != "python -> python (sim: 1.00)" {
		t.Fatalf("unexpected evidence: %v", evidence)
	}
}

func TestComputeSimilarityKeepsBestMatchPerSkill(t *testing.T) {
	stub := &stubBackend{sims: map[string]float64{
		pairKey("python", "sql"):               0.4,
		pairKey("python", "data analysis"):     0.7,
		pairKey("python", "sql data analysis"): 0.5,
	}}
	m := NewMatcher(stub, zap.NewNop())

	score, evidence := m.ComputeSimilarity(context.Background(), []string{"python"}, []string{"sql", "data analysis"}, 0.5)

	// Overall (joined docs) is 0.5 and pairwise keeps only the 0.7 match:
	// (0.5 + 0.7) / 2.
	if math.Abs(score-0.6) > 1e-9 {
		t.Fatalf("expected score 0.6, got %v", score)
	}

	if len(evidence) != 1 || evidence[0] != "python -> data analysis (sim: 0.70)" {
		t.Fatalf("unexpected evidence: %v", evidence)
	}
}

func TestComputeSimilarityNoPairwiseAboveThreshold(t *testing.T) {
	stub := &stubBackend{sims: map[string]float64{
		pairKey("python", "french"): 0.2,
	}}
	m := NewMatcher(stub, zap.NewNop())

	score, evidence := m.ComputeSimilarity(context.Background(), []string{"python"}, []string{"french"}, 0.5)

	// Pairwise term is 0 when nothing clears the threshold; only the overall
	// document similarity contributes: (0.2 + 0) / 2.
	if len(evidence) != 0 {
		t.Fatalf("expected no evidence, got %v", evidence)
	}
	if math.Abs(score-0.1) > 1e-9 {
		t.Fatalf("expected score 0.1, got %v", score)
	}
}

func TestComputeSimilarityDegradesOnBackendFailure(t *testing.T) {
	stub := &stubBackend{err: errors.New("embedding backend down")}
	m := NewMatcher(stub, zap.NewNop())

	score, evidence := m.ComputeSimilarity(context.Background(), []string{"python"}, []string{"sql"}, 0.5)
	if score != 0 || evidence != nil {
		t.Fatalf("expected degraded (0, nil), got (%v, %v)", score, evidence)
	}
}

func TestMatchCVToJDThresholdGating(t *testing.T) {
	m := NewMatcher(&stubBackend{}, zap.NewNop())

	cvSkills := []string{"python", "sql"}
	jdSkills := []string{"python", "sql", "teamwork"}

	result := m.MatchCVToJD(context.Background(), cvSkills, jdSkills, "cv-1", 0.99)
	if result != nil {
		t.Fatalf("expected nil result below threshold, got %+v", result)
	}

	result = m.MatchCVToJD(context.Background(), cvSkills, jdSkills, "cv-1", 0.3)
	if result == nil {
		t.Fatalf("expected result above threshold")
	}

	if result.CVID != "cv-1" {
		t.Fatalf("unexpected cv id: %q", result.CVID)
	}
	if result.TotalCVSkills != len(cvSkills) || result.TotalJDSkills != len(jdSkills) {
		t.Fatalf("expected input sizes to be recorded, got %+v", result)
	}
}
