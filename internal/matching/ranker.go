package matching

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// Candidate pairs a candidate identifier with its extracted canonical skills.
type Candidate struct {
	ID     string
	Skills []string
}

// Rank matches every candidate against the target skills, keeps those at or
// above the threshold, sorts them by score descending (ties keep input order)
// and truncates to topN. No candidate clearing the threshold is a valid
// outcome: the result is simply empty.
func (m *Matcher) Rank(ctx context.Context, candidates []Candidate, jdSkills []string, threshold float64, topN int) *Results {
	results := make([]*MatchResult, 0, len(candidates))

	for _, candidate := range candidates {
		result := m.MatchCVToJD(ctx, candidate.Skills, jdSkills, candidate.ID, threshold)
		if result == nil {
			continue
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})

	if topN < 0 {
		topN = 0
	}
	if len(results) > topN {
		results = results[:topN]
	}

	m.logger.Info("ranked candidates",
		zap.Int("candidates", len(candidates)),
		zap.Int("matched", len(results)),
		zap.Int("top_n", topN),
	)

	return &Results{Items: results}
}
