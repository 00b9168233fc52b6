// Package matching scores candidate skill sets against a target skill set by
// aggregated semantic similarity and ranks candidates.
package matching

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// similarityProvider is the part of the analysis backend the matcher consumes.
type similarityProvider interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
	Model() string
}

// Matcher computes similarity scores between canonical skill lists. The
// similarity threshold is passed explicitly per call so concurrent requests
// never observe each other's settings.
type Matcher struct {
	backend similarityProvider
	logger  *zap.Logger
}

// NewMatcher creates a matcher over the given analysis backend.
func NewMatcher(backend similarityProvider, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Matcher{
		backend: backend,
		logger:  logger,
	}
}

// ComputeSimilarity returns the aggregate similarity between two skill lists
// and the matched-skill evidence. Either list being empty yields (0, nil).
// The aggregate is the mean of the whole-list similarity and the average of
// pairwise best matches that cleared the threshold. Backend failures degrade
// to (0, nil) and are logged, never propagated.
func (m *Matcher) ComputeSimilarity(ctx context.Context, cvSkills, jdSkills []string, threshold float64) (float64, []string) {
	if len(cvSkills) == 0 || len(jdSkills) == 0 {
		m.logger.Debug("empty skill list provided for similarity computation",
			zap.Int("cv_skills", len(cvSkills)),
			zap.Int("jd_skills", len(jdSkills)),
		)
		return 0, nil
	}

	overall, err := m.backend.Similarity(ctx, strings.Join(cvSkills, " "), strings.Join(jdSkills, " "))
	if err != nil {
		m.logger.Warn("overall similarity computation failed", zap.Error(err))
		return 0, nil
	}

	var evidence []string
	var kept []float64

	for _, cvSkill := range cvSkills {
		maxSim := 0.0
		bestMatch := ""
		for _, jdSkill := range jdSkills {
			sim, err := m.backend.Similarity(ctx, cvSkill, jdSkill)
			if err != nil {
				m.logger.Warn("pairwise similarity computation failed",
					zap.String("cv_skill", cvSkill),
					zap.String("jd_skill", jdSkill),
					zap.Error(err),
				)
				return 0, nil
			}
			if sim > maxSim {
				maxSim = sim
				bestMatch = jdSkill
			}
		}

		if maxSim >= threshold {
			kept = append(kept, maxSim)
			evidence = append(evidence, fmt.Sprintf("%s -> %s (sim: %.2f)", cvSkill, bestMatch, maxSim))
		}
	}

	avgPairwise := 0.0
	if len(kept) > 0 {
		sum := 0.0
		for _, sim := range kept {
			sum += sim
		}
		avgPairwise = sum / float64(len(kept))
	}

	score := (overall + avgPairwise) / 2

	m.logger.Debug("computed similarity",
		zap.Float64("score", score),
		zap.Float64("overall", overall),
		zap.Float64("avg_pairwise", avgPairwise),
		zap.Int("matched_skills", len(evidence)),
	)

	return score, evidence
}

// MatchCVToJD scores a single candidate against the target skills and returns
// a populated MatchResult when the aggregate score clears the threshold.
// A below-threshold candidate yields nil; that is an expected outcome, not an
// error.
func (m *Matcher) MatchCVToJD(ctx context.Context, cvSkills, jdSkills []string, cvID string, threshold float64) *MatchResult {
	score, matched := m.ComputeSimilarity(ctx, cvSkills, jdSkills, threshold)
	if score < threshold {
		m.logger.Info("candidate below similarity threshold",
			zap.String("cv_id", cvID),
			zap.Float64("score", score),
			zap.Float64("threshold", threshold),
		)
		return nil
	}

	return &MatchResult{
		CVID:            cvID,
		SimilarityScore: score,
		MatchedSkills:   matched,
		TotalCVSkills:   len(cvSkills),
		TotalJDSkills:   len(jdSkills),
	}
}
