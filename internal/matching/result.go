package matching

import (
	"encoding/json"
	"fmt"
	"os"
)

// MatchResult holds the outcome of matching one candidate against the target
// job description. It is never mutated after construction.
type MatchResult struct {
	CVID            string   `json:"cv_id"`
	SimilarityScore float64  `json:"similarity_score"`
	MatchedSkills   []string `json:"matched_skills"`
	TotalCVSkills   int      `json:"total_cv_skills"`
	TotalJDSkills   int      `json:"total_jd_skills"`
}

// Results is an ordered list of match results, best first.
type Results struct {
	Items []*MatchResult
}

func (r *Results) Len() int {
	return len(r.Items)
}

// Report returns a compact per-candidate summary suitable for display.
func (r *Results) Report() []map[string]string {
	report := make([]map[string]string, 0, len(r.Items))
	for _, result := range r.Items {
		report = append(report, map[string]string{
			"cv_id":          result.CVID,
			"score":          fmt.Sprintf("%.2f", result.SimilarityScore),
			"matched_skills": fmt.Sprintf("%d", len(result.MatchedSkills)),
			"cv_skills":      fmt.Sprintf("%d", result.TotalCVSkills),
			"jd_skills":      fmt.Sprintf("%d", result.TotalJDSkills),
		})
	}
	return report
}

// DumpToTmpFile writes the results as indented JSON to a temporary file and
// returns its name.
func (r *Results) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
