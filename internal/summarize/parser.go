package summarize

import (
	"encoding/json"

	"github.com/shd1007/ClaimLocal/internal/models"
)

// rawSummary is the shape the model is asked to return. Pointers so a
// missing key can be told apart from an empty string. encoding/json
// matches the keys case-insensitively.
type rawSummary struct {
	Summary         *string `json:"summary"`
	CustomerSummary *string `json:"customerSummary"`
	AdjusterSummary *string `json:"adjusterSummary"`
	NextStep        *string `json:"nextStep"`
}

// ParseSummary interprets the completion text as a structured summary.
// Missing customer/adjuster fields fall back to the general summary and
// a missing next step defaults to empty. ok is false when the text is
// not a JSON object of this shape; the caller decides what to do with
// the raw content.
func ParseSummary(content string, claimID int) (result models.SummaryResult, ok bool) {
	var raw *rawSummary
	if err := json.Unmarshal([]byte(content), &raw); err != nil || raw == nil {
		return models.SummaryResult{}, false
	}
	summary := orDefault(raw.Summary, "")
	return models.SummaryResult{
		ClaimID:         claimID,
		Summary:         summary,
		CustomerSummary: orDefault(raw.CustomerSummary, summary),
		AdjusterSummary: orDefault(raw.AdjusterSummary, summary),
		NextStep:        orDefault(raw.NextStep, ""),
	}, true
}

func orDefault(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
