// Package models defines the wire types served by the claims API.
package models

// Claim is an insurance claim record. Claims are loaded once from the
// dataset and never mutated afterwards.
type Claim struct {
	ID             int    `json:"id"`
	PolicyNumber   string `json:"policyNumber"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	LossDate       Date   `json:"lossDate"`
	InsuredName    string `json:"insuredName"`
	AmountClaimed  Money  `json:"amountClaimed"`
	AmountReserved Money  `json:"amountReserved"`
	LastUpdated    Time   `json:"lastUpdated"`
}

// Note is a free-text annotation on a claim.
type Note struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// NoteSet holds the notes for one claim, keyed by the claim id.
// Order is preserved verbatim from the dataset.
type NoteSet struct {
	ID    int    `json:"id"`
	Notes []Note `json:"notes"`
}

// SummaryResult is the response body of the summarize endpoint.
type SummaryResult struct {
	ClaimID         int    `json:"claimId"`
	Summary         string `json:"summary"`
	CustomerSummary string `json:"customerSummary"`
	AdjusterSummary string `json:"adjusterSummary"`
	NextStep        string `json:"nextStep"`
}
