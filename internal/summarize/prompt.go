// Package summarize turns a claim's notes into a multi-perspective
// summary via the chat-completion client.
package summarize

import (
	"fmt"
	"strings"

	"github.com/shd1007/ClaimLocal/internal/models"
)

const systemPrompt = "You are an insurance claims assistant. Create: " +
	"(1) a concise general summary " +
	"(2) a simple customer-facing summary " +
	"(3) a more detailed adjuster summary with any missing info callouts " +
	"(4) a single recommended next step phrase. " +
	"Return JSON with keys summary, customerSummary, adjusterSummary, nextStep."

// BuildPrompt renders the system instruction and the user message for a
// claim. Deterministic: the same claim and notes always produce the
// same pair. An empty note set yields an empty notes block.
func BuildPrompt(claim models.Claim, notes models.NoteSet) (system, user string) {
	var b strings.Builder
	for i, n := range notes.Notes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s: %s", n.Author, n.Text)
	}
	user = fmt.Sprintf("Claim: %d Type: %s Status: %s LossDate: %s Notes:\n%s",
		claim.ID, claim.Type, claim.Status, claim.LossDate, b.String())
	return systemPrompt, user
}
