package summarize

import (
	"strings"
	"testing"
	"time"

	"github.com/shd1007/ClaimLocal/internal/models"
)

func testClaim() models.Claim {
	return models.Claim{
		ID:       42,
		Type:     "Auto",
		Status:   "Open",
		LossDate: models.NewDate(2024, time.February, 11),
	}
}

func TestBuildPromptSystemInstruction(t *testing.T) {
	system, _ := BuildPrompt(testClaim(), models.NoteSet{ID: 42})
	for _, key := range []string{"summary", "customerSummary", "adjusterSummary", "nextStep"} {
		if !strings.Contains(system, key) {
			t.Errorf("system prompt missing required key %q", key)
		}
	}
}

func TestBuildPromptUserText(t *testing.T) {
	notes := models.NoteSet{
		ID: 42,
		Notes: []models.Note{
			{Author: "adjuster.kim", Text: "Inspection complete."},
			{Author: "intake.bot", Text: "Photos received."},
		},
	}

	_, user := BuildPrompt(testClaim(), notes)

	if !strings.HasPrefix(user, "Claim: 42 Type: Auto Status: Open LossDate: 2024-02-11 Notes:\n") {
		t.Errorf("unexpected user prompt prefix: %q", user)
	}
	notesBlock := user[strings.Index(user, "Notes:\n")+len("Notes:\n"):]
	lines := strings.Split(notesBlock, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 note lines, got %d: %q", len(lines), notesBlock)
	}
	if lines[0] != "- adjuster.kim: Inspection complete." {
		t.Errorf("first note line %q", lines[0])
	}
	if lines[1] != "- intake.bot: Photos received." {
		t.Errorf("second note line %q", lines[1])
	}
}

func TestBuildPromptEmptyNotes(t *testing.T) {
	_, user := BuildPrompt(testClaim(), models.NoteSet{ID: 42})
	if !strings.HasSuffix(user, "Notes:\n") {
		t.Errorf("empty note set must yield an empty notes block, got %q", user)
	}
	if strings.Contains(user, "\n-") {
		t.Errorf("unexpected note lines in %q", user)
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	notes := models.NoteSet{ID: 42, Notes: []models.Note{{Author: "a", Text: "b"}}}
	s1, u1 := BuildPrompt(testClaim(), notes)
	s2, u2 := BuildPrompt(testClaim(), notes)
	if s1 != s2 || u1 != u2 {
		t.Error("prompt must be deterministic for identical input")
	}
}
