package summarize

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shd1007/ClaimLocal/internal/claims"
	"github.com/shd1007/ClaimLocal/internal/llm"
	"github.com/shd1007/ClaimLocal/internal/models"
)

const (
	unavailableText     = "Summarization unavailable"
	unavailableNextStep = "Retry later"
	rawContentNextStep  = "Review details"
)

// Service orchestrates one summarization request: fetch claim and
// notes, build the prompt, call the completion client, parse the reply.
// Completion and parse failures degrade to a usable result instead of
// propagating; only an unknown claim id or a dataset load failure
// surfaces as an error.
type Service struct {
	store  claims.Store
	client llm.Client
	log    *slog.Logger
}

func NewService(store claims.Store, client llm.Client, log *slog.Logger) *Service {
	return &Service{store: store, client: client, log: log}
}

func (s *Service) Summarize(ctx context.Context, id int) (models.SummaryResult, error) {
	claim, err := s.store.GetClaim(ctx, id)
	if err != nil {
		return models.SummaryResult{}, err
	}
	notes, err := s.store.GetNotes(ctx, id)
	if err != nil {
		if !errors.Is(err, claims.ErrNotesNotFound) {
			return models.SummaryResult{}, err
		}
		notes = models.NoteSet{ID: id}
	}

	log := s.log.With("claim_id", id, "summarization_id", uuid.NewString())

	system, user := BuildPrompt(claim, notes)
	content, err := s.client.Complete(ctx, system, user)
	if err != nil {
		var compErr *llm.CompletionError
		if errors.As(err, &compErr) {
			log.Warn("completion endpoint rejected request",
				"status", compErr.StatusCode, "body", compErr.Body)
		} else {
			log.Error("completion call failed", "err", err)
		}
		return models.SummaryResult{
			ClaimID:         id,
			Summary:         unavailableText,
			CustomerSummary: unavailableText,
			AdjusterSummary: unavailableText,
			NextStep:        unavailableNextStep,
		}, nil
	}

	result, ok := ParseSummary(content, id)
	if !ok {
		// The model ignored the JSON instruction; hand the caller the
		// raw text rather than discarding it.
		log.Debug("model reply not parseable as summary JSON")
		return models.SummaryResult{
			ClaimID:         id,
			Summary:         content,
			CustomerSummary: content,
			AdjusterSummary: content,
			NextStep:        rawContentNextStep,
		}, nil
	}
	return result, nil
}
