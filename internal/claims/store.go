// Package claims provides read-only access to the claim and note datasets.
package claims

import (
	"context"
	"errors"

	"github.com/shd1007/ClaimLocal/internal/models"
)

var (
	ErrClaimNotFound = errors.New("claim not found")
	ErrNotesNotFound = errors.New("notes not found")
)

// Store is the lookup contract consumed by the API and the summarizer.
// Implementations are read-only; records never change after load.
type Store interface {
	GetClaim(ctx context.Context, id int) (models.Claim, error)
	GetAllClaims(ctx context.Context) ([]models.Claim, error)
	GetNotes(ctx context.Context, id int) (models.NoteSet, error)
}
