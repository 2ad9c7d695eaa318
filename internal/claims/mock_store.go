package claims

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shd1007/ClaimLocal/internal/models"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetClaim(ctx context.Context, id int) (models.Claim, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Claim), args.Error(1)
}

func (m *MockStore) GetAllClaims(ctx context.Context) ([]models.Claim, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Claim), args.Error(1)
}

func (m *MockStore) GetNotes(ctx context.Context, id int) (models.NoteSet, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.NoteSet), args.Error(1)
}
