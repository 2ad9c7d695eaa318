package claims

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/shd1007/ClaimLocal/internal/models"
)

// snapshot is the fully loaded dataset. It is published once and never
// mutated, so reads after publication need no locking.
type snapshot struct {
	claims  []models.Claim
	byID    map[int]models.Claim
	noteSet map[int]models.NoteSet
}

// FileStore serves claims and notes from two JSON files, loaded lazily
// on first access and cached for the process lifetime. Concurrent first
// loads collapse into a single read; a failed load commits nothing, so
// the next request retries.
type FileStore struct {
	claimsPath string
	notesPath  string

	snap  atomic.Pointer[snapshot]
	group singleflight.Group

	loads atomic.Int64 // completed dataset loads, observable in tests
}

func NewFileStore(claimsPath, notesPath string) *FileStore {
	return &FileStore{
		claimsPath: claimsPath,
		notesPath:  notesPath,
	}
}

func (s *FileStore) GetClaim(ctx context.Context, id int) (models.Claim, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return models.Claim{}, err
	}
	claim, ok := snap.byID[id]
	if !ok {
		return models.Claim{}, fmt.Errorf("claim %d: %w", id, ErrClaimNotFound)
	}
	return claim, nil
}

func (s *FileStore) GetAllClaims(ctx context.Context) ([]models.Claim, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return snap.claims, nil
}

func (s *FileStore) GetNotes(ctx context.Context, id int) (models.NoteSet, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return models.NoteSet{}, err
	}
	set, ok := snap.noteSet[id]
	if !ok {
		return models.NoteSet{}, fmt.Errorf("notes for claim %d: %w", id, ErrNotesNotFound)
	}
	return set, nil
}

func (s *FileStore) ensureLoaded(ctx context.Context) (*snapshot, error) {
	if snap := s.snap.Load(); snap != nil {
		return snap, nil
	}
	v, err, _ := s.group.Do("load", func() (any, error) {
		// A caller that queued behind the winning load sees the
		// published snapshot here and skips the re-read.
		if snap := s.snap.Load(); snap != nil {
			return snap, nil
		}
		snap, err := s.load()
		if err != nil {
			return nil, err
		}
		s.snap.Store(snap)
		s.loads.Add(1)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v.(*snapshot), nil
}

func (s *FileStore) load() (*snapshot, error) {
	var claims []models.Claim
	if err := readJSONFile(s.claimsPath, &claims); err != nil {
		return nil, fmt.Errorf("load claims dataset: %w", err)
	}
	var sets []models.NoteSet
	if err := readJSONFile(s.notesPath, &sets); err != nil {
		return nil, fmt.Errorf("load notes dataset: %w", err)
	}

	snap := &snapshot{
		claims:  claims,
		byID:    make(map[int]models.Claim, len(claims)),
		noteSet: make(map[int]models.NoteSet, len(sets)),
	}
	for _, c := range claims {
		snap.byID[c.ID] = c
	}
	for _, n := range sets {
		snap.noteSet[n.ID] = n
	}
	return snap, nil
}

func readJSONFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// LoadCount reports how many times the datasets have been read.
func (s *FileStore) LoadCount() int64 {
	return s.loads.Load()
}
