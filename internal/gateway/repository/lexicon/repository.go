package lexicon

import (
	"context"

	"sarf/internal/lexicon"
)

// Repository persists the two lexicon lists. Load on an empty backend
// returns an empty snapshot, not an error.
type Repository interface {
	Load(ctx context.Context) (lexicon.Snapshot, error)
	Save(ctx context.Context, snap lexicon.Snapshot) error
}
