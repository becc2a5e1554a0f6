package out

import (
	"context"

	"qbank/internal/modules/bank/domain"
)

// InputSource is the raw text file new blocks are read from.
type InputSource interface {
	// ReadLines returns apperrors.ErrInputMissing when the file does not exist.
	ReadLines(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
	Path() string
}

// RecordStore persists the whole bank. Load on a missing file returns an
// empty collection and no error.
type RecordStore interface {
	Load(ctx context.Context) ([]domain.Record, error)
	Save(ctx context.Context, records []domain.Record) error
	Path() string
}

// RecordIndexProjector keeps a queryable copy of the bank. ReplaceAll swaps
// the whole projection at once; on failure the previous rows stay in place.
type RecordIndexProjector interface {
	ReplaceAll(ctx context.Context, records []domain.Record) (int, error)
	CountByType(ctx context.Context) ([]domain.TypeCount, error)
}
