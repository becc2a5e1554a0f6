package service

import (
	"context"
	"errors"
	"fmt"

	"qbank/internal/modules/bank/domain"
	bankout "qbank/internal/modules/bank/port/out"
	apperrors "qbank/internal/platform/errors"
	"qbank/internal/platform/logging"
)

// BankService runs the individual pipeline steps. Recoverable failures are
// reported through the logger and turned into degraded results.
type BankService struct {
	source    bankout.InputSource
	store     bankout.RecordStore
	projector bankout.RecordIndexProjector
	log       logging.Logger
}

// NewBankService wires the service; projector may be nil when indexing is off.
func NewBankService(source bankout.InputSource, store bankout.RecordStore, projector bankout.RecordIndexProjector, log logging.Logger) *BankService {
	if log == nil {
		log = logging.Discard()
	}
	return &BankService{source: source, store: store, projector: projector, log: log}
}

func (s *BankService) InputPath() string  { return s.source.Path() }
func (s *BankService) OutputPath() string { return s.store.Path() }

// ParseInput reads the input file and parses every block. Short blocks are
// dropped silently, blocks with bad fields are reported and skipped.
func (s *BankService) ParseInput(ctx context.Context) ([]domain.Record, int) {
	lines, err := s.source.ReadLines(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrInputMissing) {
			s.log.Warn("input file does not exist", "path", s.source.Path())
		} else {
			s.log.Warn("failed to read input file", "path", s.source.Path(), "error", err)
		}
		return nil, 0
	}

	records := make([]domain.Record, 0)
	rejected := 0
	for _, block := range domain.SplitBlocks(lines) {
		if len(block) < domain.MinBlockLines {
			continue
		}
		record, err := domain.ParseBlock(block)
		if err != nil {
			rejected++
			s.log.Warn("failed to parse block", "block", fmt.Sprintf("%q", block), "error", err)
			continue
		}
		records = append(records, record)
	}
	s.log.Debug("parsed input", "path", s.source.Path(), "records", len(records), "rejected", rejected)
	return records, rejected
}

// LoadExisting falls back to an empty bank when the stored one cannot be read.
func (s *BankService) LoadExisting(ctx context.Context) []domain.Record {
	records, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("failed to read existing bank, starting empty", "path", s.store.Path(), "error", err)
		return []domain.Record{}
	}
	return records
}

// MergeAndSort appends incoming to existing, reports each repeated id and
// returns the sorted bank with the repeated ids in scan order.
func (s *BankService) MergeAndSort(existing, incoming []domain.Record) ([]domain.Record, []int) {
	merged := domain.Merge(existing, incoming)
	dups := domain.DuplicateIDs(merged)
	for _, id := range dups {
		s.log.Warn("duplicate id, ordering by first question line", "id", id)
	}
	domain.SortRecords(merged)
	return merged, dups
}

func (s *BankService) Save(ctx context.Context, records []domain.Record) bool {
	if err := s.store.Save(ctx, records); err != nil {
		s.log.Error("failed to save bank", "path", s.store.Path(), "error", err)
		return false
	}
	s.log.Info("saved records", "count", len(records), "path", s.store.Path())
	return true
}

func (s *BankService) ClearInput(ctx context.Context) bool {
	if err := s.source.Clear(ctx); err != nil {
		s.log.Error("failed to clear input file", "path", s.source.Path(), "error", err)
		return false
	}
	s.log.Info("cleared input file", "path", s.source.Path())
	return true
}

// Project refreshes the SQLite projection after an import. It is a no-op
// without a projector and only reports failures.
func (s *BankService) Project(ctx context.Context, records []domain.Record) bool {
	if s.projector == nil {
		return false
	}
	if _, err := s.projector.ReplaceAll(ctx, records); err != nil {
		s.log.Warn("failed to refresh index", "error", err)
		return false
	}
	return true
}

func (s *BankService) ListRecords(ctx context.Context) ([]domain.Record, error) {
	return s.store.Load(ctx)
}

func (s *BankService) Reindex(ctx context.Context) (int, error) {
	if s.projector == nil {
		return 0, fmt.Errorf("%w: index is not configured", apperrors.ErrInvalidInput)
	}
	records, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	n, err := s.projector.ReplaceAll(ctx, records)
	if err != nil {
		return 0, err
	}
	s.log.Info("reindexed bank", "rows", n)
	return n, nil
}

func (s *BankService) IndexedTypes(ctx context.Context) ([]domain.TypeCount, error) {
	if s.projector == nil {
		return nil, fmt.Errorf("%w: index is not configured", apperrors.ErrInvalidInput)
	}
	return s.projector.CountByType(ctx)
}
