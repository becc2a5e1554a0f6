package usecase

import (
	"context"

	"qbank/internal/modules/bank/domain"
	"qbank/internal/modules/bank/dto"
	bankin "qbank/internal/modules/bank/port/in"
	"qbank/internal/modules/bank/service"
	"qbank/internal/platform/logging"
)

type Options struct {
	// KeepInputOnSaveError leaves the input file alone when the bank could not
	// be written. Off by default: the input is cleared either way.
	KeepInputOnSaveError bool
}

type Interactor struct {
	svc  *service.BankService
	opts Options
	log  logging.Logger
}

func NewInteractor(svc *service.BankService, opts Options, log logging.Logger) bankin.Usecase {
	if log == nil {
		log = logging.Discard()
	}
	return &Interactor{svc: svc, opts: opts, log: log}
}

func (i *Interactor) Import(ctx context.Context, _ dto.ImportInput) (dto.ImportOutput, error) {
	if err := ctx.Err(); err != nil {
		return dto.ImportOutput{}, err
	}
	out := dto.ImportOutput{InputPath: i.svc.InputPath(), OutputPath: i.svc.OutputPath()}

	incoming, rejected := i.svc.ParseInput(ctx)
	out.Parsed = len(incoming)
	out.Rejected = rejected
	if len(incoming) == 0 {
		i.log.Warn("no new records, nothing to do", "input", out.InputPath)
		out.Halted = true
		return out, nil
	}

	existing := i.svc.LoadExisting(ctx)
	out.Existing = len(existing)

	merged, dups := i.svc.MergeAndSort(existing, incoming)
	out.Total = len(merged)
	out.Duplicates = dups

	out.Saved = i.svc.Save(ctx, merged)
	if !out.Saved && i.opts.KeepInputOnSaveError {
		i.log.Warn("keeping input file because the bank was not saved", "input", out.InputPath)
	} else {
		out.Cleared = i.svc.ClearInput(ctx)
	}
	if out.Saved {
		out.Indexed = i.svc.Project(ctx, merged)
	}
	return out, nil
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.RecordOutput, error) {
	records, err := i.svc.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordOutput, 0, len(records))
	for _, r := range records {
		if input.Type != "" && r.Type != input.Type {
			continue
		}
		out = append(out, toRecordOutput(r))
	}
	return out, nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	records, err := i.svc.ListRecords(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		Total:      len(records),
		Types:      toTypeCounts(domain.CountByType(records)),
		Duplicates: len(domain.DuplicateIDs(records)),
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context, _ dto.ReindexInput) (dto.ReindexOutput, error) {
	rows, err := i.svc.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	return dto.ReindexOutput{Rows: rows}, nil
}

func (i *Interactor) Types(ctx context.Context) ([]dto.TypeCountOutput, error) {
	counts, err := i.svc.IndexedTypes(ctx)
	if err != nil {
		return nil, err
	}
	return toTypeCounts(counts), nil
}

func toRecordOutput(r domain.Record) dto.RecordOutput {
	question := make([]string, len(r.Question))
	copy(question, r.Question)
	return dto.RecordOutput{ID: r.ID, Question: question, Type: r.Type, Answer: r.Answer}
}

func toTypeCounts(counts []domain.TypeCount) []dto.TypeCountOutput {
	out := make([]dto.TypeCountOutput, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.TypeCountOutput{Type: c.Type, Count: c.Count})
	}
	return out
}
