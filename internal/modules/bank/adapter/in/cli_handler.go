package in

import (
	"context"

	"qbank/internal/modules/bank/dto"
	bankin "qbank/internal/modules/bank/port/in"
)

type CLIHandler struct {
	usecase bankin.Usecase
}

func NewCLIHandler(usecase bankin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Import(ctx context.Context) (dto.ImportOutput, error) {
	return h.usecase.Import(ctx, dto.ImportInput{})
}

func (h CLIHandler) List(ctx context.Context, recordType string) ([]dto.RecordOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{Type: recordType})
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx, dto.ReindexInput{})
}

func (h CLIHandler) Types(ctx context.Context) ([]dto.TypeCountOutput, error) {
	return h.usecase.Types(ctx)
}
