package in

import (
	"context"

	"qbank/internal/modules/bank/dto"
)

type Usecase interface {
	Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error)
	List(ctx context.Context, input dto.ListInput) ([]dto.RecordOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Reindex(ctx context.Context, input dto.ReindexInput) (dto.ReindexOutput, error)
	Types(ctx context.Context) ([]dto.TypeCountOutput, error)
}
