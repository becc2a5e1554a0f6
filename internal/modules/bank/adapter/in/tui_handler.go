package in

import (
	"context"

	"qbank/internal/modules/bank/dto"
	bankin "qbank/internal/modules/bank/port/in"
)

type TUIHandler struct {
	usecase bankin.Usecase
}

func NewTUIHandler(usecase bankin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) ListRecords(ctx context.Context) ([]dto.RecordOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{})
}
