package usecase

import "context"

type disposeFormUsecase struct {
	formService FormService
}

func NewDisposeFormUsecase(formService FormService) *disposeFormUsecase {
	return &disposeFormUsecase{formService}
}

func (u *disposeFormUsecase) DisposeForm(ctx context.Context, formID string) error {
	return u.formService.DisposeForm(ctx, formID)
}
