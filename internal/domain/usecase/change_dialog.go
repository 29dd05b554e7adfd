package usecase

import (
	"context"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
)

type changeDialogUsecase struct {
	formService FormService
}

func NewChangeDialogUsecase(formService FormService) *changeDialogUsecase {
	return &changeDialogUsecase{formService}
}

func (u *changeDialogUsecase) OpenDialog(ctx context.Context, formID string) (entity.FormView, error) {
	return u.formService.OpenDialog(ctx, formID)
}

func (u *changeDialogUsecase) CloseDialog(ctx context.Context, formID string) (entity.FormView, error) {
	return u.formService.CloseDialog(ctx, formID)
}
