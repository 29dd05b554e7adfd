package usecase

import (
	"context"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
)

type getFormUsecase struct {
	formService FormService
}

func NewGetFormUsecase(formService FormService) *getFormUsecase {
	return &getFormUsecase{formService}
}

func (u *getFormUsecase) GetForm(ctx context.Context, formID string) (entity.FormView, error) {
	return u.formService.GetForm(ctx, formID)
}
