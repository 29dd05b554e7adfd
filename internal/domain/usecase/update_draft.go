package usecase

import (
	"context"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
)

type updateDraftUsecase struct {
	formService FormService
}

func NewUpdateDraftUsecase(formService FormService) *updateDraftUsecase {
	return &updateDraftUsecase{formService}
}

func (u *updateDraftUsecase) UpdateDraft(ctx context.Context, dto entity.UpdateDraftDTO) (entity.FormView, error) {
	return u.formService.UpdateDraft(ctx, dto)
}

func (u *updateDraftUsecase) UploadMedia(ctx context.Context, dto entity.UploadMediaDTO) (entity.FormView, error) {
	return u.formService.UploadMedia(ctx, dto)
}

func (u *updateDraftUsecase) RemoveMedia(ctx context.Context, formID string) (entity.FormView, error) {
	return u.formService.RemoveMedia(ctx, formID)
}
