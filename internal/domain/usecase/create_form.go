package usecase

import (
	"context"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
)

type FormService interface {
	CreateForm(ctx context.Context, dto entity.CreateFormDTO) (entity.FormView, error)
	GetForm(ctx context.Context, formID string) (entity.FormView, error)
	OpenDialog(ctx context.Context, formID string) (entity.FormView, error)
	CloseDialog(ctx context.Context, formID string) (entity.FormView, error)
	UpdateDraft(ctx context.Context, dto entity.UpdateDraftDTO) (entity.FormView, error)
	UploadMedia(ctx context.Context, dto entity.UploadMediaDTO) (entity.FormView, error)
	RemoveMedia(ctx context.Context, formID string) (entity.FormView, error)
	SubmitForm(ctx context.Context, formID string) (entity.SubmitResult, entity.FormView, error)
	DisposeForm(ctx context.Context, formID string) error
}

type createFormUsecase struct {
	formService FormService
}

func NewCreateFormUsecase(formService FormService) *createFormUsecase {
	return &createFormUsecase{formService}
}

func (u *createFormUsecase) CreateForm(ctx context.Context, dto entity.CreateFormDTO) (entity.FormView, error) {
	return u.formService.CreateForm(ctx, dto)
}
