package usecase

import (
	"context"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/errors"
)

type AdvertisementService interface {
	GetAdvertisements(ctx context.Context, dto entity.GetAdvertisementsDTO) (entity.AdvertisementPage, error)
	Refresh(ctx context.Context, organizationID string, after *string) error
}

type getAdvertisementsUsecase struct {
	advertisementService AdvertisementService
}

func NewGetAdvertisementsUsecase(advertisementService AdvertisementService) *getAdvertisementsUsecase {
	return &getAdvertisementsUsecase{advertisementService}
}

func (u *getAdvertisementsUsecase) GetAdvertisements(ctx context.Context, dto entity.GetAdvertisementsDTO) (entity.AdvertisementPage, error) {
	if token, ok := entity.TokenFromContext(ctx); ok && !token.CanAccess(dto.OrganizationID) {
		return entity.AdvertisementPage{}, errors.NewDomainError(errors.ErrForbidden, "")
	}
	return u.advertisementService.GetAdvertisements(ctx, dto)
}
