package usecase

import (
	"context"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
)

type TokenService interface {
	CheckToken(ctx context.Context, token string) (entity.TokenInfo, error)
}

type checkTokenUsecase struct {
	tokenService TokenService
}

func NewCheckTokenUsecase(tokenService TokenService) *checkTokenUsecase {
	return &checkTokenUsecase{tokenService}
}

func (u *checkTokenUsecase) CheckToken(ctx context.Context, token string) (entity.TokenInfo, error) {
	return u.tokenService.CheckToken(ctx, token)
}
