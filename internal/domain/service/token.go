package service

import (
	"context"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/domain/usecase"
)

var _ usecase.TokenService = new(tokenService)

type TokenStorage interface {
	CheckToken(ctx context.Context, token string) (entity.TokenInfo, error)
}

type tokenService struct {
	storage TokenStorage
}

func NewTokenService(storage TokenStorage) *tokenService {
	return &tokenService{storage: storage}
}

func (service *tokenService) CheckToken(ctx context.Context, token string) (entity.TokenInfo, error) {
	return service.storage.CheckToken(ctx, token)
}
