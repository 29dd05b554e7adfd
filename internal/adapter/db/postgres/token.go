package db

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/domain/service"
	"github.com/The-Gleb/advertisement_form/internal/errors"
	"github.com/The-Gleb/advertisement_form/pkg/client/postgresql"
	"github.com/jackc/pgx/v5"
)

var _ service.TokenStorage = new(tokenStorage)

type tokenStorage struct {
	client postgresql.Client
}

func NewTokenStorage(c postgresql.Client) *tokenStorage {
	return &tokenStorage{c}
}

func (s *tokenStorage) CheckToken(ctx context.Context, token string) (entity.TokenInfo, error) {
	row := s.client.QueryRow(
		ctx,
		`SELECT organization_id, is_admin
		FROM tokens
		WHERE "token" = $1;`,
		token,
	)

	var info entity.TokenInfo
	err := row.Scan(&info.OrganizationID, &info.IsAdmin)
	if err != nil {
		if stdErrors.Is(err, pgx.ErrNoRows) {
			return entity.TokenInfo{}, errors.NewDomainError(errors.ErrUnauthorized, "")
		}
		slog.Error("error scanning row", "error", err)
		return entity.TokenInfo{}, errors.NewDomainError(errors.ErrDB, "")
	}

	return info, nil
}
