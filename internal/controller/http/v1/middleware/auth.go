package v1

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/errors"
)

type CheckTokenUsecase interface {
	CheckToken(ctx context.Context, token string) (entity.TokenInfo, error)
}

type authMiddleWare struct {
	usecase CheckTokenUsecase
}

func NewAuthMiddleware(usecase CheckTokenUsecase) *authMiddleWare {
	return &authMiddleWare{usecase}
}

// Do resolves the "token" header and stores the caller in the request context.
// Organization checks happen further down, where the organization is known.
func (m *authMiddleWare) Do(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("token")
		if token == "" {
			http.Error(w, string(errors.ErrUnauthorized), http.StatusUnauthorized)
			return
		}

		info, err := m.usecase.CheckToken(r.Context(), token)
		if err != nil {
			if errors.Code(err) == errors.ErrUnauthorized {
				http.Error(w, string(errors.ErrUnauthorized), http.StatusUnauthorized)
				return
			}
			slog.Error("error checking token", "error", err)
			http.Error(w, string(errors.ErrDB), http.StatusInternalServerError)
			return
		}

		slog.Debug("authenticated", "organization_id", info.OrganizationID, "is_admin", info.IsAdmin)

		next.ServeHTTP(w, r.WithContext(entity.WithToken(r.Context(), info)))
	})
}
