package usecase

import (
	"context"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/errors"
)

const defaultSubmissionsLimit = 20

type SubmissionReader interface {
	ListSubmissions(ctx context.Context, organizationID string, limit int) ([]entity.Submission, error)
}

type getSubmissionsUsecase struct {
	reader SubmissionReader
}

func NewGetSubmissionsUsecase(reader SubmissionReader) *getSubmissionsUsecase {
	return &getSubmissionsUsecase{reader}
}

func (u *getSubmissionsUsecase) GetSubmissions(ctx context.Context, dto entity.GetSubmissionsDTO) ([]entity.Submission, error) {
	if token, ok := entity.TokenFromContext(ctx); ok && !token.CanAccess(dto.OrganizationID) {
		return nil, errors.NewDomainError(errors.ErrForbidden, "")
	}

	limit := dto.Limit
	if limit <= 0 {
		limit = defaultSubmissionsLimit
	}

	return u.reader.ListSubmissions(ctx, dto.OrganizationID, limit)
}
