package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/errors"
)

type SubmissionStorage interface {
	SaveSubmission(ctx context.Context, submission entity.Submission) error
}

type SubmissionMetrics interface {
	ObserveSubmission(mode entity.Mode, outcome string)
}

type submitFormUsecase struct {
	formService FormService
	storage     SubmissionStorage
	metrics     SubmissionMetrics
}

func NewSubmitFormUsecase(formService FormService, storage SubmissionStorage, metrics SubmissionMetrics) *submitFormUsecase {
	return &submitFormUsecase{
		formService: formService,
		storage:     storage,
		metrics:     metrics,
	}
}

func (u *submitFormUsecase) SubmitForm(ctx context.Context, formID string) (entity.SubmitResult, entity.FormView, error) {
	result, view, err := u.formService.SubmitForm(ctx, formID)

	mode := result.Mode
	if mode == "" {
		mode = view.Mode
	}
	u.metrics.ObserveSubmission(mode, submissionOutcome(result, err))

	if err != nil {
		return result, view, err
	}

	err = u.storage.SaveSubmission(ctx, entity.Submission{
		FormID:          formID,
		Sequence:        result.Sequence,
		OrganizationID:  view.OrganizationID,
		Mode:            result.Mode,
		AdvertisementID: result.AdvertisementID,
		Fields:          result.Fields,
		CreatedAt:       time.Now(),
	})
	if err != nil {
		// the mutation went through, the ledger is best effort
		slog.Error("error saving submission", "form_id", formID, "error", err)
	}

	return result, view, nil
}

func submissionOutcome(result entity.SubmitResult, err error) string {
	if err == nil {
		if result.Discarded {
			return "discarded"
		}
		return "success"
	}

	switch errors.Code(err) {
	case errors.ErrEndBeforeStart:
		return "invalid_dates"
	case errors.ErrMissingIdentity:
		return "missing_identity"
	case errors.ErrSubmissionInFlight:
		return "in_flight"
	case errors.ErrDialogClosed:
		return "dialog_closed"
	case errors.ErrResponseDiscarded:
		return "discarded"
	case errors.ErrRemote:
		return "remote_error"
	default:
		return "error"
	}
}
