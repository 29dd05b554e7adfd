package service

import (
	"time"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/errors"
)

// DiffDraft builds an update payload holding only the fields of draft that differ from baseline.
// Dates are compared by calendar day in loc and sent normalized.
func DiffDraft(draft entity.Draft, baseline entity.Baseline, loc *time.Location) (entity.UpdatePayload, error) {
	if baseline.ID == "" {
		return entity.UpdatePayload{}, errors.NewDomainError(errors.ErrMissingIdentity, "cannot update advertisement without id")
	}

	payload := entity.UpdatePayload{ID: baseline.ID}

	if draft.Name != baseline.Name {
		name := draft.Name
		payload.Name = &name
	}
	if draft.Media.Encoded != baseline.Media.Encoded {
		file := draft.Media.Encoded
		payload.File = &file
	}
	if draft.Type != baseline.Type {
		typ := draft.Type
		payload.Type = &typ
	}

	if start := NormalizeDate(draft.StartDate, loc); baseline.StartDate == nil || start != NormalizeDate(*baseline.StartDate, loc) {
		payload.StartDate = &start
	}
	if end := NormalizeDate(draft.EndDate, loc); baseline.EndDate == nil || end != NormalizeDate(*baseline.EndDate, loc) {
		payload.EndDate = &end
	}

	return payload, nil
}

func createPayload(draft entity.Draft, loc *time.Location) entity.CreatePayload {
	return entity.CreatePayload{
		OrganizationID: draft.OrganizationID,
		Name:           draft.Name,
		Type:           draft.Type,
		StartDate:      NormalizeDate(draft.StartDate, loc),
		EndDate:        NormalizeDate(draft.EndDate, loc),
		File:           draft.Media.Encoded,
	}
}
