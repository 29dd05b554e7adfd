package service

import (
	"time"

	"github.com/The-Gleb/advertisement_form/internal/errors"
)

// ValidateDateRange fails when end falls on an earlier calendar day than start
// in loc. Times of day are ignored.
func ValidateDateRange(start, end time.Time, loc *time.Location) error {
	startDay, endDay := NormalizeDate(start, loc), NormalizeDate(end, loc)
	// YYYY-MM-DD orders lexically
	if endDay < startDay {
		return errors.NewDomainError(
			errors.ErrEndBeforeStart,
			"end date %s is before start date %s",
			endDay, startDay,
		)
	}
	return nil
}
