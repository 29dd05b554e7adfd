package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/errors"
)

// Translation keys used by the form.
const (
	MsgAdvertisementCreated = "advertisementCreated"
	MsgAdvertisementUpdated = "advertisementUpdated"
	MsgCreateError          = "advertisementCreateError"
	MsgEndDateBeforeStart   = "endDateBeforeStartDate"
	MsgMissingIdentity      = "missingAdvertisementID"
)

type AdvertisementAPI interface {
	CreateAdvertisement(ctx context.Context, payload entity.CreatePayload) (string, error)
	UpdateAdvertisement(ctx context.Context, payload entity.UpdatePayload) (string, error)
}

type Notifier interface {
	Notify(level entity.NotificationLevel, message string)
}

type Translator interface {
	Translate(key string) string
}

// RefreshFunc is called after every successful mutation. A nil cursor means
// "reload the first page".
type RefreshFunc func(ctx context.Context, after *string)

type FormConfig struct {
	OrganizationID string
	Mode           entity.Mode
	Baseline       entity.Baseline

	API        AdvertisementAPI
	Notifier   Notifier
	Translator Translator
	OnRefresh  RefreshFunc

	Location *time.Location
	Now      func() time.Time
}

// AdvertisementForm is the create/edit dialog for one advertisement.
//
// Inputs may change the draft while a submission is in flight, but a second
// submission is refused until the first resolves. Every dialog transition moves
// the epoch forward; a response that comes back under an older epoch only
// refreshes the listing and leaves the dialog, the draft and the notifications alone.
type AdvertisementForm struct {
	mu sync.Mutex

	cfg      FormConfig
	baseline entity.Baseline

	draft    entity.Draft
	dialog   entity.DialogState
	epoch    uint64
	inFlight bool
	disposed bool
	sequence int64
}

func NewAdvertisementForm(cfg FormConfig) *AdvertisementForm {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Mode == "" {
		cfg.Mode = entity.ModeRegister
	}

	f := &AdvertisementForm{
		cfg:    cfg,
		dialog: entity.DialogClosed,
	}
	f.baseline = f.resolveBaseline(cfg.Baseline)
	f.draft = f.defaultDraft()

	if cfg.Mode == entity.ModeEdit {
		f.draft = entity.Draft{
			OrganizationID: cfg.OrganizationID,
			Name:           f.baseline.Name,
			Media:          f.baseline.Media,
			Type:           f.baseline.Type,
			StartDate:      *f.baseline.StartDate,
			EndDate:        *f.baseline.EndDate,
		}
	}

	return f
}

func (f *AdvertisementForm) resolveBaseline(b entity.Baseline) entity.Baseline {
	now := f.cfg.Now()
	if b.Type == "" {
		b.Type = entity.TypeBanner
	}
	if b.StartDate == nil {
		b.StartDate = &now
	}
	if b.EndDate == nil {
		b.EndDate = &now
	}
	return b
}

func (f *AdvertisementForm) defaultDraft() entity.Draft {
	now := f.cfg.Now()
	return entity.Draft{
		OrganizationID: f.cfg.OrganizationID,
		Type:           entity.TypeBanner,
		StartDate:      now,
		EndDate:        now,
	}
}

func (f *AdvertisementForm) Mode() entity.Mode {
	return f.cfg.Mode
}

func (f *AdvertisementForm) OrganizationID() string {
	return f.cfg.OrganizationID
}

func (f *AdvertisementForm) Draft() entity.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *AdvertisementForm) Dialog() entity.DialogState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dialog
}

func (f *AdvertisementForm) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

// Open moves the dialog from Closed to Open. Opening an open dialog does nothing.
func (f *AdvertisementForm) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.disposed {
		return errors.NewDomainError(errors.ErrNoDataFound, "form is disposed")
	}
	if f.dialog == entity.DialogOpen {
		return nil
	}
	f.dialog = entity.DialogOpen
	f.epoch++
	return nil
}

// Close moves the dialog from Open to Closed. Closing a closed dialog does nothing.
func (f *AdvertisementForm) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.disposed {
		return errors.NewDomainError(errors.ErrNoDataFound, "form is disposed")
	}
	if f.dialog == entity.DialogClosed {
		return nil
	}
	f.dialog = entity.DialogClosed
	f.epoch++
	return nil
}

// Dispose detaches the form. Responses still in flight are dropped.
func (f *AdvertisementForm) Dispose() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.disposed = true
	f.dialog = entity.DialogClosed
	f.epoch++
}

func (f *AdvertisementForm) SetName(name string) error {
	return f.edit(func(d *entity.Draft) { d.Name = name })
}

func (f *AdvertisementForm) SetType(t entity.AdvertisementType) error {
	if !t.Valid() {
		return errors.NewDomainError(errors.ErrInvalidType, "unknown advertisement type %q", t)
	}
	return f.edit(func(d *entity.Draft) { d.Type = t })
}

func (f *AdvertisementForm) SetStartDate(t time.Time) error {
	return f.edit(func(d *entity.Draft) { d.StartDate = t })
}

func (f *AdvertisementForm) SetEndDate(t time.Time) error {
	return f.edit(func(d *entity.Draft) { d.EndDate = t })
}

func (f *AdvertisementForm) SetMedia(m entity.Media) error {
	return f.edit(func(d *entity.Draft) { d.Media = m })
}

func (f *AdvertisementForm) RemoveMedia() error {
	return f.edit(func(d *entity.Draft) { d.Media = entity.Media{} })
}

func (f *AdvertisementForm) edit(apply func(d *entity.Draft)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.disposed {
		return errors.NewDomainError(errors.ErrNoDataFound, "form is disposed")
	}
	if f.dialog != entity.DialogOpen {
		return errors.NewDomainError(errors.ErrDialogClosed, "open the dialog before editing")
	}
	apply(&f.draft)
	return nil
}

// Submit validates the draft and sends it with the create or update mutation.
func (f *AdvertisementForm) Submit(ctx context.Context) (entity.SubmitResult, error) {
	f.mu.Lock()

	if f.disposed {
		f.mu.Unlock()
		return entity.SubmitResult{}, errors.NewDomainError(errors.ErrNoDataFound, "form is disposed")
	}
	if f.dialog != entity.DialogOpen {
		f.mu.Unlock()
		return entity.SubmitResult{}, errors.NewDomainError(errors.ErrDialogClosed, "open the dialog before submitting")
	}
	if f.inFlight {
		f.mu.Unlock()
		return entity.SubmitResult{}, errors.NewDomainError(errors.ErrSubmissionInFlight, "previous submission has not finished")
	}

	draft := f.draft
	if err := ValidateDateRange(draft.StartDate, draft.EndDate, f.cfg.Location); err != nil {
		f.notify(entity.NotificationError, f.translate(MsgEndDateBeforeStart))
		f.mu.Unlock()
		slog.Debug("advertisement draft rejected", "error", err)
		return entity.SubmitResult{}, err
	}

	result := entity.SubmitResult{Mode: f.cfg.Mode}
	var call func(ctx context.Context) (string, error)

	switch f.cfg.Mode {
	case entity.ModeEdit:
		payload, err := DiffDraft(draft, f.baseline, f.cfg.Location)
		if err != nil {
			f.notify(entity.NotificationError, f.translate(MsgMissingIdentity))
			f.mu.Unlock()
			slog.Error("error diffing advertisement draft", "error", err)
			return entity.SubmitResult{}, err
		}
		result.Fields = payload.Fields()
		call = func(ctx context.Context) (string, error) {
			return f.cfg.API.UpdateAdvertisement(ctx, payload)
		}
	default:
		payload := createPayload(draft, f.cfg.Location)
		result.Fields = []string{"organizationId", "name", "type", "startDate", "endDate", "file"}
		call = func(ctx context.Context) (string, error) {
			return f.cfg.API.CreateAdvertisement(ctx, payload)
		}
	}

	f.inFlight = true
	f.sequence++
	result.Sequence = f.sequence
	epoch := f.epoch
	f.mu.Unlock()

	id, err := call(ctx)

	f.mu.Lock()
	f.inFlight = false
	disposed := f.disposed
	stale := disposed || f.epoch != epoch

	if stale {
		f.mu.Unlock()
		slog.Info("discarding late advertisement response",
			"mode", f.cfg.Mode, "disposed", disposed, "error", err,
		)
		if err != nil {
			return entity.SubmitResult{}, errors.WrapIntoDomainError(err, errors.ErrResponseDiscarded, "submission finished after dialog closed")
		}
		result.AdvertisementID = id
		result.Discarded = true
		if !disposed {
			f.refresh(ctx)
		}
		return result, nil
	}

	if err != nil {
		if f.cfg.Mode == entity.ModeEdit {
			f.notify(entity.NotificationError, errors.Message(err))
		} else {
			f.notify(entity.NotificationError, f.translate(MsgCreateError))
		}
		f.mu.Unlock()
		slog.Error("error submitting advertisement", "mode", f.cfg.Mode, "error", err)
		return entity.SubmitResult{}, err
	}

	if f.cfg.Mode == entity.ModeEdit {
		f.notify(entity.NotificationSuccess, f.translate(MsgAdvertisementUpdated))
		f.dialog = entity.DialogClosed
		f.epoch++
	} else {
		f.notify(entity.NotificationSuccess, f.translate(MsgAdvertisementCreated))
		f.draft = f.defaultDraft()
	}
	f.mu.Unlock()

	result.AdvertisementID = id
	f.refresh(ctx)

	return result, nil
}

func (f *AdvertisementForm) refresh(ctx context.Context) {
	if f.cfg.OnRefresh != nil {
		f.cfg.OnRefresh(ctx, nil)
	}
}

func (f *AdvertisementForm) notify(level entity.NotificationLevel, msg string) {
	if f.cfg.Notifier != nil {
		f.cfg.Notifier.Notify(level, msg)
	}
}

func (f *AdvertisementForm) translate(key string) string {
	if f.cfg.Translator == nil {
		return key
	}
	return f.cfg.Translator.Translate(key)
}
