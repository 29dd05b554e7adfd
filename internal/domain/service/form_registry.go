package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/domain/usecase"
	"github.com/The-Gleb/advertisement_form/internal/errors"
	"github.com/google/uuid"
)

var _ usecase.FormService = new(formService)

type Refresher interface {
	Refresh(ctx context.Context, organizationID string, after *string) error
}

type TranslatorProvider interface {
	Translator(language string) Translator
}

type formSession struct {
	form     *AdvertisementForm
	toasts   *ToastQueue
	lastUsed time.Time
}

type formService struct {
	mu       sync.Mutex
	sessions map[string]*formSession

	api         AdvertisementAPI
	refresher   Refresher
	translators TranslatorProvider
	location    *time.Location
	now         func() time.Time
}

func NewFormService(
	api AdvertisementAPI,
	refresher Refresher,
	translators TranslatorProvider,
	location *time.Location,
) *formService {
	if location == nil {
		location = time.UTC
	}
	return &formService{
		sessions:    make(map[string]*formSession),
		api:         api,
		refresher:   refresher,
		translators: translators,
		location:    location,
		now:         time.Now,
	}
}

func (s *formService) CreateForm(ctx context.Context, dto entity.CreateFormDTO) (entity.FormView, error) {
	if token, ok := entity.TokenFromContext(ctx); ok && !token.CanAccess(dto.OrganizationID) {
		return entity.FormView{}, errors.NewDomainError(errors.ErrForbidden, "")
	}
	if dto.Mode != entity.ModeRegister && dto.Mode != entity.ModeEdit {
		return entity.FormView{}, errors.NewDomainError(errors.ErrInvalidMode, "mode must be register or edit, got %q", dto.Mode)
	}
	if dto.TypeEdit != "" && !dto.TypeEdit.Valid() {
		return entity.FormView{}, errors.NewDomainError(errors.ErrInvalidType, "unknown advertisement type %q", dto.TypeEdit)
	}

	baseline := entity.Baseline{
		ID:    dto.IDEdit,
		Name:  dto.NameEdit,
		Type:  dto.TypeEdit,
		Media: MediaFromText(dto.AdvertisementMediaEdit),
	}
	if dto.StartDateEdit != "" {
		start, err := ParseDate(dto.StartDateEdit, s.location)
		if err != nil {
			return entity.FormView{}, err
		}
		baseline.StartDate = &start
	}
	if dto.EndDateEdit != "" {
		end, err := ParseDate(dto.EndDateEdit, s.location)
		if err != nil {
			return entity.FormView{}, err
		}
		baseline.EndDate = &end
	}

	toasts := NewToastQueue(s.now)
	organizationID := dto.OrganizationID

	form := NewAdvertisementForm(FormConfig{
		OrganizationID: organizationID,
		Mode:           dto.Mode,
		Baseline:       baseline,
		API:            s.api,
		Notifier:       toasts,
		Translator:     s.translators.Translator(dto.Language),
		OnRefresh: func(ctx context.Context, after *string) {
			if err := s.refresher.Refresh(ctx, organizationID, after); err != nil {
				slog.Error("error refreshing advertisements", "organization_id", organizationID, "error", err)
			}
		},
		Location: s.location,
		Now:      s.now,
	})

	id := uuid.NewString()
	session := &formSession{form: form, toasts: toasts, lastUsed: s.now()}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	slog.Debug("advertisement form created", "form_id", id, "mode", form.Mode(), "organization_id", organizationID)

	return s.view(id, session), nil
}

func (s *formService) GetForm(ctx context.Context, formID string) (entity.FormView, error) {
	session, err := s.session(ctx, formID)
	if err != nil {
		return entity.FormView{}, err
	}
	return s.view(formID, session), nil
}

func (s *formService) OpenDialog(ctx context.Context, formID string) (entity.FormView, error) {
	return s.apply(ctx, formID, func(f *AdvertisementForm) error { return f.Open() })
}

func (s *formService) CloseDialog(ctx context.Context, formID string) (entity.FormView, error) {
	return s.apply(ctx, formID, func(f *AdvertisementForm) error { return f.Close() })
}

func (s *formService) UpdateDraft(ctx context.Context, dto entity.UpdateDraftDTO) (entity.FormView, error) {
	var (
		start, end time.Time
		err        error
	)
	if dto.StartDate != nil {
		if start, err = ParseDate(*dto.StartDate, s.location); err != nil {
			return entity.FormView{}, err
		}
	}
	if dto.EndDate != nil {
		if end, err = ParseDate(*dto.EndDate, s.location); err != nil {
			return entity.FormView{}, err
		}
	}

	return s.apply(ctx, dto.FormID, func(f *AdvertisementForm) error {
		if dto.Name != nil {
			if err := f.SetName(*dto.Name); err != nil {
				return err
			}
		}
		if dto.Type != nil {
			if err := f.SetType(*dto.Type); err != nil {
				return err
			}
		}
		if dto.StartDate != nil {
			if err := f.SetStartDate(start); err != nil {
				return err
			}
		}
		if dto.EndDate != nil {
			if err := f.SetEndDate(end); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *formService) UploadMedia(ctx context.Context, dto entity.UploadMediaDTO) (entity.FormView, error) {
	media, err := EncodeMedia(dto.FileName, dto.Data)
	if err != nil {
		return entity.FormView{}, err
	}
	return s.apply(ctx, dto.FormID, func(f *AdvertisementForm) error { return f.SetMedia(media) })
}

func (s *formService) RemoveMedia(ctx context.Context, formID string) (entity.FormView, error) {
	return s.apply(ctx, formID, func(f *AdvertisementForm) error { return f.RemoveMedia() })
}

// SubmitForm returns the form view even when the submission fails, so the
// caller can show the toasts it produced.
func (s *formService) SubmitForm(ctx context.Context, formID string) (entity.SubmitResult, entity.FormView, error) {
	session, err := s.session(ctx, formID)
	if err != nil {
		return entity.SubmitResult{}, entity.FormView{}, err
	}

	result, err := session.form.Submit(ctx)
	s.touch(session)

	return result, s.view(formID, session), err
}

func (s *formService) DisposeForm(ctx context.Context, formID string) error {
	session, err := s.session(ctx, formID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, formID)
	s.mu.Unlock()

	session.form.Dispose()
	return nil
}

// Sweep disposes forms idle for longer than ttl and reports how many it removed.
func (s *formService) Sweep(ttl time.Duration) int {
	deadline := s.now().Add(-ttl)

	s.mu.Lock()
	var expired []*formSession
	for id, session := range s.sessions {
		if session.lastUsed.Before(deadline) && !session.form.InFlight() {
			expired = append(expired, session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, session := range expired {
		session.form.Dispose()
	}
	return len(expired)
}

func (s *formService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *formService) apply(ctx context.Context, formID string, fn func(f *AdvertisementForm) error) (entity.FormView, error) {
	session, err := s.session(ctx, formID)
	if err != nil {
		return entity.FormView{}, err
	}

	if err := fn(session.form); err != nil {
		return entity.FormView{}, err
	}
	s.touch(session)

	return s.view(formID, session), nil
}

func (s *formService) session(ctx context.Context, formID string) (*formSession, error) {
	s.mu.Lock()
	session, ok := s.sessions[formID]
	s.mu.Unlock()

	if !ok {
		return nil, errors.NewDomainError(errors.ErrNoDataFound, "form %s not found", formID)
	}
	if token, ok := entity.TokenFromContext(ctx); ok && !token.CanAccess(session.form.OrganizationID()) {
		return nil, errors.NewDomainError(errors.ErrForbidden, "")
	}
	return session, nil
}

func (s *formService) touch(session *formSession) {
	s.mu.Lock()
	session.lastUsed = s.now()
	s.mu.Unlock()
}

func (s *formService) view(formID string, session *formSession) entity.FormView {
	f := session.form
	draft := f.Draft()
	return entity.FormView{
		ID:             formID,
		OrganizationID: f.OrganizationID(),
		Mode:           f.Mode(),
		Dialog:         f.Dialog(),
		InFlight:       f.InFlight(),
		Draft: entity.DraftView{
			Name:      draft.Name,
			Media:     draft.Media,
			Type:      draft.Type,
			StartDate: NormalizeDate(draft.StartDate, s.location),
			EndDate:   NormalizeDate(draft.EndDate, s.location),
		},
		Notifications: session.toasts.Drain(),
	}
}
