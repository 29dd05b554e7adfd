package service

import (
	"context"
	stdErrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/errors"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu      sync.Mutex
	creates []entity.CreatePayload
	updates []entity.UpdatePayload

	id  string
	err error

	// when set, calls report on started and wait for release
	started chan struct{}
	release chan struct{}
}

func (a *fakeAPI) CreateAdvertisement(ctx context.Context, payload entity.CreatePayload) (string, error) {
	a.mu.Lock()
	a.creates = append(a.creates, payload)
	a.mu.Unlock()
	a.wait()
	return a.id, a.err
}

func (a *fakeAPI) UpdateAdvertisement(ctx context.Context, payload entity.UpdatePayload) (string, error) {
	a.mu.Lock()
	a.updates = append(a.updates, payload)
	a.mu.Unlock()
	a.wait()
	return a.id, a.err
}

func (a *fakeAPI) wait() {
	if a.started != nil {
		a.started <- struct{}{}
	}
	if a.release != nil {
		<-a.release
	}
}

func (a *fakeAPI) calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.creates) + len(a.updates)
}

type prefixTranslator struct{}

func (prefixTranslator) Translate(key string) string {
	return "t:" + key
}

type refreshRecorder struct {
	mu      sync.Mutex
	cursors []*string
}

func (r *refreshRecorder) Refresh(ctx context.Context, after *string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursors = append(r.cursors, after)
}

func (r *refreshRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cursors)
}

var fixedNow = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

func day(s string) time.Time {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

type formFixture struct {
	form    *AdvertisementForm
	api     *fakeAPI
	toasts  *ToastQueue
	refresh *refreshRecorder
}

func newFormFixture(t *testing.T, mode entity.Mode, baseline entity.Baseline) formFixture {
	t.Helper()

	api := &fakeAPI{id: "ad-1"}
	toasts := NewToastQueue(func() time.Time { return fixedNow })
	refresh := &refreshRecorder{}

	form := NewAdvertisementForm(FormConfig{
		OrganizationID: "org-1",
		Mode:           mode,
		Baseline:       baseline,
		API:            api,
		Notifier:       toasts,
		Translator:     prefixTranslator{},
		OnRefresh:      refresh.Refresh,
		Location:       time.UTC,
		Now:            func() time.Time { return fixedNow },
	})
	require.NoError(t, form.Open())

	return formFixture{form: form, api: api, toasts: toasts, refresh: refresh}
}

var saleBaseline = entity.Baseline{
	ID:        "ad-42",
	Name:      "Sale",
	Type:      entity.TypePopup,
	StartDate: dayPtr("2024-01-01"),
	EndDate:   dayPtr("2024-01-10"),
}

func TestAdvertisementForm_Defaults(t *testing.T) {
	fx := newFormFixture(t, entity.ModeRegister, entity.Baseline{})

	require.Equal(t, entity.Draft{
		OrganizationID: "org-1",
		Type:           entity.TypeBanner,
		StartDate:      fixedNow,
		EndDate:        fixedNow,
	}, fx.form.Draft())
}

func TestAdvertisementForm_EditSeedsFromBaseline(t *testing.T) {
	fx := newFormFixture(t, entity.ModeEdit, saleBaseline)

	require.Equal(t, entity.Draft{
		OrganizationID: "org-1",
		Name:           "Sale",
		Type:           entity.TypePopup,
		StartDate:      day("2024-01-01"),
		EndDate:        day("2024-01-10"),
	}, fx.form.Draft())

	fx = newFormFixture(t, entity.ModeEdit, entity.Baseline{ID: "ad-1"})
	draft := fx.form.Draft()
	require.Equal(t, entity.TypeBanner, draft.Type)
	require.Equal(t, fixedNow, draft.StartDate)
	require.Equal(t, fixedNow, draft.EndDate)
}

func TestAdvertisementForm_Submit_EndBeforeStart(t *testing.T) {
	for _, mode := range []entity.Mode{entity.ModeRegister, entity.ModeEdit} {
		t.Run(string(mode), func(t *testing.T) {
			fx := newFormFixture(t, mode, saleBaseline)
			require.NoError(t, fx.form.SetStartDate(day("2024-02-10")))
			require.NoError(t, fx.form.SetEndDate(day("2024-02-01")))

			_, err := fx.form.Submit(context.Background())
			require.Equal(t, errors.ErrEndBeforeStart, errors.Code(err))

			require.Zero(t, fx.api.calls())
			require.Zero(t, fx.refresh.count())
			toasts := fx.toasts.Drain()
			require.Len(t, toasts, 1)
			require.Equal(t, entity.NotificationError, toasts[0].Level)
			require.Equal(t, "t:"+MsgEndDateBeforeStart, toasts[0].Message)
		})
	}
}

func TestAdvertisementForm_Submit_SameDayDifferentTimes(t *testing.T) {
	t.Run("register keeps the default start and ends today", func(t *testing.T) {
		fx := newFormFixture(t, entity.ModeRegister, entity.Baseline{})
		require.NoError(t, fx.form.SetName("Sale"))
		// the default start is now, 14:30 on the same day
		require.NoError(t, fx.form.SetEndDate(day("2024-03-05")))

		_, err := fx.form.Submit(context.Background())
		require.NoError(t, err)
		require.Len(t, fx.api.creates, 1)
		require.Equal(t, "2024-03-05", fx.api.creates[0].StartDate)
		require.Equal(t, "2024-03-05", fx.api.creates[0].EndDate)
	})

	t.Run("edit with a same-day baseline ending earlier in the day", func(t *testing.T) {
		baseline := entity.Baseline{
			ID:        "ad-42",
			Name:      "Sale",
			Type:      entity.TypeBanner,
			StartDate: ptr(day("2024-01-10").Add(15 * time.Hour)),
			EndDate:   ptr(day("2024-01-10").Add(9 * time.Hour)),
		}
		fx := newFormFixture(t, entity.ModeEdit, baseline)
		require.NoError(t, fx.form.SetName("Winter sale"))

		_, err := fx.form.Submit(context.Background())
		require.NoError(t, err)
		require.Equal(t, []entity.UpdatePayload{{ID: "ad-42", Name: ptr("Winter sale")}}, fx.api.updates)
	})

	t.Run("previous calendar day still fails", func(t *testing.T) {
		fx := newFormFixture(t, entity.ModeRegister, entity.Baseline{})
		require.NoError(t, fx.form.SetStartDate(day("2024-02-01").Add(1*time.Hour)))
		require.NoError(t, fx.form.SetEndDate(day("2024-01-31").Add(23*time.Hour)))

		_, err := fx.form.Submit(context.Background())
		require.Equal(t, errors.ErrEndBeforeStart, errors.Code(err))
		require.Zero(t, fx.api.calls())
	})
}

func TestAdvertisementForm_Create(t *testing.T) {
	fx := newFormFixture(t, entity.ModeRegister, entity.Baseline{})
	require.NoError(t, fx.form.SetName("Sale"))
	require.NoError(t, fx.form.SetType(entity.TypePopup))
	require.NoError(t, fx.form.SetStartDate(day("2024-01-01")))
	require.NoError(t, fx.form.SetEndDate(day("2024-01-10")))

	result, err := fx.form.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ad-1", result.AdvertisementID)
	require.Equal(t, int64(1), result.Sequence)

	require.Equal(t, []entity.CreatePayload{{
		OrganizationID: "org-1",
		Name:           "Sale",
		Type:           entity.TypePopup,
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-10",
		File:           "",
	}}, fx.api.creates)

	require.Equal(t, entity.Draft{
		OrganizationID: "org-1",
		Type:           entity.TypeBanner,
		StartDate:      fixedNow,
		EndDate:        fixedNow,
	}, fx.form.Draft())

	require.Equal(t, entity.DialogOpen, fx.form.Dialog())
	require.Len(t, fx.refresh.cursors, 1)
	require.Nil(t, fx.refresh.cursors[0])

	toasts := fx.toasts.Drain()
	require.Len(t, toasts, 1)
	require.Equal(t, entity.NotificationSuccess, toasts[0].Level)
	require.Equal(t, "t:"+MsgAdvertisementCreated, toasts[0].Message)
}

func TestAdvertisementForm_CreateWithMedia(t *testing.T) {
	fx := newFormFixture(t, entity.ModeRegister, entity.Baseline{})
	media := entity.Media{Kind: entity.MediaVideo, ContentType: "video/mp4", Encoded: "data:video/mp4;base64,AAAA"}
	require.NoError(t, fx.form.SetMedia(media))

	_, err := fx.form.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, "data:video/mp4;base64,AAAA", fx.api.creates[0].File)
}

func TestAdvertisementForm_CreateFailure(t *testing.T) {
	fx := newFormFixture(t, entity.ModeRegister, entity.Baseline{})
	fx.api.err = errors.NewDomainError(errors.ErrRemote, "database is down")
	require.NoError(t, fx.form.SetName("Sale"))

	_, err := fx.form.Submit(context.Background())
	require.Equal(t, errors.ErrRemote, errors.Code(err))

	require.Equal(t, "Sale", fx.form.Draft().Name)
	require.Equal(t, entity.DialogOpen, fx.form.Dialog())
	require.Zero(t, fx.refresh.count())

	toasts := fx.toasts.Drain()
	require.Len(t, toasts, 1)
	require.Equal(t, "t:"+MsgCreateError, toasts[0].Message)
}

func TestAdvertisementForm_UpdateOnlyChangedEndDate(t *testing.T) {
	fx := newFormFixture(t, entity.ModeEdit, saleBaseline)
	require.NoError(t, fx.form.SetEndDate(day("2024-01-15")))

	result, err := fx.form.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"endDate"}, result.Fields)

	endDate := "2024-01-15"
	require.Equal(t, []entity.UpdatePayload{{ID: "ad-42", EndDate: &endDate}}, fx.api.updates)

	require.Equal(t, entity.DialogClosed, fx.form.Dialog())
	require.Equal(t, day("2024-01-15"), fx.form.Draft().EndDate)
	require.Len(t, fx.refresh.cursors, 1)
	require.Nil(t, fx.refresh.cursors[0])

	toasts := fx.toasts.Drain()
	require.Len(t, toasts, 1)
	require.Equal(t, "t:"+MsgAdvertisementUpdated, toasts[0].Message)
}

func TestAdvertisementForm_UpdateFailureShowsRawMessage(t *testing.T) {
	fx := newFormFixture(t, entity.ModeEdit, saleBaseline)
	fx.api.err = errors.NewDomainError(errors.ErrRemote, "Advertisement not found")
	require.NoError(t, fx.form.SetName("Winter sale"))

	_, err := fx.form.Submit(context.Background())
	require.Error(t, err)

	require.Equal(t, entity.DialogOpen, fx.form.Dialog())
	require.Zero(t, fx.refresh.count())
	toasts := fx.toasts.Drain()
	require.Len(t, toasts, 1)
	require.Equal(t, "Advertisement not found", toasts[0].Message)
}

func TestAdvertisementForm_UpdateWithoutIdentity(t *testing.T) {
	baseline := saleBaseline
	baseline.ID = ""
	fx := newFormFixture(t, entity.ModeEdit, baseline)

	_, err := fx.form.Submit(context.Background())
	require.Equal(t, errors.ErrMissingIdentity, errors.Code(err))
	require.Zero(t, fx.api.calls())

	toasts := fx.toasts.Drain()
	require.Len(t, toasts, 1)
	require.Equal(t, "t:"+MsgMissingIdentity, toasts[0].Message)
}

func TestAdvertisementForm_DialogStateMachine(t *testing.T) {
	fx := newFormFixture(t, entity.ModeRegister, entity.Baseline{})
	require.Equal(t, entity.DialogOpen, fx.form.Dialog())

	require.NoError(t, fx.form.Close())
	require.Equal(t, entity.DialogClosed, fx.form.Dialog())
	require.NoError(t, fx.form.Close())

	_, err := fx.form.Submit(context.Background())
	require.Equal(t, errors.ErrDialogClosed, errors.Code(err))
	require.Equal(t, errors.ErrDialogClosed, errors.Code(fx.form.SetName("x")))

	require.NoError(t, fx.form.Open())
	require.NoError(t, fx.form.Open())
	require.Equal(t, entity.DialogOpen, fx.form.Dialog())

	fx.form.Dispose()
	require.Equal(t, errors.ErrNoDataFound, errors.Code(fx.form.Open()))
}

func TestAdvertisementForm_SetTypeRejectsUnknown(t *testing.T) {
	fx := newFormFixture(t, entity.ModeRegister, entity.Baseline{})
	require.Equal(t, errors.ErrInvalidType, errors.Code(fx.form.SetType("SIDEBAR")))
	require.Equal(t, entity.TypeBanner, fx.form.Draft().Type)
}

func TestAdvertisementForm_SecondSubmitWhileInFlight(t *testing.T) {
	fx := newFormFixture(t, entity.ModeRegister, entity.Baseline{})
	fx.api.started = make(chan struct{}, 1)
	fx.api.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := fx.form.Submit(context.Background())
		done <- err
	}()
	<-fx.api.started

	require.True(t, fx.form.InFlight())
	_, err := fx.form.Submit(context.Background())
	require.Equal(t, errors.ErrSubmissionInFlight, errors.Code(err))

	// inputs stay responsive while the call is pending
	require.NoError(t, fx.form.SetName("typed during flight"))

	close(fx.api.release)
	require.NoError(t, <-done)
	require.False(t, fx.form.InFlight())
	require.Equal(t, 1, fx.api.calls())
}

func TestAdvertisementForm_LateResponseAfterClose(t *testing.T) {
	fx := newFormFixture(t, entity.ModeRegister, entity.Baseline{})
	require.NoError(t, fx.form.SetName("Sale"))
	fx.api.started = make(chan struct{}, 1)
	fx.api.release = make(chan struct{})

	type outcome struct {
		result entity.SubmitResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := fx.form.Submit(context.Background())
		done <- outcome{result, err}
	}()
	<-fx.api.started

	require.NoError(t, fx.form.Close())
	close(fx.api.release)

	got := <-done
	require.NoError(t, got.err)
	require.True(t, got.result.Discarded)

	require.Equal(t, "Sale", fx.form.Draft().Name)
	require.Equal(t, entity.DialogClosed, fx.form.Dialog())
	require.Empty(t, fx.toasts.Drain())
	require.Equal(t, 1, fx.refresh.count())
}

func TestAdvertisementForm_LateResponseAfterDispose(t *testing.T) {
	fx := newFormFixture(t, entity.ModeEdit, saleBaseline)
	require.NoError(t, fx.form.SetName("Other"))
	fx.api.started = make(chan struct{}, 1)
	fx.api.release = make(chan struct{})
	fx.api.err = stdErrors.New("connection reset")

	done := make(chan error, 1)
	go func() {
		_, err := fx.form.Submit(context.Background())
		done <- err
	}()
	<-fx.api.started

	fx.form.Dispose()
	close(fx.api.release)

	err := <-done
	require.Equal(t, errors.ErrResponseDiscarded, errors.Code(err))
	require.Empty(t, fx.toasts.Drain())
	require.Zero(t, fx.refresh.count())
}
