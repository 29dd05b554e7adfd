package v1

import (
	"context"
	"net/http"

	handlers "github.com/The-Gleb/advertisement_form/internal/controller/http/v1/handler"
	middleware "github.com/The-Gleb/advertisement_form/internal/controller/http/v1/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const metricsURL = "/metrics"

type Usecases struct {
	CreateForm        handlers.CreateFormUsecase
	GetForm           handlers.GetFormUsecase
	ChangeDialog      handlers.ChangeDialogUsecase
	UpdateDraft       handlers.UpdateDraftUsecase
	Media             handlers.MediaUsecase
	SubmitForm        handlers.SubmitFormUsecase
	DisposeForm       handlers.DisposeFormUsecase
	GetAdvertisements handlers.GetAdvertisementsUsecase
	GetSubmissions    handlers.GetSubmissionsUsecase
	CheckToken        middleware.CheckTokenUsecase
}

type httpServer struct {
	server *http.Server
}

func NewServer(address string, usecases Usecases, metrics http.Handler) (*httpServer, error) {
	return &httpServer{
		server: &http.Server{
			Addr:    address,
			Handler: NewRouter(usecases, metrics),
		},
	}, nil
}

// NewRouter mounts every form route behind token auth. metrics may be nil.
func NewRouter(usecases Usecases, metrics http.Handler) *chi.Mux {
	auth := middleware.NewAuthMiddleware(usecases.CheckToken).Do

	r := chi.NewMux()
	r.Use(chimw.Recoverer)

	handlers.NewCreateFormHandler(usecases.CreateForm).Middlewares(auth).AddToRouter(r)
	handlers.NewGetFormHandler(usecases.GetForm).Middlewares(auth).AddToRouter(r)
	handlers.NewChangeDialogHandler(usecases.ChangeDialog).Middlewares(auth).AddToRouter(r)
	handlers.NewUpdateDraftHandler(usecases.UpdateDraft).Middlewares(auth).AddToRouter(r)
	handlers.NewMediaHandler(usecases.Media).Middlewares(auth).AddToRouter(r)
	handlers.NewSubmitFormHandler(usecases.SubmitForm).Middlewares(auth).AddToRouter(r)
	handlers.NewDisposeFormHandler(usecases.DisposeForm).Middlewares(auth).AddToRouter(r)
	handlers.NewGetAdvertisementsHandler(usecases.GetAdvertisements).Middlewares(auth).AddToRouter(r)
	handlers.NewGetSubmissionsHandler(usecases.GetSubmissions).Middlewares(auth).AddToRouter(r)

	if metrics != nil {
		r.Method(http.MethodGet, metricsURL, metrics)
	}

	return r
}

func (s *httpServer) Start() error {
	return s.server.ListenAndServe()
}

func (s *httpServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
