package v1

import (
	"context"
	"net/http"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/go-chi/chi/v5"
)

const (
	openDialogURL  = "/advertisement_forms/{formID}/open"
	closeDialogURL = "/advertisement_forms/{formID}/close"
)

type ChangeDialogUsecase interface {
	OpenDialog(ctx context.Context, formID string) (entity.FormView, error)
	CloseDialog(ctx context.Context, formID string) (entity.FormView, error)
}

// changeDialogHandler serves both transitions of the dialog state machine.
type changeDialogHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     ChangeDialogUsecase
}

func NewChangeDialogHandler(usecase ChangeDialogUsecase) *changeDialogHandler {
	return &changeDialogHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *changeDialogHandler) AddToRouter(r *chi.Mux) {
	openHandler := h.wrap(http.HandlerFunc(h.open))
	closeHandler := h.wrap(http.HandlerFunc(h.close))

	r.Post(openDialogURL, openHandler.ServeHTTP)
	r.Post(closeDialogURL, closeHandler.ServeHTTP)
}

func (h *changeDialogHandler) Middlewares(md ...func(http.Handler) http.Handler) *changeDialogHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *changeDialogHandler) wrap(handler http.Handler) http.Handler {
	for _, md := range h.middlewares {
		handler = md(handler)
	}
	return handler
}

func (h *changeDialogHandler) open(w http.ResponseWriter, r *http.Request) {
	h.respond(w)(h.usecase.OpenDialog(r.Context(), chi.URLParam(r, "formID")))
}

func (h *changeDialogHandler) close(w http.ResponseWriter, r *http.Request) {
	h.respond(w)(h.usecase.CloseDialog(r.Context(), chi.URLParam(r, "formID")))
}

func (h *changeDialogHandler) respond(w http.ResponseWriter) func(entity.FormView, error) {
	return func(view entity.FormView, err error) {
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}
