package v1

import (
	"context"
	"net/http"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/go-chi/chi/v5"
)

const (
	getFormURL = "/advertisement_forms/{formID}"
)

type GetFormUsecase interface {
	GetForm(ctx context.Context, formID string) (entity.FormView, error)
}

type getFormHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     GetFormUsecase
}

func NewGetFormHandler(usecase GetFormUsecase) *getFormHandler {
	return &getFormHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *getFormHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Get(getFormURL, handler.ServeHTTP)
}

func (h *getFormHandler) Middlewares(md ...func(http.Handler) http.Handler) *getFormHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *getFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	view, err := h.usecase.GetForm(r.Context(), chi.URLParam(r, "formID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
