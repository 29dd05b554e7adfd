package v1

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	disposeFormURL = "/advertisement_forms/{formID}"
)

type DisposeFormUsecase interface {
	DisposeForm(ctx context.Context, formID string) error
}

type disposeFormHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     DisposeFormUsecase
}

func NewDisposeFormHandler(usecase DisposeFormUsecase) *disposeFormHandler {
	return &disposeFormHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *disposeFormHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Delete(disposeFormURL, handler.ServeHTTP)
}

func (h *disposeFormHandler) Middlewares(md ...func(http.Handler) http.Handler) *disposeFormHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *disposeFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := h.usecase.DisposeForm(r.Context(), chi.URLParam(r, "formID"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
