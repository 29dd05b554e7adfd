package v1

import (
	"context"
	"net/http"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/errors"
	"github.com/go-chi/chi/v5"
)

const (
	submitFormURL = "/advertisement_forms/{formID}/submit"
)

type SubmitFormUsecase interface {
	SubmitForm(ctx context.Context, formID string) (entity.SubmitResult, entity.FormView, error)
}

type submitFormHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     SubmitFormUsecase
}

func NewSubmitFormHandler(usecase SubmitFormUsecase) *submitFormHandler {
	return &submitFormHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *submitFormHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Post(submitFormURL, handler.ServeHTTP)
}

func (h *submitFormHandler) Middlewares(md ...func(http.Handler) http.Handler) *submitFormHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

type submitFormResponse struct {
	Result *entity.SubmitResult `json:"result,omitempty"`
	Form   *entity.FormView     `json:"form,omitempty"`
	Error  string               `json:"error,omitempty"`
	Code   string               `json:"code,omitempty"`
}

// ServeHTTP returns the form view next to the error so clients can show
// the toasts queued by a failed submission.
func (h *submitFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, view, err := h.usecase.SubmitForm(r.Context(), chi.URLParam(r, "formID"))

	var resp submitFormResponse
	if view.ID != "" {
		resp.Form = &view
	}
	if err != nil {
		resp.Error = errorMessage(err)
		resp.Code = string(errors.Code(err))
		writeJSON(w, statusFor(err), resp)
		return
	}

	resp.Result = &result
	writeJSON(w, http.StatusOK, resp)
}
