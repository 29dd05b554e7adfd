package v1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/go-chi/chi/v5"
)

const (
	createFormURL = "/organizations/{orgID}/advertisement_forms"
)

type CreateFormUsecase interface {
	CreateForm(ctx context.Context, dto entity.CreateFormDTO) (entity.FormView, error)
}

type createFormHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     CreateFormUsecase
}

func NewCreateFormHandler(usecase CreateFormUsecase) *createFormHandler {
	return &createFormHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *createFormHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Post(createFormURL, handler.ServeHTTP)
}

func (h *createFormHandler) Middlewares(md ...func(http.Handler) http.Handler) *createFormHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *createFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var dto entity.CreateFormDTO

	err := json.NewDecoder(r.Body).Decode(&dto)
	if err != nil {
		http.Error(w, "error decoding json request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dto.OrganizationID = chi.URLParam(r, "orgID")
	dto.Language = r.Header.Get("Accept-Language")

	view, err := h.usecase.CreateForm(r.Context(), dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}
