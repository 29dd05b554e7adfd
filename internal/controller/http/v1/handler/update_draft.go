package v1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/go-chi/chi/v5"
)

const (
	updateDraftURL = "/advertisement_forms/{formID}/draft"
)

type UpdateDraftUsecase interface {
	UpdateDraft(ctx context.Context, dto entity.UpdateDraftDTO) (entity.FormView, error)
}

type updateDraftHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     UpdateDraftUsecase
}

func NewUpdateDraftHandler(usecase UpdateDraftUsecase) *updateDraftHandler {
	return &updateDraftHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *updateDraftHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Patch(updateDraftURL, handler.ServeHTTP)
}

func (h *updateDraftHandler) Middlewares(md ...func(http.Handler) http.Handler) *updateDraftHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *updateDraftHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var dto entity.UpdateDraftDTO

	err := json.NewDecoder(r.Body).Decode(&dto)
	if err != nil {
		http.Error(w, "error decoding json request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dto.FormID = chi.URLParam(r, "formID")

	view, err := h.usecase.UpdateDraft(r.Context(), dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
