package v1

import (
	"context"
	"net/http"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/go-chi/chi/v5"
)

const (
	getAdvertisementsURL = "/organizations/{orgID}/advertisements"
)

type GetAdvertisementsUsecase interface {
	GetAdvertisements(ctx context.Context, dto entity.GetAdvertisementsDTO) (entity.AdvertisementPage, error)
}

type getAdvertisementsHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     GetAdvertisementsUsecase
}

func NewGetAdvertisementsHandler(usecase GetAdvertisementsUsecase) *getAdvertisementsHandler {
	return &getAdvertisementsHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *getAdvertisementsHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Get(getAdvertisementsURL, handler.ServeHTTP)
}

func (h *getAdvertisementsHandler) Middlewares(md ...func(http.Handler) http.Handler) *getAdvertisementsHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *getAdvertisementsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dto := entity.GetAdvertisementsDTO{
		OrganizationID: chi.URLParam(r, "orgID"),
	}
	if r.URL.Query().Has("after") {
		after := r.URL.Query().Get("after")
		dto.After = &after
	}

	page, err := h.usecase.GetAdvertisements(r.Context(), dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
