package v1

import (
	"context"
	"net/http"
	"strconv"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/go-chi/chi/v5"
)

const (
	getSubmissionsURL = "/organizations/{orgID}/submissions"
)

type GetSubmissionsUsecase interface {
	GetSubmissions(ctx context.Context, dto entity.GetSubmissionsDTO) ([]entity.Submission, error)
}

type getSubmissionsHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     GetSubmissionsUsecase
}

func NewGetSubmissionsHandler(usecase GetSubmissionsUsecase) *getSubmissionsHandler {
	return &getSubmissionsHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *getSubmissionsHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Get(getSubmissionsURL, handler.ServeHTTP)
}

func (h *getSubmissionsHandler) Middlewares(md ...func(http.Handler) http.Handler) *getSubmissionsHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *getSubmissionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dto := entity.GetSubmissionsDTO{
		OrganizationID: chi.URLParam(r, "orgID"),
	}

	if strLimit := r.URL.Query().Get("limit"); strLimit != "" {
		limit, err := strconv.Atoi(strLimit)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		dto.Limit = limit
	}

	if err := validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	submissions, err := h.usecase.GetSubmissions(r.Context(), dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submissions)
}
