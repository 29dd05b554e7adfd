package v1

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/go-chi/chi/v5"
)

const (
	mediaURL = "/advertisement_forms/{formID}/media"

	maxMediaSize = 32 << 20
)

type MediaUsecase interface {
	UploadMedia(ctx context.Context, dto entity.UploadMediaDTO) (entity.FormView, error)
	RemoveMedia(ctx context.Context, formID string) (entity.FormView, error)
}

type mediaHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     MediaUsecase
}

func NewMediaHandler(usecase MediaUsecase) *mediaHandler {
	return &mediaHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *mediaHandler) AddToRouter(r *chi.Mux) {
	var upload, remove http.Handler
	upload = http.HandlerFunc(h.upload)
	remove = http.HandlerFunc(h.remove)
	for _, md := range h.middlewares {
		upload = md(upload)
		remove = md(remove)
	}

	r.Put(mediaURL, upload.ServeHTTP)
	r.Delete(mediaURL, remove.ServeHTTP)
}

func (h *mediaHandler) Middlewares(md ...func(http.Handler) http.Handler) *mediaHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

// upload takes the first "file" part of a multipart body.
func (h *mediaHandler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMediaSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "expected a multipart file in the \"file\" field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("error reading uploaded file", "error", err)
		http.Error(w, "error reading uploaded file", http.StatusBadRequest)
		return
	}

	view, err := h.usecase.UploadMedia(r.Context(), entity.UploadMediaDTO{
		FormID:   chi.URLParam(r, "formID"),
		FileName: header.Filename,
		Data:     data,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *mediaHandler) remove(w http.ResponseWriter, r *http.Request) {
	view, err := h.usecase.RemoveMedia(r.Context(), chi.URLParam(r, "formID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
