package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/lumed/spectra-console/internal/errors"
	"github.com/lumed/spectra-console/internal/models"
)

// Сырые снимки: загрузка multipart-телом, правка метаданных,
// одиночное и массовое удаление.

// maxUploadBytes — предел тела загрузки снимков.
const maxUploadBytes = 64 << 20

// UploadRawImages пробрасывает multipart-тело на платформу как есть:
// шлюз не разбирает части, только ограничивает размер.
func (h *Handlers) UploadRawImages(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
	if err != nil || len(payload) > maxUploadBytes {
		apierrors.WriteInvalidArgument(w, r)
		return
	}

	imgs, fault, err := h.Clients.RawImages.Upload(r.Context(), r.Header.Get("Content-Type"), payload)
	writeResult(w, r, http.StatusCreated, imgs, fault, err)
}

func (h *Handlers) UpdateRawImage(w http.ResponseWriter, r *http.Request) {
	var in models.RawImageUpdate
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteInvalidArgument(w, r)
		return
	}

	img, fault, err := h.Clients.RawImages.Update(r.Context(), chi.URLParam(r, "id"), in)
	writeResult(w, r, http.StatusOK, img, fault, err)
}

func (h *Handlers) DeleteRawImage(w http.ResponseWriter, r *http.Request) {
	ok, fault, err := h.Clients.RawImages.Delete(r.Context(), chi.URLParam(r, "id"))
	writeDeleted(w, r, ok, fault, err)
}

// DeleteRawImages — массовое удаление по списку идентификаторов.
func (h *Handlers) DeleteRawImages(w http.ResponseWriter, r *http.Request) {
	var in models.RawImageBulkDelete
	if err := decodeStrict(r, &in); err != nil || len(in.IDs) == 0 {
		apierrors.WriteInvalidArgument(w, r)
		return
	}

	ok, fault, err := h.Clients.RawImages.DeleteMany(r.Context(), in.IDs)
	writeDeleted(w, r, ok, fault, err)
}
