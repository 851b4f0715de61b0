package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumed/spectra-console/internal/models"
)

// Приборы и их спектры.

func (h *Handlers) ListDevices(w http.ResponseWriter, r *http.Request) {
	listResource(h.Clients.Devices.Resource)(w, r)
}

func (h *Handlers) GetDevice(w http.ResponseWriter, r *http.Request) {
	getResource(h.Clients.Devices.Resource)(w, r)
}

func (h *Handlers) CreateDevice(w http.ResponseWriter, r *http.Request) {
	createResource[models.Device, models.DeviceDetail, models.DeviceCreate](h.Clients.Devices.Resource)(w, r)
}

func (h *Handlers) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	updateResource[models.Device, models.DeviceDetail, models.DeviceUpdate](h.Clients.Devices.Resource)(w, r)
}

func (h *Handlers) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	deleteResource(h.Clients.Devices.Resource)(w, r)
}

// RandomFillOverlaps — служебная операция: заполнить матрицу перекрытий
// прибора случайными коэффициентами (используется при стендовой настройке).
func (h *Handlers) RandomFillOverlaps(w http.ResponseWriter, r *http.Request) {
	fault, err := h.Clients.Devices.RandomFillOverlaps(r.Context(), chi.URLParam(r, "id"))
	if err != nil || fault != nil {
		writeResult(w, r, http.StatusOK, struct{}{}, fault, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Спектры — вложенная коллекция прибора.

func (h *Handlers) ListSpectra(w http.ResponseWriter, r *http.Request) {
	listResource(h.Clients.Spectra(chi.URLParam(r, "deviceID")))(w, r)
}

func (h *Handlers) CreateSpectrum(w http.ResponseWriter, r *http.Request) {
	res := h.Clients.Spectra(chi.URLParam(r, "deviceID"))
	createResource[models.Spectrum, models.Spectrum, models.SpectrumCreate](res)(w, r)
}

func (h *Handlers) UpdateSpectrum(w http.ResponseWriter, r *http.Request) {
	res := h.Clients.Spectra(chi.URLParam(r, "deviceID"))
	updateResource[models.Spectrum, models.Spectrum, models.SpectrumUpdate](res)(w, r)
}

func (h *Handlers) DeleteSpectrum(w http.ResponseWriter, r *http.Request) {
	deleteResource(h.Clients.Spectra(chi.URLParam(r, "deviceID")))(w, r)
}
