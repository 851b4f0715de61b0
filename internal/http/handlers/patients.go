package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumed/spectra-console/internal/models"
)

// Пациенты — обычная коллекция.

func (h *Handlers) ListPatients(w http.ResponseWriter, r *http.Request) {
	listResource(h.Clients.Patients)(w, r)
}

func (h *Handlers) GetPatient(w http.ResponseWriter, r *http.Request) {
	getResource(h.Clients.Patients)(w, r)
}

func (h *Handlers) CreatePatient(w http.ResponseWriter, r *http.Request) {
	createResource[models.Patient, models.PatientDetail, models.PatientCreate](h.Clients.Patients)(w, r)
}

func (h *Handlers) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	updateResource[models.Patient, models.PatientDetail, models.PatientUpdate](h.Clients.Patients)(w, r)
}

func (h *Handlers) DeletePatient(w http.ResponseWriter, r *http.Request) {
	deleteResource(h.Clients.Patients)(w, r)
}

// Сеансы живут внутри пациента, клиент создаётся на каждый запрос
// от patientID из пути.

func (h *Handlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	sc := h.Clients.Sessions(chi.URLParam(r, "patientID"))
	listResource(sc.Resource)(w, r)
}

func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	sc := h.Clients.Sessions(chi.URLParam(r, "patientID"))
	getResource(sc.Resource)(w, r)
}

func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	sc := h.Clients.Sessions(chi.URLParam(r, "patientID"))
	createResource[models.Session, models.Session, models.SessionCreate](sc.Resource)(w, r)
}

func (h *Handlers) UpdateSession(w http.ResponseWriter, r *http.Request) {
	sc := h.Clients.Sessions(chi.URLParam(r, "patientID"))
	updateResource[models.Session, models.Session, models.SessionUpdate](sc.Resource)(w, r)
}

func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sc := h.Clients.Sessions(chi.URLParam(r, "patientID"))
	deleteResource(sc.Resource)(w, r)
}

// ProcessSession запускает обработку сеанса; ответ — подтверждение без тела.
func (h *Handlers) ProcessSession(w http.ResponseWriter, r *http.Request) {
	sc := h.Clients.Sessions(chi.URLParam(r, "patientID"))

	fault, err := sc.Process(r.Context(), chi.URLParam(r, "id"))
	if err != nil || fault != nil {
		writeResult(w, r, http.StatusOK, struct{}{}, fault, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]bool{"ok": true})
}

// SessionProcessStatus — опрос статуса фоновой обработки.
func (h *Handlers) SessionProcessStatus(w http.ResponseWriter, r *http.Request) {
	sc := h.Clients.Sessions(chi.URLParam(r, "patientID"))

	st, fault, err := sc.ProcessStatus(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, r, http.StatusOK, st, fault, err)
}
