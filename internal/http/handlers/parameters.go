package handlers

import (
	"net/http"

	"github.com/lumed/spectra-console/internal/models"
)

// Хромофоры и перекрытия — справочники вкладки конфигурации.

func (h *Handlers) ListChromophores(w http.ResponseWriter, r *http.Request) {
	listResource(h.Clients.Chromophores)(w, r)
}

func (h *Handlers) CreateChromophore(w http.ResponseWriter, r *http.Request) {
	createResource[models.Chromophore, models.Chromophore, models.ChromophoreCreate](h.Clients.Chromophores)(w, r)
}

func (h *Handlers) UpdateChromophore(w http.ResponseWriter, r *http.Request) {
	updateResource[models.Chromophore, models.Chromophore, models.ChromophoreUpdate](h.Clients.Chromophores)(w, r)
}

func (h *Handlers) DeleteChromophore(w http.ResponseWriter, r *http.Request) {
	deleteResource(h.Clients.Chromophores)(w, r)
}

func (h *Handlers) ListOverlaps(w http.ResponseWriter, r *http.Request) {
	listResource(h.Clients.Overlaps)(w, r)
}

func (h *Handlers) CreateOverlap(w http.ResponseWriter, r *http.Request) {
	createResource[models.Overlap, models.Overlap, models.OverlapCreate](h.Clients.Overlaps)(w, r)
}

func (h *Handlers) UpdateOverlap(w http.ResponseWriter, r *http.Request) {
	updateResource[models.Overlap, models.Overlap, models.OverlapUpdate](h.Clients.Overlaps)(w, r)
}

func (h *Handlers) DeleteOverlap(w http.ResponseWriter, r *http.Request) {
	deleteResource(h.Clients.Overlaps)(w, r)
}
