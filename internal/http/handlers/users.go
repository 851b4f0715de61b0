package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/lumed/spectra-console/internal/errors"
	"github.com/lumed/spectra-console/internal/models"
)

// Организации, роли, пользователи.

func (h *Handlers) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	listResource(h.Clients.Organizations)(w, r)
}

func (h *Handlers) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	createResource[models.Organization, models.Organization, models.OrganizationCreate](h.Clients.Organizations)(w, r)
}

func (h *Handlers) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	updateResource[models.Organization, models.Organization, models.OrganizationUpdate](h.Clients.Organizations)(w, r)
}

func (h *Handlers) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	deleteResource(h.Clients.Organizations)(w, r)
}

func (h *Handlers) ListRoles(w http.ResponseWriter, r *http.Request) {
	listResource(h.Clients.Roles)(w, r)
}

func (h *Handlers) CreateRole(w http.ResponseWriter, r *http.Request) {
	createResource[models.Role, models.Role, models.RoleCreate](h.Clients.Roles)(w, r)
}

func (h *Handlers) DeleteRole(w http.ResponseWriter, r *http.Request) {
	deleteResource(h.Clients.Roles)(w, r)
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	listResource(h.Clients.Users.Resource)(w, r)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	getResource(h.Clients.Users.Resource)(w, r)
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	createResource[models.User, models.User, models.UserCreate](h.Clients.Users.Resource)(w, r)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	updateResource[models.User, models.User, models.UserUpdate](h.Clients.Users.Resource)(w, r)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	deleteResource(h.Clients.Users.Resource)(w, r)
}

// AddUserRole назначает пользователю роль.
func (h *Handlers) AddUserRole(w http.ResponseWriter, r *http.Request) {
	var in models.RoleAssignment
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteInvalidArgument(w, r)
		return
	}

	fault, err := h.Clients.Users.AddRole(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil || fault != nil {
		writeResult(w, r, http.StatusOK, struct{}{}, fault, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
