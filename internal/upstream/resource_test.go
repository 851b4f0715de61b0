package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumed/spectra-console/internal/models"
	"github.com/lumed/spectra-console/internal/tokens"
)

func TestResource_List(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/devices/", r.URL.Path)

		_ = json.NewEncoder(w).Encode([]models.Device{
			{ID: "1", Name: "scanner-a"},
			{ID: "2", Name: "scanner-b"},
		})
	}))
	defer srv.Close()

	tr, err := New(srv.URL, time.Second, tokens.NewMemoryStore())
	require.NoError(t, err)

	res := NewResource[models.Device, models.DeviceDetail](tr, "/api/v1/devices/")

	items, fault, err := res.List(context.Background(), nil)
	require.NoError(t, err)
	require.Nil(t, fault)
	require.Len(t, items, 2)
	require.Equal(t, "scanner-a", items[0].Name)
}

func TestResource_GetReturnsDetail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/devices/7/", r.URL.Path)

		_ = json.NewEncoder(w).Encode(models.DeviceDetail{
			Device:  models.Device{ID: "7", Name: "scanner"},
			Spectra: []models.Spectrum{{ID: "s1", Wavelength: 660}},
		})
	}))
	defer srv.Close()

	tr, err := New(srv.URL, time.Second, tokens.NewMemoryStore())
	require.NoError(t, err)

	res := NewResource[models.Device, models.DeviceDetail](tr, "/api/v1/devices/")

	detail, fault, err := res.Get(context.Background(), "7")
	require.NoError(t, err)
	require.Nil(t, fault)
	require.Equal(t, "7", detail.ID)
	require.Len(t, detail.Spectra, 1)
}

func TestResource_Delete(t *testing.T) {
	t.Parallel()

	t.Run("204_means_deleted", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			require.Equal(t, "/api/v1/devices/42/", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		tr, err := New(srv.URL, time.Second, tokens.NewMemoryStore())
		require.NoError(t, err)

		res := NewResource[models.Device, models.DeviceDetail](tr, "/api/v1/devices/")

		ok, fault, err := res.Delete(context.Background(), "42")
		require.NoError(t, err)
		require.Nil(t, fault)
		require.True(t, ok)
	})

	t.Run("404_is_fault_not_error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "device not found"})
		}))
		defer srv.Close()

		tr, err := New(srv.URL, time.Second, tokens.NewMemoryStore())
		require.NoError(t, err)

		res := NewResource[models.Device, models.DeviceDetail](tr, "/api/v1/devices/")

		ok, fault, err := res.Delete(context.Background(), "42")
		require.NoError(t, err)
		require.False(t, ok)
		require.NotNil(t, fault)
		require.Equal(t, http.StatusNotFound, fault.Status)
		require.Equal(t, "not_found", fault.Code)
		require.Equal(t, "device not found", fault.Message)
	})
}

func TestResource_CreateAndUpdate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/chromophores/":
			var in models.ChromophoreCreate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(models.Chromophore{ID: "c1", Name: in.Name, Symbol: in.Symbol})
		case r.Method == http.MethodPatch && r.URL.Path == "/api/v1/chromophores/c1/":
			_ = json.NewEncoder(w).Encode(models.Chromophore{ID: "c1", Name: "renamed", Symbol: "HbO2"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	tr, err := New(srv.URL, time.Second, tokens.NewMemoryStore())
	require.NoError(t, err)

	res := NewResource[models.Chromophore, models.Chromophore](tr, "/api/v1/chromophores/")

	created, fault, err := res.Create(context.Background(), models.ChromophoreCreate{Name: "oxyhemoglobin", Symbol: "HbO2"})
	require.NoError(t, err)
	require.Nil(t, fault)
	require.Equal(t, "c1", created.ID)
	require.Equal(t, "oxyhemoglobin", created.Name)

	name := "renamed"
	updated, fault, err := res.Update(context.Background(), "c1", models.ChromophoreUpdate{Name: &name})
	require.NoError(t, err)
	require.Nil(t, fault)
	require.Equal(t, "renamed", updated.Name)
}

func TestResource_ListQueryForwarded(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "smith", r.URL.Query().Get("search"))
		_ = json.NewEncoder(w).Encode([]models.Patient{})
	}))
	defer srv.Close()

	tr, err := New(srv.URL, time.Second, tokens.NewMemoryStore())
	require.NoError(t, err)

	res := NewResource[models.Patient, models.PatientDetail](tr, "/api/v1/patients/")

	_, fault, err := res.List(context.Background(), url.Values{"search": {"smith"}})
	require.NoError(t, err)
	require.Nil(t, fault)
}
