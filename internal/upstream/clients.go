package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lumed/spectra-console/internal/models"
)

// Clients агрегирует всех клиентов upstream-коллекций.
// Вложенные коллекции (сеансы пациента, спектры прибора) создаются
// по требованию методами-фабриками.
type Clients struct {
	Auth          *AuthClient
	Patients      *Resource[models.Patient, models.PatientDetail]
	Devices       *DevicesClient
	Chromophores  *Resource[models.Chromophore, models.Chromophore]
	Organizations *Resource[models.Organization, models.Organization]
	Roles         *Resource[models.Role, models.Role]
	Users         *UsersClient
	Overlaps      *Resource[models.Overlap, models.Overlap]
	RawImages     *RawImagesClient

	tr *Transport
}

// NewClients собирает клиентов поверх одного транспорта.
func NewClients(tr *Transport) *Clients {
	return &Clients{
		Auth:          NewAuthClient(tr),
		Patients:      NewResource[models.Patient, models.PatientDetail](tr, "/api/v1/patients/"),
		Devices:       &DevicesClient{Resource: NewResource[models.Device, models.DeviceDetail](tr, "/api/v1/devices/"), tr: tr},
		Chromophores:  NewResource[models.Chromophore, models.Chromophore](tr, "/api/v1/chromophores/"),
		Organizations: NewResource[models.Organization, models.Organization](tr, "/api/v1/organizations/"),
		Roles:         NewResource[models.Role, models.Role](tr, "/api/v1/roles/"),
		Users:         &UsersClient{Resource: NewResource[models.User, models.User](tr, "/api/v1/users/"), tr: tr},
		Overlaps:      NewResource[models.Overlap, models.Overlap](tr, "/api/v1/overlaps/"),
		RawImages:     &RawImagesClient{tr: tr},
		tr:            tr,
	}
}

// Sessions — сеансы конкретного пациента (вложенная коллекция).
func (c *Clients) Sessions(patientID string) *SessionsClient {
	base := fmt.Sprintf("/api/v1/patients/%s/sessions/", patientID)
	return &SessionsClient{
		Resource: NewResource[models.Session, models.Session](c.tr, base),
		tr:       c.tr,
		base:     base,
	}
}

// Spectra — спектры конкретного прибора (вложенная коллекция).
func (c *Clients) Spectra(deviceID string) *Resource[models.Spectrum, models.Spectrum] {
	return NewResource[models.Spectrum, models.Spectrum](c.tr, fmt.Sprintf("/api/v1/devices/%s/spectra/", deviceID))
}

// DevicesClient — CRUD приборов плюс заполнение матрицы перекрытий.
type DevicesClient struct {
	*Resource[models.Device, models.DeviceDetail]
	tr *Transport
}

// RandomFillOverlaps запускает на upstream случайное заполнение
// коэффициентов перекрытия для всех спектров прибора.
func (d *DevicesClient) RandomFillOverlaps(ctx context.Context, id string) (*Fault, error) {
	const op = "upstream.DevicesClient.RandomFillOverlaps"

	path := fmt.Sprintf("/api/v1/devices/%s/overlaps/random-fill/", id)

	res, err := d.tr.DoAuthed(ctx, http.MethodPost, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return res.Fault, nil
}

// SessionsClient — CRUD сеансов плюс запуск и опрос фоновой обработки.
type SessionsClient struct {
	*Resource[models.Session, models.Session]
	tr   *Transport
	base string
}

// Process запускает обработку сеанса на стороне платформы.
func (s *SessionsClient) Process(ctx context.Context, id string) (*Fault, error) {
	const op = "upstream.SessionsClient.Process"

	res, err := s.tr.DoAuthed(ctx, http.MethodPost, s.base+id+"/process/", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return res.Fault, nil
}

// ProcessStatus возвращает статус фоновой обработки сеанса.
func (s *SessionsClient) ProcessStatus(ctx context.Context, id string) (models.ProcessStatus, *Fault, error) {
	const op = "upstream.SessionsClient.ProcessStatus"

	res, err := s.tr.DoAuthed(ctx, http.MethodGet, s.base+id+"/process/status/", nil)
	if err != nil {
		return models.ProcessStatus{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	if res.Fault != nil {
		return models.ProcessStatus{}, res.Fault, nil
	}

	var st models.ProcessStatus
	if err := json.Unmarshal(res.Body, &st); err != nil {
		return models.ProcessStatus{}, nil, fmt.Errorf("%s: malformed response: %w", op, err)
	}

	return st, nil, nil
}

// UsersClient — CRUD пользователей плюс назначение роли.
type UsersClient struct {
	*Resource[models.User, models.User]
	tr *Transport
}

// AddRole назначает пользователю роль.
func (u *UsersClient) AddRole(ctx context.Context, id string, body models.RoleAssignment) (*Fault, error) {
	const op = "upstream.UsersClient.AddRole"

	path := fmt.Sprintf("/api/v1/users/%s/role/add", id)

	res, err := u.tr.DoAuthed(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return res.Fault, nil
}

// RawImagesClient — операции над сырыми снимками. Снимки не образуют
// обычную коллекцию: загрузка идёт multipart-телом, удаление бывает массовым.
type RawImagesClient struct {
	tr *Transport
}

// Upload пробрасывает multipart-тело загрузки как есть.
func (r *RawImagesClient) Upload(ctx context.Context, contentType string, payload []byte) ([]models.RawImage, *Fault, error) {
	const op = "upstream.RawImagesClient.Upload"

	res, err := r.tr.DoAuthed(ctx, http.MethodPost, "/api/v1/raw_images/upload/", payload, WithContentType(contentType))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if res.Fault != nil {
		return nil, res.Fault, nil
	}

	var imgs []models.RawImage
	if len(res.Body) > 0 {
		if err := json.Unmarshal(res.Body, &imgs); err != nil {
			return nil, nil, fmt.Errorf("%s: malformed response: %w", op, err)
		}
	}

	return imgs, nil, nil
}

// Update частично обновляет метаданные снимка.
func (r *RawImagesClient) Update(ctx context.Context, id string, body models.RawImageUpdate) (models.RawImage, *Fault, error) {
	const op = "upstream.RawImagesClient.Update"

	res, err := r.tr.DoAuthed(ctx, http.MethodPatch, "/api/v1/raw_images/"+id+"/", body)
	if err != nil {
		return models.RawImage{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	if res.Fault != nil {
		return models.RawImage{}, res.Fault, nil
	}

	var img models.RawImage
	if len(res.Body) > 0 {
		if err := json.Unmarshal(res.Body, &img); err != nil {
			return models.RawImage{}, nil, fmt.Errorf("%s: malformed response: %w", op, err)
		}
	}

	return img, nil, nil
}

// Delete удаляет один снимок.
func (r *RawImagesClient) Delete(ctx context.Context, id string) (bool, *Fault, error) {
	const op = "upstream.RawImagesClient.Delete"

	res, err := r.tr.DoAuthed(ctx, http.MethodDelete, "/api/v1/raw_images/"+id+"/", nil)
	if err != nil {
		return false, nil, fmt.Errorf("%s: %w", op, err)
	}
	if res.Fault != nil {
		return false, res.Fault, nil
	}

	return true, nil, nil
}

// DeleteMany удаляет несколько снимков одним запросом.
func (r *RawImagesClient) DeleteMany(ctx context.Context, ids []string) (bool, *Fault, error) {
	const op = "upstream.RawImagesClient.DeleteMany"

	res, err := r.tr.DoAuthed(ctx, http.MethodPost, "/api/v1/raw_images/delete/", models.RawImageBulkDelete{IDs: ids})
	if err != nil {
		return false, nil, fmt.Errorf("%s: %w", op, err)
	}
	if res.Fault != nil {
		return false, res.Fault, nil
	}

	return true, nil, nil
}
