package models

// Patient — карточка пациента в списке.
type Patient struct {
	ID           string        `json:"id"`
	FullName     string        `json:"full_name"`
	BirthDate    string        `json:"birth_date"` // YYYY-MM-DD, формат владеет upstream
	Notes        string        `json:"notes,omitempty"`
	Organization *Organization `json:"organization,omitempty"`
}

// PatientDetail — пациент с историей сеансов.
type PatientDetail struct {
	Patient
	Sessions []Session `json:"sessions,omitempty"`
}

// PatientCreate — создание пациента.
type PatientCreate struct {
	FullName       string `json:"full_name"`
	BirthDate      string `json:"birth_date"`
	Notes          string `json:"notes,omitempty"`
	OrganizationID string `json:"organization_id"`
}

// PatientUpdate — частичное обновление; nil-поля не отправляются.
type PatientUpdate struct {
	FullName       *string `json:"full_name,omitempty"`
	BirthDate      *string `json:"birth_date,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	OrganizationID *string `json:"organization_id,omitempty"`
}
