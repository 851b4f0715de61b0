package models

// Session — сеанс измерения у пациента.
type Session struct {
	ID         string `json:"id"`
	PatientID  string `json:"patient_id,omitempty"`
	DeviceID   string `json:"device_id"`
	Date       string `json:"date"` // RFC 3339, формат владеет upstream
	OperatorID string `json:"operator_id,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// SessionCreate — создание сеанса; дата по умолчанию проставляется upstream.
type SessionCreate struct {
	DeviceID string `json:"device_id"`
	Date     string `json:"date,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// SessionUpdate — частичное обновление сеанса.
type SessionUpdate struct {
	PatientID  *string `json:"patient_id,omitempty"`
	DeviceID   *string `json:"device_id,omitempty"`
	Date       *string `json:"date,omitempty"`
	OperatorID *string `json:"operator_id,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// ProcessStatus — статус фоновой обработки сеанса на стороне платформы.
type ProcessStatus struct {
	Status   string  `json:"status"`
	Progress float64 `json:"progress,omitempty"`
	Detail   string  `json:"detail,omitempty"`
}
