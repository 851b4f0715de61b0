package models

// RawImage — сырой снимок, привязанный к сеансу.
type RawImage struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id,omitempty"`
	FileName  string `json:"file_name,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// RawImageUpdate — частичное обновление метаданных снимка.
type RawImageUpdate struct {
	SessionID *string `json:"session_id,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// RawImageBulkDelete — массовое удаление снимков.
type RawImageBulkDelete struct {
	IDs []string `json:"ids"`
}
