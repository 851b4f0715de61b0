package models

// Device — модель прибора.
type Device struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DeviceDetail — прибор со списком спектров.
type DeviceDetail struct {
	Device
	Spectra []Spectrum `json:"spectra,omitempty"`
}

type DeviceCreate struct {
	Name string `json:"name"`
}

type DeviceUpdate struct {
	Name *string `json:"name,omitempty"`
}

// Spectrum — спектр прибора (длина волны в нанометрах).
type Spectrum struct {
	ID         string    `json:"id"`
	Wavelength int       `json:"wavelength"`
	Name       string    `json:"name,omitempty"`
	DeviceID   string    `json:"device_id,omitempty"`
	Overlaps   []Overlap `json:"overlaps,omitempty"`
}

type SpectrumCreate struct {
	Wavelength int `json:"wavelength"`
}

type SpectrumUpdate struct {
	Wavelength *int `json:"wavelength,omitempty"`
}

// Chromophore — хромофор (название и условное обозначение).
type Chromophore struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description,omitempty"`
}

type ChromophoreCreate struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description,omitempty"`
}

type ChromophoreUpdate struct {
	Name        *string `json:"name,omitempty"`
	Symbol      *string `json:"symbol,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Overlap — коэффициент перекрытия спектра и хромофора.
type Overlap struct {
	ID            string  `json:"id"`
	SpectrumID    string  `json:"spectrum_id"`
	ChromophoreID string  `json:"chromophore_id"`
	Coefficient   float64 `json:"coefficient"`
}

type OverlapCreate struct {
	SpectrumID    string  `json:"spectrum_id"`
	ChromophoreID string  `json:"chromophore_id"`
	Coefficient   float64 `json:"coefficient"`
}

type OverlapUpdate struct {
	SpectrumID    *string  `json:"spectrum_id,omitempty"`
	ChromophoreID *string  `json:"chromophore_id,omitempty"`
	Coefficient   *float64 `json:"coefficient,omitempty"`
}
