package types

// LocationInfo contains human-readable location metadata
type LocationInfo struct {
	Name        string `json:"name,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
}
