package calendar

import "time"

// EventMeta данные события, создаваемого во внешнем календаре
type EventMeta struct {
	ProjectID     int64
	ProjectNumber int64
	ClientID      int64
	Title         string
	Address       string
	Start         time.Time
	End           time.Time
}

type availabilityRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type availabilityResponse struct {
	Available *bool `json:"available"`
}

type eventDateTime struct {
	DateTime string `json:"dateTime"`
}

type eventInsertRequest struct {
	Summary     string            `json:"summary"`
	Description string            `json:"description,omitempty"`
	Location    string            `json:"location,omitempty"`
	Start       eventDateTime     `json:"start"`
	End         eventDateTime     `json:"end"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type eventResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
