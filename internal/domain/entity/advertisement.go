package entity

import "time"

type AdvertisementType string

const (
	TypeBanner AdvertisementType = "BANNER"
	TypePopup  AdvertisementType = "POPUP"
)

func (t AdvertisementType) Valid() bool {
	return t == TypeBanner || t == TypePopup
}

type MediaKind string

const (
	MediaNone  MediaKind = ""
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Media is an uploaded file in its textual (data URL) form.
// Kind is decided when the media is encoded and never re-derived from Encoded.
type Media struct {
	Kind        MediaKind `json:"kind"`
	ContentType string    `json:"content_type,omitempty"`
	Encoded     string    `json:"encoded,omitempty"`
}

func (m Media) IsNone() bool {
	return m.Kind == MediaNone
}

// Advertisement is a listing item as returned by the remote API.
type Advertisement struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	MediaURL  string            `json:"media_url"`
	Type      AdvertisementType `json:"type"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
}

type PageInfo struct {
	StartCursor     string `json:"start_cursor"`
	EndCursor       string `json:"end_cursor"`
	HasNextPage     bool   `json:"has_next_page"`
	HasPreviousPage bool   `json:"has_previous_page"`
}

type AdvertisementPage struct {
	Advertisements []Advertisement `json:"advertisements"`
	PageInfo       PageInfo        `json:"page_info"`
	TotalCount     int             `json:"total_count"`
}

// Submission is one successful mutation recorded in the ledger.
type Submission struct {
	FormID          string    `json:"form_id"`
	Sequence        int64     `json:"sequence"`
	OrganizationID  string    `json:"organization_id"`
	Mode            Mode      `json:"mode"`
	AdvertisementID string    `json:"advertisement_id"`
	Fields          []string  `json:"fields"`
	CreatedAt       time.Time `json:"created_at"`
}
