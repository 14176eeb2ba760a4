package models

import "time"

// DiscoveryLocation is one entry of a hit's location hierarchy; higher
// levels are more specific.
type DiscoveryLocation struct {
	ID         int    `json:"id"`
	Level      int    `json:"level"`
	ExternalID string `json:"externalID"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
}

// DiscoveryPhoto is a photo attached to a discovery hit.
type DiscoveryPhoto struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// DiscoveryHit is a listing as returned by the secondary discovery
// provider. The field set follows the provider's wire format, not the
// internal Property shape.
type DiscoveryHit struct {
	ID            int                 `json:"id"`
	ExternalID    string              `json:"externalID"`
	Title         string              `json:"title"`
	Description   string              `json:"description,omitempty"`
	Price         float64             `json:"price"`
	RentFrequency string              `json:"rentFrequency,omitempty"`
	Rooms         int                 `json:"rooms"`
	Baths         int                 `json:"baths"`
	Area          float64             `json:"area"`
	AreaUnit      string              `json:"areaUnit,omitempty"`
	Purpose       string              `json:"purpose"`
	PropertyType  string              `json:"propertyType"`
	Location      []DiscoveryLocation `json:"location"`
	Photos        []DiscoveryPhoto    `json:"photos,omitempty"`
	CoverPhoto    *DiscoveryPhoto     `json:"coverPhoto,omitempty"`
	IsVerified    bool                `json:"isVerified"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// DiscoveryPage is the provider's paged search envelope.
type DiscoveryPage struct {
	Hits    []DiscoveryHit `json:"hits"`
	NbHits  int            `json:"nbHits"`
	Page    int            `json:"page"`
	NbPages int            `json:"nbPages"`
}
