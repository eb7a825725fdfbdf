package models

import (
	"time"
)

// RouteStatus values accepted on saved routes. The store does not enforce
// them; admin tooling treats anything else as "new".
const (
	RouteStatusNew       = "new"
	RouteStatusContacted = "contacted"
	RouteStatusConfirmed = "confirmed"
	RouteStatusArchived  = "archived"
)

// RouteStop is one leg of a user-submitted trip configuration.
type RouteStop struct {
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
	Nights  int    `json:"nights,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Route is a saved trip configuration submitted through the marketing
// site's trip wizard. Partitioned by its own id.
type Route struct {
	ID          string            `json:"id"`
	Region      string            `json:"region,omitempty"`
	Stops       []RouteStop       `json:"stops,omitempty"`
	Preferences map[string]string `json:"preferences,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Email       string            `json:"email,omitempty"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Lead is a sales-pipeline record managed from the admin hub.
type Lead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Destination string    `json:"destination,omitempty"`
	Stage       string    `json:"stage"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DefaultTrip is a curated itinerary definition shown in the trip wizard,
// grouped (and partitioned) by geographic region.
type DefaultTrip struct {
	ID          string      `json:"id"`
	Region      string      `json:"region"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Stops       []RouteStop `json:"stops,omitempty"`
	Order       int         `json:"order"`
	Enabled     bool        `json:"enabled"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TripTemplate is an admin-authored itinerary template, partitioned by
// region. Curated templates surface on the homepage in curatedOrder.
type TripTemplate struct {
	ID           string      `json:"id"`
	Region       string      `json:"region"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	Stops        []RouteStop `json:"stops,omitempty"`
	Order        int         `json:"order"`
	Enabled      bool        `json:"enabled"`
	IsCurated    bool        `json:"isCurated"`
	CuratedOrder *int        `json:"curatedOrder,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// RouteCard is a region-level marketing card on the landing page.
// Partitioned by its own id.
type RouteCard struct {
	ID             string    `json:"id"`
	Region         string    `json:"region"`
	Name           string    `json:"name"`
	Tagline        string    `json:"tagline,omitempty"`
	Image          string    `json:"image,omitempty"`
	BudgetTier     string    `json:"budgetTier,omitempty"`
	Vibe           string    `json:"vibe,omitempty"`
	FeaturedCities []string  `json:"featuredCities,omitempty"`
	Enabled        bool      `json:"enabled"`
	Order          int       `json:"order"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ActivityAddress is the postal shape returned by the places API.
type ActivityAddress struct {
	Street    string `json:"street,omitempty"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
	Postcode  string `json:"postcode,omitempty"`
	Formatted string `json:"formatted,omitempty"`
}

// ActivityCoordinates is a plain lat/lon pair.
type ActivityCoordinates struct {
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Activity is one "thing to do" attached to a city, sourced from the
// places API and enriched before persisting.
type Activity struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Category     string               `json:"category,omitempty"`
	Description  string               `json:"description,omitempty"`
	Highlights   []string             `json:"highlights,omitempty"`
	Rating       float64              `json:"rating,omitempty"`
	ReviewCount  int                  `json:"reviewCount,omitempty"`
	PriceLevel   string               `json:"priceLevel,omitempty"`
	Photos       []string             `json:"photos,omitempty"`
	Address      *ActivityAddress     `json:"address,omitempty"`
	Coordinates  *ActivityCoordinates `json:"coordinates,omitempty"`
	Hours        []string             `json:"hours,omitempty"`
	Amenities    []string             `json:"amenities,omitempty"`
	IsDefault    bool                 `json:"isDefault"`
	IsCurated    bool                 `json:"isCurated"`
}

// City holds the activity list maintained by the enrichment job.
type City struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Country    string     `json:"country,omitempty"`
	Region     string     `json:"region,omitempty"`
	Activities []Activity `json:"activities,omitempty"`
	LastSynced *time.Time `json:"lastSynced,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Filters passed from query strings into List queries. Empty fields mean
// "no constraint".

type RouteFilter struct {
	Status string
	Email  string
	Region string
}

type LeadFilter struct {
	Stage       string
	Destination string
}

type TripFilter struct {
	Region  string
	Enabled *bool
	Curated *bool
}

type RouteCardFilter struct {
	Enabled *bool
}

type CityFilter struct {
	Country string
	Limit   int
}
