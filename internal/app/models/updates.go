package models

import "time"

// NextUpdateTime keeps updatedAt strictly increasing even when the clock
// has not advanced past the previous stamp.
func NextUpdateTime(prev time.Time) time.Time {
	now := time.Now().UTC()
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}

// Partial updates are typed merges: fields left nil are preserved on the
// stored document, non-nil fields replace it wholesale. Clearing a field
// (curatedOrder) is an explicit operation, not an omission, so the merged
// document actually drops it.

type RouteUpdate struct {
	Region      *string            `json:"region,omitempty"`
	Stops       *[]RouteStop       `json:"stops,omitempty"`
	Preferences *map[string]string `json:"preferences,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
	Email       *string            `json:"email,omitempty"`
	Status      *string            `json:"status,omitempty"`
}

func (u RouteUpdate) Apply(r *Route) {
	if u.Region != nil {
		r.Region = *u.Region
	}
	if u.Stops != nil {
		r.Stops = *u.Stops
	}
	if u.Preferences != nil {
		r.Preferences = *u.Preferences
	}
	if u.Notes != nil {
		r.Notes = *u.Notes
	}
	if u.Email != nil {
		r.Email = *u.Email
	}
	if u.Status != nil {
		r.Status = *u.Status
	}
}

// IsEmpty reports whether the partial carries no changes.
func (u RouteUpdate) IsEmpty() bool {
	return u.Region == nil && u.Stops == nil && u.Preferences == nil &&
		u.Notes == nil && u.Email == nil && u.Status == nil
}

type LeadUpdate struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Destination *string `json:"destination,omitempty"`
	Stage       *string `json:"stage,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

func (u LeadUpdate) Apply(l *Lead) {
	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.Email != nil {
		l.Email = *u.Email
	}
	if u.Destination != nil {
		l.Destination = *u.Destination
	}
	if u.Stage != nil {
		l.Stage = *u.Stage
	}
	if u.Notes != nil {
		l.Notes = *u.Notes
	}
}

type DefaultTripUpdate struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Stops       *[]RouteStop `json:"stops,omitempty"`
	Order       *int         `json:"order,omitempty"`
	Enabled     *bool        `json:"enabled,omitempty"`
}

func (u DefaultTripUpdate) Apply(t *DefaultTrip) {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Stops != nil {
		t.Stops = *u.Stops
	}
	if u.Order != nil {
		t.Order = *u.Order
	}
	if u.Enabled != nil {
		t.Enabled = *u.Enabled
	}
}

type TripTemplateUpdate struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Stops       *[]RouteStop `json:"stops,omitempty"`
	Order       *int         `json:"order,omitempty"`
	Enabled     *bool        `json:"enabled,omitempty"`
	IsCurated   *bool        `json:"isCurated,omitempty"`
	// CuratedOrder is honoured only when IsCurated stays or becomes true;
	// un-curating always clears it.
	CuratedOrder *int `json:"curatedOrder,omitempty"`
}

// Apply merges everything except the curation pair, which the repository
// resolves against the rest of the collection (next-order assignment).
func (u TripTemplateUpdate) Apply(t *TripTemplate) {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Stops != nil {
		t.Stops = *u.Stops
	}
	if u.Order != nil {
		t.Order = *u.Order
	}
	if u.Enabled != nil {
		t.Enabled = *u.Enabled
	}
}

type RouteCardUpdate struct {
	Region         *string   `json:"region,omitempty"`
	Name           *string   `json:"name,omitempty"`
	Tagline        *string   `json:"tagline,omitempty"`
	Image          *string   `json:"image,omitempty"`
	BudgetTier     *string   `json:"budgetTier,omitempty"`
	Vibe           *string   `json:"vibe,omitempty"`
	FeaturedCities *[]string `json:"featuredCities,omitempty"`
	Enabled        *bool     `json:"enabled,omitempty"`
	Order          *int      `json:"order,omitempty"`
}

func (u RouteCardUpdate) Apply(rc *RouteCard) {
	if u.Region != nil {
		rc.Region = *u.Region
	}
	if u.Name != nil {
		rc.Name = *u.Name
	}
	if u.Tagline != nil {
		rc.Tagline = *u.Tagline
	}
	if u.Image != nil {
		rc.Image = *u.Image
	}
	if u.BudgetTier != nil {
		rc.BudgetTier = *u.BudgetTier
	}
	if u.Vibe != nil {
		rc.Vibe = *u.Vibe
	}
	if u.FeaturedCities != nil {
		rc.FeaturedCities = *u.FeaturedCities
	}
	if u.Enabled != nil {
		rc.Enabled = *u.Enabled
	}
	if u.Order != nil {
		rc.Order = *u.Order
	}
}
