// Package enrichment runs the activity sync job: pull attractions per
// city from the places API, attach usable descriptions, flag defaults
// and persist the result.
package enrichment

import (
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/domain/cities"
	"github.com/wanderbase/wanderbase/internal/app/models"
	"github.com/wanderbase/wanderbase/internal/app/observability/metrics"
	"github.com/wanderbase/wanderbase/internal/pkg/ratelimit"
)

// minUsableDescription is the shortest description worth showing on a
// card; anything shorter goes through the detail / generative fallback.
const minUsableDescription = 100

const defaultActivityCount = 2

// places is the slice of the TripAdvisor client the job needs.
type places interface {
	SearchAttractions(ctx context.Context, city, country string) ([]models.Activity, error)
	LocationDetails(ctx context.Context, locationID string) (*models.Activity, error)
	LocationPhotos(ctx context.Context, locationID string) ([]string, error)
}

type SyncOptions struct {
	// Limit caps how many cities one run will sync; 0 means the
	// configured per-run maximum.
	Limit        int  `json:"limit"`
	SkipExisting bool `json:"skipExisting"`
}

type SyncedCity struct {
	City       string `json:"city"`
	Activities int    `json:"activities"`
	Defaults   int    `json:"defaults"`
}

type SkippedCity struct {
	City   string `json:"city"`
	Reason string `json:"reason"`
}

type ErroredCity struct {
	City  string `json:"city"`
	Error string `json:"error"`
}

// SyncReport lists per-city outcomes in the order cities were visited.
type SyncReport struct {
	Synced       []SyncedCity  `json:"synced"`
	Skipped      []SkippedCity `json:"skipped"`
	Errored      []ErroredCity `json:"errored"`
	SyncedCount  int           `json:"syncedCount"`
	SkippedCount int           `json:"skippedCount"`
	ErroredCount int           `json:"erroredCount"`
	Remaining    int           `json:"remaining"`
}

type Service struct {
	logger    *zap.Logger
	cityRepo  cities.Repository
	places    places
	describer Describer
	limiter   ratelimit.Limiter
	maxPerRun int
}

func NewService(cityRepo cities.Repository, places places, describer Describer, limiter ratelimit.Limiter, maxPerRun int, logger *zap.Logger) *Service {
	return &Service{
		logger:    logger,
		cityRepo:  cityRepo,
		places:    places,
		describer: describer,
		limiter:   limiter,
		maxPerRun: maxPerRun,
	}
}

// SyncCities walks the city list strictly sequentially. A city-level
// failure is recorded and the run continues; a candidate-level failure
// keeps the bare candidate. Only context cancellation aborts the run.
func (s *Service) SyncCities(ctx context.Context, opts SyncOptions) (*SyncReport, error) {
	ctx, span := otel.Tracer("EnrichmentService").Start(ctx, "SyncCities")
	defer span.End()

	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxPerRun
	}

	all, err := s.cityRepo.List(ctx, models.CityFilter{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list cities")
		return nil, err
	}

	report := &SyncReport{
		Synced:  []SyncedCity{},
		Skipped: []SkippedCity{},
		Errored: []ErroredCity{},
	}

	attempted := 0
	for i, city := range all {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if attempted >= limit {
			report.Remaining = len(all) - i
			break
		}

		if opts.SkipExisting && len(city.Activities) > 0 {
			report.Skipped = append(report.Skipped, SkippedCity{City: city.Name, Reason: "Already has activities"})
			continue
		}
		attempted++

		if err := s.syncCity(ctx, city, report); err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			s.logger.Error("City sync failed",
				zap.String("city", city.Name),
				zap.Error(err))
			report.Errored = append(report.Errored, ErroredCity{City: city.Name, Error: err.Error()})
		}
	}

	report.SyncedCount = len(report.Synced)
	report.SkippedCount = len(report.Skipped)
	report.ErroredCount = len(report.Errored)

	s.logger.Info("Enrichment run finished",
		zap.Int("synced", report.SyncedCount),
		zap.Int("skipped", report.SkippedCount),
		zap.Int("errored", report.ErroredCount),
		zap.Int("remaining", report.Remaining))
	span.SetAttributes(
		attribute.Int("sync.synced", report.SyncedCount),
		attribute.Int("sync.skipped", report.SkippedCount),
		attribute.Int("sync.errored", report.ErroredCount))
	span.SetStatus(codes.Ok, "Sync completed")
	return report, nil
}

func (s *Service) syncCity(ctx context.Context, city models.City, report *SyncReport) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	metrics.RecordExternalCall(ctx, "places")
	candidates, err := s.places.SearchAttractions(ctx, city.Name, city.Country)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		report.Skipped = append(report.Skipped, SkippedCity{City: city.Name, Reason: "no activities found"})
		return nil
	}

	for i := range candidates {
		s.enrichCandidate(ctx, &candidates[i], city)
	}

	defaults := selectDefaults(candidates)

	if _, err := s.cityRepo.UpdateActivities(ctx, city.ID, candidates, time.Now().UTC()); err != nil {
		return err
	}

	metrics.RecordCitySynced(ctx)
	report.Synced = append(report.Synced, SyncedCity{
		City:       city.Name,
		Activities: len(candidates),
		Defaults:   defaults,
	})
	return nil
}

// enrichCandidate fills in a missing description, first from the detail
// endpoint, then from the generative fallback. Failures leave the
// candidate as-is; only the city-level steps can fail the city.
func (s *Service) enrichCandidate(ctx context.Context, candidate *models.Activity, city models.City) {
	if len(candidate.Description) >= minUsableDescription {
		return
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return
	}
	metrics.RecordExternalCall(ctx, "places")
	detail, err := s.places.LocationDetails(ctx, candidate.ID)
	if err != nil {
		s.logger.Warn("Detail lookup failed, keeping bare candidate",
			zap.String("city", city.Name),
			zap.String("activity", candidate.Name),
			zap.Error(err))
	} else if detail != nil {
		mergeDetail(candidate, detail)
		if err := s.limiter.Wait(ctx); err != nil {
			return
		}
		metrics.RecordExternalCall(ctx, "places")
		if photos, err := s.places.LocationPhotos(ctx, candidate.ID); err == nil && len(photos) > 0 {
			candidate.Photos = photos
		}
	}

	if len(candidate.Description) >= minUsableDescription || s.describer == nil {
		return
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return
	}
	metrics.RecordExternalCall(ctx, "genai")
	desc, err := s.describer.Describe(ctx, *candidate, city.Name, city.Country)
	if err != nil {
		s.logger.Warn("Generated description failed, keeping bare candidate",
			zap.String("city", city.Name),
			zap.String("activity", candidate.Name),
			zap.Error(err))
		return
	}
	if desc.Long != "" {
		candidate.Description = desc.Long
	} else if desc.Short != "" {
		candidate.Description = desc.Short
	}
	if len(desc.Highlights) > 0 {
		candidate.Highlights = desc.Highlights
	}
}

// mergeDetail copies the richer detail fields onto the search candidate
// without losing anything the search already provided.
func mergeDetail(candidate *models.Activity, detail *models.Activity) {
	if detail.Description != "" {
		candidate.Description = detail.Description
	}
	if detail.Category != "" {
		candidate.Category = detail.Category
	}
	if detail.Rating > 0 {
		candidate.Rating = detail.Rating
	}
	if detail.ReviewCount > 0 {
		candidate.ReviewCount = detail.ReviewCount
	}
	if detail.PriceLevel != "" {
		candidate.PriceLevel = detail.PriceLevel
	}
	if len(detail.Hours) > 0 {
		candidate.Hours = detail.Hours
	}
	if len(detail.Amenities) > 0 {
		candidate.Amenities = detail.Amenities
	}
	if detail.Address != nil {
		candidate.Address = detail.Address
	}
	if detail.Coordinates != nil {
		candidate.Coordinates = detail.Coordinates
	}
}

func activityScore(a models.Activity) float64 {
	return a.Rating*1000 + float64(a.ReviewCount)
}

// selectDefaults marks the top-scored activities as defaults, ties broken
// by original candidate order, and returns how many were marked.
func selectDefaults(activities []models.Activity) int {
	idx := make([]int, len(activities))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return activityScore(activities[idx[a]]) > activityScore(activities[idx[b]])
	})

	marked := 0
	for _, i := range idx {
		if marked == defaultActivityCount {
			break
		}
		activities[i].IsDefault = true
		marked++
	}
	return marked
}
