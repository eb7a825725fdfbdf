// Package trips holds the curated itinerary collections: default trips
// shown in the trip wizard and admin-authored trip templates. Both are
// partitioned by region, so id-only lookups are cross-partition scans.
package trips

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/common"
	"github.com/wanderbase/wanderbase/internal/app/models"
	"github.com/wanderbase/wanderbase/internal/docstore"
)

var _ DefaultTripRepository = (*DefaultTripRepositoryImpl)(nil)

type DefaultTripRepository interface {
	Create(ctx context.Context, trip models.DefaultTrip) (*models.DefaultTrip, error)
	GetByID(ctx context.Context, id string) (*models.DefaultTrip, error)
	Update(ctx context.Context, id string, update models.DefaultTripUpdate, region string) (*models.DefaultTrip, error)
	List(ctx context.Context, filter models.TripFilter) ([]models.DefaultTrip, error)
	Delete(ctx context.Context, id, region string) error
}

type DefaultTripRepositoryImpl struct {
	logger *zap.Logger
	store  docstore.Provider
}

func NewDefaultTripRepository(store docstore.Provider, logger *zap.Logger) *DefaultTripRepositoryImpl {
	return &DefaultTripRepositoryImpl{
		logger: logger,
		store:  store,
	}
}

func (r *DefaultTripRepositoryImpl) container(ctx context.Context) (docstore.Container, error) {
	return r.store.Container(ctx, docstore.CollectionDefaultTrips)
}

func (r *DefaultTripRepositoryImpl) Create(ctx context.Context, trip models.DefaultTrip) (*models.DefaultTrip, error) {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "CreateDefaultTrip")
	defer span.End()

	if trip.Region == "" {
		return nil, fmt.Errorf("default trip region is required")
	}

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trip.ID = uuid.NewString()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	body, err := json.Marshal(trip)
	if err != nil {
		return nil, fmt.Errorf("failed to encode default trip: %w", err)
	}

	if err := container.CreateItem(ctx, trip.ID, trip.Region, body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create default trip")
		return nil, err
	}

	r.logger.Info("Default trip saved", zap.String("id", trip.ID), zap.String("region", trip.Region))
	span.SetAttributes(attribute.String("trip.id", trip.ID))
	return &trip, nil
}

// GetByID scans across partitions since the id alone does not determine
// the region. Returns nil when nothing matches.
func (r *DefaultTripRepositoryImpl) GetByID(ctx context.Context, id string) (*models.DefaultTrip, error) {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "GetDefaultTripByID")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	bodies, err := container.QueryItems(ctx, docstore.Query{ID: id, Limit: 1})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if len(bodies) == 0 {
		return nil, nil
	}

	var trip models.DefaultTrip
	if err := json.Unmarshal(bodies[0], &trip); err != nil {
		return nil, fmt.Errorf("failed to decode default trip %s: %w", id, err)
	}
	return &trip, nil
}

func (r *DefaultTripRepositoryImpl) Update(ctx context.Context, id string, update models.DefaultTripUpdate, region string) (*models.DefaultTrip, error) {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "UpdateDefaultTrip")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	trip, err := r.resolve(ctx, container, id, region)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, &common.NotFoundError{Collection: docstore.CollectionDefaultTrips, ID: id}
	}

	update.Apply(trip)
	trip.UpdatedAt = models.NextUpdateTime(trip.UpdatedAt)

	merged, err := json.Marshal(trip)
	if err != nil {
		return nil, fmt.Errorf("failed to encode default trip %s: %w", id, err)
	}

	if err := container.ReplaceItem(ctx, id, trip.Region, merged); err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return nil, &common.NotFoundError{Collection: docstore.CollectionDefaultTrips, ID: id}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update default trip")
		return nil, err
	}

	r.logger.Info("Default trip updated", zap.String("id", id), zap.String("region", trip.Region))
	return trip, nil
}

func (r *DefaultTripRepositoryImpl) List(ctx context.Context, filter models.TripFilter) ([]models.DefaultTrip, error) {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "ListDefaultTrips")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	query := docstore.Query{Filters: map[string]any{}}
	if filter.Region != "" {
		query.Partition = filter.Region
	}
	if filter.Enabled != nil {
		query.Filters["enabled"] = *filter.Enabled
	}

	bodies, err := container.QueryItems(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	trips := make([]models.DefaultTrip, 0, len(bodies))
	for _, body := range bodies {
		var trip models.DefaultTrip
		if err := json.Unmarshal(body, &trip); err != nil {
			return nil, fmt.Errorf("failed to decode default trip: %w", err)
		}
		trips = append(trips, trip)
	}

	// Display order is an application concern: order asc, creation time
	// breaking ties.
	sort.SliceStable(trips, func(i, j int) bool {
		if trips[i].Order != trips[j].Order {
			return trips[i].Order < trips[j].Order
		}
		return trips[i].CreatedAt.Before(trips[j].CreatedAt)
	})

	span.SetAttributes(attribute.Int("trips.count", len(trips)))
	return trips, nil
}

// Delete resolves the region first when the caller does not know it, and
// is a silent no-op when the trip does not exist.
func (r *DefaultTripRepositoryImpl) Delete(ctx context.Context, id, region string) error {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "DeleteDefaultTrip")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return err
	}

	if region == "" {
		trip, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if trip == nil {
			return nil
		}
		region = trip.Region
	}

	if err := container.DeleteItem(ctx, id, region); err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return nil
		}
		span.RecordError(err)
		return err
	}

	r.logger.Info("Default trip deleted", zap.String("id", id), zap.String("region", region))
	return nil
}

func (r *DefaultTripRepositoryImpl) resolve(ctx context.Context, container docstore.Container, id, region string) (*models.DefaultTrip, error) {
	if region == "" {
		return r.GetByID(ctx, id)
	}

	body, err := container.ReadItem(ctx, id, region)
	if err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var trip models.DefaultTrip
	if err := json.Unmarshal(body, &trip); err != nil {
		return nil, fmt.Errorf("failed to decode default trip %s: %w", id, err)
	}
	return &trip, nil
}
