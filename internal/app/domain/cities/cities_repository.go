// Package cities stores the cities whose activity lists the enrichment
// job keeps fresh.
package cities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	Create(ctx context.Context, city models.City) (*models.City, error)
	GetByID(ctx context.Context, id string) (*models.City, error)
	List(ctx context.Context, filter models.CityFilter) ([]models.City, error)
	UpdateActivities(ctx context.Context, id string, activities []models.Activity, syncedAt time.Time) (*models.City, error)
	Delete(ctx context.Context, id string) error
}

type RepositoryImpl struct {
	logger *zap.Logger
	store  docstore.Provider
}

func NewRepository(store docstore.Provider, logger *zap.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		store:  store,
	}
}

func (r *RepositoryImpl) container(ctx context.Context) (docstore.Container, error) {
	return r.store.Container(ctx, docstore.CollectionCities)
}

func (r *RepositoryImpl) Create(ctx context.Context, city models.City) (*models.City, error) {
	ctx, span := otel.Tracer("CitiesRepository").Start(ctx, "Create")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if city.ID == "" {
		city.ID = uuid.NewString()
	}
	city.CreatedAt = now
	city.UpdatedAt = now

	body, err := json.Marshal(city)
	if err != nil {
		return nil, fmt.Errorf("failed to encode city: %w", err)
	}

	if err := container.CreateItem(ctx, city.ID, city.ID, body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create city")
		return nil, err
	}

	r.logger.Info("City saved", zap.String("id", city.ID), zap.String("name", city.Name))
	return &city, nil
}

func (r *RepositoryImpl) GetByID(ctx context.Context, id string) (*models.City, error) {
	ctx, span := otel.Tracer("CitiesRepository").Start(ctx, "GetByID")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	body, err := container.ReadItem(ctx, id, id)
	if err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, err
	}

	var city models.City
	if err := json.Unmarshal(body, &city); err != nil {
		return nil, fmt.Errorf("failed to decode city %s: %w", id, err)
	}
	return &city, nil
}

func (r *RepositoryImpl) List(ctx context.Context, filter models.CityFilter) ([]models.City, error) {
	ctx, span := otel.Tracer("CitiesRepository").Start(ctx, "List")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	query := docstore.Query{
		Filters: map[string]any{},
		OrderBy: []docstore.Order{{Field: "name"}},
		Limit:   filter.Limit,
	}
	if filter.Country != "" {
		query.Filters["country"] = filter.Country
	}

	bodies, err := container.QueryItems(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	cities := make([]models.City, 0, len(bodies))
	for _, body := range bodies {
		var city models.City
		if err := json.Unmarshal(body, &city); err != nil {
			return nil, fmt.Errorf("failed to decode city: %w", err)
		}
		cities = append(cities, city)
	}

	span.SetAttributes(attribute.Int("cities.count", len(cities)))
	return cities, nil
}

// UpdateActivities replaces the city's activity list wholesale and stamps
// lastSynced. The enrichment job is the only writer of this field.
func (r *RepositoryImpl) UpdateActivities(ctx context.Context, id string, activities []models.Activity, syncedAt time.Time) (*models.City, error) {
	ctx, span := otel.Tracer("CitiesRepository").Start(ctx, "UpdateActivities")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	body, err := container.ReadItem(ctx, id, id)
	if err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return nil, &common.NotFoundError{Collection: docstore.CollectionCities, ID: id}
		}
		span.RecordError(err)
		return nil, err
	}

	var city models.City
	if err := json.Unmarshal(body, &city); err != nil {
		return nil, fmt.Errorf("failed to decode city %s: %w", id, err)
	}

	synced := syncedAt.UTC()
	city.Activities = activities
	city.LastSynced = &synced
	city.UpdatedAt = models.NextUpdateTime(city.UpdatedAt)

	merged, err := json.Marshal(city)
	if err != nil {
		return nil, fmt.Errorf("failed to encode city %s: %w", id, err)
	}

	if err := container.ReplaceItem(ctx, id, id, merged); err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return nil, &common.NotFoundError{Collection: docstore.CollectionCities, ID: id}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update city activities")
		return nil, err
	}

	r.logger.Info("City activities updated",
		zap.String("id", id),
		zap.Int("activities", len(activities)))
	return &city, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("CitiesRepository").Start(ctx, "Delete")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return err
	}

	if err := container.DeleteItem(ctx, id, id); err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return &common.NotFoundError{Collection: docstore.CollectionCities, ID: id}
		}
		span.RecordError(err)
		return err
	}

	r.logger.Info("City deleted", zap.String("id", id))
	return nil
}
