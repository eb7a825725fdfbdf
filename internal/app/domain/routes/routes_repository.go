// Package routes stores trip configurations submitted through the
// marketing site's trip wizard and exposes them to the admin hub.
package routes

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
	Create(ctx context.Context, route models.Route) (*models.Route, error)
	GetByID(ctx context.Context, id string) (*models.Route, error)
	Update(ctx context.Context, id string, update models.RouteUpdate) (*models.Route, error)
	List(ctx context.Context, filter models.RouteFilter) ([]models.Route, error)
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
	return r.store.Container(ctx, docstore.CollectionRoutes)
}

func (r *RepositoryImpl) Create(ctx context.Context, route models.Route) (*models.Route, error) {
	ctx, span := otel.Tracer("RoutesRepository").Start(ctx, "Create")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	route.ID = uuid.NewString()
	route.CreatedAt = now
	route.UpdatedAt = now
	if route.Status == "" {
		route.Status = models.RouteStatusNew
	}

	body, err := json.Marshal(route)
	if err != nil {
		return nil, fmt.Errorf("failed to encode route: %w", err)
	}

	if err := container.CreateItem(ctx, route.ID, route.ID, body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create route")
		return nil, err
	}

	r.logger.Info("Route saved", zap.String("id", route.ID), zap.String("region", route.Region))
	span.SetAttributes(attribute.String("route.id", route.ID))
	return &route, nil
}

// GetByID returns nil without an error when the route does not exist.
func (r *RepositoryImpl) GetByID(ctx context.Context, id string) (*models.Route, error) {
	ctx, span := otel.Tracer("RoutesRepository").Start(ctx, "GetByID")
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

	var route models.Route
	if err := json.Unmarshal(body, &route); err != nil {
		return nil, fmt.Errorf("failed to decode route %s: %w", id, err)
	}
	return &route, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, id string, update models.RouteUpdate) (*models.Route, error) {
	ctx, span := otel.Tracer("RoutesRepository").Start(ctx, "Update")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	body, err := container.ReadItem(ctx, id, id)
	if err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return nil, &common.NotFoundError{Collection: docstore.CollectionRoutes, ID: id}
		}
		span.RecordError(err)
		return nil, err
	}

	var route models.Route
	if err := json.Unmarshal(body, &route); err != nil {
		return nil, fmt.Errorf("failed to decode route %s: %w", id, err)
	}

	update.Apply(&route)
	route.UpdatedAt = models.NextUpdateTime(route.UpdatedAt)

	merged, err := json.Marshal(route)
	if err != nil {
		return nil, fmt.Errorf("failed to encode route %s: %w", id, err)
	}

	if err := container.ReplaceItem(ctx, id, id, merged); err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return nil, &common.NotFoundError{Collection: docstore.CollectionRoutes, ID: id}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update route")
		return nil, err
	}

	r.logger.Info("Route updated", zap.String("id", id), zap.String("status", route.Status))
	return &route, nil
}

func (r *RepositoryImpl) List(ctx context.Context, filter models.RouteFilter) ([]models.Route, error) {
	ctx, span := otel.Tracer("RoutesRepository").Start(ctx, "List")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	query := docstore.Query{
		Filters: map[string]any{},
		OrderBy: []docstore.Order{{Field: "createdAt", Desc: true}},
	}
	if filter.Status != "" {
		query.Filters["status"] = filter.Status
	}
	if filter.Email != "" {
		query.Filters["email"] = filter.Email
	}
	if filter.Region != "" {
		query.Filters["region"] = filter.Region
	}

	bodies, err := container.QueryItems(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	routes := make([]models.Route, 0, len(bodies))
	for _, body := range bodies {
		var route models.Route
		if err := json.Unmarshal(body, &route); err != nil {
			return nil, fmt.Errorf("failed to decode route: %w", err)
		}
		routes = append(routes, route)
	}

	span.SetAttributes(attribute.Int("routes.count", len(routes)))
	return routes, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("RoutesRepository").Start(ctx, "Delete")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return err
	}

	if err := container.DeleteItem(ctx, id, id); err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return &common.NotFoundError{Collection: docstore.CollectionRoutes, ID: id}
		}
		span.RecordError(err)
		return err
	}

	r.logger.Info("Route deleted", zap.String("id", id))
	return nil
}
