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

var _ TemplateRepository = (*TemplateRepositoryImpl)(nil)

type TemplateRepository interface {
	Create(ctx context.Context, tpl models.TripTemplate) (*models.TripTemplate, error)
	GetByID(ctx context.Context, id string) (*models.TripTemplate, error)
	Update(ctx context.Context, id string, update models.TripTemplateUpdate, region string) (*models.TripTemplate, error)
	List(ctx context.Context, filter models.TripFilter) ([]models.TripTemplate, error)
	Delete(ctx context.Context, id, region string) error
}

type TemplateRepositoryImpl struct {
	logger *zap.Logger
	store  docstore.Provider
}

func NewTemplateRepository(store docstore.Provider, logger *zap.Logger) *TemplateRepositoryImpl {
	return &TemplateRepositoryImpl{
		logger: logger,
		store:  store,
	}
}

func (r *TemplateRepositoryImpl) container(ctx context.Context) (docstore.Container, error) {
	return r.store.Container(ctx, docstore.CollectionTripTemplates)
}

func (r *TemplateRepositoryImpl) Create(ctx context.Context, tpl models.TripTemplate) (*models.TripTemplate, error) {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "CreateTemplate")
	defer span.End()

	if tpl.Region == "" {
		return nil, fmt.Errorf("trip template region is required")
	}

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tpl.ID = uuid.NewString()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	if tpl.IsCurated && tpl.CuratedOrder == nil {
		next, err := r.nextCuratedOrder(ctx, container, tpl.ID)
		if err != nil {
			return nil, err
		}
		tpl.CuratedOrder = &next
	}
	if !tpl.IsCurated {
		tpl.CuratedOrder = nil
	}

	body, err := json.Marshal(tpl)
	if err != nil {
		return nil, fmt.Errorf("failed to encode trip template: %w", err)
	}

	if err := container.CreateItem(ctx, tpl.ID, tpl.Region, body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create trip template")
		return nil, err
	}

	r.logger.Info("Trip template saved",
		zap.String("id", tpl.ID),
		zap.String("region", tpl.Region),
		zap.Bool("curated", tpl.IsCurated),
	)
	span.SetAttributes(attribute.String("template.id", tpl.ID))
	return &tpl, nil
}

func (r *TemplateRepositoryImpl) GetByID(ctx context.Context, id string) (*models.TripTemplate, error) {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "GetTemplateByID")
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

	var tpl models.TripTemplate
	if err := json.Unmarshal(bodies[0], &tpl); err != nil {
		return nil, fmt.Errorf("failed to decode trip template %s: %w", id, err)
	}
	return &tpl, nil
}

// Update merges the partial over the stored template. Curation is the
// special case: turning it on without an explicit curatedOrder assigns
// the next display slot; turning it off clears the slot so the stored
// document drops the field entirely.
func (r *TemplateRepositoryImpl) Update(ctx context.Context, id string, update models.TripTemplateUpdate, region string) (*models.TripTemplate, error) {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "UpdateTemplate")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	tpl, err := r.resolve(ctx, container, id, region)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, &common.NotFoundError{Collection: docstore.CollectionTripTemplates, ID: id}
	}

	update.Apply(tpl)

	switch {
	case update.IsCurated != nil && *update.IsCurated && !tpl.IsCurated:
		tpl.IsCurated = true
		if update.CuratedOrder != nil {
			tpl.CuratedOrder = update.CuratedOrder
		} else {
			next, err := r.nextCuratedOrder(ctx, container, tpl.ID)
			if err != nil {
				return nil, err
			}
			tpl.CuratedOrder = &next
		}
	case update.IsCurated != nil && !*update.IsCurated:
		tpl.IsCurated = false
		tpl.CuratedOrder = nil
	case update.CuratedOrder != nil && tpl.IsCurated:
		tpl.CuratedOrder = update.CuratedOrder
	}

	tpl.UpdatedAt = models.NextUpdateTime(tpl.UpdatedAt)

	merged, err := json.Marshal(tpl)
	if err != nil {
		return nil, fmt.Errorf("failed to encode trip template %s: %w", id, err)
	}

	if err := container.ReplaceItem(ctx, id, tpl.Region, merged); err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return nil, &common.NotFoundError{Collection: docstore.CollectionTripTemplates, ID: id}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update trip template")
		return nil, err
	}

	r.logger.Info("Trip template updated",
		zap.String("id", id),
		zap.Bool("curated", tpl.IsCurated),
	)
	return tpl, nil
}

func (r *TemplateRepositoryImpl) List(ctx context.Context, filter models.TripFilter) ([]models.TripTemplate, error) {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "ListTemplates")
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
	if filter.Curated != nil {
		query.Filters["isCurated"] = *filter.Curated
	}

	bodies, err := container.QueryItems(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	templates := make([]models.TripTemplate, 0, len(bodies))
	for _, body := range bodies {
		var tpl models.TripTemplate
		if err := json.Unmarshal(body, &tpl); err != nil {
			return nil, fmt.Errorf("failed to decode trip template: %w", err)
		}
		templates = append(templates, tpl)
	}

	sortTemplates(templates, filter.Curated != nil && *filter.Curated)

	span.SetAttributes(attribute.Int("templates.count", len(templates)))
	return templates, nil
}

func (r *TemplateRepositoryImpl) Delete(ctx context.Context, id, region string) error {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "DeleteTemplate")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return err
	}

	if region == "" {
		tpl, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if tpl == nil {
			return nil
		}
		region = tpl.Region
	}

	if err := container.DeleteItem(ctx, id, region); err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return nil
		}
		span.RecordError(err)
		return err
	}

	r.logger.Info("Trip template deleted", zap.String("id", id), zap.String("region", region))
	return nil
}

func (r *TemplateRepositoryImpl) resolve(ctx context.Context, container docstore.Container, id, region string) (*models.TripTemplate, error) {
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

	var tpl models.TripTemplate
	if err := json.Unmarshal(body, &tpl); err != nil {
		return nil, fmt.Errorf("failed to decode trip template %s: %w", id, err)
	}
	return &tpl, nil
}

// nextCuratedOrder is one greater than the current maximum among curated
// templates, excluding the one being written.
func (r *TemplateRepositoryImpl) nextCuratedOrder(ctx context.Context, container docstore.Container, excludeID string) (int, error) {
	bodies, err := container.QueryItems(ctx, docstore.Query{
		Filters: map[string]any{"isCurated": true},
	})
	if err != nil {
		return 0, err
	}

	maxOrder := 0
	for _, body := range bodies {
		var tpl models.TripTemplate
		if err := json.Unmarshal(body, &tpl); err != nil {
			return 0, fmt.Errorf("failed to decode trip template: %w", err)
		}
		if tpl.ID == excludeID {
			continue
		}
		if tpl.CuratedOrder != nil && *tpl.CuratedOrder > maxOrder {
			maxOrder = *tpl.CuratedOrder
		}
	}
	return maxOrder + 1, nil
}

// sortTemplates orders curated listings by curatedOrder and everything
// else by the plain display order, with creation time breaking ties.
func sortTemplates(templates []models.TripTemplate, curated bool) {
	sort.SliceStable(templates, func(i, j int) bool {
		if curated {
			oi, oj := 0, 0
			if templates[i].CuratedOrder != nil {
				oi = *templates[i].CuratedOrder
			}
			if templates[j].CuratedOrder != nil {
				oj = *templates[j].CuratedOrder
			}
			if oi != oj {
				return oi < oj
			}
		} else if templates[i].Order != templates[j].Order {
			return templates[i].Order < templates[j].Order
		}
		return templates[i].CreatedAt.Before(templates[j].CreatedAt)
	})
}
