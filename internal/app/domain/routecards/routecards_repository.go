// Package routecards manages the region-level marketing cards on the
// landing page.
package routecards

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

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	Create(ctx context.Context, card models.RouteCard) (*models.RouteCard, error)
	GetByID(ctx context.Context, id string) (*models.RouteCard, error)
	Update(ctx context.Context, id string, update models.RouteCardUpdate) (*models.RouteCard, error)
	List(ctx context.Context, filter models.RouteCardFilter) ([]models.RouteCard, error)
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
	return r.store.Container(ctx, docstore.CollectionRouteCards)
}

func (r *RepositoryImpl) Create(ctx context.Context, card models.RouteCard) (*models.RouteCard, error) {
	ctx, span := otel.Tracer("RouteCardsRepository").Start(ctx, "Create")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	card.ID = uuid.NewString()
	card.CreatedAt = now
	card.UpdatedAt = now

	body, err := json.Marshal(card)
	if err != nil {
		return nil, fmt.Errorf("failed to encode route card: %w", err)
	}

	if err := container.CreateItem(ctx, card.ID, card.ID, body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create route card")
		return nil, err
	}

	r.logger.Info("Route card saved", zap.String("id", card.ID), zap.String("region", card.Region))
	span.SetAttributes(attribute.String("card.id", card.ID))
	return &card, nil
}

func (r *RepositoryImpl) GetByID(ctx context.Context, id string) (*models.RouteCard, error) {
	ctx, span := otel.Tracer("RouteCardsRepository").Start(ctx, "GetByID")
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

	var card models.RouteCard
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, fmt.Errorf("failed to decode route card %s: %w", id, err)
	}
	return &card, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, id string, update models.RouteCardUpdate) (*models.RouteCard, error) {
	ctx, span := otel.Tracer("RouteCardsRepository").Start(ctx, "Update")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	body, err := container.ReadItem(ctx, id, id)
	if err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return nil, &common.NotFoundError{Collection: docstore.CollectionRouteCards, ID: id}
		}
		span.RecordError(err)
		return nil, err
	}

	var card models.RouteCard
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, fmt.Errorf("failed to decode route card %s: %w", id, err)
	}

	update.Apply(&card)
	card.UpdatedAt = models.NextUpdateTime(card.UpdatedAt)

	merged, err := json.Marshal(card)
	if err != nil {
		return nil, fmt.Errorf("failed to encode route card %s: %w", id, err)
	}

	if err := container.ReplaceItem(ctx, id, id, merged); err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return nil, &common.NotFoundError{Collection: docstore.CollectionRouteCards, ID: id}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update route card")
		return nil, err
	}

	r.logger.Info("Route card updated", zap.String("id", id))
	return &card, nil
}

func (r *RepositoryImpl) List(ctx context.Context, filter models.RouteCardFilter) ([]models.RouteCard, error) {
	ctx, span := otel.Tracer("RouteCardsRepository").Start(ctx, "List")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	query := docstore.Query{Filters: map[string]any{}}
	if filter.Enabled != nil {
		query.Filters["enabled"] = *filter.Enabled
	}

	bodies, err := container.QueryItems(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	cards := make([]models.RouteCard, 0, len(bodies))
	for _, body := range bodies {
		var card models.RouteCard
		if err := json.Unmarshal(body, &card); err != nil {
			return nil, fmt.Errorf("failed to decode route card: %w", err)
		}
		cards = append(cards, card)
	}

	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Order != cards[j].Order {
			return cards[i].Order < cards[j].Order
		}
		return cards[i].CreatedAt.Before(cards[j].CreatedAt)
	})

	span.SetAttributes(attribute.Int("cards.count", len(cards)))
	return cards, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("RouteCardsRepository").Start(ctx, "Delete")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return err
	}

	if err := container.DeleteItem(ctx, id, id); err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return &common.NotFoundError{Collection: docstore.CollectionRouteCards, ID: id}
		}
		span.RecordError(err)
		return err
	}

	r.logger.Info("Route card deleted", zap.String("id", id))
	return nil
}
