// Package leads manages the sales pipeline records behind the admin hub.
package leads

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
	Create(ctx context.Context, lead models.Lead) (*models.Lead, error)
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	Update(ctx context.Context, id string, update models.LeadUpdate) (*models.Lead, error)
	List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error)
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
	return r.store.Container(ctx, docstore.CollectionLeads)
}

func (r *RepositoryImpl) Create(ctx context.Context, lead models.Lead) (*models.Lead, error) {
	ctx, span := otel.Tracer("LeadsRepository").Start(ctx, "Create")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lead.ID = uuid.NewString()
	lead.CreatedAt = now
	lead.UpdatedAt = now
	if lead.Stage == "" {
		lead.Stage = "new"
	}

	body, err := json.Marshal(lead)
	if err != nil {
		return nil, fmt.Errorf("failed to encode lead: %w", err)
	}

	if err := container.CreateItem(ctx, lead.ID, lead.ID, body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create lead")
		return nil, err
	}

	r.logger.Info("Lead saved", zap.String("id", lead.ID), zap.String("stage", lead.Stage))
	span.SetAttributes(attribute.String("lead.id", lead.ID))
	return &lead, nil
}

func (r *RepositoryImpl) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	ctx, span := otel.Tracer("LeadsRepository").Start(ctx, "GetByID")
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

	var lead models.Lead
	if err := json.Unmarshal(body, &lead); err != nil {
		return nil, fmt.Errorf("failed to decode lead %s: %w", id, err)
	}
	return &lead, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, id string, update models.LeadUpdate) (*models.Lead, error) {
	ctx, span := otel.Tracer("LeadsRepository").Start(ctx, "Update")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	body, err := container.ReadItem(ctx, id, id)
	if err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return nil, &common.NotFoundError{Collection: docstore.CollectionLeads, ID: id}
		}
		span.RecordError(err)
		return nil, err
	}

	var lead models.Lead
	if err := json.Unmarshal(body, &lead); err != nil {
		return nil, fmt.Errorf("failed to decode lead %s: %w", id, err)
	}

	update.Apply(&lead)
	lead.UpdatedAt = models.NextUpdateTime(lead.UpdatedAt)

	merged, err := json.Marshal(lead)
	if err != nil {
		return nil, fmt.Errorf("failed to encode lead %s: %w", id, err)
	}

	if err := container.ReplaceItem(ctx, id, id, merged); err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return nil, &common.NotFoundError{Collection: docstore.CollectionLeads, ID: id}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update lead")
		return nil, err
	}

	r.logger.Info("Lead updated", zap.String("id", id), zap.String("stage", lead.Stage))
	return &lead, nil
}

func (r *RepositoryImpl) List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	ctx, span := otel.Tracer("LeadsRepository").Start(ctx, "List")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return nil, err
	}

	query := docstore.Query{
		Filters: map[string]any{},
		OrderBy: []docstore.Order{{Field: "createdAt", Desc: true}},
	}
	if filter.Stage != "" {
		query.Filters["stage"] = filter.Stage
	}
	if filter.Destination != "" {
		query.Filters["destination"] = filter.Destination
	}

	bodies, err := container.QueryItems(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	leads := make([]models.Lead, 0, len(bodies))
	for _, body := range bodies {
		var lead models.Lead
		if err := json.Unmarshal(body, &lead); err != nil {
			return nil, fmt.Errorf("failed to decode lead: %w", err)
		}
		leads = append(leads, lead)
	}

	span.SetAttributes(attribute.Int("leads.count", len(leads)))
	return leads, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("LeadsRepository").Start(ctx, "Delete")
	defer span.End()

	container, err := r.container(ctx)
	if err != nil {
		return err
	}

	if err := container.DeleteItem(ctx, id, id); err != nil {
		if errors.Is(err, docstore.ErrItemNotFound) {
			return &common.NotFoundError{Collection: docstore.CollectionLeads, ID: id}
		}
		span.RecordError(err)
		return err
	}

	r.logger.Info("Lead deleted", zap.String("id", id))
	return nil
}
