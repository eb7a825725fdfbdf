package trips

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/models"
	"github.com/wanderbase/wanderbase/internal/docstore"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int { return &n }

func TestTemplateCurationOrderAssignment(t *testing.T) {
	store := docstore.NewMemoryProvider()
	repo := NewTemplateRepository(store, zap.NewNop())
	ctx := context.Background()

	first, err := repo.Create(ctx, models.TripTemplate{
		Region:    "alps",
		Name:      "Alpine classics",
		Enabled:   true,
		IsCurated: true,
	})
	require.NoError(t, err)
	require.NotNil(t, first.CuratedOrder)
	assert.Equal(t, 1, *first.CuratedOrder)

	second, err := repo.Create(ctx, models.TripTemplate{
		Region:    "iberia",
		Name:      "Iberian coast",
		Enabled:   true,
		IsCurated: true,
	})
	require.NoError(t, err)
	require.NotNil(t, second.CuratedOrder)
	assert.Equal(t, 2, *second.CuratedOrder)
}

func TestTemplateUncurateClearsStoredOrder(t *testing.T) {
	store := docstore.NewMemoryProvider()
	repo := NewTemplateRepository(store, zap.NewNop())
	ctx := context.Background()

	created, err := repo.Create(ctx, models.TripTemplate{
		Region:    "alps",
		Name:      "Alpine classics",
		IsCurated: true,
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, models.TripTemplateUpdate{
		IsCurated: boolPtr(false),
	}, created.Region)
	require.NoError(t, err)
	assert.False(t, updated.IsCurated)
	assert.Nil(t, updated.CuratedOrder)

	// the stored document must actually drop the field, not null it
	container, err := store.Container(ctx, docstore.CollectionTripTemplates)
	require.NoError(t, err)
	body, err := container.ReadItem(ctx, created.ID, created.Region)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	_, present := raw["curatedOrder"]
	assert.False(t, present)
}

func TestTemplateCurateOnUpdateAssignsNextSlot(t *testing.T) {
	store := docstore.NewMemoryProvider()
	repo := NewTemplateRepository(store, zap.NewNop())
	ctx := context.Background()

	_, err := repo.Create(ctx, models.TripTemplate{Region: "alps", Name: "A", IsCurated: true})
	require.NoError(t, err)

	plain, err := repo.Create(ctx, models.TripTemplate{Region: "alps", Name: "B"})
	require.NoError(t, err)
	assert.Nil(t, plain.CuratedOrder)

	curated, err := repo.Update(ctx, plain.ID, models.TripTemplateUpdate{
		IsCurated: boolPtr(true),
	}, plain.Region)
	require.NoError(t, err)
	require.NotNil(t, curated.CuratedOrder)
	assert.Equal(t, 2, *curated.CuratedOrder)
}

func TestTemplateExplicitCuratedOrder(t *testing.T) {
	store := docstore.NewMemoryProvider()
	repo := NewTemplateRepository(store, zap.NewNop())
	ctx := context.Background()

	created, err := repo.Create(ctx, models.TripTemplate{Region: "alps", Name: "A", IsCurated: true})
	require.NoError(t, err)

	moved, err := repo.Update(ctx, created.ID, models.TripTemplateUpdate{
		CuratedOrder: intPtr(7),
	}, created.Region)
	require.NoError(t, err)
	require.NotNil(t, moved.CuratedOrder)
	assert.Equal(t, 7, *moved.CuratedOrder)
}

func TestTemplateCrossPartitionGetByID(t *testing.T) {
	store := docstore.NewMemoryProvider()
	repo := NewTemplateRepository(store, zap.NewNop())
	ctx := context.Background()

	created, err := repo.Create(ctx, models.TripTemplate{Region: "iberia", Name: "Coast"})
	require.NoError(t, err)

	// no region hint: resolved by scanning across partitions
	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "iberia", found.Region)
}

func TestTemplateDeleteUnknownRegionIsNoop(t *testing.T) {
	store := docstore.NewMemoryProvider()
	repo := NewTemplateRepository(store, zap.NewNop())

	// nothing stored at all: resolves no region, silently succeeds
	err := repo.Delete(context.Background(), "ghost", "")
	assert.NoError(t, err)
}

func TestTemplateCuratedListing(t *testing.T) {
	store := docstore.NewMemoryProvider()
	repo := NewTemplateRepository(store, zap.NewNop())
	ctx := context.Background()

	a, err := repo.Create(ctx, models.TripTemplate{Region: "alps", Name: "A", Enabled: true, IsCurated: true})
	require.NoError(t, err)
	b, err := repo.Create(ctx, models.TripTemplate{Region: "iberia", Name: "B", Enabled: true, IsCurated: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.TripTemplate{Region: "alps", Name: "C", Enabled: true})
	require.NoError(t, err)

	// move B ahead of A
	_, err = repo.Update(ctx, b.ID, models.TripTemplateUpdate{CuratedOrder: intPtr(0)}, b.Region)
	require.NoError(t, err)

	curated, err := repo.List(ctx, models.TripFilter{Enabled: boolPtr(true), Curated: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, curated, 2)
	assert.Equal(t, b.ID, curated[0].ID)
	assert.Equal(t, a.ID, curated[1].ID)
}
