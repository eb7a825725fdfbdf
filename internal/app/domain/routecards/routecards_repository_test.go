package routecards

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/common"
	"github.com/wanderbase/wanderbase/internal/app/models"
	"github.com/wanderbase/wanderbase/internal/docstore"
)

func newTestRepo() *RepositoryImpl {
	return NewRepository(docstore.NewMemoryProvider(), zap.NewNop())
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestRouteCardCreateAndGet(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, models.RouteCard{
		Region:  "alps",
		Name:    "Alpine loop",
		Enabled: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Alpine loop", found.Name)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRouteCardUpdate(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, models.RouteCard{Region: "alps", Name: "Alpine loop"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, models.RouteCardUpdate{
		Tagline: strPtr("Five passes in five days"),
		Enabled: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Five passes in five days", updated.Tagline)
	assert.True(t, updated.Enabled)
	assert.Equal(t, "Alpine loop", updated.Name)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = repo.Update(ctx, "ghost", models.RouteCardUpdate{})
	assert.True(t, common.IsNotFound(err))
}

func TestRouteCardListEnabledAndOrdered(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	second, err := repo.Create(ctx, models.RouteCard{Region: "alps", Name: "B", Enabled: true, Order: 2})
	require.NoError(t, err)
	first, err := repo.Create(ctx, models.RouteCard{Region: "iberia", Name: "A", Enabled: true, Order: 1})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.RouteCard{Region: "alps", Name: "C", Enabled: false, Order: 0})
	require.NoError(t, err)

	cards, err := repo.List(ctx, models.RouteCardFilter{Enabled: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, first.ID, cards[0].ID)
	assert.Equal(t, second.ID, cards[1].ID)

	all, err := repo.List(ctx, models.RouteCardFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRouteCardDeleteMissing(t *testing.T) {
	repo := newTestRepo()

	err := repo.Delete(context.Background(), "ghost")
	assert.True(t, common.IsNotFound(err))
}
