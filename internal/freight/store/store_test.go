package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/landed/internal/freight"
	"github.com/MrJamesThe3rd/landed/internal/freight/store"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := store.New()

	sea := &freight.Cost{ID: uuid.New(), Components: freight.Components{ShipmentType: freight.ShipmentSea, Weight: 1, FreightRate: 20}}
	air := &freight.Cost{ID: uuid.New(), Components: freight.Components{ShipmentType: freight.ShipmentAir, Handling: 5}}

	require.NoError(t, s.CreateCost(ctx, sea))
	require.NoError(t, s.CreateCost(ctx, air))

	got, err := s.GetCost(ctx, sea.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.TotalCost())

	got.Handling = 1000

	again, err := s.GetCost(ctx, sea.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, again.TotalCost())

	require.NoError(t, s.DeleteCost(ctx, uuid.New()))
	require.NoError(t, s.DeleteCost(ctx, sea.ID))

	_, err = s.GetCost(ctx, sea.ID)
	assert.ErrorIs(t, err, freight.ErrNotFound)

	all, err := s.ListCosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, air.ID, all[0].ID)
}
