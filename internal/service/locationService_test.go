package service

import (
	"context"
	"testing"

	"github.com/ds124wfegd/eventhub/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationCRUD(t *testing.T) {
	locations := NewLocationService(newFakeLocationRepo())
	ctx := context.Background()

	created, err := locations.Create(ctx, &CreateLocationRequest{
		Name:     "Main Hall",
		Address:  "1 Festival Way",
		City:     "Lisbon",
		State:    "Lisboa",
		Country:  "PT",
		ZipCode:  "1100-001",
		Capacity: 500,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)

	fetched, err := locations.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main Hall", fetched.Name)

	newCapacity := 300
	inactive := false
	updated, err := locations.Update(ctx, created.ID, &UpdateLocationRequest{
		Capacity: &newCapacity,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, 300, updated.Capacity)
	assert.False(t, updated.IsActive)
	// Unpatched fields survive.
	assert.Equal(t, "Lisbon", updated.City)

	deleted, err := locations.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = locations.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, entity.ErrLocationNotFound)
}

func TestLocationNotFound(t *testing.T) {
	locations := NewLocationService(newFakeLocationRepo())
	ctx := context.Background()

	_, err := locations.GetByID(ctx, 42)
	require.ErrorIs(t, err, entity.ErrLocationNotFound)

	name := "Renamed"
	_, err = locations.Update(ctx, 42, &UpdateLocationRequest{Name: &name})
	require.ErrorIs(t, err, entity.ErrLocationNotFound)

	_, err = locations.Delete(ctx, 42)
	require.ErrorIs(t, err, entity.ErrLocationNotFound)
}
