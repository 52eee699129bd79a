package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreate_AssignsIncreasingOrder(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())

	first, err := svc.Create(context.Background(), CategoryInput{Name: "Sport", WeeklyGoal: 5})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), CategoryInput{Name: "Study"})
	require.NoError(t, err)

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)
	assert.True(t, first.IsActive)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Sport", listed[0].Name)
	assert.Equal(t, "Study", listed[1].Name)
}

func TestCategoryCreate_RequiresName(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())
	_, err := svc.Create(context.Background(), CategoryInput{})
	assert.Error(t, err)
}

func TestCategoryDeactivate_HidesFromListing(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())
	cat, err := svc.Create(context.Background(), CategoryInput{Name: "Sport"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), cat.ID))

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), "missing"), ErrNotFound)
}

func TestAddSubcategory(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())
	cat, err := svc.Create(context.Background(), CategoryInput{Name: "Sport"})
	require.NoError(t, err)

	run, err := svc.AddSubcategory(context.Background(), cat.ID, "Running", "")
	require.NoError(t, err)
	swim, err := svc.AddSubcategory(context.Background(), cat.ID, "Swimming", "laps")
	require.NoError(t, err)
	assert.Equal(t, 0, run.Order)
	assert.Equal(t, 1, swim.Order)

	listed, err := svc.ListSubcategories(context.Background(), cat.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Running", listed[0].Name)

	_, err = svc.AddSubcategory(context.Background(), "missing", "X", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddSubcategory(context.Background(), cat.ID, "", "")
	assert.Error(t, err)
}
