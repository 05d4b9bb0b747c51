package memory

import (
	"context"
	"testing"
	"time"

	"dining-calendar/internal/domain/dining"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(title string, date time.Time) dining.DiningEvent {
	return dining.DiningEvent{
		Title:        title,
		Date:         date,
		Location:     "Casa",
		Participants: []string{"ana"},
		CostTotal:    decimal.RequireFromString("10.50"),
		Rating:       4,
		Tags:         []string{},
		Notes:        "",
	}
}

func TestDiningRepo_CreateAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewDiningRepo()

	a, err := repo.Create(ctx, newEvent("a", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	b, err := repo.Create(ctx, newEvent("b", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	_, err = repo.Create(ctx, a)
	require.Error(t, err, "pre-assigned ids are rejected")
}

func TestDiningRepo_ListOrderedByDate(t *testing.T) {
	ctx := context.Background()
	repo := NewDiningRepo()

	_, _ = repo.Create(ctx, newEvent("late", time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)))
	_, _ = repo.Create(ctx, newEvent("early", time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "early", items[0].Title)
	assert.Equal(t, "late", items[1].Title)
}

func TestDiningRepo_EmptyListIsNotNil(t *testing.T) {
	items, err := NewDiningRepo().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestDiningRepo_GetUnknownIsNotFound(t *testing.T) {
	_, err := NewDiningRepo().GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, dining.ErrNotFound)
}

func TestDiningRepo_ReplaceFieldsOnlyTouchesSetFields(t *testing.T) {
	ctx := context.Background()
	repo := NewDiningRepo()

	created, err := repo.Create(ctx, newEvent("old", time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	updated, err := repo.ReplaceFields(ctx, created.ID, dining.Update{Title: dining.Some("new")})
	require.NoError(t, err)

	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.Date.Equal(updated.Date))
	assert.Equal(t, created.Location, updated.Location)
	assert.Equal(t, created.Participants, updated.Participants)
	assert.True(t, created.CostTotal.Equal(updated.CostTotal))

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", stored.Title)
}

func TestDiningRepo_ReplaceFieldsInvalidLeavesRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewDiningRepo()

	created, err := repo.Create(ctx, newEvent("keep", time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	_, err = repo.ReplaceFields(ctx, created.ID, dining.Update{Rating: dining.Some(9)})
	require.ErrorIs(t, err, dining.ErrInvalidInput)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Rating)
}

func TestDiningRepo_ReplaceFieldsUnknownIsNotFound(t *testing.T) {
	_, err := NewDiningRepo().ReplaceFields(context.Background(), 7, dining.Update{Title: dining.Some("x")})
	assert.ErrorIs(t, err, dining.ErrNotFound)
}

func TestDiningRepo_DeleteReportsExistence(t *testing.T) {
	ctx := context.Background()
	repo := NewDiningRepo()

	created, err := repo.Create(ctx, newEvent("x", time.Now()))
	require.NoError(t, err)

	existed, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestDiningRepo_ReturnedSlicesAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewDiningRepo()

	created, err := repo.Create(ctx, newEvent("x", time.Now()))
	require.NoError(t, err)
	created.Participants[0] = "mutated"

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ana"}, stored.Participants)
}
