package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"dining-calendar/internal/domain/dining"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "title", "date", "end_datetime",
	"location", "category",
	"participants", "cost_total", "rating", "tags",
	"notes", "image_path",
}

var dinnerAt = time.Date(2024, 3, 1, 19, 30, 0, 0, time.UTC)

func newMock(t *testing.T) (*DiningRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDiningRepo(db), mock
}

func hotpotRow() *sqlmock.Rows {
	return sqlmock.NewRows(columns).AddRow(
		int64(5), "Hotpot", dinnerAt, nil,
		"Chengdu", "dinner",
		[]byte(`["ana","luis"]`), "42.50", int64(4), nil,
		"spicy", nil,
	)
}

func TestDiningRepo_GetByID(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`(?s)SELECT.*FROM dining_events.*WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(hotpotRow())

	e, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), e.ID)
	assert.Equal(t, "Hotpot", e.Title)
	assert.True(t, e.Date.Equal(dinnerAt))
	assert.Nil(t, e.EndDatetime)
	require.NotNil(t, e.Category)
	assert.Equal(t, "dinner", *e.Category)
	assert.Equal(t, []string{"ana", "luis"}, e.Participants)
	assert.True(t, e.CostTotal.Equal(decimal.RequireFromString("42.5")))
	assert.Equal(t, 4, e.Rating)
	assert.NotNil(t, e.Tags, "NULL tags from legacy rows read as empty")
	assert.Empty(t, e.Tags)
	assert.Nil(t, e.ImagePath)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiningRepo_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`(?s)SELECT.*FROM dining_events`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, dining.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiningRepo_List(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`(?s)SELECT.*FROM dining_events.*ORDER BY date ASC, id ASC`).
		WillReturnRows(hotpotRow())

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Hotpot", items[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiningRepo_List_Empty(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`(?s)SELECT.*FROM dining_events`).
		WillReturnRows(sqlmock.NewRows(columns))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestDiningRepo_Create_ReturnsAssignedID(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO dining_events`).
		WithArgs(
			"Hotpot", dinnerAt, sqlmock.AnyArg(),
			"Chengdu", sqlmock.AnyArg(),
			`["ana"]`, sqlmock.AnyArg(), 4, `[]`,
			"spicy", sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	stored, err := repo.Create(context.Background(), dining.DiningEvent{
		Title:        "Hotpot",
		Date:         dinnerAt,
		Location:     "Chengdu",
		Participants: []string{"ana"},
		CostTotal:    decimal.RequireFromString("42.50"),
		Rating:       4,
		Notes:        "spicy",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), stored.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiningRepo_Create_PropagatesStorageErrors(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO dining_events`).WillReturnError(errors.New("connection refused"))

	_, err := repo.Create(context.Background(), dining.DiningEvent{Title: "x", Date: dinnerAt, Location: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDiningRepo_ReplaceFields_UpdatesInOneTransaction(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT.*FROM dining_events.*FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(hotpotRow())
	mock.ExpectExec(`UPDATE dining_events`).
		WithArgs(
			int64(5), "Hotpot night", sqlmock.AnyArg(), sqlmock.AnyArg(),
			"Chengdu", sqlmock.AnyArg(),
			`["ana","luis"]`, sqlmock.AnyArg(), 4, `[]`,
			"spicy", sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.ReplaceFields(context.Background(), 5, dining.Update{Title: dining.Some("Hotpot night")})
	require.NoError(t, err)
	assert.Equal(t, "Hotpot night", updated.Title)
	assert.Equal(t, "Chengdu", updated.Location)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiningRepo_ReplaceFields_NotFoundRollsBack(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectRollback()

	_, err := repo.ReplaceFields(context.Background(), 5, dining.Update{Title: dining.Some("x")})
	assert.ErrorIs(t, err, dining.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiningRepo_ReplaceFields_InvalidRollsBack(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(hotpotRow())
	mock.ExpectRollback()

	_, err := repo.ReplaceFields(context.Background(), 5, dining.Update{Location: dining.Some("")})
	assert.ErrorIs(t, err, dining.ErrInvalidInput)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiningRepo_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM dining_events WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM dining_events WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	existed, err := repo.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = repo.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, existed)

	require.NoError(t, mock.ExpectationsWereMet())
}
