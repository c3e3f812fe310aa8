package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apaulliao/classboard-api/internal/models"
)

func newSlotRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestSlotRepositoryListSlots(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewSlotRepository(db)
	rows := sqlmock.NewRows([]string{"id", "name", "start_time", "end_time", "kind"}).
		AddRow("p1", "Period 1", "08:00:00", "08:40:00", "CLASS").
		AddRow("b1", "Break", "08:40:00", "08:50:00", "BREAK")
	mock.ExpectQuery("SELECT id, name, start_time").WillReturnRows(rows)

	slots, err := repo.ListSlots(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "p1", slots[0].ID)
	assert.Equal(t, models.MustTimeOfDay("08:00"), slots[0].Start)
	assert.Equal(t, models.SlotKindBreak, slots[1].Kind)
}

func TestSlotRepositoryCreateSlot(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewSlotRepository(db)
	mock.ExpectExec("INSERT INTO time_slots").
		WithArgs("p1", "Period 1", "08:00:00", "08:40:00", "CLASS").
		WillReturnResult(sqlmock.NewResult(1, 1))

	slot := &models.TimeSlot{
		ID:    "p1",
		Name:  "Period 1",
		Start: models.MustTimeOfDay("08:00"),
		End:   models.MustTimeOfDay("08:40"),
		Kind:  models.SlotKindClass,
	}
	require.NoError(t, repo.CreateSlot(context.Background(), slot))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryListDayTypes(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewSlotRepository(db)
	rows := sqlmock.NewRows([]string{"weekday", "day_type", "updated_at"}).
		AddRow(3, "HALF", time.Now())
	mock.ExpectQuery("SELECT weekday, day_type").WillReturnRows(rows)

	dayTypes, err := repo.ListDayTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DayTypeHalf, dayTypes.ForWeekday(time.Wednesday))
	assert.Equal(t, models.DayTypeFull, dayTypes.ForWeekday(time.Monday), "missing weekday defaults to full")
}

func TestSlotRepositoryUpsertDayType(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewSlotRepository(db)
	mock.ExpectExec("INSERT INTO day_types").
		WithArgs(3, "HALF").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.UpsertDayType(context.Background(), 3, models.DayTypeHalf))
	require.NoError(t, mock.ExpectationsWereMet())
}
