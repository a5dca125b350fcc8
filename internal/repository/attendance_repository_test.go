package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/daycare-api/internal/models"
)

func dayBounds() (time.Time, time.Time) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func TestCheckInInsertsWhenNothingOpen(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)
	start, end := dayBounds()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM children WHERE id = ? AND is_active = ? FOR UPDATE")).
		WithArgs("c1", true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM attendance WHERE child_id = ? AND check_out_time IS NULL")).
		WithArgs("c1", start, end).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO attendance").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	item := &models.Attendance{ChildID: "c1", StaffID: "s1", CheckInTime: start.Add(8 * time.Hour)}
	require.NoError(t, repo.CheckIn(context.Background(), item, start, end))
	assert.NotEmpty(t, item.ID)
	assert.True(t, item.Open())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInConflictsWithOpenRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)
	start, end := dayBounds()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM children").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c1"))
	mock.ExpectQuery("SELECT id FROM attendance").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a1"))
	mock.ExpectRollback()

	err := repo.CheckIn(context.Background(), &models.Attendance{ChildID: "c1", StaffID: "s1", CheckInTime: start}, start, end)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInMissingChild(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)
	start, end := dayBounds()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM children").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.CheckIn(context.Background(), &models.Attendance{ChildID: "ghost"}, start, end)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOutClosesOpenRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)
	start, end := dayBounds()
	checkIn := start.Add(8 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM attendance WHERE child_id = ? AND check_out_time IS NULL")).
		WithArgs("c1", start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id", "child_id", "staff_id", "check_in_time", "check_out_time", "notes", "created_at", "updated_at"}).
			AddRow("a1", "c1", "s1", checkIn, nil, nil, checkIn, checkIn))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE attendance SET check_out_time = ?, notes = ?, updated_at = ? WHERE id = ?")).
		WithArgs(checkIn, nil, checkIn, "a1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// a clock behind the check-in time is clamped to it
	item, err := repo.CheckOut(context.Background(), "c1", checkIn.Add(-time.Minute), nil, start, end)
	require.NoError(t, err)
	require.NotNil(t, item.CheckOutTime)
	assert.False(t, item.CheckOutTime.Before(item.CheckInTime))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOutWithoutOpenRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)
	start, end := dayBounds()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM attendance WHERE child_id").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.CheckOut(context.Background(), "c1", start, nil, start, end)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAbsent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)
	start, end := dayBounds()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.id, c.first_name, c.last_name FROM children c WHERE c.is_active = ? AND NOT EXISTS")).
		WithArgs(true, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name"}).AddRow("c2", "Noe", "Blanc"))

	items, err := repo.ListAbsent(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c2", items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
