package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/repository"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
)

type fakeAttendanceRepo struct {
	children map[string]models.ChildSummary
	rows     []models.Attendance
	seq      int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{children: map[string]models.ChildSummary{
		"c1": {ID: "c1", FirstName: "Ana", LastName: "Alpha"},
		"c2": {ID: "c2", FirstName: "Ben", LastName: "Beta"},
	}}
}

func inDay(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func (f *fakeAttendanceRepo) CheckIn(_ context.Context, item *models.Attendance, start, end time.Time) error {
	child, ok := f.children[item.ChildID]
	if !ok {
		return sql.ErrNoRows
	}
	for _, r := range f.rows {
		if r.ChildID == item.ChildID && r.Open() && inDay(r.CheckInTime, start, end) {
			return repository.ErrDuplicate
		}
	}
	f.seq++
	item.ID = fmt.Sprintf("a%d", f.seq)
	item.ChildFirstName, item.ChildLastName = child.FirstName, child.LastName
	f.rows = append(f.rows, *item)
	return nil
}

func (f *fakeAttendanceRepo) CheckOut(_ context.Context, childID string, at time.Time, notes *string, start, end time.Time) (*models.Attendance, error) {
	for i := range f.rows {
		r := &f.rows[i]
		if r.ChildID == childID && r.Open() && inDay(r.CheckInTime, start, end) {
			if at.Before(r.CheckInTime) {
				at = r.CheckInTime
			}
			r.CheckOutTime = &at
			if notes != nil {
				r.Notes = notes
			}
			copy := *r
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAttendanceRepo) ListForDay(_ context.Context, start, end time.Time) ([]models.Attendance, error) {
	out := make([]models.Attendance, 0)
	for _, r := range f.rows {
		if inDay(r.CheckInTime, start, end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListAbsent(_ context.Context, start, end time.Time) ([]models.ChildSummary, error) {
	seen := make(map[string]bool)
	for _, r := range f.rows {
		if inDay(r.CheckInTime, start, end) {
			seen[r.ChildID] = true
		}
	}
	out := make([]models.ChildSummary, 0)
	for id, c := range f.children {
		if !seen[id] {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

func (f *fakeAttendanceRepo) ListByChild(_ context.Context, filter models.AttendanceFilter) ([]models.Attendance, int, error) {
	out := make([]models.Attendance, 0)
	for _, r := range f.rows {
		if r.ChildID != filter.ChildID {
			continue
		}
		if filter.From != nil && r.CheckInTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !r.CheckInTime.Before(*filter.To) {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}

type attendanceClock struct {
	current time.Time
}

func (c *attendanceClock) now() time.Time { return c.current }

func newAttendanceFixture(t *testing.T) (*AttendanceService, *fakeAttendanceRepo, *attendanceClock) {
	t.Helper()
	loc, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)
	repo := newFakeAttendanceRepo()
	clock := &attendanceClock{current: time.Date(2024, 5, 6, 8, 0, 0, 0, loc)}
	svc := NewAttendanceService(repo, stubEnrollmentChecker{"parent/c1": true}, nil, zap.NewNop(), nil, loc)
	svc.now = clock.now
	return svc, repo, clock
}

func TestAttendanceServiceCheckInTwiceConflicts(t *testing.T) {
	svc, _, _ := newAttendanceFixture(t)
	ctx := context.Background()

	item, err := svc.CheckIn(ctx, staffID, AttendanceRequest{ChildID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "staff", item.StaffID)
	assert.Nil(t, item.CheckOutTime)

	_, err = svc.CheckIn(ctx, staffID, AttendanceRequest{ChildID: "c1"})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, err = svc.CheckIn(ctx, staffID, AttendanceRequest{ChildID: "missing"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.CheckIn(ctx, parentID, AttendanceRequest{ChildID: "c1"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.CheckIn(ctx, staffID, AttendanceRequest{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAttendanceServiceCheckOutWithoutCheckIn(t *testing.T) {
	svc, _, clock := newAttendanceFixture(t)
	ctx := context.Background()

	_, err := svc.CheckOut(ctx, staffID, AttendanceRequest{ChildID: "c1"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.CheckIn(ctx, staffID, AttendanceRequest{ChildID: "c1"})
	require.NoError(t, err)

	// Next local day: yesterday's open row no longer counts.
	clock.current = clock.current.Add(24 * time.Hour)
	_, err = svc.CheckOut(ctx, staffID, AttendanceRequest{ChildID: "c1"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.CheckIn(ctx, staffID, AttendanceRequest{ChildID: "c1"})
	assert.NoError(t, err)
}

func TestAttendanceServiceTodayBoard(t *testing.T) {
	svc, _, clock := newAttendanceFixture(t)
	ctx := context.Background()
	t1 := clock.current

	_, err := svc.CheckIn(ctx, staffID, AttendanceRequest{ChildID: "c1"})
	require.NoError(t, err)

	board, err := svc.Today(ctx, staffID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", board.Date)
	require.Len(t, board.Present, 1)
	assert.Equal(t, "c1", board.Present[0].ChildID)
	assert.Empty(t, board.Departed)
	require.Len(t, board.Absent, 1)
	assert.Equal(t, "c2", board.Absent[0].ID)
	assert.Equal(t, models.AttendanceSummary{Present: 1, Absent: 1, Total: 2}, board.Summary)

	clock.current = t1.Add(8 * time.Hour)
	out, err := svc.CheckOut(ctx, staffID, AttendanceRequest{ChildID: "c1", Notes: strPtr("picked up by grandma")})
	require.NoError(t, err)
	require.NotNil(t, out.CheckOutTime)
	assert.False(t, out.CheckOutTime.Before(t1))

	board, err = svc.Today(ctx, staffID)
	require.NoError(t, err)
	assert.Empty(t, board.Present)
	require.Len(t, board.Departed, 1)
	assert.Equal(t, "c1", board.Departed[0].ChildID)
	assert.False(t, board.Departed[0].CheckOutTime.Before(board.Departed[0].CheckInTime))
	assert.Equal(t, 1, board.Summary.Departed)

	_, err = svc.Today(ctx, parentID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestAttendanceServiceBoardPrefersOpenRow(t *testing.T) {
	svc, _, clock := newAttendanceFixture(t)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, staffID, AttendanceRequest{ChildID: "c2"})
	require.NoError(t, err)
	clock.current = clock.current.Add(time.Hour)
	_, err = svc.CheckOut(ctx, staffID, AttendanceRequest{ChildID: "c2"})
	require.NoError(t, err)
	clock.current = clock.current.Add(time.Hour)
	_, err = svc.CheckIn(ctx, staffID, AttendanceRequest{ChildID: "c2"})
	require.NoError(t, err)

	board, err := svc.Today(ctx, staffID)
	require.NoError(t, err)
	require.Len(t, board.Present, 1)
	assert.Empty(t, board.Departed)
	assert.Equal(t, 2, board.Summary.Total)
}

func TestAttendanceServiceHistory(t *testing.T) {
	svc, _, _ := newAttendanceFixture(t)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, staffID, AttendanceRequest{ChildID: "c1"})
	require.NoError(t, err)

	items, pagination, err := svc.History(ctx, parentID, "c1", AttendanceHistoryQuery{From: "2024-05-06", To: "2024-05-06"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, pagination.Total)

	items, _, err = svc.History(ctx, staffID, "c1", AttendanceHistoryQuery{From: "2024-05-07"})
	require.NoError(t, err)
	assert.Empty(t, items)

	_, _, err = svc.History(ctx, parentID, "c2", AttendanceHistoryQuery{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, _, err = svc.History(ctx, staffID, "c1", AttendanceHistoryQuery{From: "2024-05-08", To: "2024-05-01"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAttendanceServiceReport(t *testing.T) {
	svc, _, _ := newAttendanceFixture(t)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, staffID, AttendanceRequest{ChildID: "c1", Notes: strPtr("sleepy")})
	require.NoError(t, err)

	file, err := svc.Report(ctx, staffID, "", "csv")
	require.NoError(t, err)
	assert.Equal(t, "attendance-2024-05-06.csv", file.Name)
	body := string(file.Data)
	assert.True(t, strings.HasPrefix(body, "Child,Status,Check-in,Check-out,Notes"))
	assert.Contains(t, body, "Ana Alpha,present,08:00,,sleepy")
	assert.Contains(t, body, "Ben Beta,absent")

	_, err = svc.Report(ctx, staffID, "", "docx")
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Report(ctx, parentID, "", "csv")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}
