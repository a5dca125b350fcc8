package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/query"
)

const attendanceColumns = "a.id, a.child_id, a.staff_id, a.check_in_time, a.check_out_time, a.notes, a.created_at, a.updated_at, c.first_name AS child_first_name, c.last_name AS child_last_name"

const attendanceFrom = "attendance a JOIN children c ON c.id = a.child_id"

// AttendanceRepository stores daily check-in/check-out rows.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// CheckIn inserts an open row for the child unless one already exists within [dayStart, dayEnd).
// The child row is locked first so concurrent check-ins for the same child serialize.
// Returns sql.ErrNoRows when the child is missing or inactive and ErrDuplicate when a row is open.
func (r *AttendanceRepository) CheckIn(ctx context.Context, item *models.Attendance, dayStart, dayEnd time.Time) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin checkin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var childID string
	lockChild := tx.Rebind(`SELECT id FROM children WHERE id = ? AND is_active = ? FOR UPDATE`)
	if err = tx.GetContext(ctx, &childID, lockChild, item.ChildID, true); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("lock child: %w", err)
	}

	var openID string
	findOpen := tx.Rebind(`SELECT id FROM attendance WHERE child_id = ? AND check_out_time IS NULL AND check_in_time >= ? AND check_in_time < ? LIMIT 1 FOR UPDATE`)
	err = tx.GetContext(ctx, &openID, findOpen, item.ChildID, dayStart, dayEnd)
	switch {
	case err == nil:
		err = fmt.Errorf("child %s already checked in: %w", item.ChildID, ErrDuplicate)
		return err
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("find open attendance: %w", err)
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = item.CheckInTime
	item.UpdatedAt = item.CheckInTime
	item.CheckOutTime = nil
	insert := tx.Rebind(`INSERT INTO attendance (id, child_id, staff_id, check_in_time, check_out_time, notes, created_at, updated_at) VALUES (?, ?, ?, ?, NULL, ?, ?, ?)`)
	if _, err = tx.ExecContext(ctx, insert, item.ID, item.ChildID, item.StaffID, item.CheckInTime, item.Notes, item.CreatedAt, item.UpdatedAt); err != nil {
		err = writeError("insert attendance", err)
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit checkin: %w", err)
	}
	return nil
}

// CheckOut closes the child's open row within [dayStart, dayEnd). The stored checkout time is
// never earlier than the check-in time. Returns sql.ErrNoRows when nothing is open.
func (r *AttendanceRepository) CheckOut(ctx context.Context, childID string, at time.Time, notes *string, dayStart, dayEnd time.Time) (item *models.Attendance, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin checkout transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var open models.Attendance
	findOpen := tx.Rebind(`SELECT id, child_id, staff_id, check_in_time, check_out_time, notes, created_at, updated_at FROM attendance WHERE child_id = ? AND check_out_time IS NULL AND check_in_time >= ? AND check_in_time < ? ORDER BY check_in_time DESC LIMIT 1 FOR UPDATE`)
	if err = tx.GetContext(ctx, &open, findOpen, childID, dayStart, dayEnd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find open attendance: %w", err)
	}

	if at.Before(open.CheckInTime) {
		at = open.CheckInTime
	}
	open.CheckOutTime = &at
	open.UpdatedAt = at
	if notes != nil {
		open.Notes = notes
	}

	update := tx.Rebind(`UPDATE attendance SET check_out_time = ?, notes = ?, updated_at = ? WHERE id = ?`)
	if _, err = tx.ExecContext(ctx, update, at, open.Notes, open.UpdatedAt, open.ID); err != nil {
		return nil, fmt.Errorf("close attendance: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}
	return &open, nil
}

// ListForDay returns every row of active children checked in within [dayStart, dayEnd).
func (r *AttendanceRepository) ListForDay(ctx context.Context, dayStart, dayEnd time.Time) ([]models.Attendance, error) {
	q, args := query.New(attendanceColumns, attendanceFrom).
		Where("c.is_active = ?", true).
		Where("a.check_in_time >= ?", dayStart).
		Where("a.check_in_time < ?", dayEnd).
		OrderBy("a.check_in_time ASC, a.id").
		Build()
	items := make([]models.Attendance, 0)
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list attendance for day: %w", err)
	}
	return items, nil
}

// ListAbsent returns active children without any row within [dayStart, dayEnd).
func (r *AttendanceRepository) ListAbsent(ctx context.Context, dayStart, dayEnd time.Time) ([]models.ChildSummary, error) {
	q, args := query.New("c.id, c.first_name, c.last_name", "children c").
		Where("c.is_active = ?", true).
		Where("NOT EXISTS (SELECT 1 FROM attendance a WHERE a.child_id = c.id AND a.check_in_time >= ? AND a.check_in_time < ?)", dayStart, dayEnd).
		OrderBy("c.last_name ASC, c.first_name ASC, c.id").
		Build()
	items := make([]models.ChildSummary, 0)
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list absent children: %w", err)
	}
	return items, nil
}

// ListByChild returns a page of one child's history, newest first.
func (r *AttendanceRepository) ListByChild(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, int, error) {
	page := query.NewPage(filter.Page, filter.Limit)
	b := query.New(attendanceColumns, attendanceFrom).
		Where("a.child_id = ?", filter.ChildID).
		WhereIf(filter.From != nil, "a.check_in_time >= ?", timeArg(filter.From)).
		WhereIf(filter.To != nil, "a.check_in_time < ?", timeArg(filter.To)).
		OrderBy("a.check_in_time DESC, a.id").
		Paginate(page)

	listQuery, args := b.Build()
	items := make([]models.Attendance, 0)
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(listQuery), args...); err != nil {
		return nil, 0, fmt.Errorf("list child attendance: %w", err)
	}

	countQuery, countArgs := b.BuildCount()
	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count child attendance: %w", err)
	}
	return items, total, nil
}

func timeArg(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
