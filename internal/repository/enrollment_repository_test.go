package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/daycare-api/internal/models"
)

func TestHasApprovedEnrollment(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM enrollments WHERE parent_id = ? AND child_id = ? AND status = ?")).
		WithArgs("p1", "c1", "approved").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM enrollments WHERE parent_id = ? AND child_id = ? AND status = ?")).
		WithArgs("p2", "c1", "approved").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err := repo.HasApprovedEnrollment(context.Background(), "p1", "c1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasApprovedEnrollment(context.Background(), "p2", "c1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasOpenEnrollmentExcludesSelf(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM enrollments WHERE parent_id = ? AND child_id = ? AND status IN (?, ?) AND id <> ?")).
		WithArgs("p1", "c1", "pending", "approved", "e1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	open, err := repo.HasOpenEnrollment(context.Background(), "p1", "c1", "e1")
	require.NoError(t, err)
	assert.False(t, open)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEnrollmentsForParent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	now := time.Now()
	status := models.EnrollmentPending
	rows := sqlmock.NewRows([]string{"id", "parent_id", "child_id", "status", "enrollment_date", "notes", "created_at", "updated_at", "child_first_name", "child_last_name", "parent_first_name", "parent_last_name", "parent_email"}).
		AddRow("e1", "p1", "c1", "pending", now, nil, now, now, "Lea", "Martin", "Ada", "Martin", "ada@example.com")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.parent_id = ? AND e.status = ? ORDER BY e.created_at DESC, e.id LIMIT 10 OFFSET 0")).
		WithArgs("p1", "pending").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM "+enrollmentFrom+" WHERE e.parent_id = ? AND e.status = ?")).
		WithArgs("p1", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	items, total, err := repo.List(context.Background(), models.EnrollmentFilter{ParentID: "p1", Status: &status})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Lea", items[0].ChildFirstName)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEnrollment(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM enrollments WHERE id = ?")).
		WithArgs("e1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "e1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
