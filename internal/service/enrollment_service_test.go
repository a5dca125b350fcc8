package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/daycare-api/internal/access"
	"github.com/noah-isme/daycare-api/internal/models"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
)

type fakeEnrollmentRepo struct {
	items map[string]*models.Enrollment
}

func (f *fakeEnrollmentRepo) List(_ context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, int, error) {
	out := make([]models.Enrollment, 0)
	for _, e := range f.items {
		if filter.ParentID != "" && e.ParentID != filter.ParentID {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		out = append(out, *e)
	}
	return out, len(out), nil
}

func (f *fakeEnrollmentRepo) FindByID(_ context.Context, id string) (*models.Enrollment, error) {
	e, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *e
	return &copy, nil
}

func (f *fakeEnrollmentRepo) HasOpenEnrollment(_ context.Context, parentID, childID, excludeID string) (bool, error) {
	for id, e := range f.items {
		if id != excludeID && e.ParentID == parentID && e.ChildID == childID && isOpenEnrollment(e.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, item *models.Enrollment) error {
	item.ID = uuid.NewString()
	copy := *item
	f.items[item.ID] = &copy
	return nil
}

func (f *fakeEnrollmentRepo) Update(_ context.Context, item *models.Enrollment) error {
	if _, ok := f.items[item.ID]; !ok {
		return sql.ErrNoRows
	}
	copy := *item
	f.items[item.ID] = &copy
	return nil
}

func (f *fakeEnrollmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

func newEnrollmentFixture() (*EnrollmentService, *fakeEnrollmentRepo) {
	repo := &fakeEnrollmentRepo{items: make(map[string]*models.Enrollment)}
	children, _ := newChildFixture()
	users := newFakeUserRepo(
		testUser("staff", models.RoleStaff),
		testUser("parent", models.RoleParent),
		testUser("other", models.RoleParent),
	)
	return NewEnrollmentService(repo, children.repo, users, nil, zap.NewNop(), nil, nil), repo
}

func TestEnrollmentServiceParentCreatesPending(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	ctx := context.Background()
	approved := models.EnrollmentApproved

	item, err := svc.Create(ctx, parentID, CreateEnrollmentRequest{ChildID: "c2", ParentID: "other", Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, "parent", item.ParentID)
	assert.Equal(t, models.EnrollmentPending, item.Status)
	assert.Equal(t, "Ben", item.ChildFirstName)

	_, err = svc.Create(ctx, parentID, CreateEnrollmentRequest{ChildID: "c2"})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, err = svc.Create(ctx, parentID, CreateEnrollmentRequest{ChildID: "c3"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestEnrollmentServiceStaffCreate(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	ctx := context.Background()
	approved := models.EnrollmentApproved

	_, err := svc.Create(ctx, staffID, CreateEnrollmentRequest{ChildID: "c1"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Create(ctx, staffID, CreateEnrollmentRequest{ChildID: "c1", ParentID: "staff"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	item, err := svc.Create(ctx, staffID, CreateEnrollmentRequest{ChildID: "c1", ParentID: "other", Status: &approved, EnrollmentDate: strPtr("2024-09-01")})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentApproved, item.Status)
	assert.Equal(t, "2024-09-01", item.EnrollmentDate.Format(dateLayout))
}

func TestEnrollmentServiceVisibility(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	ctx := context.Background()
	other := access.Identity{UserID: "other", Role: models.RoleParent}

	mine, err := svc.Create(ctx, parentID, CreateEnrollmentRequest{ChildID: "c1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, other, CreateEnrollmentRequest{ChildID: "c2"})
	require.NoError(t, err)

	items, pagination, err := svc.List(ctx, parentID, models.EnrollmentFilter{ParentID: "other"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, mine.ID, items[0].ID)
	assert.Equal(t, 1, pagination.Total)

	items, _, err = svc.List(ctx, staffID, models.EnrollmentFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.Get(ctx, other, mine.ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestEnrollmentServiceUpdateRules(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	ctx := context.Background()
	approved := models.EnrollmentApproved
	cancelled := models.EnrollmentCancelled
	pending := models.EnrollmentPending

	item, err := svc.Create(ctx, parentID, CreateEnrollmentRequest{ChildID: "c1"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, parentID, item.ID, UpdateEnrollmentRequest{Status: &approved})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	updated, err := svc.Update(ctx, parentID, item.ID, UpdateEnrollmentRequest{Notes: strPtr("mornings only")})
	require.NoError(t, err)
	assert.Equal(t, "mornings only", *updated.Notes)

	updated, err = svc.Update(ctx, staffID, item.ID, UpdateEnrollmentRequest{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentApproved, updated.Status)

	_, err = svc.Update(ctx, parentID, item.ID, UpdateEnrollmentRequest{Status: &cancelled})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.Update(ctx, staffID, item.ID, UpdateEnrollmentRequest{Status: &cancelled})
	require.NoError(t, err)

	_, err = svc.Create(ctx, parentID, CreateEnrollmentRequest{ChildID: "c1"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, staffID, item.ID, UpdateEnrollmentRequest{Status: &pending})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestEnrollmentServiceDelete(t *testing.T) {
	svc, repo := newEnrollmentFixture()
	ctx := context.Background()

	item, err := svc.Create(ctx, parentID, CreateEnrollmentRequest{ChildID: "c1"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, parentID, item.ID), appErrors.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, staffID, item.ID))
	assert.Empty(t, repo.items)
	assert.ErrorIs(t, svc.Delete(ctx, staffID, item.ID), appErrors.ErrNotFound)
}
