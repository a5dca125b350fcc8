package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	err   error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context, filter models.UserFilter) ([]models.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		if !u.IsActive {
			continue
		}
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(u.Email+u.FirstName+u.LastName), strings.ToLower(filter.Search)) {
			continue
		}
		items = append(items, *u)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, len(items), nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	copy := *user
	f.users[user.ID] = &copy
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return sql.ErrNoRows
	}
	for id, u := range f.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	copy := *user
	copy.PasswordHash = f.users[user.ID].PasswordHash
	f.users[user.ID] = &copy
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUserRepo) Deactivate(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || !u.IsActive {
		return sql.ErrNoRows
	}
	u.IsActive = false
	return nil
}

type fakeChildRepo struct {
	mu       sync.Mutex
	children map[string]*models.Child
	// approved maps parent id to the child ids visible to them.
	approved map[string][]string
}

func newFakeChildRepo(children ...*models.Child) *fakeChildRepo {
	repo := &fakeChildRepo{children: make(map[string]*models.Child), approved: make(map[string][]string)}
	for _, c := range children {
		repo.children[c.ID] = c
	}
	return repo
}

func (f *fakeChildRepo) List(_ context.Context, filter models.ChildFilter) ([]models.Child, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var allowed map[string]bool
	if filter.ParentID != "" {
		allowed = make(map[string]bool)
		for _, id := range f.approved[filter.ParentID] {
			allowed[id] = true
		}
	}
	items := make([]models.Child, 0)
	for _, c := range f.children {
		if !c.IsActive {
			continue
		}
		if allowed != nil && !allowed[c.ID] {
			continue
		}
		if filter.Gender != "" && c.Gender != filter.Gender {
			continue
		}
		items = append(items, *c)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].LastName < items[j].LastName })
	return items, len(items), nil
}

func (f *fakeChildRepo) FindByID(_ context.Context, id string) (*models.Child, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.children[id]
	if !ok || !c.IsActive {
		return nil, sql.ErrNoRows
	}
	copy := *c
	return &copy, nil
}

func (f *fakeChildRepo) Create(_ context.Context, child *models.Child) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if child.ID == "" {
		child.ID = uuid.NewString()
	}
	child.IsActive = true
	copy := *child
	f.children[child.ID] = &copy
	return nil
}

func (f *fakeChildRepo) Update(_ context.Context, child *models.Child) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.children[child.ID]
	if !ok || !c.IsActive {
		return sql.ErrNoRows
	}
	copy := *child
	f.children[child.ID] = &copy
	return nil
}

func (f *fakeChildRepo) Deactivate(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.children[id]
	if !ok || !c.IsActive {
		return sql.ErrNoRows
	}
	c.IsActive = false
	return nil
}

type stubEnrollmentChecker map[string]bool

func (s stubEnrollmentChecker) HasApprovedEnrollment(_ context.Context, parentID, childID string) (bool, error) {
	return s[parentID+"/"+childID], nil
}

func strPtr(s string) *string { return &s }

func testUser(id string, role models.UserRole) *models.User {
	return &models.User{
		ID:        id,
		Email:     id + "@example.com",
		FirstName: strings.ToUpper(id[:1]) + id[1:],
		LastName:  "Test",
		Role:      role,
		IsActive:  true,
	}
}
