package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/clinicflow/auth-service/internal/core/domain"
	"github.com/clinicflow/auth-service/internal/pkg/password"
)

// stubUserRepo is an in-memory ports.UserRepository.
type stubUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	mutations int

	findErr   error // returned by every lookup when set
	createErr error
	panicOn   string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) seed(email, plain, role string) *domain.User {
	hash, err := password.Hash(plain)
	if err != nil {
		panic(err)
	}
	r.nextID++
	u := &domain.User{
		ID:           fmt.Sprintf("user-%d", r.nextID),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	r.byID[u.ID] = u
	return cloneUser(u)
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.panicOn == "FindByEmail" {
		panic("boom")
	}
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.mutations++
	r.nextID++
	u := cloneUser(user)
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byID[u.ID] = u
	return cloneUser(u), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	r.mutations++
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Gender != nil {
		u.Gender = *update.Gender
	}
	if update.Avatar != nil {
		u.Avatar = *update.Avatar
	}
	if update.Age != nil {
		u.Age = *update.Age
	}
	if update.DoctorID != nil {
		u.DoctorID = *update.DoctorID
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) ChangePassword(_ context.Context, id, newPassword string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	r.mutations++
	u.PasswordHash = hash
	return cloneUser(u), nil
}
