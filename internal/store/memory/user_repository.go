package memory

import (
	"context"

	"petshop-be/internal/auth"
	"petshop-be/internal/user"

	"github.com/google/uuid"
)

type UserRepository struct {
	s *Store
}

var _ user.Repository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, email, passwordHash string, role auth.Role) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return user.User{}, user.ErrEmailExists
		}
	}

	u := &user.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  passwordHash,
		Role:      role,
		CreatedAt: r.s.now(),
	}
	r.s.users[u.ID] = u
	return *u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *UserRepository) GetProfile(_ context.Context, userID string) (*user.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.profileLocked(userID)
}

func (r *UserRepository) CreateProfile(_ context.Context, p *user.Profile) (*user.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[p.ID]; !ok {
		return nil, user.ErrUserNotFound
	}
	now := r.s.now()
	stored := cloneProfile(p)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.profiles[p.ID] = stored

	return r.s.profileLocked(p.ID)
}

func (r *UserRepository) UpdateProfile(_ context.Context, params user.UpdateProfileParams) (*user.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[params.UserID]
	if !ok {
		return nil, user.ErrProfileNotFound
	}
	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.Phone != nil {
		phone := *params.Phone
		p.Phone = &phone
	}
	if params.Address != nil {
		address := *params.Address
		p.Address = &address
	}
	p.UpdatedAt = r.s.now()

	return r.s.profileLocked(params.UserID)
}

// profileLocked joins the profile with its user; s.mu must be held.
func (s *Store) profileLocked(userID string) (*user.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, user.ErrProfileNotFound
	}
	out := cloneProfile(p)
	if u, ok := s.users[userID]; ok {
		out.Email = u.Email
		out.Role = u.Role
	}
	return out, nil
}
