package memory

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
	"github.com/jhoicas/estoque-cliente/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.TokenBlacklist = (*TokenBlacklist)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repositorio.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return domain.ErrDuplicate
		}
	}
	r.s.seq.user++
	user.ID = r.s.seq.user
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// TokenBlacklist refresh tokens revocados en memoria.
type TokenBlacklist struct {
	s   *Store
	now func() time.Time
}

// NewTokenBlacklist construye la blacklist.
func NewTokenBlacklist(s *Store) *TokenBlacklist {
	return &TokenBlacklist{s: s, now: time.Now}
}

// Revoke guarda el jti y purga los ya expirados.
func (b *TokenBlacklist) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	now := b.now()
	for k, exp := range b.s.revoked {
		if exp.Before(now) {
			delete(b.s.revoked, k)
		}
	}
	b.s.revoked[jti] = expiresAt
	return nil
}

func (b *TokenBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	_, ok := b.s.revoked[jti]
	return ok, nil
}
