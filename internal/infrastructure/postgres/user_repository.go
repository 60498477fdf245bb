package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
	"github.com/jhoicas/estoque-cliente/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.TokenBlacklist = (*TokenBlacklist)(nil)
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste el usuario y rellena su ID.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO usuarios (username, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id`,
		u.Username, u.PasswordHash, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// FindByID obtiene un usuario por ID.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, `SELECT id, username, password_hash, created_at FROM usuarios WHERE id = $1`, id)
}

// FindByUsername obtiene un usuario por username.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT id, username, password_hash, created_at FROM usuarios WHERE username = $1`, username)
}

func (r *UserRepo) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// TokenBlacklist refresh tokens revocados en la tabla tokens_revogados.
type TokenBlacklist struct {
	q Querier
}

// NewTokenBlacklist construye la blacklist.
func NewTokenBlacklist(q Querier) *TokenBlacklist {
	return &TokenBlacklist{q: q}
}

// Revoke guarda el jti (idempotente) y purga los ya expirados.
func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if _, err := b.q.Exec(ctx, `DELETE FROM tokens_revogados WHERE expira_em < now()`); err != nil {
		return fmt.Errorf("purgar tokens: %w", err)
	}
	_, err := b.q.Exec(ctx,
		`INSERT INTO tokens_revogados (jti, expira_em) VALUES ($1, $2) ON CONFLICT (jti) DO NOTHING`,
		jti, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("revogar token: %w", err)
	}
	return nil
}

// IsRevoked indica si el jti está en la blacklist.
func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := b.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tokens_revogados WHERE jti = $1)`, jti).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("consultar blacklist: %w", err)
	}
	return revoked, nil
}
