package ports

import (
	"context"

	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

// AuthGateway endpoints de autenticación del backend.
type AuthGateway interface {
	// Login intercambia credenciales por un par de tokens. No requiere sesión.
	Login(ctx context.Context, username, password string) (dto.TokenPair, error)
	// Logout revoca el refresh token en el servidor. Requiere sesión.
	Logout(ctx context.Context, refreshToken string) error
}

// ProductGateway CRUD remoto de productos.
type ProductGateway interface {
	// List devuelve los productos en el orden del servidor (por nome).
	List(ctx context.Context) ([]entity.Product, error)
	// Search envía ?search=term tal cual, incluso vacío. Sin filtrado local.
	Search(ctx context.Context, term string) ([]entity.Product, error)
	Get(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, in dto.ProductRequest) (*entity.Product, error)
	Update(ctx context.Context, id int64, in dto.ProductRequest) (*entity.Product, error)
	Delete(ctx context.Context, id int64) error
}

// MovementCreated resultado de crear una movimentação, con el alerta del servidor.
type MovementCreated struct {
	Movement       entity.Movement
	AlertaEstoque  bool
	MensagemAlerta string
}

// MovementGateway CRUD remoto de movimentações.
type MovementGateway interface {
	List(ctx context.Context) ([]entity.Movement, error)
	Create(ctx context.Context, in dto.MovementRequest) (*MovementCreated, error)
	Update(ctx context.Context, id int64, in dto.MovementRequest) (*entity.Movement, error)
	Delete(ctx context.Context, id int64) error
}
