package repository

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para operadores.
type UserRepository interface {
	// Create devuelve domain.ErrDuplicate si el email ya está registrado.
	Create(ctx context.Context, user *entity.User) error
	// GetByEmail devuelve (nil, nil) si no existe. La comparación ignora mayúsculas.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
