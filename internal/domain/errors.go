package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio del motor de ventas e inventario.
var (
	ErrInvalidQuantity     = errors.New("cantidad o costo no positivo")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrUnknownEntity       = errors.New("producto o insumo inexistente o inactivo")
	ErrTransactionConflict = errors.New("conflicto de concurrencia, reintente")
	ErrPersistenceFailure  = errors.New("falla de persistencia")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidSaleState    = errors.New("transición de estado de venta inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
)

// InsufficientStockError detalla qué insumo no alcanza para la operación.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	IngredientID string
	Required     decimal.Decimal
	Available    decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para insumo %s: requerido %s, disponible %s",
		e.IngredientID, e.Required.String(), e.Available.String())
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// PersistenceError envuelve un error del almacenamiento con la operación que falló.
// errors.Is(err, ErrPersistenceFailure) es verdadero.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistenceFailure
}
