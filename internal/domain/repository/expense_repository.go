package repository

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// ExpenseRepository persiste gastos operativos.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.OperatingExpense) error
}
