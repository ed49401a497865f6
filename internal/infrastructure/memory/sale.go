package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// SaleRepo implementa repository.SaleRepository.
type SaleRepo struct{ scope }

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return r.write(ctx, func(st *state) error {
		if _, ok := st.sales[sale.ID]; ok {
			return domain.ErrDuplicate
		}
		s := *sale
		s.Lines = nil
		st.sales[s.ID] = s
		return nil
	})
}

func (r *SaleRepo) CreateLine(ctx context.Context, line *entity.SaleLine) error {
	return r.write(ctx, func(st *state) error {
		if _, ok := st.sales[line.SaleID]; !ok {
			return domain.ErrUnknownEntity
		}
		st.saleLines[line.SaleID] = append(st.saleLines[line.SaleID], *line)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.read(func(st *state) {
		if s, ok := st.sales[id]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *SaleRepo) GetLines(_ context.Context, saleID string) ([]entity.SaleLine, error) {
	var out []entity.SaleLine
	r.read(func(st *state) {
		out = slices.Clone(st.saleLines[saleID])
	})
	return out, nil
}

// ExpenseRepo implementa repository.ExpenseRepository.
type ExpenseRepo struct{ scope }

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.OperatingExpense) error {
	return r.write(ctx, func(st *state) error {
		st.expenses = append(st.expenses, *e)
		return nil
	})
}
