package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas confirmadas y sus líneas (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera. Las líneas van por CreateLine.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, channel, status, total, total_cogs, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Channel, s.Status, s.Total, s.TotalCOGS, s.CreatedAt, nullable(s.CreatedBy))
	return mapError("insert sale", err)
}

func (r *SaleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (id, sale_id, product_id, quantity, unit_price, unit_cost, line_total, line_cogs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.SaleID, l.ProductID, l.Quantity, l.UnitPrice, l.UnitCost, l.LineTotal, l.LineCOGS,
	)
	return mapError("insert sale line", err)
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `
		SELECT id, channel, status, total, total_cogs, created_at, created_by
		FROM sales WHERE id = $1`
	var s entity.Sale
	var createdBy *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Channel, &s.Status, &s.Total, &s.TotalCOGS, &s.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get sale", err)
	}
	if createdBy != nil {
		s.CreatedBy = *createdBy
	}
	return &s, nil
}

func (r *SaleRepo) GetLines(ctx context.Context, saleID string) ([]entity.SaleLine, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, unit_cost, line_total, line_cogs
		FROM sale_lines WHERE sale_id = $1
		ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, mapError("list sale lines", err)
	}
	defer rows.Close()
	var lines []entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice,
			&l.UnitCost, &l.LineTotal, &l.LineCOGS); err != nil {
			return nil, mapError("scan sale line", err)
		}
		lines = append(lines, l)
	}
	return lines, mapError("list sale lines", rows.Err())
}

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo gastos operativos.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador.
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.OperatingExpense) error {
	query := `
		INSERT INTO operating_expenses (id, description, amount, expense_date, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, e.ID, e.Description, e.Amount, e.Date, e.CreatedAt)
	return mapError("insert expense", err)
}
