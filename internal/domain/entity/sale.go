package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// Estados de una venta.
const (
	SaleStatusDraft      = "draft"
	SaleStatusValidating = "validating"
	SaleStatusCommitted  = "committed"
	SaleStatusAborted    = "aborted"
)

// SaleLine es una línea del carrito. UnitCost (CMV unitario) y LineCOGS se calculan al validar.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal
	LineTotal decimal.Decimal
	LineCOGS  decimal.Decimal
}

// Sale es una venta. Se confirma completa (committed) o no deja rastro (aborted).
type Sale struct {
	ID        string
	Channel   string // salón, delivery, retiro...
	Status    string
	Lines     []SaleLine
	Total     decimal.Decimal
	TotalCOGS decimal.Decimal
	CreatedAt time.Time
	CreatedBy string
}

// NewDraftSale crea un carrito vacío en estado draft.
func NewDraftSale(channel string) *Sale {
	return &Sale{Channel: channel, Status: SaleStatusDraft}
}

// AddLine agrega una línea al carrito. Solo en draft.
func (s *Sale) AddLine(productID string, quantity, unitPrice decimal.Decimal) error {
	if s.Status != SaleStatusDraft {
		return domain.ErrInvalidSaleState
	}
	s.Lines = append(s.Lines, SaleLine{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: quantity.Mul(unitPrice),
	})
	s.recalculateTotal()
	return nil
}

// RemoveLine quita la línea en la posición index. Solo en draft.
func (s *Sale) RemoveLine(index int) error {
	if s.Status != SaleStatusDraft {
		return domain.ErrInvalidSaleState
	}
	if index < 0 || index >= len(s.Lines) {
		return domain.ErrInvalidInput
	}
	s.Lines = append(s.Lines[:index], s.Lines[index+1:]...)
	s.recalculateTotal()
	return nil
}

// Clear descarta el carrito sin efectos secundarios.
func (s *Sale) Clear() error {
	if s.Status != SaleStatusDraft {
		return domain.ErrInvalidSaleState
	}
	s.Lines = nil
	s.Total = decimal.Zero
	return nil
}

// BeginValidation pasa de draft a validating.
func (s *Sale) BeginValidation() error {
	if s.Status != SaleStatusDraft {
		return domain.ErrInvalidSaleState
	}
	s.Status = SaleStatusValidating
	return nil
}

// MarkCommitted cierra la venta como confirmada.
func (s *Sale) MarkCommitted(at time.Time) error {
	if s.Status != SaleStatusValidating {
		return domain.ErrInvalidSaleState
	}
	s.Status = SaleStatusCommitted
	s.CreatedAt = at
	return nil
}

// MarkAborted cierra la venta como abortada.
func (s *Sale) MarkAborted() error {
	if s.Status != SaleStatusValidating {
		return domain.ErrInvalidSaleState
	}
	s.Status = SaleStatusAborted
	return nil
}

// IsTerminal indica si la venta ya no admite transiciones.
func (s *Sale) IsTerminal() bool {
	return s.Status == SaleStatusCommitted || s.Status == SaleStatusAborted
}

func (s *Sale) recalculateTotal() {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.LineTotal)
	}
	s.Total = total
}
