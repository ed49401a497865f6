package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// ReceiptUseCase consulta ventas confirmadas y genera su comprobante PDF.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		generator:   generator,
	}
}

// GetSale devuelve la venta con sus líneas o ErrUnknownEntity.
func (uc *ReceiptUseCase) GetSale(ctx context.Context, saleID string) (*dto.SaleReceipt, error) {
	sale, err := uc.load(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return toReceipt(sale), nil
}

// DownloadReceipt genera el comprobante de la venta.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrUnknownEntity   si la venta no existe.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.load(ctx, saleID)
	if err != nil {
		return nil, "", err
	}

	lines := make([]ReceiptLine, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		name := "Producto " + l.ProductID
		if p, pErr := uc.productRepo.GetByID(ctx, l.ProductID); pErr == nil && p != nil {
			name = p.Name
		}
		lines = append(lines, ReceiptLine{SaleLine: l, ProductName: name})
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, sale, lines)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	short := sale.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return pdfBytes, fmt.Sprintf("comprobante_%s.pdf", short), nil
}

func (uc *ReceiptUseCase) load(ctx context.Context, saleID string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrUnknownEntity
	}
	lines, err := uc.saleRepo.GetLines(ctx, saleID)
	if err != nil {
		return nil, err
	}
	sale.Lines = lines
	return sale, nil
}
