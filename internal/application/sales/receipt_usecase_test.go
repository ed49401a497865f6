package sales_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/sales"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

type capturingGenerator struct {
	sale  *entity.Sale
	lines []sales.ReceiptLine
}

func (g *capturingGenerator) GenerateReceiptPDF(_ context.Context, sale *entity.Sale, lines []sales.ReceiptLine) ([]byte, error) {
	g.sale = sale
	g.lines = lines
	return []byte("%PDF-1.4"), nil
}

func TestDownloadReceipt_EnriqueceNombres(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	receipt, err := e.commit.CommitSale(ctx, testUser, sale(line(e.bowl, "2"), line(e.soda, "1")))
	require.NoError(t, err)

	gen := &capturingGenerator{}
	uc := sales.NewReceiptUseCase(e.store.Sales(), e.store.Products(), gen)
	pdf, filename, err := uc.DownloadReceipt(ctx, receipt.SaleID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.True(t, strings.HasPrefix(filename, "comprobante_"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))

	require.Len(t, gen.lines, 2)
	names := []string{gen.lines[0].ProductName, gen.lines[1].ProductName}
	assert.ElementsMatch(t, []string{"Bowl de arroz", "Bebida"}, names)
	assert.Equal(t, entity.SaleStatusCommitted, gen.sale.Status)
}

func TestDownloadReceipt_VentaInexistente(t *testing.T) {
	e := newEnv(t)
	uc := sales.NewReceiptUseCase(e.store.Sales(), e.store.Products(), &capturingGenerator{})
	_, _, err := uc.DownloadReceipt(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUnknownEntity)
}
