package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
)

const dashboardTopProducts = 5 // productos en el widget del dashboard

// Dashboard resumen de ventas y margen del día y del mes en curso.
//
// Tres consultas en paralelo:
//  1. GetSalesMetrics(hoy)  → TodaySales + TodayMargin
//  2. GetSalesMetrics(mes)  → MonthlySales + MonthlyMargin
//  3. ProductMargins(mes)   → TopProducts (top 5 por unidades)
func (uc *ReportUseCase) Dashboard(ctx context.Context, now time.Time) (*dto.DashboardSummaryDTO, error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		todayRevenue, todayCOGS decimal.Decimal
		monthRevenue, monthCOGS decimal.Decimal
		top                     []dto.ProductMarginDTO
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if todayRevenue, todayCOGS, err = uc.analyticsRepo.GetSalesMetrics(gctx, todayStart, todayEnd); err != nil {
			return fmt.Errorf("dashboard: métricas de hoy: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if monthRevenue, monthCOGS, err = uc.analyticsRepo.GetSalesMetrics(gctx, monthStart, todayEnd); err != nil {
			return fmt.Errorf("dashboard: métricas del mes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if top, err = uc.ProductMargins(gctx, monthStart, todayEnd); err != nil {
			return fmt.Errorf("dashboard: top productos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(top) > dashboardTopProducts {
		top = top[:dashboardTopProducts]
	}
	return &dto.DashboardSummaryDTO{
		TodaySales:    todayRevenue.Round(2),
		TodayMargin:   todayRevenue.Sub(todayCOGS).Round(2),
		MonthlySales:  monthRevenue.Round(2),
		MonthlyMargin: monthRevenue.Sub(monthCOGS).Round(2),
		TopProducts:   top,
		DateLabel:     monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
