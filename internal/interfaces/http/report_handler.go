package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/reports"
)

// ReportHandler maneja los endpoints de reportes de gestión y gastos operativos.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ProfitAndLoss godoc
// @Summary      Estado de resultados del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Inicio (YYYY-MM-DD). Default: primer día del mes."
// @Param        to    query  string  false  "Fin (YYYY-MM-DD, inclusive). Default: hoy."
// @Success      200  {object}  dto.ProfitAndLossDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/pnl [get]
func (h *ReportHandler) ProfitAndLoss(c *fiber.Ctx) error {
	from, to, ok := period(c)
	if !ok {
		return invalidPeriod(c)
	}
	out, err := h.uc.ProfitAndLoss(c.Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Margins godoc
// @Summary      Margen y ranking por producto
// @Description  Productos ordenados por unidades vendidas; low_margin marca margen bajo 40%.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        to    query  string  false  "Fin (YYYY-MM-DD, inclusive)"
// @Success      200  {array}   dto.ProductMarginDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/margins [get]
func (h *ReportHandler) Margins(c *fiber.Ctx) error {
	from, to, ok := period(c)
	if !ok {
		return invalidPeriod(c)
	}
	out, err := h.uc.ProductMargins(c.Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// KPIs godoc
// @Summary      KPIs operacionales
// @Description  Tasa de quiebre, rotación de inventario y porcentaje de merma del período.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        to    query  string  false  "Fin (YYYY-MM-DD, inclusive)"
// @Success      200  {object}  dto.OperationalKPIsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/kpis [get]
func (h *ReportHandler) KPIs(c *fiber.Ctx) error {
	from, to, ok := period(c)
	if !ok {
		return invalidPeriod(c)
	}
	out, err := h.uc.OperationalKPIs(c.Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Resumen del día y del mes
// @Description  Ventas y margen de hoy y del mes en curso, con los 5 productos más vendidos del mes.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), time.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Insumos en o bajo su umbral con la cantidad sugerida de compra.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/reports/replenishment [get]
func (h *ReportHandler) Replenishment(c *fiber.Ctx) error {
	list, err := h.uc.Replenishment(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// CreateExpense godoc
// @Summary      Registrar gasto operativo
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "description, amount, date (YYYY-MM-DD)"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ReportHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	date := time.Now()
	if in.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, in.Date, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
		}
		date = parsed
	}
	e, err := h.uc.RecordExpense(c.Context(), in.Description, in.Amount, date)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date.Format(dateLayout),
	})
}

// period lee from/to; por defecto desde el primer día del mes en curso hasta hoy.
func period(c *fiber.Ctx) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now
	if s := c.Query("from"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		to = t
	}
	return from, to, true
}

func invalidPeriod(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "from/to deben ser YYYY-MM-DD"})
}
