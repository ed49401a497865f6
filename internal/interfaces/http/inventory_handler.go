package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// InventoryHandler maneja las peticiones HTTP de insumos y su libro de movimientos (protegido).
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear insumo
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIngredientRequest  true  "name, unit, reorder_threshold"
// @Success      201   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ing, err := h.uc.CreateIngredient(c.Context(), in.Name, in.Unit, in.ReorderThreshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toIngredientResponse(ing))
}

// List godoc
// @Summary      Listar insumos
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo insumos activos"
// @Success      200  {array}  dto.IngredientResponse
// @Router       /api/ingredients [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListIngredients(c.Context(), c.QueryBool("active", false))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		out = append(out, toIngredientResponse(ing))
	}
	return c.JSON(out)
}

// Stock godoc
// @Summary      Stock actual y costo promedio de un insumo
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del insumo"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/stock [get]
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	id := c.Params("id")
	qty, cost, err := h.uc.CurrentStock(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockResponse{IngredientID: id, Quantity: qty, UnitCost: cost})
}

// Purchase godoc
// @Summary      Registrar compra
// @Description  Suma stock y recalcula el costo promedio ponderado.
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del insumo"
// @Param        body  body  dto.PurchaseRequest  true  "quantity, unit_cost"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/purchases [post]
func (h *InventoryHandler) Purchase(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id := c.Params("id")
	newCost, err := h.uc.RecordPurchase(c.Context(), id, in.Quantity, in.UnitCost, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PurchaseResponse{IngredientID: id, NewUnitCost: newCost})
}

// Loss godoc
// @Summary      Registrar merma
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del insumo"
// @Param        body  body  dto.LossRequest  true  "quantity, reason"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/losses [post]
func (h *InventoryHandler) Loss(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.LossRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.RecordLoss(c.Context(), c.Params("id"), in.Quantity, in.Reason, userID); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "merma registrada"})
}

// Adjust godoc
// @Summary      Registrar ajuste por conteo físico
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del insumo"
// @Param        body  body  dto.AdjustmentRequest  true  "delta (con signo), reason"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.RecordAdjustment(c.Context(), c.Params("id"), in.Delta, in.Reason, userID); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "ajuste registrado"})
}

// Movements godoc
// @Summary      Historial de movimientos de un insumo
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del insumo"
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        limit   query  int     false  "Máx. registros (default 100, max 500)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementPage
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	from, err := optionalDate(c.Query("from"), false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "from debe ser YYYY-MM-DD"})
	}
	to, err := optionalDate(c.Query("to"), true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "to debe ser YYYY-MM-DD"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "limit y offset deben ser enteros"})
	}
	page.Clamp(inventory.MovementsPageDefault, inventory.MovementsPageMax)
	list, err := h.uc.ListMovements(c.Context(), c.Params("id"), from, to, page)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:           m.ID,
			IngredientID: m.IngredientID,
			Kind:         m.Kind,
			Quantity:     m.Quantity,
			UnitCost:     m.UnitCost,
			Reason:       m.Reason,
			Reference:    m.Reference,
			CreatedAt:    m.CreatedAt,
			CreatedBy:    m.CreatedBy,
		})
	}
	return c.JSON(dto.MovementPage{
		Movements: out,
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Returned: len(out)},
	})
}

// optionalDate parsea YYYY-MM-DD; con endOfDay devuelve el último instante del día.
func optionalDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func toIngredientResponse(i *entity.Ingredient) dto.IngredientResponse {
	return dto.IngredientResponse{
		ID:               i.ID,
		Name:             i.Name,
		Unit:             i.Unit,
		StockQuantity:    i.StockQuantity,
		UnitCost:         i.UnitCost,
		ReorderThreshold: i.ReorderThreshold,
		Critical:         i.IsCritical(),
		Active:           i.Active,
	}
}
