package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/sige-scm/sige-backend/internal/application/dto"
	"github.com/sige-scm/sige-backend/internal/application/stock"
	"github.com/sige-scm/sige-backend/internal/domain"
)

// StockHandler maneja las peticiones HTTP del libro de inventario.
type StockHandler struct {
	register    *stock.RegisterProductUseCase
	movement    *stock.PostMovementUseCase
	queries     *stock.QueryUseCase
	consistency *stock.ConsistencyUseCase
	export      *stock.ExportUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	register *stock.RegisterProductUseCase,
	movement *stock.PostMovementUseCase,
	queries *stock.QueryUseCase,
	consistency *stock.ConsistencyUseCase,
	export *stock.ExportUseCase,
) *StockHandler {
	return &StockHandler{
		register:    register,
		movement:    movement,
		queries:     queries,
		consistency: consistency,
		export:      export,
	}
}

// RegisterProduct godoc
// @Summary      Registrar un producto
// @Description  Crea el producto y su saldo inicial en cero dentro de una sola transacción.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterProductRequest  true  "sku, name, min_level, max_level, cost"
// @Success      201  {object}  dto.RegisterProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *StockHandler) RegisterProduct(c *fiber.Ctx) error {
	var in dto.RegisterProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.register.Register(c.Context(), stock.RegisterInputDTO{
		SKU:      in.SKU,
		Name:     in.Name,
		MinLevel: in.MinLevel,
		MaxLevel: in.MaxLevel,
		Cost:     in.Cost,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku y name son obligatorios"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DUPLICATE_SKU", Message: fmt.Sprintf("el SKU %s ya está registrado", in.SKU)})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterProductResponse{Message: "producto registrado", SKU: product.SKU})
}

// PostMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  E suma al saldo, S descuenta validando disponible bajo lock de fila.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostMovementRequest  true  "sku, direction (E|S), quantity"
// @Success      201  {object}  dto.PostMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *StockHandler) PostMovement(c *fiber.Ctx) error {
	var in dto.PostMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.movement.PostMovement(c.Context(), stock.MovementInputDTO{
		SKU:       in.SKU,
		Direction: in.Direction,
		Quantity:  in.Quantity,
	})
	if err != nil {
		// El mensaje lleva el saldo actual para que el cliente lo muestre.
		var insufficient *domain.InsufficientStockError
		if errors.As(err, &insufficient) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insufficient.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "direction debe ser E o S y quantity mayor a cero"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "SKU no registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PostMovementResponse{
		Message:      "movimiento registrado",
		SKU:          result.SKU,
		NewBalance:   result.NewBalance,
		BelowMinimum: result.BelowMinimum,
	})
}

// GetBalance godoc
// @Summary      Saldo actual de un SKU
// @Tags         stock
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/balances/{sku} [get]
func (h *StockHandler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.queries.GetBalance(c.Context(), c.Params("sku"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "SKU no registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.BalanceResponse{SKU: balance.SKU, Quantity: balance.Quantity, UpdatedAt: balance.UpdatedAt})
}

// ListProducts godoc
// @Summary      Catálogo con saldos
// @Description  Todos los productos con su saldo vigente, ordenados por SKU.
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *StockHandler) ListProducts(c *fiber.Ctx) error {
	items, err := h.queries.ListProducts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.CatalogItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.CatalogItemResponse{
			SKU:       it.Product.SKU,
			Name:      it.Product.Name,
			Balance:   it.Balance,
			MinLevel:  it.Product.MinLevel,
			Cost:      it.Product.Cost,
			UpdatedAt: it.BalanceUpdatedAt,
		})
	}
	return c.JSON(dto.CatalogResponse{Items: out, Total: len(out)})
}

// ListMovements godoc
// @Summary      Historial de movimientos de un SKU
// @Description  Del más reciente al más antiguo, paginado con limit/offset.
// @Tags         stock
// @Produce      json
// @Param        sku     query  string  true   "SKU"
// @Param        limit   query  int     false  "Tamaño de página (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "limit/offset inválidos"})
	}
	page.DefaultPage()

	movements, err := h.queries.ListMovements(c.Context(), c.Query("sku"), page.Limit, page.Offset)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku es obligatorio"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "SKU no registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:        m.ID,
			SKU:       m.SKU,
			Direction: m.Direction,
			Quantity:  m.Quantity,
			MovedAt:   m.MovedAt,
		})
	}
	return c.JSON(dto.MovementListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// ExportCatalog godoc
// @Summary      Exportar catálogo a XLSX
// @Description  Descarga la planilla de productos con saldos.
// @Tags         stock
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products/export [get]
func (h *StockHandler) ExportCatalog(c *fiber.Ctx) error {
	b, err := h.export.CatalogXLSX(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="catalogo.xlsx"`)
	return c.Send(b)
}

// CheckConsistency godoc
// @Summary      Verificar consistencia del libro
// @Description  Compara cada saldo contra la suma firmada de sus movimientos.
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.ConsistencyResponse  "libro consistente"
// @Failure      409  {object}  dto.ConsistencyResponse  "saldos que no cuadran"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ledger/consistency [get]
func (h *StockHandler) CheckConsistency(c *fiber.Ctx) error {
	mismatches, err := h.consistency.Check(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if len(mismatches) == 0 {
		return c.JSON(dto.ConsistencyResponse{Consistent: true})
	}
	out := make([]dto.LedgerMismatchDTO, 0, len(mismatches))
	for _, m := range mismatches {
		out = append(out, dto.LedgerMismatchDTO{SKU: m.SKU, Balance: m.Balance, MovementSum: m.MovementSum})
	}
	return c.Status(fiber.StatusConflict).JSON(dto.ConsistencyResponse{Consistent: false, Mismatches: out})
}
