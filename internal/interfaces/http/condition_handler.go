package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cadena-api/internal/application/condition"
	"github.com/jhoicas/cadena-api/internal/application/dto"
)

// ConditionHandler maneja cambios de condición de producto y sus estadísticas.
type ConditionHandler struct {
	uc *condition.ApplyUseCase
}

// NewConditionHandler construye el handler de condición.
func NewConditionHandler(uc *condition.ApplyUseCase) *ConditionHandler {
	return &ConditionHandler{uc: uc}
}

// Apply godoc
// @Summary      Aplicar acción de condición
// @Description  DEFECTIVE, FIXED, RETURN o EXCHANGE: registra la fila del ledger, ajusta los buckets del producto (y del reemplazo en EXCHANGE) y aplica el efecto de caja con signo.
// @Tags         condition-logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ApplyConditionRequest  true  "acción"
// @Success      201   {object}  dto.ConditionLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/condition-logs [post]
func (h *ConditionHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyConditionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Apply(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return mapTransactionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Statistics godoc
// @Summary      Estadísticas de condición por sucursal
// @Tags         condition-logs
// @Produce      json
// @Security     BearerAuth
// @Param        branch_id  query  string  true  "sucursal"
// @Param        from       query  string  true  "fecha inicial RFC3339"
// @Param        to         query  string  true  "fecha final RFC3339"
// @Success      200  {object}  dto.ConditionStatsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/condition-logs/statistics [get]
func (h *ConditionHandler) Statistics(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")
	if branchID == "" {
		branchID = GetBranchID(c)
	}
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}
	out, err := h.uc.Statistics(c.UserContext(), branchID, from, to)
	if err != nil {
		return mapTransactionError(c, err)
	}
	return c.JSON(out)
}
