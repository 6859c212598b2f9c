package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cadena-api/internal/application/credit"
	"github.com/jhoicas/cadena-api/internal/application/dto"
)

// ScheduleHandler maneja cuotas de crédito y abonos.
type ScheduleHandler struct {
	uc *credit.UpdateScheduleUseCase
}

// NewScheduleHandler construye el handler de cuotas.
func NewScheduleHandler(uc *credit.UpdateScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{uc: uc}
}

// Update godoc
// @Summary      Abonar o actualizar una cuota
// @Description  paid_amount es acumulado (idempotente); amount_delta es incremental y tiene prioridad. Un delta positivo inserta una fila en el ledger de abonos y, si el canal es CASH, acredita la caja de la sucursal.
// @Tags         payment-schedules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID de la cuota"
// @Param        body  body  dto.UpdateScheduleRequest  true  "abono o metadatos"
// @Success      200   {object}  dto.ScheduleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payment-schedules/{id} [put]
func (h *ScheduleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateScheduleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return mapTransactionError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cuota con su transacción
// @Tags         payment-schedules
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la cuota"
// @Success      200  {object}  dto.ScheduleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payment-schedules/{id} [get]
func (h *ScheduleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapTransactionError(c, err)
	}
	return c.JSON(out)
}
