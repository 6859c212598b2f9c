package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateScheduleRequest body para PUT /api/payment-schedules/:id.
// PaidAmount es acumulado (idempotente); AmountDelta es incremental y tiene
// prioridad si vienen ambos. Los demás campos son metadatos de la cuota.
type UpdateScheduleRequest struct {
	PaidAmount   *decimal.Decimal `json:"paid_amount,omitempty"`
	AmountDelta  *decimal.Decimal `json:"amount_delta,omitempty"`
	PaidAt       *time.Time       `json:"paid_at,omitempty"`
	PaidChannel  *string          `json:"paid_channel,omitempty"`
	PaidByUserID *string          `json:"paid_by_user_id,omitempty"`
	IsPaid       *bool            `json:"is_paid,omitempty"`
	Rating       *string          `json:"rating,omitempty"`
}

// ScheduleResponse cuota actualizada con su transacción, cliente y líneas.
type ScheduleResponse struct {
	ID            string               `json:"id"`
	TransactionID string               `json:"transaction_id"`
	MonthIndex    int                  `json:"month_index"`
	Payment       decimal.Decimal      `json:"payment"`
	PaidAmount    decimal.Decimal      `json:"paid_amount"`
	IsPaid        bool                 `json:"is_paid"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
	PaidChannel   *string              `json:"paid_channel,omitempty"`
	PaidByUserID  *string              `json:"paid_by_user_id,omitempty"`
	Rating        *string              `json:"rating,omitempty"`
	Transaction   *TransactionResponse `json:"transaction,omitempty"`
}
