package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashOverrideRequest override de caja del cajero para RETURN/EXCHANGE.
type CashOverrideRequest struct {
	Direction string          `json:"direction"` // IN | OUT
	Amount    decimal.Decimal `json:"amount"`
}

// ExchangeTargetRequest producto de reemplazo en un EXCHANGE.
type ExchangeTargetRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ApplyConditionRequest body para POST /api/condition-logs.
type ApplyConditionRequest struct {
	ProductID      string                 `json:"product_id"`
	BranchID       string                 `json:"branch_id"`
	ActionType     string                 `json:"action_type"`
	Quantity       decimal.Decimal        `json:"quantity"`
	Description    string                 `json:"description"`
	FromSale       bool                   `json:"from_sale,omitempty"`
	CashOverride   *CashOverrideRequest   `json:"cash_override,omitempty"`
	ExchangeTarget *ExchangeTargetRequest `json:"exchange_target,omitempty"`
}

// ProductStateResponse estado del producto tras aplicar la acción.
type ProductStateResponse struct {
	ID                string          `json:"id"`
	BranchID          string          `json:"branch_id"`
	Name              string          `json:"name"`
	Model             string          `json:"model,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Quantity          decimal.Decimal `json:"quantity"`
	DefectiveQuantity decimal.Decimal `json:"defective_quantity"`
	ReturnedQuantity  decimal.Decimal `json:"returned_quantity"`
	ExchangedQuantity decimal.Decimal `json:"exchanged_quantity"`
	Status            string          `json:"status"`
}

// ConditionLogResponse registro creado + producto actualizado.
type ConditionLogResponse struct {
	ID          string               `json:"id"`
	ProductID   string               `json:"product_id"`
	BranchID    string               `json:"branch_id"`
	ActionType  string               `json:"action_type"`
	Quantity    decimal.Decimal      `json:"quantity"`
	CashAmount  decimal.Decimal      `json:"cash_amount"`
	Description string               `json:"description,omitempty"`
	CreatedBy   string               `json:"created_by"`
	CreatedAt   time.Time            `json:"created_at"`
	Product     ProductStateResponse `json:"product"`
}

// ActionStatsDTO agregado por tipo de acción.
type ActionStatsDTO struct {
	ActionType string          `json:"action_type"`
	Count      int64           `json:"count"`
	Quantity   decimal.Decimal `json:"quantity"`
	CashAmount decimal.Decimal `json:"cash_amount"`
}

// ConditionStatsResponse respuesta de GET /api/condition-logs/statistics.
type ConditionStatsResponse struct {
	BranchID      string           `json:"branch_id"`
	StartDate     time.Time        `json:"start_date"`
	EndDate       time.Time        `json:"end_date"`
	Actions       []ActionStatsDTO `json:"actions"`
	TotalCashFlow decimal.Decimal  `json:"total_cash_flow"`
}
