package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionItemRequest línea de una transacción a crear.
type TransactionItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// InlineCustomer datos de cliente embebidos en la venta; se busca o crea por
// teléfono (clave natural).
type InlineCustomer struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
}

// CreateTransactionRequest body para POST /api/transactions.
// Para TRANSFER: ToBranchID obligatorio y distinto de FromBranchID.
type CreateTransactionRequest struct {
	Type         string                   `json:"type"`
	FromBranchID string                   `json:"from_branch_id"`
	ToBranchID   string                   `json:"to_branch_id,omitempty"`
	CustomerID   string                   `json:"customer_id,omitempty"`
	Customer     *InlineCustomer          `json:"customer,omitempty"`
	PaymentType  string                   `json:"payment_type,omitempty"`
	Discount     decimal.Decimal          `json:"discount"`
	Items        []TransactionItemRequest `json:"items"`
}

// TransactionItemResponse línea de transacción en respuestas.
type TransactionItemResponse struct {
	ID             string           `json:"id"`
	ProductID      string           `json:"product_id"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Price          decimal.Decimal  `json:"price"`
	Total          decimal.Decimal  `json:"total"`
	CreditMonths   *int             `json:"credit_months,omitempty"`
	CreditPercent  *decimal.Decimal `json:"credit_percent,omitempty"`
	MonthlyPayment *decimal.Decimal `json:"monthly_payment,omitempty"`
}

// TransactionResponse transacción completa con líneas y asociaciones resueltas.
type TransactionResponse struct {
	ID                string                    `json:"id"`
	Type              string                    `json:"type"`
	Status            string                    `json:"status"`
	FromBranchID      string                    `json:"from_branch_id"`
	ToBranchID        *string                   `json:"to_branch_id,omitempty"`
	CustomerID        *string                   `json:"customer_id,omitempty"`
	CustomerName      string                    `json:"customer_name,omitempty"`
	Total             decimal.Decimal           `json:"total"`
	Discount          decimal.Decimal           `json:"discount"`
	FinalTotal        decimal.Decimal           `json:"final_total"`
	PaymentType       *string                   `json:"payment_type,omitempty"`
	AmountPaid        decimal.Decimal           `json:"amount_paid"`
	RemainingBalance  decimal.Decimal           `json:"remaining_balance"`
	LastRepaymentDate *time.Time                `json:"last_repayment_date,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
	Items             []TransactionItemResponse `json:"items"`
}

// StockHistoryResponse fila del historial de stock de un producto.
type StockHistoryResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	BranchID      string          `json:"branch_id"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Type          string          `json:"type"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}
