package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario.
const (
	TransactionTypeSale            = "SALE"
	TransactionTypePurchase        = "PURCHASE"
	TransactionTypeTransfer        = "TRANSFER"
	TransactionTypeWriteOff        = "WRITE_OFF"
	TransactionTypeReturn          = "RETURN"
	TransactionTypeStockAdjustment = "STOCK_ADJUSTMENT"
)

// Estados de transacción. Se crea en PENDING; las transiciones posteriores
// las hacen colaboradores externos, no este núcleo.
const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusCancelled = "CANCELLED"
)

// Tipos de pago de una transacción.
const (
	PaymentTypeCash        = "CASH"
	PaymentTypeCard        = "CARD"
	PaymentTypeCredit      = "CREDIT"
	PaymentTypeInstallment = "INSTALLMENT"
)

// Transaction representa la cabecera de una transacción de inventario.
// Invariante: RemainingBalance = FinalTotal - AmountPaid.
type Transaction struct {
	ID                string
	Type              string
	Status            string
	FromBranchID      string
	ToBranchID        *string // solo TRANSFER; distinto de FromBranchID
	CustomerID        *string
	Total             decimal.Decimal
	Discount          decimal.Decimal
	FinalTotal        decimal.Decimal // Total - Discount
	PaymentType       *string
	AmountPaid        decimal.Decimal
	RemainingBalance  decimal.Decimal
	LastRepaymentDate *time.Time
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Items []TransactionItem
}

// TransactionItem representa una línea de la transacción, con términos de
// crédito opcionales para ventas a cuotas.
type TransactionItem struct {
	ID             string
	TransactionID  string
	ProductID      string
	Quantity       decimal.Decimal
	Price          decimal.Decimal
	Total          decimal.Decimal
	CreditMonths   *int
	CreditPercent  *decimal.Decimal
	MonthlyPayment *decimal.Decimal
	CreatedAt      time.Time
}
