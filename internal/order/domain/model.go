// Package domain contains order and transaction models.
package domain

import (
	"time"
)

const (
	OrderStatusCompleted = "COMPLETED"
	OrderStatusPending   = "PENDING"
	OrderStatusCancelled = "CANCELLED"

	TransactionStatusSuccess = "SUCCESS"
)

// Order is one placed order. Only COMPLETED and PENDING orders enter the
// pipeline; CANCELLED orders never reach the aggregator.
// An empty AccountID means the source row had no account reference.
type Order struct {
	OrderID      string    `gorm:"primaryKey;type:text" json:"order_id"`
	AccountID    string    `gorm:"index;type:text" json:"account_id"`
	OrderDate    time.Time `gorm:"not null;index" json:"order_date"`
	TotalAmount  float64   `gorm:"not null" json:"total_amount"`
	ProductCount int64     `gorm:"not null" json:"product_count"`
	Status       string    `gorm:"type:text;index" json:"status"`
}

func (Order) TableName() string { return "orders" }

// Transaction is a payment event tied to an order. Only SUCCESS transactions
// are summed; they enrich orders but never feed monthly totals.
type Transaction struct {
	TransactionID   string    `gorm:"primaryKey;type:text" json:"transaction_id"`
	OrderID         string    `gorm:"index;type:text" json:"order_id"`
	Amount          float64   `gorm:"not null" json:"amount"`
	TransactionDate time.Time `gorm:"not null" json:"transaction_date"`
	Status          string    `gorm:"type:text;index" json:"status"`
}

func (Transaction) TableName() string { return "transactions" }

// TransactionSummary is the per-order rollup of successful payments.
type TransactionSummary struct {
	OrderID          string  `json:"order_id"`
	TotalPaid        float64 `json:"total_paid"`
	TransactionCount int64   `json:"transaction_count"`
}

// EnrichedOrder is an order carrying its payment rollup. Orders without any
// successful transaction carry zeroes, matching left-join semantics.
type EnrichedOrder struct {
	Order
	TotalPaid        float64 `json:"total_paid"`
	TransactionCount int64   `json:"transaction_count"`
}

// CustomerSummary is the all-time per-account ordering rollup. Accounts with
// no billable orders appear with zero counts and nil dates.
type CustomerSummary struct {
	AccountID      string     `json:"account_id"`
	CustomerName   *string    `json:"customer_name"`
	TotalOrders    int64      `json:"total_orders"`
	TotalSpend     float64    `json:"total_spend"`
	AvgOrderValue  *float64   `json:"avg_order_value"`
	FirstOrderDate *time.Time `json:"first_order_date"`
	LastOrderDate  *time.Time `json:"last_order_date"`
}
