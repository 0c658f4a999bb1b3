package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertOrders(ctx context.Context, db *gorm.DB, orders []Order) error
	InsertTransactions(ctx context.Context, db *gorm.DB, txs []Transaction) error

	// ListBillable returns orders with status COMPLETED or PENDING.
	ListBillable(ctx context.Context, db *gorm.DB) ([]Order, error)

	// SummarizeTransactions rolls up SUCCESS transactions per order.
	SummarizeTransactions(ctx context.Context, db *gorm.DB) ([]TransactionSummary, error)

	// ListCustomerSummaries left-joins accounts against their billable orders.
	ListCustomerSummaries(ctx context.Context, db *gorm.DB) ([]CustomerSummary, error)
}
