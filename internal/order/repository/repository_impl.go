package repository

import (
	"context"

	"gorm.io/gorm"

	orderdomain "github.com/spendguardlabs/spendguard/internal/order/domain"
)

type repo struct{}

func Provide() orderdomain.Repository {
	return &repo{}
}

func (r *repo) InsertOrders(ctx context.Context, db *gorm.DB, orders []orderdomain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(&orders, 500).Error
}

func (r *repo) InsertTransactions(ctx context.Context, db *gorm.DB, txs []orderdomain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(&txs, 500).Error
}

func (r *repo) ListBillable(ctx context.Context, db *gorm.DB) ([]orderdomain.Order, error) {
	var orders []orderdomain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT order_id, account_id, order_date, total_amount, product_count, status
		 FROM orders
		 WHERE status IN (?, ?)
		 ORDER BY order_date, order_id`,
		orderdomain.OrderStatusCompleted,
		orderdomain.OrderStatusPending,
	).Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) SummarizeTransactions(ctx context.Context, db *gorm.DB) ([]orderdomain.TransactionSummary, error) {
	var summaries []orderdomain.TransactionSummary
	err := db.WithContext(ctx).Raw(
		`SELECT order_id,
		        COALESCE(SUM(amount), 0) AS total_paid,
		        COUNT(transaction_id) AS transaction_count
		 FROM transactions
		 WHERE status = ?
		 GROUP BY order_id`,
		orderdomain.TransactionStatusSuccess,
	).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *repo) ListCustomerSummaries(ctx context.Context, db *gorm.DB) ([]orderdomain.CustomerSummary, error) {
	var summaries []orderdomain.CustomerSummary
	err := db.WithContext(ctx).Raw(
		`SELECT a.account_id,
		        a.customer_name,
		        COUNT(o.order_id) AS total_orders,
		        COALESCE(SUM(o.total_amount), 0) AS total_spend,
		        AVG(o.total_amount) AS avg_order_value,
		        MIN(o.order_date) AS first_order_date,
		        MAX(o.order_date) AS last_order_date
		 FROM accounts a
		 LEFT JOIN orders o
		   ON o.account_id = a.account_id
		  AND o.status IN (?, ?)
		 GROUP BY a.account_id, a.customer_name
		 ORDER BY a.account_id`,
		orderdomain.OrderStatusCompleted,
		orderdomain.OrderStatusPending,
	).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
