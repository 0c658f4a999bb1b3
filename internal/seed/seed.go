// Package seed loads accounts, orders and transactions from CSV exports into
// the store. Empty cells map to nil for nullable columns so that validation
// runs see the data exactly as the source system produced it.
package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	accountdomain "github.com/spendguardlabs/spendguard/internal/account/domain"
	orderdomain "github.com/spendguardlabs/spendguard/internal/order/domain"
)

type Seeder struct {
	db  *gorm.DB
	log *zap.Logger

	accounts accountdomain.Repository
	orders   orderdomain.Repository
}

func NewSeeder(db *gorm.DB, log *zap.Logger, accounts accountdomain.Repository, orders orderdomain.Repository) *Seeder {
	return &Seeder{
		db:       db,
		log:      log.Named("seed"),
		accounts: accounts,
		orders:   orders,
	}
}

// Load reads accounts.csv, orders.csv and transactions.csv from dir. Missing
// files are skipped so partial datasets still load.
func (s *Seeder) Load(ctx context.Context, dir string) error {
	accounts, err := loadCSV(filepath.Join(dir, "accounts.csv"), parseAccount)
	if err != nil {
		return err
	}
	if err := s.accounts.Insert(ctx, s.db, accounts); err != nil {
		return fmt.Errorf("insert accounts: %w", err)
	}

	orders, err := loadCSV(filepath.Join(dir, "orders.csv"), parseOrder)
	if err != nil {
		return err
	}
	if err := s.orders.InsertOrders(ctx, s.db, orders); err != nil {
		return fmt.Errorf("insert orders: %w", err)
	}

	txs, err := loadCSV(filepath.Join(dir, "transactions.csv"), parseTransaction)
	if err != nil {
		return err
	}
	if err := s.orders.InsertTransactions(ctx, s.db, txs); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}

	s.log.Info("seed finished",
		zap.String("dir", dir),
		zap.Int("accounts", len(accounts)),
		zap.Int("orders", len(orders)),
		zap.Int("transactions", len(txs)),
	)
	return nil
}

// loadCSV reads a header row then maps each record through parse. A missing
// file yields an empty slice.
func loadCSV[T any](path string, parse func(header map[string]int, row []string) (T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	headerRow, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}
	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		header[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var out []T
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		line++
		item, err := parse(header, row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func cell(header map[string]int, row []string, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseAccount(header map[string]int, row []string) (accountdomain.Account, error) {
	acc := accountdomain.Account{
		AccountID: cell(header, row, "account_id"),
	}
	if v := cell(header, row, "customer_name"); v != "" {
		acc.CustomerName = &v
	}
	if v := cell(header, row, "order_limit"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return acc, fmt.Errorf("order_limit: %w", err)
		}
		acc.OrderLimit = &limit
	}
	if v := cell(header, row, "created_date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return acc, fmt.Errorf("created_date: %w", err)
		}
		acc.CreatedDate = &d
	}
	if v := cell(header, row, "status"); v != "" {
		acc.Status = &v
	}
	return acc, nil
}

func parseOrder(header map[string]int, row []string) (orderdomain.Order, error) {
	order := orderdomain.Order{
		OrderID:   cell(header, row, "order_id"),
		AccountID: cell(header, row, "account_id"),
		Status:    cell(header, row, "status"),
	}
	d, err := parseDate(cell(header, row, "order_date"))
	if err != nil {
		return order, fmt.Errorf("order_date: %w", err)
	}
	order.OrderDate = d

	if v := cell(header, row, "total_amount"); v != "" {
		order.TotalAmount, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return order, fmt.Errorf("total_amount: %w", err)
		}
	}
	if v := cell(header, row, "product_count"); v != "" {
		order.ProductCount, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return order, fmt.Errorf("product_count: %w", err)
		}
	}
	return order, nil
}

func parseTransaction(header map[string]int, row []string) (orderdomain.Transaction, error) {
	tx := orderdomain.Transaction{
		TransactionID: cell(header, row, "transaction_id"),
		OrderID:       cell(header, row, "order_id"),
		Status:        cell(header, row, "status"),
	}
	d, err := parseDate(cell(header, row, "transaction_date"))
	if err != nil {
		return tx, fmt.Errorf("transaction_date: %w", err)
	}
	tx.TransactionDate = d

	if v := cell(header, row, "amount"); v != "" {
		tx.Amount, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return tx, fmt.Errorf("amount: %w", err)
		}
	}
	return tx, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
