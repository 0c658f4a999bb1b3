package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	accountdomain "github.com/spendguardlabs/spendguard/internal/account/domain"
	accountrepo "github.com/spendguardlabs/spendguard/internal/account/repository"
	orderdomain "github.com/spendguardlabs/spendguard/internal/order/domain"
	orderrepo "github.com/spendguardlabs/spendguard/internal/order/repository"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&accountdomain.Account{},
		&orderdomain.Order{},
		&orderdomain.Transaction{},
	))

	dir := t.TempDir()
	writeFile(t, dir, "accounts.csv",
		"account_id,customer_name,order_limit,created_date,status\n"+
			"ACC-1,Alpha Co,5,2023-06-01,ACTIVE\n"+
			"ACC-2,,,,\n")
	writeFile(t, dir, "orders.csv",
		"order_id,account_id,order_date,total_amount,product_count,status\n"+
			"O-1,ACC-1,2024-03-10,150.50,2,COMPLETED\n"+
			"O-2,ACC-2,2024-03-11 08:30:00,99.99,1,CANCELLED\n")
	writeFile(t, dir, "transactions.csv",
		"transaction_id,order_id,amount,transaction_date,status\n"+
			"T-1,O-1,150.50,2024-03-12,SUCCESS\n")

	seeder := NewSeeder(db, zap.NewNop(), accountrepo.Provide(), orderrepo.Provide())
	require.NoError(t, seeder.Load(context.Background(), dir))

	var accounts []accountdomain.Account
	require.NoError(t, db.Order("account_id").Find(&accounts).Error)
	require.Len(t, accounts, 2)
	require.Equal(t, "Alpha Co", *accounts[0].CustomerName)
	require.Equal(t, int64(5), *accounts[0].OrderLimit)
	require.Nil(t, accounts[1].CustomerName)
	require.Nil(t, accounts[1].OrderLimit)

	var orders []orderdomain.Order
	require.NoError(t, db.Order("order_id").Find(&orders).Error)
	require.Len(t, orders, 2)
	require.Equal(t, 150.50, orders[0].TotalAmount)
	require.Equal(t, time.Date(2024, 3, 11, 8, 30, 0, 0, time.UTC), orders[1].OrderDate.UTC())

	var txs []orderdomain.Transaction
	require.NoError(t, db.Find(&txs).Error)
	require.Len(t, txs, 1)
	require.Equal(t, "O-1", txs[0].OrderID)
}

func TestLoadMissingFilesAreSkipped(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&accountdomain.Account{}, &orderdomain.Order{}, &orderdomain.Transaction{}))

	seeder := NewSeeder(db, zap.NewNop(), accountrepo.Provide(), orderrepo.Provide())
	require.NoError(t, seeder.Load(context.Background(), t.TempDir()))
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&accountdomain.Account{}, &orderdomain.Order{}, &orderdomain.Transaction{}))

	dir := t.TempDir()
	writeFile(t, dir, "accounts.csv",
		"account_id,customer_name,order_limit\nACC-1,Alpha Co,not-a-number\n")

	seeder := NewSeeder(db, zap.NewNop(), accountrepo.Provide(), orderrepo.Provide())
	require.Error(t, seeder.Load(context.Background(), dir))
}
