package repository

import (
	"context"

	"gorm.io/gorm"

	accountdomain "github.com/spendguardlabs/spendguard/internal/account/domain"
)

type repo struct{}

func Provide() accountdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, accounts []accountdomain.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&accounts).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, accountID string) (*accountdomain.Account, error) {
	var account accountdomain.Account
	err := db.WithContext(ctx).Raw(
		`SELECT account_id, customer_name, order_limit, created_date, status
		 FROM accounts WHERE account_id = ?`,
		accountID,
	).Scan(&account).Error
	if err != nil {
		return nil, err
	}
	if account.AccountID == "" {
		return nil, nil
	}
	return &account, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]accountdomain.Account, error) {
	var accounts []accountdomain.Account
	err := db.WithContext(ctx).Raw(
		`SELECT account_id, customer_name, order_limit, created_date, status
		 FROM accounts ORDER BY account_id`,
	).Scan(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
