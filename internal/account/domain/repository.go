package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, accounts []Account) error
	FindByID(ctx context.Context, db *gorm.DB, accountID string) (*Account, error)
	List(ctx context.Context, db *gorm.DB) ([]Account, error)
}
