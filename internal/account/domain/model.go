// Package domain contains the customer account model.
package domain

import (
	"time"
)

// Account is a customer. OrderLimit is the monthly order cap; it is declared
// required upstream but arrives null often enough that every consumer must
// handle the nil case explicitly.
type Account struct {
	AccountID    string     `gorm:"primaryKey;type:text" json:"account_id"`
	CustomerName *string    `gorm:"type:text" json:"customer_name"`
	OrderLimit   *int64     `json:"order_limit"`
	CreatedDate  *time.Time `json:"created_date,omitempty"`
	Status       *string    `gorm:"type:text" json:"status,omitempty"`
}

func (Account) TableName() string { return "accounts" }
