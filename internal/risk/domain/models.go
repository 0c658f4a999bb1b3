// Package domain contains the account-month risk pipeline types: in-memory
// records flowing through the engine and the persisted output rows.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type RAGStatus string

const (
	RAGRed   RAGStatus = "RED"
	RAGAmber RAGStatus = "AMBER"
	RAGGreen RAGStatus = "GREEN"
)

const (
	LimitExceededYes = "YES"
	LimitExceededNo  = "NO"
)

type HoldReason string

const (
	HoldMissingAccountID    HoldReason = "MISSING_ACCOUNT_ID"
	HoldMissingCustomerName HoldReason = "MISSING_CUSTOMER_NAME"
	HoldNegativeAmount      HoldReason = "NEGATIVE_AMOUNT"
	HoldInvalidOrderCount   HoldReason = "INVALID_ORDER_COUNT"
	HoldMissingOrderLimit   HoldReason = "MISSING_ORDER_LIMIT"
)

type RiskCategory string

const (
	RiskHigh   RiskCategory = "HIGH_RISK"
	RiskMedium RiskCategory = "MEDIUM_RISK"
	RiskLow    RiskCategory = "LOW_RISK"
)

type RunKind string

const (
	RunKindRAG        RunKind = "rag"
	RunKindValidation RunKind = "validation"
)

const (
	RunStatusRunning   = "RUNNING"
	RunStatusSucceeded = "SUCCEEDED"
	RunStatusFailed    = "FAILED"
)

// MonthlyAggregate is one account's activity in one calendar month.
// OrderMonth is always the first day of the month, UTC midnight.
type MonthlyAggregate struct {
	AccountID     string    `json:"account_id"`
	OrderMonth    time.Time `json:"order_month"`
	MonthlyTotal  float64   `json:"monthly_total"`
	OrderCount    int64     `json:"order_count"`
	TotalProducts int64     `json:"total_products"`
}

// MoMComparison pairs an aggregate with its immediately preceding observed
// month. PreviousMonthTotal is nil for an account's first observed month;
// PercentageChange is nil whenever the previous total is nil or zero.
type MoMComparison struct {
	MonthlyAggregate
	PreviousMonthTotal *float64 `json:"previous_month_total"`
	PercentageChange   *float64 `json:"percentage_change"`
}

// AccountMonthRecord is an aggregate enriched with account attributes via
// left join; both enrichment fields stay nil when the account is unknown.
type AccountMonthRecord struct {
	MonthlyAggregate
	CustomerName *string `json:"customer_name"`
	OrderLimit   *int64  `json:"order_limit"`
}

// ClassifiedRecord is the RAG-variant output row before persistence.
type ClassifiedRecord struct {
	MoMComparison
	CustomerName  *string   `json:"customer_name"`
	OrderLimit    *int64    `json:"order_limit"`
	RAGStatus     RAGStatus `json:"rag_status"`
	LimitExceeded string    `json:"limit_exceeded"`
}

// ValidatedRecord carries the first-matching hold reason, or nil when the
// record passed every rule.
type ValidatedRecord struct {
	AccountMonthRecord
	HoldReason *HoldReason `json:"hold_reason"`
}

// RoutedRecords is the disjoint, exhaustive partition of validated records.
type RoutedRecords struct {
	Accepted []AccountMonthRecord
	Held     []HeldRecordValue
}

// HeldRecordValue is a failed record plus its capture timestamp.
type HeldRecordValue struct {
	AccountMonthRecord
	HoldReason    HoldReason `json:"hold_reason"`
	HoldTimestamp time.Time  `json:"hold_timestamp"`
}

// CustomerRiskScore is the supplemental per-record scoring output.
type CustomerRiskScore struct {
	AccountID    string       `json:"account_id"`
	RiskScore    int          `json:"risk_score"`
	RiskCategory RiskCategory `json:"risk_category"`
}

// RAGResult is the persisted RAG-variant row, one per account per run.
type RAGResult struct {
	ID                 snowflake.ID `gorm:"primaryKey" json:"id"`
	RunID              string       `gorm:"type:text;not null;index" json:"run_id"`
	AccountID          string       `gorm:"type:text;not null" json:"account_id"`
	CustomerName       *string      `gorm:"type:text" json:"customer_name"`
	OrderMonth         time.Time    `gorm:"not null" json:"order_month"`
	CurrentMonthTotal  float64      `gorm:"not null" json:"current_month_total"`
	PreviousMonthTotal *float64     `json:"previous_month_total"`
	PercentageChange   *float64     `json:"percentage_change"`
	OrderCount         int64        `gorm:"not null" json:"order_count"`
	OrderLimit         *int64       `json:"order_limit"`
	RAGStatus          string       `gorm:"type:text;not null" json:"rag_status"`
	LimitExceeded      string       `gorm:"type:text;not null" json:"limit_exceeded"`
	CreatedAt          time.Time    `gorm:"not null" json:"created_at"`
}

func (RAGResult) TableName() string { return "rag_results" }

// AcceptedRecord is a persisted validation-variant row that passed all rules.
type AcceptedRecord struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	RunID         string       `gorm:"type:text;not null;index" json:"run_id"`
	AccountID     string       `gorm:"type:text" json:"account_id"`
	CustomerName  *string      `gorm:"type:text" json:"customer_name"`
	OrderMonth    time.Time    `gorm:"not null" json:"order_month"`
	MonthlyTotal  float64      `gorm:"not null" json:"monthly_total"`
	OrderCount    int64        `gorm:"not null" json:"order_count"`
	TotalProducts int64        `gorm:"not null" json:"total_products"`
	OrderLimit    *int64       `json:"order_limit"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
}

func (AcceptedRecord) TableName() string { return "accepted_records" }

// HeldRecord is a persisted validation-variant row that failed a rule.
type HeldRecord struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	RunID         string       `gorm:"type:text;not null;index" json:"run_id"`
	AccountID     string       `gorm:"type:text" json:"account_id"`
	CustomerName  *string      `gorm:"type:text" json:"customer_name"`
	OrderMonth    time.Time    `gorm:"not null" json:"order_month"`
	MonthlyTotal  float64      `gorm:"not null" json:"monthly_total"`
	OrderCount    int64        `gorm:"not null" json:"order_count"`
	TotalProducts int64        `gorm:"not null" json:"total_products"`
	OrderLimit    *int64       `json:"order_limit"`
	HoldReason    string       `gorm:"type:text;not null;index" json:"hold_reason"`
	HoldTimestamp time.Time    `gorm:"not null" json:"hold_timestamp"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
}

func (HeldRecord) TableName() string { return "held_records" }

// PipelineRun records one batch invocation.
type PipelineRun struct {
	RunID        string     `gorm:"primaryKey;type:text" json:"run_id"`
	Kind         string     `gorm:"type:text;not null;index" json:"kind"`
	TargetMonth  *time.Time `json:"target_month"`
	Status       string     `gorm:"type:text;not null" json:"status"`
	TotalRecords int64      `gorm:"not null" json:"total_records"`
	HeldCount    int64      `gorm:"not null" json:"held_count"`
	StartedAt    time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at"`
}

func (PipelineRun) TableName() string { return "pipeline_runs" }

// RiskSummary aggregates a RAG run's output.
type RiskSummary struct {
	TotalAccounts      int64 `json:"total_accounts"`
	RedCount           int64 `json:"red_count"`
	AmberCount         int64 `json:"amber_count"`
	GreenCount         int64 `json:"green_count"`
	LimitExceededCount int64 `json:"limit_exceeded_count"`
}

// ValidationSummary aggregates a validation run's output.
type ValidationSummary struct {
	TotalRecords        int64                `json:"total_records"`
	AcceptedCount       int64                `json:"accepted_count"`
	HeldCount           int64                `json:"held_count"`
	AcceptedTotalAmount float64              `json:"accepted_total_amount"`
	AcceptedOrderCount  int64                `json:"accepted_order_count"`
	HeldByReason        map[HoldReason]int64 `json:"held_by_reason"`
}
