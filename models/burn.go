package models

import (
	"encoding/json"
	"math"
	"time"
)

const (
	DefaultReason = "Manual burn"

	// TimestampLayout renders UTC as +00:00 rather than Z.
	TimestampLayout = "2006-01-02T15:04:05.999999-07:00"
)

type BurnRecord struct {
	ID           int64     `db:"id" json:"id"`
	TokenAddress string    `db:"token_address" json:"token_address"`
	Amount       float64   `db:"amount" json:"amount"`
	Reason       string    `db:"reason" json:"reason"`
	Timestamp    time.Time `db:"timestamp" json:"timestamp"`
	TxHash       string    `db:"tx_hash" json:"tx_hash"`
}

func (r BurnRecord) MarshalJSON() ([]byte, error) {
	type record BurnRecord
	return json.Marshal(struct {
		record
		Timestamp string `json:"timestamp"`
	}{
		record:    record(r),
		Timestamp: FormatTimestamp(r.Timestamp),
	})
}

// NewBurn is what a store needs to append a record. Id, timestamp and tx hash are
// assigned by the store.
type NewBurn struct {
	TokenAddress string
	Amount       float64
	Reason       string
}

func (b NewBurn) Validate() error {
	if b.TokenAddress == "" {
		return NewValidationError("token_address", "token_address is required")
	}
	if math.IsNaN(b.Amount) || math.IsInf(b.Amount, 0) || b.Amount <= 0 {
		return NewValidationError("amount", "Valid amount is required")
	}
	return nil
}

// BurnRequest is the body of POST /api/burn. Amount keeps the literal the client sent
// so the confirmation message can echo it.
type BurnRequest struct {
	TokenAddress string
	Amount       json.Number
	Reason       *string
}

func (r BurnRequest) NewBurn() (NewBurn, error) {
	amount, err := r.Amount.Float64()
	if err != nil {
		return NewBurn{}, NewValidationError("amount", "Valid amount is required")
	}
	reason := DefaultReason
	if r.Reason != nil {
		reason = *r.Reason
	}
	b := NewBurn{
		TokenAddress: r.TokenAddress,
		Amount:       amount,
		Reason:       reason,
	}
	return b, b.Validate()
}

type BurnReceipt struct {
	Success bool   `json:"success"`
	BurnID  int64  `json:"burn_id"`
	TxHash  string `json:"tx_hash"`
	Message string `json:"message"`
}

type BurnStats struct {
	TotalBurned float64    `json:"total_burned"`
	BurnCount   int64      `json:"burn_count"`
	LastBurn    *time.Time `json:"last_burn"`
}

func (s BurnStats) MarshalJSON() ([]byte, error) {
	var last *string
	if s.LastBurn != nil {
		v := FormatTimestamp(*s.LastBurn)
		last = &v
	}
	return json.Marshal(struct {
		TotalBurned float64 `json:"total_burned"`
		BurnCount   int64   `json:"burn_count"`
		LastBurn    *string `json:"last_burn"`
	}{s.TotalBurned, s.BurnCount, last})
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
