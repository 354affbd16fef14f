package repository

import (
	"context"
	"sync"
	"time"

	"burn_tokens_back/internal/txhash"
	"burn_tokens_back/models"
)

var _ Burn = (*BurnMemory)(nil)

// BurnMemory keeps burn records in insertion order for the lifetime of the process.
type BurnMemory struct {
	mu      sync.RWMutex
	records []models.BurnRecord
	now     func() time.Time
}

func NewBurnMemory() *BurnMemory {
	return &BurnMemory{
		records: make([]models.BurnRecord, 0),
		now:     time.Now,
	}
}

func (r *BurnMemory) Create(_ context.Context, burn models.NewBurn) (models.BurnRecord, error) {
	if err := burn.Validate(); err != nil {
		return models.BurnRecord{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var id int64 = 1
	ts := r.now().UTC().Truncate(time.Microsecond)
	if n := len(r.records); n > 0 {
		last := r.records[n-1]
		id = last.ID + 1
		// wall clock steps backwards must not reorder records
		if ts.Before(last.Timestamp) {
			ts = last.Timestamp
		}
	}
	record := models.BurnRecord{
		ID:           id,
		TokenAddress: burn.TokenAddress,
		Amount:       burn.Amount,
		Reason:       burn.Reason,
		Timestamp:    ts,
		TxHash:       txhash.Demo(),
	}
	r.records = append(r.records, record)
	return record, nil
}

func (r *BurnMemory) List(_ context.Context, page models.Page) (models.BurnPage, error) {
	page = models.NewPage(page.Number, page.Limit)

	r.mu.RLock()
	defer r.mu.RUnlock()

	total := int64(len(r.records))
	lo, hi := page.Window(total)
	burns := make([]models.BurnRecord, 0, hi-lo)
	// newest first: position i of the ordering is records[total-1-i]
	for i := lo; i < hi; i++ {
		burns = append(burns, r.records[total-1-i])
	}
	return models.BurnPage{
		Burns:   burns,
		Total:   total,
		Page:    page.Number,
		Limit:   page.Limit,
		HasNext: page.HasNext(total),
	}, nil
}

func (r *BurnMemory) Get(_ context.Context, id int64) (models.BurnRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// ids are dense and ascending, so the record sits at id-1
	if id >= 1 && id <= int64(len(r.records)) {
		if rec := r.records[id-1]; rec.ID == id {
			return rec, nil
		}
	}
	return models.BurnRecord{}, models.ErrBurnNotFound
}

func (r *BurnMemory) Stats(_ context.Context) (models.BurnStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats models.BurnStats
	for _, rec := range r.records {
		stats.TotalBurned += rec.Amount
	}
	stats.BurnCount = int64(len(r.records))
	if n := len(r.records); n > 0 {
		last := r.records[n-1].Timestamp
		stats.LastBurn = &last
	}
	return stats, nil
}
