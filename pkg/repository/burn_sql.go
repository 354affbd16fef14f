package repository

import (
	"context"
	"database/sql"
	"time"

	"burn_tokens_back/internal/txhash"
	"burn_tokens_back/models"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var _ Burn = (*BurnSQL)(nil)

// BurnSQL stores burn records in the burn_records table. Queries are written with ?
// placeholders and rebound for the driver in use.
type BurnSQL struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewBurnSQL(db *sqlx.DB) *BurnSQL {
	return &BurnSQL{db: db, now: time.Now}
}

const burnColumns = `id, token_address, amount, COALESCE(reason, '') AS reason, "timestamp", tx_hash`

type burnRow struct {
	ID           int64   `db:"id"`
	TokenAddress string  `db:"token_address"`
	Amount       float64 `db:"amount"`
	Reason       string  `db:"reason"`
	Timestamp    sqlTime `db:"timestamp"`
	TxHash       string  `db:"tx_hash"`
}

func (row burnRow) record() models.BurnRecord {
	return models.BurnRecord{
		ID:           row.ID,
		TokenAddress: row.TokenAddress,
		Amount:       row.Amount,
		Reason:       row.Reason,
		Timestamp:    row.Timestamp.Time,
		TxHash:       row.TxHash,
	}
}

func (r *BurnSQL) Create(ctx context.Context, burn models.NewBurn) (models.BurnRecord, error) {
	if err := burn.Validate(); err != nil {
		return models.BurnRecord{}, err
	}
	record := models.BurnRecord{
		TokenAddress: burn.TokenAddress,
		Amount:       burn.Amount,
		Reason:       burn.Reason,
		Timestamp:    r.now().UTC().Truncate(time.Microsecond),
		TxHash:       txhash.Demo(),
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.BurnRecord{}, storeError(err, "begin create")
	}
	defer tx.Rollback()

	query := r.db.Rebind(`
		INSERT INTO burn_records (token_address, amount, reason, "timestamp", tx_hash)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)
	err = tx.QueryRowxContext(ctx, query,
		record.TokenAddress,
		record.Amount,
		record.Reason,
		r.timeArg(record.Timestamp),
		record.TxHash,
	).Scan(&record.ID)
	if err != nil {
		return models.BurnRecord{}, storeError(err, "insert burn")
	}

	if err := tx.Commit(); err != nil {
		return models.BurnRecord{}, storeError(err, "commit create")
	}
	return record, nil
}

func (r *BurnSQL) List(ctx context.Context, page models.Page) (models.BurnPage, error) {
	page = models.NewPage(page.Number, page.Limit)
	result := models.BurnPage{
		Burns: make([]models.BurnRecord, 0),
		Page:  page.Number,
		Limit: page.Limit,
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return result, storeError(err, "begin list")
	}
	defer tx.Rollback()

	if err := tx.GetContext(ctx, &result.Total, `SELECT COUNT(*) FROM burn_records`); err != nil {
		return result, storeError(err, "count burns")
	}
	result.HasNext = page.HasNext(result.Total)

	lo, hi := page.Window(result.Total)
	if lo >= hi {
		return result, storeError(tx.Commit(), "commit list")
	}

	var rows []burnRow
	query := r.db.Rebind(`SELECT ` + burnColumns + ` FROM burn_records
		ORDER BY "timestamp" DESC, id DESC
		LIMIT ? OFFSET ?`)
	if err := tx.SelectContext(ctx, &rows, query, hi-lo, lo); err != nil {
		return result, storeError(err, "list burns")
	}
	for _, row := range rows {
		result.Burns = append(result.Burns, row.record())
	}
	return result, storeError(tx.Commit(), "commit list")
}

func (r *BurnSQL) Get(ctx context.Context, id int64) (models.BurnRecord, error) {
	var row burnRow
	query := r.db.Rebind(`SELECT ` + burnColumns + ` FROM burn_records WHERE id = ?`)
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BurnRecord{}, models.ErrBurnNotFound
	}
	if err != nil {
		return models.BurnRecord{}, storeError(err, "get burn")
	}
	return row.record(), nil
}

func (r *BurnSQL) Stats(ctx context.Context) (models.BurnStats, error) {
	var stats models.BurnStats

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return stats, storeError(err, "begin stats")
	}
	defer tx.Rollback()

	row := tx.QueryRowxContext(ctx, `SELECT COUNT(*), COALESCE(SUM(amount), 0.0) FROM burn_records`)
	if err := row.Scan(&stats.BurnCount, &stats.TotalBurned); err != nil {
		return stats, storeError(err, "aggregate burns")
	}

	var last sqlTime
	err = tx.GetContext(ctx, &last, `SELECT "timestamp" FROM burn_records ORDER BY "timestamp" DESC, id DESC LIMIT 1`)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return stats, storeError(err, "last burn")
	default:
		stats.LastBurn = &last.Time
	}
	return stats, storeError(tx.Commit(), "commit stats")
}

// Teardown drops burn_records and everything in it.
func (r *BurnSQL) Teardown(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DROP TABLE IF EXISTS burn_records`)
	return storeError(err, "drop burn_records")
}

// timeArg pins the SQLite text encoding so that timestamp columns sort chronologically.
func (r *BurnSQL) timeArg(t time.Time) interface{} {
	if r.db.DriverName() == DriverSQLite {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return t
}
