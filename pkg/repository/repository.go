package repository

import (
	"context"

	"burn_tokens_back/models"

	"github.com/jmoiron/sqlx"
)

type Burn interface {
	Create(ctx context.Context, burn models.NewBurn) (models.BurnRecord, error)
	List(ctx context.Context, page models.Page) (models.BurnPage, error)
	Get(ctx context.Context, id int64) (models.BurnRecord, error)
	Stats(ctx context.Context) (models.BurnStats, error)
}

type Repository struct {
	Burn

	db *sqlx.DB
}

// NewRepository backs the repository with the burn_records table of db.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Burn: NewBurnSQL(db),
		db:   db,
	}
}

// NewMemoryRepository keeps records in process memory only.
func NewMemoryRepository() *Repository {
	return &Repository{
		Burn: NewBurnMemory(),
	}
}

// Open builds the repository described by cfg, creating the schema when it is missing.
func Open(ctx context.Context, cfg Config) (*Repository, error) {
	if cfg.Driver == DriverMemory {
		return NewMemoryRepository(), nil
	}
	db, err := NewDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return NewRepository(db), nil
}

func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
