package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"burn_tokens_back/internal/txhash"
	"burn_tokens_back/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "0x1234567890123456789012345678901234567890"

type burnStoreFactory func(t *testing.T) Burn

func newTestMemory(t *testing.T) Burn {
	t.Helper()
	return NewBurnMemory()
}

func newTestSQLite(t *testing.T) Burn {
	t.Helper()
	ctx := context.Background()
	db, err := NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, CreateSchema(ctx, db))
	t.Cleanup(func() { db.Close() })
	return NewBurnSQL(db)
}

var backends = map[string]burnStoreFactory{
	"memory": newTestMemory,
	"sqlite": newTestSQLite,
}

func forEachBackend(t *testing.T, fn func(t *testing.T, store Burn)) {
	for name, factory := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func mustCreate(t *testing.T, store Burn, amount float64) models.BurnRecord {
	t.Helper()
	rec, err := store.Create(context.Background(), models.NewBurn{
		TokenAddress: testAddress,
		Amount:       amount,
		Reason:       "Test burn operation",
	})
	require.NoError(t, err)
	return rec
}

func TestBurn_CreateThenGet(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Burn) {
		ctx := context.Background()
		before := time.Now().UTC().Add(-time.Second)

		created := mustCreate(t, store, 100)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, txhash.Demo(), created.TxHash)
		assert.True(t, created.Timestamp.After(before))
		assert.Equal(t, time.UTC, created.Timestamp.Location())

		got, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, testAddress, got.TokenAddress)
		assert.Equal(t, 100.0, got.Amount)
		assert.Equal(t, "Test burn operation", got.Reason)
		assert.Equal(t, created.TxHash, got.TxHash)
		assert.True(t, created.Timestamp.Equal(got.Timestamp), "stored %s, read %s", created.Timestamp, got.Timestamp)
	})
}

func TestBurn_CreateRejectsInvalidInput(t *testing.T) {
	cases := map[string]models.NewBurn{
		"zero amount":     {TokenAddress: testAddress, Amount: 0},
		"negative amount": {TokenAddress: testAddress, Amount: -100},
		"empty address":   {TokenAddress: "", Amount: 5},
	}
	forEachBackend(t, func(t *testing.T, store Burn) {
		ctx := context.Background()
		for name, in := range cases {
			_, err := store.Create(ctx, in)
			var verr *models.ValidationError
			assert.True(t, errors.As(err, &verr), name)
		}

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.BurnCount)
	})
}

func TestBurn_GetMissing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Burn) {
		mustCreate(t, store, 1)
		_, err := store.Get(context.Background(), 999)
		assert.True(t, errors.Is(err, models.ErrBurnNotFound))

		_, err = store.Get(context.Background(), 0)
		assert.True(t, errors.Is(err, models.ErrBurnNotFound))
	})
}

func TestBurn_EmptyStore(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Burn) {
		ctx := context.Background()

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0.0, stats.TotalBurned)
		assert.Equal(t, int64(0), stats.BurnCount)
		assert.Nil(t, stats.LastBurn)

		page, err := store.List(ctx, models.NewPage(1, 10))
		require.NoError(t, err)
		assert.NotNil(t, page.Burns)
		assert.Empty(t, page.Burns)
		assert.Equal(t, int64(0), page.Total)
		assert.False(t, page.HasNext)
	})
}

func TestBurn_ListPagination(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Burn) {
		ctx := context.Background()
		for i := 1; i <= 5; i++ {
			mustCreate(t, store, float64(i))
		}

		first, err := store.List(ctx, models.NewPage(1, 3))
		require.NoError(t, err)
		require.Len(t, first.Burns, 3)
		assert.Equal(t, int64(5), first.Total)
		assert.True(t, first.HasNext)
		assert.Equal(t, []int64{5, 4, 3}, ids(first.Burns))

		second, err := store.List(ctx, models.NewPage(2, 3))
		require.NoError(t, err)
		require.Len(t, second.Burns, 2)
		assert.False(t, second.HasNext)
		assert.Equal(t, []int64{2, 1}, ids(second.Burns))

		beyond, err := store.List(ctx, models.NewPage(7, 3))
		require.NoError(t, err)
		assert.Empty(t, beyond.Burns)
		assert.Equal(t, int64(5), beyond.Total)

		huge, err := store.List(ctx, models.NewPage(1, 1<<40))
		require.NoError(t, err)
		assert.Len(t, huge.Burns, 5)
		assert.False(t, huge.HasNext)

		again, err := store.List(ctx, models.NewPage(1, 3))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	})
}

func TestBurn_Stats(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Burn) {
		ctx := context.Background()
		amounts := []float64{0.1, 0.2, 12.5, 1000}
		var sum float64
		var last models.BurnRecord
		for _, a := range amounts {
			last = mustCreate(t, store, a)
			sum += a
		}

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(len(amounts)), stats.BurnCount)
		assert.InDelta(t, sum, stats.TotalBurned, 1e-9)
		require.NotNil(t, stats.LastBurn)
		assert.True(t, last.Timestamp.Equal(*stats.LastBurn))
	})
}

func TestBurn_ConcurrentCreateAssignsUniqueIDs(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Burn) {
		const workers, each = 8, 25
		var wg sync.WaitGroup
		idc := make(chan int64, workers*each)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < each; i++ {
					rec, err := store.Create(context.Background(), models.NewBurn{TokenAddress: testAddress, Amount: 1})
					if !assert.NoError(t, err) {
						return
					}
					idc <- rec.ID
				}
			}()
		}
		wg.Wait()
		close(idc)

		seen := make(map[int64]bool)
		for id := range idc {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, workers*each)

		stats, err := store.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(workers*each), stats.BurnCount)
		assert.InDelta(t, float64(workers*each), stats.TotalBurned, 1e-9)
	})
}

func ids(burns []models.BurnRecord) []int64 {
	out := make([]int64, 0, len(burns))
	for _, b := range burns {
		out = append(out, b.ID)
	}
	return out
}
