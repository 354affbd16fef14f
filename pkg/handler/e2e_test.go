package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"burn_tokens_back/models"
	"burn_tokens_back/pkg/repository"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The same client session against both backends must observe the same API.
func TestEndToEnd(t *testing.T) {
	backends := map[string]func(t *testing.T) repository.Burn{
		"memory": func(t *testing.T) repository.Burn { return repository.NewBurnMemory() },
		"sqlite": func(t *testing.T) repository.Burn {
			ctx := context.Background()
			db, err := repository.NewSQLiteDB(ctx, ":memory:")
			require.NoError(t, err)
			require.NoError(t, repository.CreateSchema(ctx, db))
			t.Cleanup(func() { db.Close() })
			return repository.NewBurnSQL(db)
		},
	}

	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(newRouterWith(newRepo(t), Options{}))
			defer srv.Close()
			client := resty.New().SetBaseURL(srv.URL)

			var receipt models.BurnReceipt
			resp, err := client.R().
				SetBody(map[string]interface{}{"token_address": testAddress, "amount": 12.5}).
				SetResult(&receipt).
				Post("/api/burn")
			require.NoError(t, err)
			require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
			assert.True(t, receipt.Success)
			assert.Equal(t, int64(1), receipt.BurnID)

			var record models.BurnRecord
			resp, err = client.R().SetResult(&record).Get("/api/burns/1")
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode())
			assert.Equal(t, 12.5, record.Amount)
			assert.Equal(t, models.DefaultReason, record.Reason)
			assert.Equal(t, receipt.TxHash, record.TxHash)

			var page models.BurnPage
			resp, err = client.R().
				SetQueryParams(map[string]string{"page": "1", "limit": "5"}).
				SetResult(&page).
				Get("/api/burns")
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode())
			require.Len(t, page.Burns, 1)
			assert.Equal(t, int64(5), page.Limit)
			assert.True(t, record.Timestamp.Equal(page.Burns[0].Timestamp))

			var stats models.BurnStats
			resp, err = client.R().SetResult(&stats).Get("/api/stats")
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode())
			assert.Equal(t, int64(1), stats.BurnCount)
			assert.Equal(t, 12.5, stats.TotalBurned)
			require.NotNil(t, stats.LastBurn)
			assert.True(t, record.Timestamp.Equal(*stats.LastBurn))

			var apiErr Error
			resp, err = client.R().SetError(&apiErr).Get("/api/burns/42")
			require.NoError(t, err)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode())
			assert.Equal(t, "Burn record not found", apiErr.Message)
		})
	}
}
