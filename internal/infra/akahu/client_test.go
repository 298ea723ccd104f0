package akahu

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rent_tracker/internal/domain/bank"
)

var testCreds = bank.Credentials{AppToken: "app_tok", UserToken: "user_tok"}

func TestTransactions_ParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions", r.URL.Path)
		assert.Equal(t, "Bearer user_tok", r.Header.Get("Authorization"))
		assert.Equal(t, "app_tok", r.Header.Get("X-Akahu-ID"))
		assert.Equal(t, "2025-05-30", r.URL.Query().Get("start"))
		// Inclusive upper bound becomes an exclusive API parameter.
		assert.Equal(t, "2025-06-05", r.URL.Query().Get("end"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [
			{"_id": "trans_1", "_account": "acc_1", "date": "2025-06-01T00:00:00Z", "amount": 500.00, "description": "SMITH RENT JUN"},
			{"_id": "trans_2", "_account": "acc_1", "date": "2025-06-02", "amount": -42.10, "description": "POWER CO"}
		]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)
	txns, err := c.Transactions(context.Background(),
		testCreds,
		time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, "trans_1", txns[0].ID)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, txns[0].IsCredit())
	assert.Equal(t, "SMITH RENT JUN", txns[0].Description)

	assert.False(t, txns[1].IsCredit())
	assert.Equal(t, 2025, txns[1].Date.Year(), "bare dates are accepted too")
}

func TestTransactions_NonOKStatusIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)
	_, err := c.Transactions(context.Background(), testCreds, time.Now(), time.Now())
	require.Error(t, err)

	var fetchErr *bank.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusUnauthorized, fetchErr.StatusCode)
}

func TestTransactions_TimeoutIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Transactions(ctx, testCreds, time.Now(), time.Now())
	require.Error(t, err)

	var fetchErr *bank.FetchError
	assert.True(t, errors.As(err, &fetchErr), "timeouts must surface as FetchError, never as an empty result")
}
