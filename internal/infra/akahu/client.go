// Package akahu implements bank.TransactionSource against the Akahu
// aggregator API.
package akahu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"rent_tracker/internal/domain/bank"
)

const dateFormat = "2006-01-02"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an Akahu API client. The timeout bounds each fetch; a
// timed-out fetch surfaces as a *bank.FetchError, never as an empty result.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// transactionItem mirrors the Akahu transaction payload.
type transactionItem struct {
	ID          string      `json:"_id"`
	Account     string      `json:"_account"`
	Date        string      `json:"date"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
}

type transactionsResponse struct {
	Items []transactionItem `json:"items"`
}

// Transactions fetches the statement lines posted in [from, to]. The Akahu
// 'end' parameter is exclusive, so one day is added to the upper bound.
func (c *Client) Transactions(ctx context.Context, creds bank.Credentials, from, to time.Time) ([]bank.Transaction, error) {
	params := url.Values{}
	params.Set("start", from.Format(dateFormat))
	params.Set("end", to.AddDate(0, 0, 1).Format(dateFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transactions?"+params.Encode(), nil)
	if err != nil {
		return nil, &bank.FetchError{Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+creds.UserToken)
	req.Header.Set("X-Akahu-ID", creds.AppToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &bank.FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &bank.FetchError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", string(body)),
		}
	}

	var payload transactionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &bank.FetchError{Err: fmt.Errorf("decoding response: %w", err)}
	}

	txns := make([]bank.Transaction, 0, len(payload.Items))
	for _, item := range payload.Items {
		t, err := item.toDomain()
		if err != nil {
			return nil, &bank.FetchError{Err: err}
		}
		txns = append(txns, t)
	}
	return txns, nil
}

func (item transactionItem) toDomain() (bank.Transaction, error) {
	// Akahu returns RFC3339 timestamps; statement exports sometimes carry
	// bare dates. Accept both.
	posted, err := time.Parse(time.RFC3339, item.Date)
	if err != nil {
		if posted, err = time.Parse(dateFormat, item.Date); err != nil {
			return bank.Transaction{}, fmt.Errorf("transaction %s has invalid date %q", item.ID, item.Date)
		}
	}
	amount, err := decimal.NewFromString(item.Amount.String())
	if err != nil {
		return bank.Transaction{}, fmt.Errorf("transaction %s has invalid amount %q", item.ID, item.Amount)
	}
	return bank.Transaction{
		ID:          item.ID,
		Account:     item.Account,
		Date:        posted,
		Amount:      amount,
		Description: item.Description,
	}, nil
}
