// Package mlb provides a client for the MLB Stats API transactions endpoint
package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cmahoney/rosterwatch/internal/common/errors"
)

const defaultBaseURI = "https://statsapi.mlb.com/api/v1"

// DateFormat is the date layout the Stats API expects.
const DateFormat = "2006-01-02"

// Client handles API interactions with the MLB Stats API
type Client struct {
	baseURI string
	client  *http.Client
}

// NewClient creates a new client for the MLB Stats API
func NewClient() *Client {
	return &Client{
		baseURI: defaultBaseURI,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithBaseURI creates a client pointed at a custom base URI
func NewClientWithBaseURI(baseURI string) *Client {
	c := NewClient()
	c.baseURI = baseURI
	return c
}

// request makes an API request to the Stats API
func (c *Client) request(ctx context.Context, endpoint string, query url.Values, ret interface{}) error {
	uri := fmt.Sprintf("%s/%s?%s", c.baseURI, endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", errors.ErrFetchFailed, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(ret); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}

	return nil
}

// Transactions retrieves all transactions for a team on a single date
func (c *Client) Transactions(ctx context.Context, sportID, teamID int64, date time.Time) ([]Transaction, error) {
	var response struct {
		Transactions []Transaction `json:"transactions"`
	}

	query := url.Values{}
	query.Set("sportId", fmt.Sprintf("%d", sportID))
	query.Set("teamId", fmt.Sprintf("%d", teamID))
	query.Set("date", date.Format(DateFormat))

	if err := c.request(ctx, "transactions", query, &response); err != nil {
		return nil, err
	}

	return response.Transactions, nil
}
