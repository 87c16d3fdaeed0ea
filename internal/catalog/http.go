package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"sweetnirwana/internal/domain"
)

// Client talks to a remote sweets API over the JSON wire contract:
//
//	GET /api/sweets                 -> {success, data: []Product}
//	PUT /api/sweets/{id}/stock      <- {quantity}
//
// Calls go through a circuit breaker; concurrent full-catalog fetches are
// collapsed with singleflight so a burst of availability checks costs one
// round trip.
type Client struct {
	base string
	http *http.Client
	cb   *gobreaker.CircuitBreaker[*http.Response]
	sfg  singleflight.Group
}

func NewClient(baseURL string) *Client {
	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "sweets-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: 10 * time.Second},
		cb:   cb,
	}
}

type listEnvelope struct {
	Success bool             `json:"success"`
	Data    []domain.Product `json:"data"`
	Error   string           `json:"error,omitempty"`
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.cb.Execute(func() (*http.Response, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func (c *Client) List(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := c.sfg.Do("list", func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/sweets", nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		var env listEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return nil, fmt.Errorf("%w: decode catalog: %v", ErrUnavailable, err)
		}
		if !env.Success {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, env.Error)
		}
		return env.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (c *Client) Get(ctx context.Context, id string) (domain.Product, error) {
	products, err := c.List(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product %s not found", id)
}

func (c *Client) SetStock(ctx context.Context, id string, quantity int) error {
	body, err := json.Marshal(map[string]int{"quantity": quantity})
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/api/sweets/%s/stock", c.base, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: stock update status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}
