package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bafang/portfolio-tracker/internal/model"
)

// Default quote-gateway endpoint. The gateway fronts the upstream
// Eastmoney feeds and speaks a stable JSON envelope; override via
// configuration for tests and self-hosted mirrors.
const defaultBaseURL = "https://quote-gw.bafang.dev"

// EastmoneyClient fetches quote snapshots over HTTP. One endpoint per
// product category; the stock endpoint is the cheapest, which is why
// resolution tries it first.
type EastmoneyClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewEastmoneyClient creates a client against the default endpoint.
func NewEastmoneyClient() *EastmoneyClient {
	return NewEastmoneyClientWithURL(defaultBaseURL)
}

// NewEastmoneyClientWithURL creates a client against baseURL.
func NewEastmoneyClientWithURL(baseURL string) *EastmoneyClient {
	return &EastmoneyClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// envelope is the common response wrapper of the quote service.
type envelope struct {
	Data  map[string]json.RawMessage `json:"data"`
	Error *string                    `json:"error"`
}

// Fetch retrieves the raw snapshot for code under the given category.
// It returns an error on transport failure, a service-reported error, or
// an empty result; the caller decides whether that ends resolution or
// just this classification branch.
func (c *EastmoneyClient) Fetch(ctx context.Context, category model.ProductCategory, code string) (RawQuote, error) {
	var path string
	switch category {
	case model.CategoryStock:
		path = fmt.Sprintf("/v1/stock/%s/quote", code)
	case model.CategoryETF:
		path = fmt.Sprintf("/v1/etf/%s/quote", code)
	case model.CategoryFund:
		path = fmt.Sprintf("/v1/fund/%s/nav", code)
	default:
		return nil, fmt.Errorf("unsupported category %q", category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote service returned status %d for %s %s", resp.StatusCode, category, code)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Error != nil {
		return nil, fmt.Errorf("quote service error: %s", *env.Error)
	}
	if len(env.Data) == 0 {
		return nil, fmt.Errorf("empty quote for %s %s", category, code)
	}

	return decodeFields(env.Data)
}

// decodeFields turns the raw JSON field map into a RawQuote. Numbers are
// decoded as json.Number so the normalizer sees the exact upstream
// representation, scientific notation included.
func decodeFields(fields map[string]json.RawMessage) (RawQuote, error) {
	raw := make(RawQuote, len(fields))
	for key, msg := range fields {
		dec := json.NewDecoder(bytes.NewReader(msg))
		dec.UseNumber()

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode field %q: %w", key, err)
		}
		raw[key] = value
	}
	return raw, nil
}
