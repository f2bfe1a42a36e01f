package pricing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"sigs.k8s.io/yaml"
)

// Client loads price sheets that override [DefaultPrices], from a URL or a
// local file. Sheets are YAML or JSON in the [Prices] shape; only the regions
// and fields present are overridden.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a price sheet client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchPrices loads the sheet at source and merges it onto the defaults.
// Sources starting with http:// or https:// are fetched; anything else is a file path.
func (c *Client) FetchPrices(ctx context.Context, source string) (*Prices, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = c.fetch(ctx, source)
	} else {
		// #nosec G304
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load price sheet: %w", err)
	}

	sheet, err := parsePriceSheet(data)
	if err != nil {
		return nil, err
	}
	return DefaultPrices().Merge(sheet), nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price sheet returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func parsePriceSheet(data []byte) (*Prices, error) {
	var p Prices
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse price sheet: %w", err)
	}
	return &p, nil
}

// FetchOrDefault loads source, falling back to [DefaultPrices] when source
// is empty or cannot be loaded. The error is returned alongside the defaults
// so callers can log it.
func FetchOrDefault(ctx context.Context, source string) (*Prices, error) {
	if source == "" {
		return DefaultPrices(), nil
	}

	prices, err := NewClient().FetchPrices(ctx, source)
	if err != nil {
		return DefaultPrices(), err
	}
	return prices, nil
}
