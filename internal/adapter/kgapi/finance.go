package kgapi

import (
	"context"

	"rag-pipeline/internal/domain"
)

// CompanyNames returns fuzzy company-name matches for a free-text query.
func (c *Client) CompanyNames(ctx context.Context, query string) ([]string, error) {
	raw, err := c.query(ctx, "/finance/get_company_name", query)
	if err != nil {
		return nil, err
	}
	var names []string
	if _, err := decodeResult(raw, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// PriceHistory returns one year of daily OHLCV keyed by
// "YYYY-MM-DD 00:00:00 EST".
func (c *Client) PriceHistory(ctx context.Context, symbol string) (map[string]domain.DayPrice, error) {
	return c.priceMap(ctx, "/finance/get_price_history", symbol)
}

// DetailedPriceHistory returns minute-level OHLCV for the most recent days.
func (c *Client) DetailedPriceHistory(ctx context.Context, symbol string) (map[string]domain.DayPrice, error) {
	return c.priceMap(ctx, "/finance/get_detailed_price_history", symbol)
}

func (c *Client) priceMap(ctx context.Context, path, symbol string) (map[string]domain.DayPrice, error) {
	raw, err := c.query(ctx, path, symbol)
	if err != nil {
		return nil, err
	}
	var history map[string]domain.DayPrice
	if _, err := decodeResult(raw, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// DividendHistory returns distribution amounts keyed by date.
func (c *Client) DividendHistory(ctx context.Context, symbol string) (map[string]float64, error) {
	raw, err := c.query(ctx, "/finance/get_dividends_history", symbol)
	if err != nil {
		return nil, err
	}
	var dividends map[string]float64
	if _, err := decodeResult(raw, &dividends); err != nil {
		return nil, err
	}
	return dividends, nil
}

func (c *Client) MarketCapitalization(ctx context.Context, symbol string) (*float64, error) {
	raw, err := c.query(ctx, "/finance/get_market_capitalization", symbol)
	if err != nil {
		return nil, err
	}
	return decodeFloat(raw), nil
}

func (c *Client) EPS(ctx context.Context, symbol string) (*float64, error) {
	raw, err := c.query(ctx, "/finance/get_eps", symbol)
	if err != nil {
		return nil, err
	}
	return decodeFloat(raw), nil
}

func (c *Client) PERatio(ctx context.Context, symbol string) (*float64, error) {
	raw, err := c.query(ctx, "/finance/get_pe_ratio", symbol)
	if err != nil {
		return nil, err
	}
	return decodeFloat(raw), nil
}

// Info returns the raw metadata record for a symbol.
func (c *Client) Info(ctx context.Context, symbol string) (map[string]any, error) {
	raw, err := c.query(ctx, "/finance/get_info", symbol)
	if err != nil {
		return nil, err
	}
	var info map[string]any
	if _, err := decodeResult(raw, &info); err != nil {
		return nil, err
	}
	return info, nil
}

var _ domain.FinanceSource = (*Client)(nil)
