package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"notibot-be/internal/pkg/boterr"
)

type IRatesProvider interface {
	// Latest returns the exchange rates of the base currency against all
	// quoted currencies.
	Latest(ctx context.Context, base string) (map[string]float64, error)
}

type ratesProvider struct {
	baseURL string
	client  *http.Client
	cache   sync.Map
	ttl     time.Duration
}

func NewRatesProvider(baseURL string, ttl time.Duration) IRatesProvider {
	return &ratesProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		ttl:     ttl,
	}
}

func (p *ratesProvider) getFromCache(key string) (map[string]float64, bool) {
	val, ok := p.cache.Load(key)
	if !ok {
		return nil, false
	}
	item := val.(cachedItem)
	if time.Now().After(item.expiresAt) {
		p.cache.Delete(key)
		return nil, false
	}
	return item.data.(map[string]float64), true
}

func (p *ratesProvider) setCache(key string, data map[string]float64) {
	p.cache.Store(key, cachedItem{
		data:      data,
		expiresAt: time.Now().Add(p.ttl),
	})
}

func (p *ratesProvider) Latest(ctx context.Context, base string) (map[string]float64, error) {
	base = strings.ToUpper(base)

	cacheKey := fmt.Sprintf("rates:%s", base)
	if rates, ok := p.getFromCache(cacheKey); ok {
		return rates, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s", p.baseURL, base), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, boterr.ProviderFetch("rates request failed", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, boterr.ProviderFetch(
			fmt.Sprintf("rates api returned %d for base %s", resp.StatusCode, base), nil)
	}

	var result struct {
		Base  string             `json:"base"`
		Rates map[string]float64 `json:"rates"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, boterr.ProviderFetch("rates api returned malformed body", err)
	}
	if len(result.Rates) == 0 {
		return nil, boterr.ProviderFetch(fmt.Sprintf("rates api returned no rates for %s", base), nil)
	}

	p.setCache(cacheKey, result.Rates)

	return result.Rates, nil
}
