package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"notibot-be/internal/pkg/boterr"
)

// Weather is the parsed current-weather report for a city.
type Weather struct {
	City        string
	Temperature float64
	WindSpeed   float64
	Humidity    int
	Description string
}

type IWeatherProvider interface {
	Current(ctx context.Context, city string) (*Weather, error)
}

type weatherProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   sync.Map // in-memory cache
	ttl     time.Duration
}

// Cache Item Wrapper
type cachedItem struct {
	data      interface{}
	expiresAt time.Time
}

func NewWeatherProvider(apiKey, baseURL string, ttl time.Duration) IWeatherProvider {
	return &weatherProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		ttl:     ttl,
	}
}

func (p *weatherProvider) getFromCache(key string) (interface{}, bool) {
	val, ok := p.cache.Load(key)
	if !ok {
		return nil, false
	}
	item := val.(cachedItem)
	if time.Now().After(item.expiresAt) {
		p.cache.Delete(key)
		return nil, false
	}
	return item.data, true
}

func (p *weatherProvider) setCache(key string, data interface{}) {
	p.cache.Store(key, cachedItem{
		data:      data,
		expiresAt: time.Now().Add(p.ttl),
	})
}

func (p *weatherProvider) Current(ctx context.Context, city string) (*Weather, error) {
	cacheKey := fmt.Sprintf("weather:%s", strings.ToLower(city))
	if val, ok := p.getFromCache(cacheKey); ok {
		return val.(*Weather), nil
	}

	params := url.Values{}
	params.Add("q", city)
	params.Add("appid", p.apiKey)
	params.Add("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, boterr.ProviderFetch("weather request failed", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &apiErr)
		if strings.Contains(strings.ToLower(apiErr.Message), "city not found") {
			return nil, boterr.NotFound("city not found")
		}
		return nil, boterr.ProviderFetch(
			fmt.Sprintf("weather api returned %d: %s", resp.StatusCode, apiErr.Message), nil)
	}

	var result struct {
		Name string `json:"name"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, boterr.ProviderFetch("weather api returned malformed body", err)
	}

	weather := &Weather{
		City:        result.Name,
		Temperature: result.Main.Temp,
		WindSpeed:   result.Wind.Speed,
		Humidity:    result.Main.Humidity,
	}
	if len(result.Weather) > 0 {
		weather.Description = capitalize(result.Weather[0].Description)
	}

	p.setCache(cacheKey, weather)

	return weather, nil
}

// capitalize uppercases the first rune; descriptions arrive in whatever
// language the API was asked for, so byte slicing would mangle them.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
