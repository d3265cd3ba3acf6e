package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/frahmantamala/budget-tracker/internal"
)

const defaultLookupTimeout = 5 * time.Second

type ClientConfig struct {
	BaseURL string
	APIKey  string
	Country string
	Timeout time.Duration
}

// Client queries the Calendarific holidays API. When no API key is
// configured every lookup reports no holiday.
type Client struct {
	baseURL    string
	apiKey     string
	country    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(config ClientConfig, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}

	country := config.Country
	if country == "" {
		country = "CA"
	}

	return &Client{
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		country:    country,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type calendarificResponse struct {
	Response struct {
		Holidays []struct {
			Name string `json:"name"`
		} `json:"holidays"`
	} `json:"response"`
}

// FindHoliday returns the first holiday name Calendarific reports for
// the date. Errors and timeouts are logged and swallowed so a slow or
// broken upstream can never abort an expense write.
func (c *Client) FindHoliday(ctx context.Context, date time.Time) (string, bool) {
	if c.apiKey == "" {
		return "", false
	}

	ctx, cancel := internal.WithTimeout(ctx, c.httpClient.Timeout)
	defer cancel()

	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("country", c.country)
	query.Set("year", strconv.Itoa(date.Year()))
	query.Set("month", strconv.Itoa(int(date.Month())))
	query.Set("day", strconv.Itoa(date.Day()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/holidays?%s", c.baseURL, query.Encode()), nil)
	if err != nil {
		c.logger.Warn("holiday lookup: failed to build request", "error", err)
		return "", false
	}
	req.Header.Set("User-Agent", "budget-tracker-api/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("holiday lookup failed", "date", date.Format("2006-01-02"), "error", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("holiday lookup returned non-OK status", "date", date.Format("2006-01-02"), "status", resp.StatusCode)
		return "", false
	}

	var body calendarificResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn("holiday lookup: failed to decode response", "error", err)
		return "", false
	}

	if len(body.Response.Holidays) == 0 {
		return "", false
	}

	return body.Response.Holidays[0].Name, true
}
