package aladhan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/escalopa/quran-reader/internal/domain"
)

type Client struct {
	baseURL    string
	method     int
	httpClient *http.Client
}

var _ domain.PrayerTimeSource = (*Client)(nil)

// NewClient creates a client for the timings endpoint using the given calculation method
func NewClient(baseURL string, method int, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		method:  method,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type timingsResponse struct {
	Code int `json:"code"`
	Data struct {
		Timings map[string]string `json:"timings"`
		Date    struct {
			Readable string `json:"readable"`
			Hijri    struct {
				Day   string `json:"day"`
				Month struct {
					En string `json:"en"`
					Ar string `json:"ar"`
				} `json:"month"`
				Year string `json:"year"`
			} `json:"hijri"`
		} `json:"date"`
		Meta struct {
			Timezone string `json:"timezone"`
		} `json:"meta"`
	} `json:"data"`
}

// canonical maps the six canonical times to their response keys, in day order
var canonical = []struct {
	key    string
	name   string
	arabic string
}{
	{"Fajr", "Subuh", "الفجر"},
	{"Sunrise", "Terbit", "الشروق"},
	{"Dhuhr", "Dzuhur", "الظهر"},
	{"Asr", "Ashar", "العصر"},
	{"Maghrib", "Maghrib", "المغرب"},
	{"Isha", "Isya", "العشاء"},
}

// PrayerTimes fetches the schedule of day at loc
func (c *Client) PrayerTimes(ctx context.Context, loc domain.Location, day time.Time) (*domain.PrayerSchedule, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	q.Set("method", strconv.Itoa(c.method))
	endpoint := fmt.Sprintf("%s/timings/%s?%s", c.baseURL, day.Format("02-01-2006"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result timingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	times := make([]domain.PrayerTime, 0, len(canonical))
	for _, p := range canonical {
		raw, ok := result.Data.Timings[p.key]
		if !ok {
			return nil, fmt.Errorf("missing %s in timings", p.key)
		}
		times = append(times, domain.PrayerTime{
			Name:       p.name,
			NameArabic: p.arabic,
			Time:       clockTime(raw),
		})
	}

	h := result.Data.Date.Hijri
	return &domain.PrayerSchedule{
		Date:      result.Data.Date.Readable,
		HijriDate: strings.TrimSpace(fmt.Sprintf("%s %s %s", h.Day, h.Month.Ar, h.Year)),
		Timezone:  result.Data.Meta.Timezone,
		Location:  loc,
		Times:     times,
	}, nil
}

// clockTime keeps the HH:MM part of values like "04:31 (WIB)"
func clockTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		raw = raw[:i]
	}
	return raw
}
