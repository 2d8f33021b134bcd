package equran

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/escalopa/quran-reader/internal/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ domain.ContentSource = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type surahResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Nomor      int            `json:"nomor"`
		NamaLatin  string         `json:"namaLatin"`
		JumlahAyat int            `json:"jumlahAyat"`
		Ayat       []ayahResponse `json:"ayat"`
	} `json:"data"`
}

type ayahResponse struct {
	NomorAyat     int    `json:"nomorAyat"`
	TeksArab      string `json:"teksArab"`
	TeksLatin     string `json:"teksLatin"`
	TeksIndonesia string `json:"teksIndonesia"`
}

// FetchSurah retrieves the ayahs of a surah. Every failure wraps domain.ErrContentUnavailable.
func (c *Client) FetchSurah(ctx context.Context, surahNumber int) ([]domain.Ayah, error) {
	if _, err := domain.GetSurah(surahNumber); err != nil {
		return nil, err
	}

	ayahs, err := c.fetchSurah(ctx, surahNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: surah %d: %w", domain.ErrContentUnavailable, surahNumber, err)
	}
	return ayahs, nil
}

func (c *Client) fetchSurah(ctx context.Context, surahNumber int) ([]domain.Ayah, error) {
	url := fmt.Sprintf("%s/surat/%d", c.baseURL, surahNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result surahResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(result.Data.Ayat) == 0 {
		return nil, fmt.Errorf("empty surah in response")
	}

	ayahs := make([]domain.Ayah, 0, len(result.Data.Ayat))
	for _, a := range result.Data.Ayat {
		ayahs = append(ayahs, domain.Ayah{
			SurahNumber:     surahNumber,
			AyahNumber:      a.NomorAyat,
			Text:            a.TeksArab,
			Transliteration: a.TeksLatin,
			Translation:     a.TeksIndonesia,
		})
	}
	return ayahs, nil
}
