package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotAvailable means a video has no retrievable caption track in any
// of the language variants tried. Callers treat this as a normal
// outcome, not a failure.
var ErrNotAvailable = errors.New("captions not available")

const defaultBaseURL = "https://www.youtube.com"

// Client talks to YouTube's public endpoints: the timedtext caption API
// and the oEmbed metadata API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	stats      *FetchStats
}

// NewClient builds a client against baseURL (empty means youtube.com;
// tests point it at a local server). stats may be nil.
func NewClient(baseURL, userAgent string, timeout time.Duration, stats *FetchStats) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		stats: stats,
	}
}

// FetchTimedText retrieves raw caption markup for a video. It tries the
// requested language in plain and vtt form, then falls back to English,
// and returns the first non-blank 200 body. ErrNotAvailable is returned
// when every variant misses; network failures on one variant do not
// abort the remaining ones.
func (c *Client) FetchTimedText(ctx context.Context, videoID, lang string) (string, error) {
	if lang == "" {
		lang = "en"
	}
	variants := []string{
		fmt.Sprintf("%s/api/timedtext?v=%s&lang=%s", c.baseURL, url.QueryEscape(videoID), url.QueryEscape(lang)),
		fmt.Sprintf("%s/api/timedtext?v=%s&lang=%s&fmt=vtt", c.baseURL, url.QueryEscape(videoID), url.QueryEscape(lang)),
		fmt.Sprintf("%s/api/timedtext?v=%s&lang=en", c.baseURL, url.QueryEscape(videoID)),
		fmt.Sprintf("%s/api/timedtext?v=%s&lang=en&fmt=vtt", c.baseURL, url.QueryEscape(videoID)),
	}

	started := time.Now()
	defer func() {
		if c.stats != nil {
			c.stats.Record(time.Since(started).Milliseconds())
		}
	}()

	for _, endpoint := range variants {
		body, err := c.get(ctx, endpoint)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		if strings.TrimSpace(body) != "" {
			return body, nil
		}
	}
	return "", ErrNotAvailable
}

// OEmbed proxies YouTube's oEmbed metadata (title, thumbnail, author)
// for a video URL.
func (c *Client) OEmbed(ctx context.Context, videoURL string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/oembed?url=%s&format=json", c.baseURL, url.QueryEscape(videoURL))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch oembed: %w", err)
	}
	raw := json.RawMessage(body)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("fetch oembed: invalid json response")
	}
	return raw, nil
}

// get performs a GET and returns the body for a 200 response, an error
// otherwise.
func (c *Client) get(ctx context.Context, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("get %s: status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}
