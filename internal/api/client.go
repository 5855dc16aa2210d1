package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/yt-insights/ytwatch/internal/models"
	"golang.org/x/time/rate"
)

// Client talks to the remote search/download API
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimit throttles outgoing requests to rps per second. Zero disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient creates a new API client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs a video search. The query is trimmed; an empty query returns
// ErrEmptyQuery without contacting the API.
func (c *Client) Search(ctx context.Context, query string) ([]models.Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	endpoint := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(query))

	var response models.SearchResponse
	if err := c.getJSON(ctx, "search", endpoint, &response); err != nil {
		return nil, err
	}
	if response.Error != "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: response.Error}
	}
	if response.Videos == nil {
		return []models.Video{}, nil
	}
	return response.Videos, nil
}

// ResolveStream asks the download endpoint for a direct stream URL.
func (c *Client) ResolveStream(ctx context.Context, videoID string) (*models.DownloadResponse, error) {
	endpoint := fmt.Sprintf("%s/download?url=%s", c.baseURL, url.QueryEscape(models.WatchURL(videoID)))

	var response models.DownloadResponse
	if err := c.getJSON(ctx, "download", endpoint, &response); err != nil {
		return nil, err
	}
	if response.Error != "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: response.Error}
	}
	if response.StreamURL == "" {
		return nil, &TransportError{Op: "download", Err: fmt.Errorf("response has no stream_url")}
	}
	return &response, nil
}

// AddToPlaylist posts a video to the playlists endpoint.
func (c *Client) AddToPlaylist(ctx context.Context, req models.PlaylistRequest) error {
	return c.postJSON(ctx, "add to playlist", c.baseURL+"/api/playlists", req)
}

// AddFavorite posts a video id to the favorites endpoint.
func (c *Client) AddFavorite(ctx context.Context, videoID string) error {
	return c.postJSON(ctx, "add favorite", c.baseURL+"/api/favorites", models.FavoriteRequest{VideoID: videoID})
}

func (c *Client) wait(ctx context.Context, op string) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Op: op, Err: err}
	}
	return nil
}

// getJSON decodes a JSON body into out. A non-success status becomes an
// APIError carrying the body's "error" field when there is one.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, out any) error {
	if err := c.wait(ctx, op); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, op, endpoint string, payload any) error {
	if err := c.wait(ctx, op); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func statusError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(data, &payload)
	return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
}
