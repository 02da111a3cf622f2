package sheets

import (
	"context"
	"denizquiz/internal/model"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fetcher returns the raw CSV text of one sub-sheet
type Fetcher interface {
	FetchCSV(ctx context.Context, gid string) (string, error)
}

// Client downloads sub-sheets through the public CSV export endpoint
type Client struct {
	baseURL    string
	sheetID    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a spreadsheet export client. Redirects are followed.
func NewClient(baseURL, sheetID string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		sheetID: sheetID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log.Named("sheets"),
	}
}

// ExportURL builds the CSV export address for a sub-sheet
func (c *Client) ExportURL(gid string) string {
	q := url.Values{}
	q.Set("format", "csv")
	q.Set("gid", gid)
	return fmt.Sprintf("%s/%s/export?%s", c.baseURL, url.PathEscape(c.sheetID), q.Encode())
}

// FetchCSV downloads one sub-sheet. Any transport error or non-2xx status is
// reported as model.ErrUpstreamFetch.
func (c *Client) FetchCSV(ctx context.Context, gid string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ExportURL(gid), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("sheet request failed", zap.String("gid", gid), zap.Error(err))
		return "", fmt.Errorf("%w: gid %s: %v", model.ErrUpstreamFetch, gid, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: gid %s: read body: %v", model.ErrUpstreamFetch, gid, err)
	}

	c.log.Debug("sheet fetched",
		zap.String("gid", gid),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: gid %s: status %d", model.ErrUpstreamFetch, gid, resp.StatusCode)
	}
	return string(body), nil
}
