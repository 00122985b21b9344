package fetch

import (
	"context"

	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

// Client selects between browser rendering and plain HTTP fetching based on
// configuration. It satisfies the pipeline's Fetcher interface.
type Client struct {
	opts       *Options
	useBrowser bool
}

// NewClient creates a fetch client. With useBrowser false the client never
// launches Chrome and snapshots carry no screenshot.
func NewClient(useBrowser bool, opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Client{opts: opts, useBrowser: useBrowser}
}

// Fetch captures a snapshot of the page at url.
func (c *Client) Fetch(ctx context.Context, url string) (*types.PageSnapshot, error) {
	if c.useBrowser {
		return Browser(ctx, url, c.opts)
	}
	return Plain(ctx, url, c.opts)
}
