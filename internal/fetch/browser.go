// Package fetch - browser.go renders pages in a headless browser and
// captures the snapshot used by the rest of the pipeline.
package fetch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

// screenshotQuality is the PNG/JPEG quality passed to FullScreenshot.
const screenshotQuality = 90

// collectBoxesJS runs in the page and returns the rendered positions of
// images missing alt text and of elements carrying inline color styles.
// The analyzer matches these against the parsed HTML to attach boxes to
// findings, mirroring what it would see in the DOM.
const collectBoxesJS = `(() => {
	const ref = (el) => {
		let r = el.tagName.toLowerCase();
		if (el.id) r += "#" + el.id;
		else if (el.className && typeof el.className === "string" && el.className.trim())
			r += "." + el.className.trim().split(/\s+/).join(".");
		return r;
	};
	const rect = (el) => {
		const b = el.getBoundingClientRect();
		return {x: b.x + window.scrollX, y: b.y + window.scrollY, width: b.width, height: b.height};
	};
	const images = [];
	for (const img of document.querySelectorAll("img")) {
		const alt = img.getAttribute("alt");
		if (!alt || !alt.trim()) {
			const b = rect(img);
			if (b.width > 0 && b.height > 0) images.push({ref: ref(img), box: b});
		}
	}
	const styled = [];
	for (const el of document.querySelectorAll("*[style]")) {
		const s = el.getAttribute("style") || "";
		const colorMatch = s.match(/(?:^|[\s;])color:\s*([^;]+)/);
		const bgMatch = s.match(/background(?:-color)?:\s*([^;]+)/);
		if (!colorMatch && !bgMatch) continue;
		const b = rect(el);
		if (b.width <= 0 || b.height <= 0) continue;
		styled.push({
			ref: ref(el),
			color: colorMatch ? colorMatch[1].trim() : "",
			background: bgMatch ? bgMatch[1].trim() : "",
			box: b,
		});
	}
	return {images, styled};
})()`

// boxPayload matches the JSON shape returned by collectBoxesJS.
type boxPayload struct {
	Images []types.ElementBox `json:"images"`
	Styled []types.StyledBox  `json:"styled"`
}

// Browser renders a page in a headless browser and returns the full
// snapshot: rendered HTML, a full-page screenshot, the document response
// status, and the element boxes needed for annotation. The browser process
// is launched and torn down inside this call; the deferred cancels release
// it on every exit path, including failure. Requires Chrome/Chromium.
func Browser(ctx context.Context, urlStr string, opts *Options) (*types.PageSnapshot, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", urlStr)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, opts.Timeout)
	defer cancelTimeout()

	// Capture the status of the main document response. The listener runs
	// on the CDP event goroutine, so guard the write.
	var statusMu sync.Mutex
	var statusCode int
	chromedp.ListenTarget(browserCtx, func(ev any) {
		if res, ok := ev.(*network.EventResponseReceived); ok && res.Type == network.ResourceTypeDocument {
			statusMu.Lock()
			if statusCode == 0 {
				statusCode = int(res.Response.Status)
			}
			statusMu.Unlock()
		}
	})

	var (
		html     string
		finalURL string
		shot     []byte
		boxes    boxPayload
	)

	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		// Let JavaScript-rendered content settle before capturing.
		chromedp.Sleep(opts.SettleDelay),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html),
		chromedp.FullScreenshot(&shot, screenshotQuality),
		chromedp.Evaluate(collectBoxesJS, &boxes),
	)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}

	statusMu.Lock()
	status := statusCode
	statusMu.Unlock()

	snap := &types.PageSnapshot{
		URL:         urlStr,
		FinalURL:    finalURL,
		StatusCode:  status,
		HTML:        html,
		Screenshot:  shot,
		FetchedAt:   time.Now().UTC(),
		ImageBoxes:  boxes.Images,
		StyledBoxes: boxes.Styled,
	}

	if status != 0 && (status < 200 || status >= 300) {
		return snap, &Error{URL: urlStr, Message: fmt.Sprintf("document returned HTTP status %d", status)}
	}

	if opts.Verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes, screenshot: %d bytes", len(html), len(shot))
	}

	return snap, nil
}
