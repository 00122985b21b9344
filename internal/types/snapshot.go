package types

import "time"

// ElementBox pairs a bounding box with a short reference to the element it
// belongs to (tag plus id/class when present).
type ElementBox struct {
	Ref string      `json:"ref"`
	Box BoundingBox `json:"box"`
}

// StyledBox is the rendered position of an element carrying inline color
// styles, with the raw style values captured in the browser.
type StyledBox struct {
	Ref        string      `json:"ref"`
	Color      string      `json:"color"`
	Background string      `json:"background"`
	Box        BoundingBox `json:"box"`
}

// PageSnapshot is the captured rendered state of a page at fetch time.
// It is produced once by the fetcher and consumed read-only by the analyzer
// and the evaluator; nothing is persisted after the request completes.
type PageSnapshot struct {
	URL        string    `json:"url"`
	FinalURL   string    `json:"final_url,omitempty"`
	StatusCode int       `json:"status_code"`
	HTML       string    `json:"-"`
	Screenshot []byte    `json:"-"`
	FetchedAt  time.Time `json:"fetched_at"`

	// Positions captured in the browser for screenshot annotation.
	// Empty when the snapshot came from a plain HTTP fetch.
	ImageBoxes  []ElementBox `json:"image_boxes,omitempty"`
	StyledBoxes []StyledBox  `json:"styled_boxes,omitempty"`
}
