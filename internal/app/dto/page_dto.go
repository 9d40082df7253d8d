package dto

// PageResponse carries the document head and section layout of a page
type PageResponse struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Keywords    []string       `json:"keywords"`
	Canonical   string         `json:"canonical"`
	OpenGraph   OpenGraph      `json:"open_graph"`
	Twitter     TwitterCard    `json:"twitter"`
	Sections    []PageSection  `json:"sections"`
	Toaster     ToasterOptions `json:"toaster"`
}

type OpenGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"url"`
}

type TwitterCard struct {
	Card string `json:"card"`
}

// PageSection is one anchored section of the page, in display order
type PageSection struct {
	ID        string `json:"id"`
	Component string `json:"component"`
	Muted     bool   `json:"muted"`
}

// ToasterOptions tells the client how long to show toasts
type ToasterOptions struct {
	Position          string `json:"position"`
	DurationMS        int64  `json:"duration_ms"`
	SuccessDurationMS int64  `json:"success_duration_ms"`
}
