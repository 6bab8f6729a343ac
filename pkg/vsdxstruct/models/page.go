package models

// PageData represents structured data for a single page.
type PageData struct {
	// ID is the page id.
	ID int `json:"id"`
	// Name is the page name.
	Name string `json:"name"`
	// Background marks a background page.
	Background bool `json:"background,omitempty"`
	// W is the page width in pixels.
	W int `json:"w"`
	// H is the page height in pixels.
	H int `json:"h"`
	// Shapes contains shapes detected on the page.
	Shapes []Shape `json:"shapes,omitempty"`
}
