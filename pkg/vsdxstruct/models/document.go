// Package models defines the data structures produced by diagram extraction.
package models

// DocumentData represents the document-level container with per-page data.
type DocumentData struct {
	// FileName is the drawing file name (no path).
	FileName string `json:"file_name"`
	// Pages contains the pages in document order.
	Pages []PageData `json:"pages"`
}
