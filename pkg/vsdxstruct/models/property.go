package models

// Property represents one shape data row.
type Property struct {
	// Name is the row name.
	Name string `json:"name"`
	// Label is the display label (optional).
	Label string `json:"label,omitempty"`
	// Value is the row value: int64, float64 or string.
	Value interface{} `json:"value"`
}
