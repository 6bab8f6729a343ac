package models

// Shape represents shape metadata including position, size, text, path, and styling.
type Shape struct {
	// ID is the shape id within the page.
	ID int `json:"id"`
	// UniqueID is the shape's document-wide GUID (if any).
	UniqueID string `json:"unique_id,omitempty"`
	// Text is the visible text content of the shape.
	Text string `json:"text"`
	// Markup is the text rendered with character and paragraph styles.
	Markup string `json:"markup,omitempty"`
	// L is the left offset in pixels within the parent.
	L int `json:"l"`
	// T is the top offset in pixels within the parent.
	T int `json:"t"`
	// W is the shape width in pixels (nil if not verbose mode).
	W *int `json:"w,omitempty"`
	// H is the shape height in pixels (nil if not verbose mode).
	H *int `json:"h,omitempty"`
	// Type is the master name or shape type label.
	Type string `json:"type,omitempty"`
	// Rotation is the rotation angle in degrees.
	Rotation *float64 `json:"rotation,omitempty"`
	// Path is the compiled geometry in percentage space.
	Path string `json:"path,omitempty"`
	// Fill is the resolved fill color, or "none".
	Fill string `json:"fill,omitempty"`
	// Stroke is the resolved line color, or "none".
	Stroke string `json:"stroke,omitempty"`
	// FillOpacity is the fill opacity, set when the fill is translucent.
	FillOpacity *float64 `json:"fill_opacity,omitempty"`
	// StrokeOpacity is the line opacity, set when the line is translucent.
	StrokeOpacity *float64 `json:"stroke_opacity,omitempty"`
	// StrokeWidth is the line weight in pixels, set when the shape defines it.
	StrokeWidth *float64 `json:"stroke_width,omitempty"`
	// BeginArrowStyle is the arrow style number at the start of a connector.
	BeginArrowStyle *int `json:"begin_arrow_style,omitempty"`
	// EndArrowStyle is the arrow style number at the end of a connector.
	EndArrowStyle *int `json:"end_arrow_style,omitempty"`
	// BeginID is the shape id at the start of a connector.
	BeginID *int `json:"begin_id,omitempty"`
	// EndID is the shape id at the end of a connector.
	EndID *int `json:"end_id,omitempty"`
	// Direction is the connector direction (compass heading: N, NE, E, SE, S, SW, W, NW).
	Direction string `json:"direction,omitempty"`
	// Image is the embedded picture of a foreign shape.
	Image *Image `json:"image,omitempty"`
	// Data contains the shape data rows.
	Data []Property `json:"data,omitempty"`
	// Children contains the sub-shapes of a group.
	Children []Shape `json:"children,omitempty"`
}

// Image represents a picture embedded in the drawing.
type Image struct {
	// ContentType is the MIME type, e.g. image/png.
	ContentType string `json:"content_type"`
	// Target is the media part name.
	Target string `json:"target"`
	// Size is the picture size in bytes.
	Size int `json:"size"`
	// Data is the base64 encoded picture (verbose mode only).
	Data string `json:"data,omitempty"`
}
