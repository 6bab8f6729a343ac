package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStrokeAndFillColor(t *testing.T) {
	tests := []struct {
		name       string
		cells      []Cell
		wantStroke string
		wantFill   string
	}{
		{
			name:       "defaults",
			wantStroke: "",
			wantFill:   "none",
		},
		{
			name:       "palette index",
			cells:      []Cell{literal("LineColor", "2"), literal("FillForegnd", "4"), literal("FillPattern", "1")},
			wantStroke: "#FF0000",
			wantFill:   "#0000FF",
		},
		{
			name:       "literal colors",
			cells:      []Cell{literal("LineColor", "#123456"), literal("FillForegnd", "#654321"), literal("FillPattern", "1")},
			wantStroke: "#123456",
			wantFill:   "#654321",
		},
		{
			name:       "patterns off",
			cells:      []Cell{literal("LineColor", "2"), literal("LinePattern", "0"), literal("FillForegnd", "4")},
			wantStroke: "none",
			wantFill:   "none",
		},
		{
			name:       "unknown index",
			cells:      []Cell{literal("LineColor", "99")},
			wantStroke: "",
			wantFill:   "none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewResolver(nil).Style(sheet(1, tt.cells...))
			assert.Equal(t, tt.wantStroke, st.StrokeColor())
			assert.Equal(t, tt.wantFill, st.FillColor())
		})
	}
}

func TestTextBackgroundColor(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"0", "none"},
		{"255", "none"},
		{"1", "#FFFFFF"},
		{"#EEEEEE", "#EEEEEE"},
	}
	for _, tt := range tests {
		st := NewResolver(nil).Style(sheet(1, literal("TextBkgnd", tt.value)))
		if got := st.TextBackgroundColor(); got != tt.want {
			t.Errorf("TextBackgroundColor(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestDocumentPalette(t *testing.T) {
	palette := DefaultPalette.With(map[int]string{2: "#aa0000", 24: "#010203"})
	r := NewResolver(nil, WithPalette(palette))

	assert.Equal(t, "#AA0000", r.Style(sheet(1, literal("LineColor", "2"))).StrokeColor())
	assert.Equal(t, "#010203", r.Style(sheet(1, literal("LineColor", "24"))).StrokeColor())

	c, ok := DefaultPalette.Color("2")
	assert.True(t, ok)
	assert.Equal(t, "#FF0000", c)
	_, ok = DefaultPalette.Color("x")
	assert.False(t, ok)
}

func TestNumericPolicy(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want float64
	}{
		{"plain", Cell{Name: "LineWeight", Value: "0.123456"}, 0.12},
		{"point unit", Cell{Name: "LineWeight", Value: "0.01", Unit: UnitPoint}, 1.02},
		{"themed", Cell{Name: "LineWeight", Value: ValueThemed, Formula: "THEMEVAL()"}, 0},
		{"unparseable", Cell{Name: "LineWeight", Value: "abc"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewResolver(nil).Style(sheet(1, tt.cell))
			assert.Equal(t, tt.want, st.LineWeight())
		})
	}
}

func TestNumericPolicyLogsUnparseable(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewResolver(nil, WithLogger(zap.New(core)))

	st := r.Style(sheet(1, literal("Rounding", "1,5")))
	assert.Equal(t, 0.0, st.Rounding())
	assert.Equal(t, 1, logs.FilterMessage("Ignoring unparseable numeric cell").Len())
}

func TestScreenNumbers(t *testing.T) {
	n := sheet(1,
		literal("TopMargin", "0.5"),
		literal("LeftMargin", "0.055555"),
	)
	n.Section(SectionParagraph).Set(0, literal("IndFirst", "0.25"))
	n.Section(SectionParagraph).Set(0, literal("SpLine", "-1.2"))
	n.Section(SectionCharacter).Set(0, Cell{Name: "Size", Value: "0.1111", Unit: UnitPoint})
	n.Section(SectionCharacter).Set(0, literal("Letterspace", "0.01"))

	st := NewResolver(nil).Style(n)
	assert.Equal(t, 50.8, st.TextTopMargin())
	assert.Equal(t, 5.64, st.TextLeftMargin())
	assert.Equal(t, 0.0, st.TextRightMargin())
	assert.Equal(t, 25.4, st.IndentFirst(0))
	assert.Equal(t, 0.0, st.IndentLeft(0))
	assert.Equal(t, -1.2, st.SpaceLine(0))
	assert.Equal(t, 0.0, st.SpaceLine(1))
	assert.Equal(t, 11.29, st.TextSize(0))
	assert.Equal(t, 1.02, st.LetterSpace(0))
}

func TestCharacterAccessors(t *testing.T) {
	n := NewNode(1, "")
	chars := n.Section(SectionCharacter)
	chars.Set(0, literal("Style", "5"))
	chars.Set(0, literal("Pos", "1"))
	chars.Set(0, literal("Case", "2"))
	chars.Set(0, literal("Strikethru", "1"))
	chars.Set(1, literal("Color", "3"))
	chars.Set(1, literal("Style", "bold"))

	paras := n.Section(SectionParagraph)
	paras.Set(0, literal("Flags", "1"))
	paras.Set(0, literal("Bullet", "2"))

	st := NewResolver(nil).Style(n)
	assert.Equal(t, 5, st.TextStyle(0))
	assert.Equal(t, 1, st.TextPos(0))
	assert.Equal(t, 2, st.TextCase(0))
	assert.True(t, st.TextStrike(0))
	assert.False(t, st.TextStrike(1))
	assert.Equal(t, "#00FF00", st.TextColor(1))
	assert.Equal(t, 0, st.TextStyle(1))
	assert.Equal(t, "#000000", st.TextColor(2))

	assert.Equal(t, "rtl", st.Direction(0))
	assert.Equal(t, "ltr", st.Direction(1))
	assert.Equal(t, "2", st.Bullet(0))
	assert.Equal(t, "0", st.Bullet(1))
}

func TestHasLineWeight(t *testing.T) {
	theme := sheet(ThemeID, literal("LineWeight", "0.01"))
	r := NewResolver(graphOf(t, theme))

	shape := sheet(100)
	st := r.Style(shape)
	assert.False(t, st.HasLineWeight())
	assert.Equal(t, 0.01, st.LineWeight())

	shape.SetCell(literal("LineWeight", "0.02"))
	assert.True(t, st.HasLineWeight())
}

func TestTransparency(t *testing.T) {
	parent := sheet(5, literal("FillForegndTrans", "0.25"), literal("LineColorTrans", "0.5"))
	theme := sheet(ThemeID, literal("LineColorTrans", "0"))
	r := NewResolver(graphOf(t, parent, theme))

	inheriting := sheet(101, inherited("FillForegndTrans"))
	inheriting.Parents[CategoryFill] = 5

	tests := []struct {
		name        string
		shape       *Node
		fill        float64
		stroke      float64
		fillOpacity float64
		translucent bool
		strokeSolid bool
	}{
		{
			name:        "opaque from theme",
			shape:       sheet(100),
			fill:        0,
			stroke:      0,
			fillOpacity: 1,
			strokeSolid: true,
		},
		{
			name:        "inherited from fill parent only",
			shape:       inheriting,
			fill:        0.25,
			stroke:      0,
			fillOpacity: 0.75,
			translucent: true,
			strokeSolid: true,
		},
		{
			name:        "local values",
			shape:       sheet(102, literal("FillForegndTrans", "1.5"), literal("LineColorTrans", "0.3")),
			fill:        1.5,
			stroke:      0.3,
			fillOpacity: 0,
			translucent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := r.Style(tt.shape)
			assert.Equal(t, tt.fill, st.FillTransparency())
			assert.Equal(t, tt.stroke, st.StrokeTransparency())

			fill, ok := st.FillOpacity()
			assert.Equal(t, tt.translucent, ok)
			assert.Equal(t, tt.fillOpacity, fill)

			_, ok = st.StrokeOpacity()
			assert.Equal(t, !tt.strokeSolid, ok)
		})
	}
}
