package textfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/style"
)

func charStyle(cells ...style.Cell) style.Style {
	n := style.NewNode(1, "")
	for _, c := range cells {
		n.Section(style.SectionCharacter).Set(0, c)
	}
	return style.NewResolver(nil).Style(n)
}

func cell(name, value string) style.Cell {
	return style.Cell{Name: name, Value: value}
}

func TestFormatRun(t *testing.T) {
	tests := []struct {
		name     string
		st       style.Style
		text     string
		expected string
	}{
		{
			name:     "plain",
			st:       charStyle(),
			text:     "hello",
			expected: `<font style="color:#000000;direction:ltr">hello</font>`,
		},
		{
			name:     "escaped with line break",
			st:       charStyle(),
			text:     "a<b\nc",
			expected: `<font style="color:#000000;direction:ltr">a&lt;b<br/>c</font>`,
		},
		{
			name:     "bold italic underline",
			st:       charStyle(cell("Style", "7")),
			text:     "x",
			expected: `<font style="color:#000000;direction:ltr"><u><i><b>x</b></i></u></font>`,
		},
		{
			name:     "superscript strike small caps",
			st:       charStyle(cell("Pos", "1"), cell("Strikethru", "1"), cell("Style", "8")),
			text:     "x",
			expected: `<font style="color:#000000;direction:ltr"><span style="font-variant:small-caps"><s><sup>x</sup></s></span></font>`,
		},
		{
			name:     "subscript bold",
			st:       charStyle(cell("Pos", "2"), cell("Style", "1")),
			text:     "2",
			expected: `<font style="color:#000000;direction:ltr"><b><sub>2</sub></b></font>`,
		},
		{
			name:     "upper case",
			st:       charStyle(cell("Case", "1")),
			text:     "mixed Case",
			expected: `<font style="color:#000000;direction:ltr">MIXED CASE</font>`,
		},
		{
			name:     "initial caps",
			st:       charStyle(cell("Case", "2")),
			text:     "hello wORLD",
			expected: `<font style="color:#000000;direction:ltr">Hello WORLD</font>`,
		},
		{
			name: "font attributes",
			st: charStyle(
				cell("Color", "2"),
				style.Cell{Name: "Size", Value: "0.1111", Unit: style.UnitPoint},
				cell("Font", "Arial"),
				cell("Letterspace", "0.01"),
			),
			text:     "f",
			expected: `<font style="color:#FF0000;font-size:11.29px;font-family:Arial;direction:ltr;letter-spacing:1.02px">f</font>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRun(tt.st, Run{Text: tt.text})
			if got != tt.expected {
				t.Errorf("FormatRun() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDirection(t *testing.T) {
	st := charStyle()
	assert.Equal(t, "ltr", Direction(st, 0, "abc"))
	assert.Equal(t, "rtl", Direction(st, 0, "123 שלום"))
	assert.Equal(t, "ltr", Direction(st, 0, "  "))

	n := style.NewNode(1, "")
	n.Section(style.SectionParagraph).Set(0, cell("Flags", "1"))
	assert.Equal(t, "rtl", Direction(style.NewResolver(nil).Style(n), 0, "abc"))
}

func TestFormatGroupsParagraphs(t *testing.T) {
	n := style.NewNode(1, "")
	n.Section(style.SectionParagraph).Set(0, cell("HorzAlign", "0"))
	n.Section(style.SectionParagraph).Set(1, cell("IndLeft", "0.25"))
	n.Section(style.SectionParagraph).Set(1, cell("SpLine", "-1.5"))
	st := style.NewResolver(nil).Style(n)

	got := Format(st, []Run{
		{Text: "a", ParaIndex: 0},
		{Text: "b", ParaIndex: 0},
		{Text: "c", ParaIndex: 1},
	})

	font := `<font style="color:#000000;direction:ltr">`
	expected := `<p style="text-align:left">` + font + "a</font>" + font + "b</font></p>" +
		`<p style="text-align:center;margin-left:25.4px;line-height:150%">` + font + "c</font></p>"
	assert.Equal(t, expected, got)
}

func TestFormatEmpty(t *testing.T) {
	assert.Equal(t, "", Format(charStyle(), nil))
}
