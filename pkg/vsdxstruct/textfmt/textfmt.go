// Package textfmt builds HTML-like markup for shape text from resolved
// character and paragraph styles.
package textfmt

import (
	"html"
	"strconv"
	"strings"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/style"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/units"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// Character style bits.
const (
	StyleBold      = 1
	StyleItalic    = 2
	StyleUnderline = 4
	StyleSmallCaps = 8
)

// Case values.
const (
	CaseNormal  = 0
	CaseUpper   = 1
	CaseInitial = 2
)

// Position values.
const (
	PosNormal      = 0
	PosSuperscript = 1
	PosSubscript   = 2
)

// Run is a stretch of text sharing one character row and one paragraph row.
type Run struct {
	Text      string
	CharIndex int
	ParaIndex int
}

// Format renders every run, grouping consecutive runs of the same paragraph
// into one paragraph element.
func Format(st style.Style, runs []Run) string {
	var sb strings.Builder
	for i := 0; i < len(runs); {
		j := i
		var body strings.Builder
		for j < len(runs) && runs[j].ParaIndex == runs[i].ParaIndex {
			body.WriteString(FormatRun(st, runs[j]))
			j++
		}
		sb.WriteString(Paragraph(st, runs[i].ParaIndex, body.String()))
		i = j
	}
	return sb.String()
}

// FormatRun wraps one run in its character formatting. The order is fixed:
// case, position, bold, italic, underline, strike, small caps, font.
func FormatRun(st style.Style, r Run) string {
	text := r.Text
	switch st.TextCase(r.CharIndex) {
	case CaseUpper:
		text = cases.Upper(language.Und).String(text)
	case CaseInitial:
		text = cases.Title(language.Und, cases.NoLower).String(text)
	}
	text = strings.ReplaceAll(html.EscapeString(text), "\n", "<br/>")

	switch st.TextPos(r.CharIndex) {
	case PosSuperscript:
		text = wrap("sup", text)
	case PosSubscript:
		text = wrap("sub", text)
	}

	bits := st.TextStyle(r.CharIndex)
	if bits&StyleBold != 0 {
		text = wrap("b", text)
	}
	if bits&StyleItalic != 0 {
		text = wrap("i", text)
	}
	if bits&StyleUnderline != 0 {
		text = wrap("u", text)
	}
	if st.TextStrike(r.CharIndex) {
		text = wrap("s", text)
	}
	if bits&StyleSmallCaps != 0 {
		text = `<span style="font-variant:small-caps">` + text + "</span>"
	}

	return `<font style="` + fontStyle(st, r) + `">` + text + "</font>"
}

// Paragraph wraps body in a paragraph element carrying the alignment,
// indents and spacing of paragraph index.
func Paragraph(st style.Style, index int, body string) string {
	decl := []string{"text-align:" + st.HorizontalAlign(index)}
	decl = appendPx(decl, "margin-left", st.IndentLeft(index))
	decl = appendPx(decl, "margin-right", st.IndentRight(index))
	decl = appendPx(decl, "text-indent", st.IndentFirst(index))
	decl = appendPx(decl, "margin-top", st.SpaceBefore(index))
	decl = appendPx(decl, "margin-bottom", st.SpaceAfter(index))

	// Negative line spacing is a fraction of the font size.
	if sp := st.SpaceLine(index); sp < 0 {
		decl = append(decl, "line-height:"+number(units.Round2(-sp*100))+"%")
	} else if sp > 0 {
		decl = appendPx(decl, "line-height", units.Round2(units.ToPixels(sp)))
	}

	return `<p style="` + strings.Join(decl, ";") + `">` + body + "</p>"
}

// Direction returns "rtl" when the paragraph is flagged right-to-left or the
// text's first strong character is right-to-left, and "ltr" otherwise.
func Direction(st style.Style, paraIndex int, text string) string {
	if st.Direction(paraIndex) == "rtl" {
		return "rtl"
	}
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return "rtl"
		case bidi.L:
			return "ltr"
		}
	}
	return "ltr"
}

func fontStyle(st style.Style, r Run) string {
	decl := []string{"color:" + st.TextColor(r.CharIndex)}
	decl = appendPx(decl, "font-size", st.TextSize(r.CharIndex))
	if font := st.TextFont(r.CharIndex); font != "" && font != style.ValueThemed {
		decl = append(decl, "font-family:"+html.EscapeString(font))
	}
	decl = append(decl, "direction:"+Direction(st, r.ParaIndex, r.Text))
	decl = appendPx(decl, "letter-spacing", st.LetterSpace(r.CharIndex))
	return strings.Join(decl, ";")
}

func appendPx(decl []string, prop string, v float64) []string {
	if v == 0 {
		return decl
	}
	return append(decl, prop+":"+number(v)+"px")
}

func wrap(tag, text string) string {
	return "<" + tag + ">" + text + "</" + tag + ">"
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
