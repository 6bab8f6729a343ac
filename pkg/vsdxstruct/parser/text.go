package parser

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/textfmt"
)

// parseText splits a Text element into runs at its cp (character row) and
// pp (paragraph row) markers. The newline closing the last paragraph is
// dropped.
func parseText(el *etree.Element) []textfmt.Run {
	var (
		runs []textfmt.Run
		cur  textfmt.Run
		sb   strings.Builder
	)
	flush := func() {
		if sb.Len() == 0 {
			return
		}
		cur.Text = sb.String()
		runs = append(runs, cur)
		sb.Reset()
	}

	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			switch t.Tag {
			case "cp":
				flush()
				cur.CharIndex = atoi(t.SelectAttrValue("IX", ""), 0)
			case "pp":
				flush()
				cur.ParaIndex = atoi(t.SelectAttrValue("IX", ""), 0)
			case "fld":
				sb.WriteString(t.Text())
			}
		}
	}
	flush()

	if n := len(runs); n > 0 {
		last := strings.TrimSuffix(runs[n-1].Text, "\n")
		if last == "" {
			runs = runs[:n-1]
		} else {
			runs[n-1].Text = last
		}
	}
	if len(runs) == 0 {
		return nil
	}
	return runs
}

// plainText joins the runs and trims surrounding whitespace.
func plainText(runs []textfmt.Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return strings.TrimSpace(sb.String())
}
