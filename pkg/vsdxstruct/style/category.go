package style

// Category selects which parent chain a cell is inherited through.
type Category int

// Style categories. Each names the shape attribute that references the
// parent stylesheet.
const (
	CategoryNone Category = iota
	CategoryFill
	CategoryLine
	CategoryText
)

func (c Category) String() string {
	switch c {
	case CategoryFill:
		return "FillStyle"
	case CategoryLine:
		return "LineStyle"
	case CategoryText:
		return "TextStyle"
	default:
		return ""
	}
}

// Section names with indexed rows.
const (
	SectionCharacter = "Character"
	SectionParagraph = "Paragraph"
	SectionTabs      = "Tabs"
)

var categories = map[string]Category{
	"FillForegnd":      CategoryFill,
	"FillForegndTrans": CategoryFill,
	"FillBkgnd":        CategoryFill,
	"FillBkgndTrans":   CategoryFill,
	"FillPattern":      CategoryFill,
	"ShdwForegnd":      CategoryFill,
	"ShdwPattern":      CategoryFill,
	"FillStyle":        CategoryFill,

	"BeginArrow":     CategoryLine,
	"BeginArrowSize": CategoryLine,
	"EndArrow":       CategoryLine,
	"EndArrowSize":   CategoryLine,
	"LinePattern":    CategoryLine,
	"LineColor":      CategoryLine,
	"LineColorTrans": CategoryLine,
	"LineWeight":     CategoryLine,
	"LineCap":        CategoryLine,
	"Rounding":       CategoryLine,

	"TextBkgnd":      CategoryText,
	"TextBkgndTrans": CategoryText,
	"TopMargin":      CategoryText,
	"BottomMargin":   CategoryText,
	"LeftMargin":     CategoryText,
	"RightMargin":    CategoryText,
	"VerticalAlign":  CategoryText,
	"TextDirection":  CategoryText,

	SectionCharacter: CategoryText,
	SectionParagraph: CategoryText,
	SectionTabs:      CategoryText,
}

// CategoryOf returns the category of a cell name or section name.
// Unknown names have CategoryNone and resolve through the theme root only.
func CategoryOf(key string) Category {
	return categories[key]
}
