package parser

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/style"
)

func element(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

func TestParseCells(t *testing.T) {
	el := element(t, `<StyleSheet ID="3" LineStyle="1" FillStyle="2" TextStyle="x">`+
		`<Cell N="LineColor" V="#FF0000"/>`+
		`<Cell N="LineWeight" V="0.01" U="PT" F="THEMEVAL()"/>`+
		`<Section N="Character"><Row IX="0"><Cell N="Color" V="1"/></Row><Row IX="2"><Cell N="Size" V="0.2"/></Row></Section>`+
		`<Section N="User"><Row N="a"><Cell N="Value" V="1"/></Row></Section>`+
		`<Section N="Geometry" IX="0"><Row T="MoveTo" IX="1"/></Section>`+
		`</StyleSheet>`)

	node := style.NewNode(3, "")
	parseParents(el, node)
	parseCells(el, node)

	assert.Equal(t, map[style.Category]style.ID{
		style.CategoryLine: 1,
		style.CategoryFill: 2,
	}, node.Parents)

	c, ok := node.Local("LineWeight")
	require.True(t, ok)
	assert.Equal(t, style.Cell{Name: "LineWeight", Value: "0.01", Formula: "THEMEVAL()", Unit: "PT"}, c)

	c, ok = node.LocalIndexed(style.SectionCharacter, 2, "Size")
	require.True(t, ok)
	assert.Equal(t, "0.2", c.Value)

	_, ok = node.LocalIndexed("User", 0, "Value")
	assert.True(t, ok, "rows without IX are indexed by position")
	_, ok = node.Sections[sectionGeometry]
	assert.False(t, ok, "geometry is not a style section")
}

func TestParseAndMergeProperties(t *testing.T) {
	base := parseProperties(element(t, `<Section N="Property">`+
		`<Row N="Cost"><Cell N="Label" V="Cost"/><Cell N="Value" V="10"/></Row>`+
		`<Row N="Owner"><Cell N="Label" V="Owner"/><Cell N="Value" V="ops"/></Row>`+
		`</Section>`))
	local := parseProperties(element(t, `<Section N="Property">`+
		`<Row N="Cost"><Cell N="Value" V="12.5"/></Row>`+
		`<Row N="Gone" Del="1"><Cell N="Value" V="x"/></Row>`+
		`<Row N="Site"><Cell N="Label" V="Site"/><Cell N="Value" V="Tokyo"/></Row>`+
		`</Section>`))

	got := mergeProperties(base, local)
	want := []Property{
		{Name: "Cost", Label: "Cost", Value: "12.5"},
		{Name: "Owner", Label: "Owner", Value: "ops"},
		{Name: "Site", Label: "Site", Value: "Tokyo"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mergeProperties() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "10", base[0].Value, "inherited rows are not modified")
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := ParseValue(tt.input)
		if result != tt.expected {
			t.Errorf("ParseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}
