package parser

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/geom"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/style"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const relImage = "http://schemas.microsoft.com/visio/2010/relationships/image"

var fixtureParts = map[string]string{
	"visio/document.xml": `<?xml version="1.0" encoding="utf-8"?>
<VisioDocument xmlns="http://schemas.microsoft.com/office/visio/2012/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <Colors>
    <ColorEntry IX="1" RGB="#abcdef"/>
  </Colors>
  <StyleSheets>
    <StyleSheet ID="0" NameU="No Style" Name="No Style">
      <Cell N="LineColor" V="0"/>
      <Cell N="FillPattern" V="1"/>
      <Cell N="FillForegnd" V="1"/>
    </StyleSheet>
    <StyleSheet ID="3" NameU="Accent" LineStyle="0" FillStyle="0" TextStyle="0">
      <Cell N="FillForegnd" V="#112233"/>
    </StyleSheet>
    <StyleSheet ID="3" NameU="Duplicate"/>
  </StyleSheets>
</VisioDocument>`,

	"visio/masters/masters.xml": `<?xml version="1.0" encoding="utf-8"?>
<Masters xmlns="http://schemas.microsoft.com/office/visio/2012/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <Master ID="2" NameU="Rectangle" Name="Rectangle">
    <Rel r:id="rId1"/>
  </Master>
</Masters>`,

	"visio/masters/_rels/masters.xml.rels": `<?xml version="1.0" encoding="utf-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.microsoft.com/visio/2010/relationships/master" Target="master1.xml"/>
</Relationships>`,

	"visio/masters/master1.xml": `<?xml version="1.0" encoding="utf-8"?>
<MasterContents xmlns="http://schemas.microsoft.com/office/visio/2012/main">
  <Shapes>
    <Shape ID="5" NameU="Rectangle" Type="Shape" FillStyle="0">
      <Cell N="Width" V="2"/>
      <Cell N="Height" V="1"/>
      <Cell N="LocPinX" V="1"/>
      <Cell N="LocPinY" V="0.5"/>
      <Section N="Property">
        <Row N="Cost"><Cell N="Label" V="Cost"/><Cell N="Value" V="10"/></Row>
      </Section>
      <Section N="Geometry" IX="0">
        <Row T="MoveTo" IX="1"><Cell N="X" V="0"/><Cell N="Y" V="0"/></Row>
        <Row T="LineTo" IX="2"><Cell N="X" V="2"/><Cell N="Y" V="0"/></Row>
        <Row T="LineTo" IX="3"><Cell N="X" V="2"/><Cell N="Y" V="1"/></Row>
        <Row T="LineTo" IX="4"><Cell N="X" V="0"/><Cell N="Y" V="1"/></Row>
        <Row T="LineTo" IX="5"><Cell N="X" V="0"/><Cell N="Y" V="0"/></Row>
      </Section>
      <Text>Master text</Text>
    </Shape>
  </Shapes>
</MasterContents>`,

	"visio/pages/pages.xml": `<?xml version="1.0" encoding="utf-8"?>
<Pages xmlns="http://schemas.microsoft.com/office/visio/2012/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <Page ID="0" NameU="Page-1" Name="Page-1">
    <PageSheet>
      <Cell N="PageWidth" V="8.5"/>
      <Cell N="PageHeight" V="11"/>
    </PageSheet>
    <Rel r:id="rId1"/>
  </Page>
</Pages>`,

	"visio/pages/_rels/pages.xml.rels": `<?xml version="1.0" encoding="utf-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.microsoft.com/visio/2010/relationships/page" Target="page1.xml"/>
</Relationships>`,

	"visio/pages/_rels/page1.xml.rels": `<?xml version="1.0" encoding="utf-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId2" Type="` + relImage + `" Target="../media/image1.png"/>
</Relationships>`,

	"visio/pages/page1.xml": `<?xml version="1.0" encoding="utf-8"?>
<PageContents xmlns="http://schemas.microsoft.com/office/visio/2012/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <Shapes>
    <Shape ID="1" NameU="Rectangle.1" Master="2" FillStyle="3" UniqueID="{2287DC42-B167-4F7F-8A6C-A6DB1E4B2CE9}">
      <Cell N="PinX" V="2"/>
      <Cell N="PinY" V="10"/>
      <Section N="Property">
        <Row N="Cost"><Cell N="Value" V="12"/></Row>
      </Section>
    </Shape>
    <Shape ID="2" NameU="Dynamic connector.2" Type="Shape">
      <Cell N="BeginX" V="1"/>
      <Cell N="BeginY" V="1"/>
      <Cell N="EndX" V="3"/>
      <Cell N="EndY" V="3"/>
      <Text>Hello</Text>
    </Shape>
    <Shape ID="3" NameU="Picture.3" Type="Foreign" UniqueID="not-a-uuid">
      <ForeignData ForeignType="Bitmap" CompressionType="PNG">
        <Rel r:id="rId2"/>
      </ForeignData>
    </Shape>
    <Shape ID="4" Type="Group">
      <Shapes>
        <Shape ID="6" NameU="Child" Master="9"/>
      </Shapes>
    </Shape>
  </Shapes>
  <Connects>
    <Connect FromSheet="2" FromCell="BeginX" ToSheet="1"/>
    <Connect FromSheet="2" FromCell="EndX" ToSheet="4"/>
  </Connects>
</PageContents>`,

	"visio/media/image1.png": "png-bytes",
}

func fixtureArchive(t *testing.T, parts map[string]string) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return zr
}

func TestRead(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	pkg, err := Read(fixtureArchive(t, fixtureParts), zap.New(core))
	require.NoError(t, err)

	color, ok := pkg.Palette.Color("1")
	require.True(t, ok)
	assert.Equal(t, "#ABCDEF", color)
	assert.Equal(t, 2, pkg.Styles.Len())
	assert.Equal(t, 1, logs.FilterMessage("Skipping stylesheet").Len())

	require.Len(t, pkg.Pages, 1)
	page := pkg.Pages[0]
	assert.Equal(t, "Page-1", page.Name)
	assert.Equal(t, 8.5, page.Width)
	assert.Equal(t, 11.0, page.Height)
	require.Len(t, page.Shapes, 4)

	t.Run("master instance", func(t *testing.T) {
		s := page.Shapes[0]
		assert.Equal(t, "Rectangle", s.MasterName)
		assert.Equal(t, "Rectangle", s.Label())
		assert.Equal(t, "2287dc42-b167-4f7f-8a6c-a6db1e4b2ce9", s.UniqueID)
		assert.Equal(t, "Master text", s.Text())
		assert.Equal(t, style.ID(3), s.Node.Parents[style.CategoryFill])
		assert.Equal(t, []Property{{Name: "Cost", Label: "Cost", Value: "12"}}, s.Data)

		require.Len(t, s.Geometry, 1)
		assert.Len(t, s.Geometry[0].Primitives, 5)
		assert.Equal(t, geom.KindMoveTo, s.Geometry[0].Primitives[0].Kind)

		left, top, width, height := s.Bounds(page.Height)
		assert.Equal(t, 1.0, left)
		assert.Equal(t, 0.5, top)
		assert.Equal(t, 2.0, width)
		assert.Equal(t, 1.0, height)
		assert.True(t, ShouldInclude(s, "standard"))
		assert.False(t, s.IsConnector())

		st := style.NewResolver(pkg.Styles, style.WithPalette(pkg.Palette)).Style(s.Node)
		assert.Equal(t, "#112233", st.FillColor())
		assert.Equal(t, "#000000", st.StrokeColor())
	})

	t.Run("connector", func(t *testing.T) {
		s := page.Shapes[1]
		assert.Equal(t, "Dynamic connector", s.Label())
		assert.True(t, s.IsConnector())
		assert.Equal(t, "NE", s.Direction())
		assert.Equal(t, 1, s.Begin)
		assert.Equal(t, 4, s.End)
		assert.Empty(t, s.Geometry)
	})

	t.Run("picture", func(t *testing.T) {
		s := page.Shapes[2]
		require.NotNil(t, s.Image)
		assert.Equal(t, "image/png", s.Image.ContentType)
		assert.Equal(t, "visio/media/image1.png", s.Image.Target)
		assert.Equal(t, []byte("png-bytes"), s.Image.Data)
		assert.Empty(t, s.UniqueID)
		assert.Equal(t, 1, logs.FilterMessage("Ignoring malformed unique id").Len())
	})

	t.Run("group with unknown master", func(t *testing.T) {
		s := page.Shapes[3]
		assert.Equal(t, "Group", s.Label())
		require.Len(t, s.Children, 1)
		assert.Equal(t, "Child", s.Children[0].Label())
		assert.False(t, ShouldInclude(s, "standard"))
		assert.Equal(t, 1, logs.FilterMessage("Unknown master").Len())
	})
}

func TestReadMissingParts(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{"document", "visio/document.xml"},
		{"pages", "visio/pages/pages.xml"},
		{"page contents", "visio/pages/page1.xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := make(map[string]string, len(fixtureParts))
			for k, v := range fixtureParts {
				if k != tt.missing {
					parts[k] = v
				}
			}
			_, err := Read(fixtureArchive(t, parts), nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingPart), "got %v", err)
		})
	}
}

func TestReadWithoutMasters(t *testing.T) {
	parts := make(map[string]string, len(fixtureParts))
	for k, v := range fixtureParts {
		parts[k] = v
	}
	delete(parts, "visio/masters/masters.xml")

	pkg, err := Read(fixtureArchive(t, parts), nil)
	require.NoError(t, err)

	s := pkg.Pages[0].Shapes[0]
	assert.Empty(t, s.MasterName)
	assert.Empty(t, s.Geometry)
	assert.Equal(t, "Rectangle", s.Label())
}
