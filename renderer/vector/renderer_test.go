package vectorrenderer

import (
	"strconv"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/dotqr/layout"
	"github.com/ByLCY/dotqr/style"
)

func filled(n int) layout.Bitmap {
	rows := make([][]bool, n)
	for y := range rows {
		rows[y] = make([]bool, n)
		for x := range rows[y] {
			rows[y][x] = true
		}
	}
	return layout.Bitmap(rows)
}

func render(t *testing.T, opts layout.BuildOptions) (*Document, *etree.Element) {
	t.Helper()
	opts.Unit = layout.UnitModule
	res, err := layout.Build(filled(21), style.Default(), opts)
	require.NoError(t, err)
	doc, err := NewRenderer().Render(res)
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromString(doc.Markup), "markup must be well-formed XML")
	root := parsed.Root()
	require.NotNil(t, root)
	return doc, root
}

func TestRenderRootDimensions(t *testing.T) {
	doc, root := render(t, layout.BuildOptions{Caption: "https://x.io", Typesetter: NewRenderer()})
	assert.Equal(t, "svg", root.Tag)
	assert.Equal(t, "29", root.SelectAttrValue("width", ""))
	assert.Equal(t, "38", root.SelectAttrValue("height", ""))
	assert.Equal(t, "0 0 29 38", root.SelectAttrValue("viewBox", ""))
	assert.InDelta(t, 38.0/29.0, doc.AspectRatio(), 1e-12)

	first := root.ChildElements()[0]
	assert.Equal(t, "rect", first.Tag)
	assert.Equal(t, "white", first.SelectAttrValue("fill", ""))
}

func TestRenderCirclesOutsideFinders(t *testing.T) {
	_, root := render(t, layout.BuildOptions{})
	circles := root.SelectElements("circle")
	assert.Len(t, circles, 21*21-3*49)
	for _, c := range circles {
		cx, err := strconv.ParseFloat(c.SelectAttrValue("cx", ""), 64)
		require.NoError(t, err)
		cy, err := strconv.ParseFloat(c.SelectAttrValue("cy", ""), 64)
		require.NoError(t, err)
		assert.False(t, layout.InFinderZone(int(cx)-style.BorderModules, int(cy)-style.BorderModules, 21))
		assert.Equal(t, "0.38", c.SelectAttrValue("r", ""), "0.5*0.75 at two decimals")
	}
}

func TestRenderEyes(t *testing.T) {
	_, root := render(t, layout.BuildOptions{})
	rects := root.SelectElements("rect")[1:]
	require.Len(t, rects, 9)
	outer := rects[0]
	assert.Equal(t, "4.00", outer.SelectAttrValue("x", ""))
	assert.Equal(t, "7.00", outer.SelectAttrValue("width", ""))
	assert.Equal(t, "1.00", outer.SelectAttrValue("rx", ""))
	assert.Equal(t, "#FFFFFF", rects[1].SelectAttrValue("fill", ""))
	assert.Equal(t, "0.80", rects[1].SelectAttrValue("rx", ""))
	assert.Equal(t, "0.60", rects[2].SelectAttrValue("ry", ""))
}

func TestRenderLogoInline(t *testing.T) {
	logo := &layout.Logo{Path: "brand.jpg", MIME: "image/jpeg", Data: []byte("jpeg-bytes")}
	_, root := render(t, layout.BuildOptions{Logo: logo})
	img := root.SelectElement("image")
	require.NotNil(t, img)
	assert.Equal(t, DataURI("image/jpeg", logo.Data), img.SelectAttrValue("href", ""))
	assert.True(t, strings.HasPrefix(img.SelectAttrValue("href", ""), "data:image/jpeg;base64,"))
	assert.Equal(t, "6.38", img.SelectAttrValue("width", ""))
	assert.Equal(t, "xMidYMid meet", img.SelectAttrValue("preserveAspectRatio", ""))
}

func TestRenderCaptionEscaped(t *testing.T) {
	caption := `https://x.io/?a=1&b=<2>"'`
	doc, root := render(t, layout.BuildOptions{Caption: caption, Typesetter: NewRenderer()})
	assert.Contains(t, doc.Markup, "&amp;b=&lt;2&gt;&quot;&apos;")
	texts := root.SelectElements("text")
	require.NotEmpty(t, texts)
	var joined string
	for _, tx := range texts {
		joined += tx.Text()
		assert.Equal(t, "middle", tx.SelectAttrValue("text-anchor", ""))
		assert.Equal(t, "bold", tx.SelectAttrValue("font-weight", ""))
		assert.Equal(t, fontFamily, tx.SelectAttrValue("font-family", ""))
		assert.Equal(t, "1.20", tx.SelectAttrValue("font-size", ""))
	}
	assert.Equal(t, caption, joined)
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt; &quot;d&quot; &apos;e&apos;", EscapeText(`a & b <c> "d" 'e'`))
	assert.Equal(t, "plain", EscapeText("plain"))
}

func TestDataURIDefaultsToPNG(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AQI=", DataURI("", []byte{1, 2}))
}

func TestLayoutLinesCharacterEstimate(t *testing.T) {
	r := NewRenderer()
	maxWidth := 29 * style.VectorCaptionMaxWidthRatio // 24.65，字号 1.2 时约 34 个字符
	assert.Equal(t, []string{"https://x.io"}, r.LayoutLines("https://x.io", maxWidth, style.VectorFontSize))

	lines := r.LayoutLines("https://www.example.com/segment/another/third/x", maxWidth, style.VectorFontSize)
	assert.Equal(t, []string{"https://www.example.com/segment", "/another/third/x"}, lines)
}

func TestRenderRejectsPixelLayout(t *testing.T) {
	res, err := layout.Build(filled(21), style.Default(), layout.BuildOptions{Unit: layout.UnitPixel})
	require.NoError(t, err)
	_, err = NewRenderer().Render(res)
	assert.Error(t, err)
}
