// Package derive produces output resolutions from a canonical rendering
// without re-running layout. Every function here is pure with respect to its
// inputs; the canonical artifact is only read.
package derive

import (
	"fmt"
	"image"
	"math"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
)

// DefaultWidths are the output widths in pixels when none are configured.
var DefaultWidths = []int{240, 360, 480}

// Resolution is one requested output size.
type Resolution struct {
	Width  int
	Height int
}

// RasterAspectRatio is height over width of img.
func RasterAspectRatio(img image.Image) float64 {
	b := img.Bounds()
	if b.Dx() <= 0 {
		return 1
	}
	return float64(b.Dy()) / float64(b.Dx())
}

// VectorAspectRatio reads height over width from the root width and height
// attributes of an SVG document. Any parse failure yields fallback.
func VectorAspectRatio(markup string, fallback float64) float64 {
	root := parseRoot(markup)
	if root == nil {
		return fallback
	}
	w, okW := attrFloat(root, "width")
	h, okH := attrFloat(root, "height")
	if !okW || !okH || w <= 0 {
		return fallback
	}
	return h / w
}

// TargetHeight is width*aspect rounded to the nearest pixel.
func TargetHeight(width int, aspect float64) int {
	return int(math.Round(float64(width) * aspect))
}

// Resolutions pairs each width with its target height.
func Resolutions(widths []int, aspect float64) []Resolution {
	out := make([]Resolution, 0, len(widths))
	for _, w := range widths {
		out = append(out, Resolution{Width: w, Height: TargetHeight(w, aspect)})
	}
	return out
}

// ResizeRaster resamples src to w×h with Lanczos3 and flattens the result onto
// an opaque white background. src is not modified.
func ResizeRaster(src image.Image, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("derive: invalid raster size %dx%d", w, h)
	}
	scaled := resize.Resize(uint(w), uint(h), src, resize.Lanczos3)
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.DrawImage(scaled, 0, 0)
	return dc.Image(), nil
}

// ResizeVector rewrites the root width, height and viewBox to w×h and appends
// a scale transform to every descendant element. When the document cannot be
// parsed or serialized, markup is returned unchanged.
func ResizeVector(markup string, w, h int) string {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(markup); err != nil {
		return markup
	}
	root := doc.Root()
	if root == nil {
		return markup
	}

	ow, ok := attrFloat(root, "width")
	if !ok || ow <= 0 {
		ow = float64(w)
	}
	oh, ok := attrFloat(root, "height")
	if !ok || oh <= 0 {
		oh = float64(h)
	}
	scale := fmt.Sprintf("scale(%s, %s)", num(float64(w)/ow), num(float64(h)/oh))

	root.CreateAttr("width", strconv.Itoa(w))
	root.CreateAttr("height", strconv.Itoa(h))
	root.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", w, h))
	for _, el := range root.FindElements(".//*") {
		if t := el.SelectAttrValue("transform", ""); t != "" {
			el.CreateAttr("transform", t+" "+scale)
		} else {
			el.CreateAttr("transform", scale)
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return markup
	}
	return out
}

func parseRoot(markup string) *etree.Element {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(markup); err != nil {
		return nil
	}
	return doc.Root()
}

func attrFloat(el *etree.Element, key string) (float64, bool) {
	v, err := strconv.ParseFloat(el.SelectAttrValue(key, ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
