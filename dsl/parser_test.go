package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/dotqr/dsl"
)

const sampleDSL = `
// 春季活动二维码
batch spring v1 {
  style {
    module-color: navy
    eye-frame-color: #0d3d2e
    dot-size-variance: 0.03; batch-seed: 42
    logo: "brand.png"
  }

  vars {
    host: "https://example.com"
    campaign: { name: "spring", year: 2025 }
    tags: [
      "print"
      "web"
    ]
    enabled: true
  }

  # codes
  code promo-1 "${host}/p/${id}"
  code "${host}/landing"
  code poster "${host}/poster" {
    logo: "poster.png"
    pixels-per-module: -1
  }
}
`

func TestParseBatch(t *testing.T) {
	b, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if b.Name != "spring" || b.Version != "v1" {
		t.Fatalf("unexpected header %q %q", b.Name, b.Version)
	}
	if len(b.Sections) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(b.Sections))
	}
	kinds := make([]string, 0, len(b.Sections))
	for _, s := range b.Sections {
		kinds = append(kinds, s.Kind())
	}
	if got := strings.Join(kinds, ","); got != "style,vars,code,code,code" {
		t.Fatalf("unexpected section kinds %s", got)
	}
}

func TestBatchStyle(t *testing.T) {
	b, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	s := b.Style()
	if s["module-color"] != "navy" {
		t.Fatalf("module-color = %v", s["module-color"])
	}
	if s["eye-frame-color"] != "#0d3d2e" {
		t.Fatalf("eye-frame-color = %v", s["eye-frame-color"])
	}
	if s["dot-size-variance"] != 0.03 || s["batch-seed"] != 42.0 {
		t.Fatalf("numbers not captured: %v %v", s["dot-size-variance"], s["batch-seed"])
	}
	if s["logo"] != "brand.png" {
		t.Fatalf("logo = %v", s["logo"])
	}
}

func TestBatchVars(t *testing.T) {
	b, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	v := b.Vars()
	if v["host"] != "https://example.com" {
		t.Fatalf("host = %v", v["host"])
	}
	campaign, ok := v["campaign"].(map[string]any)
	if !ok || campaign["name"] != "spring" || campaign["year"] != 2025.0 {
		t.Fatalf("campaign = %#v", v["campaign"])
	}
	tags, ok := v["tags"].([]any)
	if !ok || len(tags) != 2 || tags[1] != "web" {
		t.Fatalf("tags = %#v", v["tags"])
	}
	if v["enabled"] != true {
		t.Fatalf("enabled = %v", v["enabled"])
	}
}

func TestBatchCodes(t *testing.T) {
	b, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	codes := b.Codes()
	if len(codes) != 3 {
		t.Fatalf("expected 3 codes, got %d", len(codes))
	}
	if codes[0].ID != "promo-1" || string(codes[0].Content) != "${host}/p/${id}" {
		t.Fatalf("unexpected first code %+v", codes[0])
	}
	if codes[1].ID != "" || codes[1].Overrides != nil {
		t.Fatalf("second code should have no id or overrides: %+v", codes[1])
	}
	o := codes[2].Overrides.Map()
	if o["logo"] != "poster.png" || o["pixels-per-module"] != -1.0 {
		t.Fatalf("unexpected overrides %v", o)
	}
	if codes[2].Pos.Line == 0 {
		t.Fatalf("code position not recorded")
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"missing header":  `{ code "x" }`,
		"unclosed":        `batch b { code "x"`,
		"unknown section": `batch b { page A4 {} }`,
		"bad string":      `batch b { code "x }`,
	}
	for name, src := range cases {
		if _, err := dsl.ParseString(src); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestParseEmptyBatch(t *testing.T) {
	b, err := dsl.Parse("empty.dotqr", strings.NewReader("batch empty {}\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(b.Codes()) != 0 || len(b.Style()) != 0 {
		t.Fatalf("expected an empty batch")
	}
}
