// Package generator runs the full pipeline for one code: encode, lay out for
// both targets, render the canonical artifacts and derive every requested
// resolution.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/dotqr/assets"
	"github.com/ByLCY/dotqr/codec"
	"github.com/ByLCY/dotqr/derive"
	"github.com/ByLCY/dotqr/layout"
	"github.com/ByLCY/dotqr/logger"
	"github.com/ByLCY/dotqr/qrmatrix"
	rasterrenderer "github.com/ByLCY/dotqr/renderer/raster"
	vectorrenderer "github.com/ByLCY/dotqr/renderer/vector"
	"github.com/ByLCY/dotqr/sink"
	"github.com/ByLCY/dotqr/style"
)

// ErrInvalidConfig reports a request that cannot be generated, such as one
// with no content or no id.
var ErrInvalidConfig = errors.New("invalid configuration")

// Artifact formats, which double as file extensions.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatSVG  = "svg"
)

// Formats lists the artifact formats in output order.
var Formats = []string{FormatJPEG, FormatPNG, FormatSVG}

// Request describes one code to generate.
type Request struct {
	QrID     string
	Content  string
	Style    style.Options
	LogoPath string
}

// Artifact is one derived output file.
type Artifact struct {
	Format string
	Width  int
	Height int
	Name   string
	Data   []byte
}

// Output holds the canonical renderings and every derived artifact.
type Output struct {
	QrID         string
	LogoPath     string // resolved logo, empty when none was used
	Raster       *rasterrenderer.Image
	Vector       *vectorrenderer.Document
	RasterLayout *layout.Result
	VectorLayout *layout.Result
	Artifacts    []Artifact
}

// LogoResolver locates a logo file; see assets.Resolver.
type LogoResolver interface {
	Resolve(path string) (string, bool)
}

// Encoder turns content into a module matrix; see qrmatrix.Encode.
type Encoder func(content string) (layout.Matrix, error)

// Options configures a Generator. Zero values select defaults.
type Options struct {
	Widths      []int
	JPEGQuality int
	Resolver    LogoResolver
	Encoder     Encoder
	Logger      *logger.Logger
}

// Generator is safe for sequential reuse across requests.
type Generator struct {
	widths   []int
	quality  int
	resolver LogoResolver
	encode   Encoder
	log      *logger.Logger
	raster   *rasterrenderer.Renderer
	vector   *vectorrenderer.Renderer
}

// New creates a generator.
func New(opts Options) *Generator {
	g := &Generator{
		widths:   opts.Widths,
		quality:  opts.JPEGQuality,
		resolver: opts.Resolver,
		encode:   opts.Encoder,
		log:      opts.Logger,
		raster:   rasterrenderer.NewRenderer(),
		vector:   vectorrenderer.NewRenderer(),
	}
	if len(g.widths) == 0 {
		g.widths = derive.DefaultWidths
	}
	if g.quality == 0 {
		g.quality = codec.DefaultJPEGQuality
	}
	if g.resolver == nil {
		g.resolver = assets.NewResolver()
	}
	if g.encode == nil {
		g.encode = func(content string) (layout.Matrix, error) { return qrmatrix.Encode(content) }
	}
	if g.log == nil {
		g.log = logger.Nop()
	}
	g.log = g.log.Named("generator")
	return g
}

// Validate checks the fields every request needs.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(r.QrID) == "" {
		return fmt.Errorf("%w: qr id is required", ErrInvalidConfig)
	}
	return nil
}

// Generate produces the canonical raster and vector renderings for req and
// derives jpeg, png and svg artifacts for every configured width.
func (g *Generator) Generate(ctx context.Context, req Request) (*Output, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	log := g.log.With("qrId", req.QrID)

	s := req.Style.Resolve()
	out := &Output{QrID: req.QrID}
	logo := g.loadLogo(req.LogoPath, log)
	if logo != nil {
		out.LogoPath = logo.Path
		log.Infow("using logo", "path", logo.Path)
	}
	matrix, err := g.encode(req.Content)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", req.Content, err)
	}

	out.RasterLayout, err = layout.Build(matrix, s, layout.BuildOptions{
		Unit: layout.UnitPixel, Caption: req.Content, Logo: logo, Typesetter: g.raster,
	})
	if err != nil {
		return nil, err
	}
	out.VectorLayout, err = layout.Build(matrix, s, layout.BuildOptions{
		Unit: layout.UnitModule, Caption: req.Content, Logo: logo, Typesetter: g.vector,
	})
	if err != nil {
		return nil, err
	}
	if out.Raster, err = g.raster.Render(out.RasterLayout); err != nil {
		return nil, err
	}
	if out.Vector, err = g.vector.Render(out.VectorLayout); err != nil {
		return nil, err
	}
	log.Debugw("rendered canonical artifacts",
		"raster", fmt.Sprintf("%dx%d", out.Raster.Width(), out.Raster.Height()),
		"vector", fmt.Sprintf("%gx%g", out.Vector.Width, out.Vector.Height),
		"primitives", len(out.RasterLayout.Primitives))

	if out.Artifacts, err = g.derive(ctx, req.QrID, out.Raster, out.Vector); err != nil {
		return nil, err
	}
	return out, nil
}

// loadLogo resolves and reads the logo. Any failure degrades to no logo.
func (g *Generator) loadLogo(path string, log *zap.SugaredLogger) *layout.Logo {
	if path == "" {
		return nil
	}
	resolved, ok := g.resolver.Resolve(path)
	if !ok {
		log.Warnw("logo not found, continuing without logo", "path", path)
		return nil
	}
	logo, err := assets.LoadLogo(resolved)
	if err != nil {
		log.Warnw("logo unusable, continuing without logo", "path", resolved, "error", err)
		return nil
	}
	return logo
}

// derive fans out one task per width and target. Tasks only read the
// canonical renderings and write to their own slots.
func (g *Generator) derive(ctx context.Context, qrID string, img *rasterrenderer.Image, doc *vectorrenderer.Document) ([]Artifact, error) {
	rasterRes := derive.Resolutions(g.widths, img.AspectRatio())
	vectorRes := derive.Resolutions(g.widths, derive.VectorAspectRatio(doc.Markup, img.AspectRatio()))
	n := len(g.widths)
	artifacts := make([]Artifact, len(Formats)*n)

	eg, ctx := errgroup.WithContext(ctx)
	for i := range g.widths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := rasterRes[i]
			scaled, err := derive.ResizeRaster(img, r.Width, r.Height)
			if err != nil {
				return err
			}
			jpg, err := codec.EncodeJPEG(scaled, g.quality)
			if err != nil {
				return err
			}
			png, err := codec.EncodePNG(scaled)
			if err != nil {
				return err
			}
			artifacts[i] = newArtifact(qrID, FormatJPEG, r, jpg)
			artifacts[n+i] = newArtifact(qrID, FormatPNG, r, png)
			return nil
		})
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := vectorRes[i]
			artifacts[2*n+i] = newArtifact(qrID, FormatSVG, r, []byte(derive.ResizeVector(doc.Markup, r.Width, r.Height)))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("derive resolutions: %w", err)
	}
	return artifacts, nil
}

func newArtifact(qrID, format string, r derive.Resolution, data []byte) Artifact {
	return Artifact{
		Format: format,
		Width:  r.Width,
		Height: r.Height,
		Name:   sink.FileName(qrID, r.Width, format),
		Data:   data,
	}
}

// GenerateBatch generates requests in order and stops at the first error.
func (g *Generator) GenerateBatch(ctx context.Context, reqs []Request) ([]*Output, error) {
	outs := make([]*Output, 0, len(reqs))
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return outs, err
		}
		out, err := g.Generate(ctx, req)
		if err != nil {
			return outs, fmt.Errorf("generate %s: %w", req.QrID, err)
		}
		outs = append(outs, out)
	}
	return outs, nil
}
