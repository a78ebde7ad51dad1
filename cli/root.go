// Package cli wires configuration, logging and the generator into the dotqr
// command line.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ByLCY/dotqr/assets"
	"github.com/ByLCY/dotqr/config"
	"github.com/ByLCY/dotqr/generator"
	"github.com/ByLCY/dotqr/logger"
	"github.com/ByLCY/dotqr/sink"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "dotqr",
		Short:        "Render dot-style QR codes as JPEG, PNG and SVG",
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file (default ./config.yaml when present)")
	pf.Bool("debug", false, "enable debug logging")
	pf.String("out", "", "output directory (default \"output\")")
	pf.Bool("dump-layout", false, "also write the layout primitives as JSON")
	pf.IntSlice("resolutions", nil, "output widths in pixels (default 240,360,480)")
	pf.Int("jpeg-quality", 0, "JPEG quality 1-100 (default 90)")
	addStyleFlags(pf)

	cmd.AddCommand(generateCmd(&configPath), batchCmd(&configPath))
	return cmd
}

func addStyleFlags(fs *pflag.FlagSet) {
	fs.String("module-color", "", "data dot color, a name or #RRGGBB (default black)")
	fs.String("eye-frame-color", "", "finder eye color, a name or #RRGGBB (default black)")
	fs.Int("pixels-per-module", 0, "raster module size in pixels (default 30)")
	fs.Float64("dot-size-factor", 0, "dot diameter as a fraction of the module, 0.65-0.82 (default 0.75)")
	fs.Float64("dot-size-variance", 0, "maximum random dot size change, 0-0.04")
	fs.Int("batch-seed", 0, "seed for reproducible dot size variance")
	fs.Float64("eye-frame-mid-radius", 0, "corner radius ratio of the eye's middle ring (default 0.8)")
	fs.Float64("eye-frame-pupil-radius", 0, "corner radius ratio of the eye's pupil (default 0.6)")
}

// session is what every subcommand needs after flags are parsed.
type session struct {
	cfg *config.Config
	log *logger.Logger
	gen *generator.Generator
	out sink.Dir
}

func newSession(cmd *cobra.Command, configPath string) (*session, error) {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Logger())
	if err != nil {
		return nil, err
	}
	log.Debugw("configuration loaded", "config", configPath, "output", cfg.Output.Dir,
		"resolutions", cfg.Output.Resolutions)

	gen := generator.New(generator.Options{
		Widths:      cfg.Output.Resolutions,
		JPEGQuality: cfg.Output.JPEGQuality,
		Resolver:    assets.NewResolver(),
		Logger:      log,
	})
	return &session{cfg: cfg, log: log, gen: gen, out: sink.Dir{Root: cfg.Output.Dir}}, nil
}

func (s *session) close() {
	_ = s.log.Sync()
}
