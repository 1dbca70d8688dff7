// glyphbox fits box-drawing art to a target grid.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/drake/glyphbox/boxes"
	"github.com/drake/glyphbox/config"
	"github.com/drake/glyphbox/engine"
	"github.com/drake/glyphbox/inkfit"
	"github.com/drake/glyphbox/solver"
)

// app holds what every subcommand shares once flags and config are read.
type app struct {
	configPath  string
	logLevel    string
	rendererURL string

	cfg    config.Config
	logger *log.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "glyphbox: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "glyphbox",
		Short:         "Fit box-drawing art to a character grid",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.InitFile(), "Lua config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.rendererURL, "renderer-url", "", "render through a glyphbox server instead of the local boxes binary")

	root.AddCommand(
		newRenderCmd(a),
		newFitCmd(a),
		newPNGCmd(a),
		newServeCmd(a),
		newPreviewCmd(a),
		newDesignsCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	a.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "glyphbox"})
	a.logger.SetLevel(cfg.Level())
	log.SetDefault(a.logger)
	return nil
}

// renderer returns the configured renderer: a remote service when
// --renderer-url is set, else the local boxes process behind a result
// cache.
func (a *app) renderer() boxes.Renderer {
	if a.rendererURL != "" {
		return boxes.NewHTTP(a.rendererURL)
	}
	rc := a.cfg.Renderer
	p := boxes.NewProcess(rc.ConfigPath)
	p.Binary = rc.Binary
	p.Timeout = rc.Timeout
	p.MaxOutput = rc.MaxOutput
	p.Logger = a.logger
	return boxes.NewCached(p, rc.CacheSize, rc.ConfigPath)
}

func (a *app) engine(opts ...engine.Option) *engine.Engine {
	s := solver.New(a.renderer(),
		solver.WithMaxIterations(a.cfg.Solver.MaxIterations),
		solver.WithCacheSize(a.cfg.Solver.CacheSize),
		solver.WithLogger(a.logger),
	)
	return engine.New(s, append([]engine.Option{engine.WithLogger(a.logger)}, opts...)...)
}

// faceEngine returns an engine measuring with the bundled mono face at the
// configured font size, with cell metrics taken from that face.
func (a *app) faceEngine() (*engine.Engine, *inkfit.FaceProvider, error) {
	face, err := inkfit.MonoFace(a.cfg.Layout.FontSize)
	if err != nil {
		return nil, nil, err
	}
	return a.engine(engine.WithFace(face)), inkfit.NewFaceProvider(face), nil
}
