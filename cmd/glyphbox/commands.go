package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/drake/glyphbox/boxes"
	"github.com/drake/glyphbox/debug"
	"github.com/drake/glyphbox/designs"
	"github.com/drake/glyphbox/engine"
	"github.com/drake/glyphbox/export"
	"github.com/drake/glyphbox/frame"
	"github.com/drake/glyphbox/inkfit"
	"github.com/drake/glyphbox/layout"
	"github.com/drake/glyphbox/server"
	"github.com/drake/glyphbox/ui/preview"
)

func newRenderCmd(a *app) *cobra.Command {
	var lf layoutFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render text in a box sized to the target grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := lf.request(cmd.InOrStdin())
			if err != nil {
				return err
			}
			res := a.engine().Layout(cmd.Context(), req, a.cfg.Metrics(), contentContainer(req, a.cfg.Metrics()))
			fmt.Fprintln(cmd.OutOrStdout(), res.Art.BoxText)
			if res.Fallback {
				return fmt.Errorf("rendered without border: %w", res.Err)
			}
			return nil
		},
	}
	lf.register(cmd.Flags())
	return cmd
}

// fitReport is the JSON written by the fit command.
type fitReport struct {
	Design    string        `json:"design"`
	Cols      int           `json:"cols"`
	Rows      int           `json:"rows"`
	BoxText   string        `json:"boxText"`
	Fallback  bool          `json:"fallback"`
	Error     string        `json:"error,omitempty"`
	Warnings  []string      `json:"warnings,omitempty"`
	Frame     *frame.Frame  `json:"frame,omitempty"`
	Inner     *frame.Bounds `json:"inner,omitempty"`
	Fit       *inkfit.Fit   `json:"fit,omitempty"`
	FitSource string        `json:"fitSource,omitempty"`
}

func newReport(design string, res engine.Result) fitReport {
	r := fitReport{
		Design:   design,
		Cols:     res.Plan.Grid.Cols,
		Rows:     res.Plan.Grid.Rows,
		BoxText:  res.Art.BoxText,
		Fallback: res.Fallback,
		Warnings: slices.Concat(res.Plan.Warnings, res.Art.Warnings),
		Frame:    res.Frame,
		Inner:    res.Inner,
		Fit:      res.Fit,
	}
	if res.Err != nil {
		r.Error = res.Err.Error()
	}
	if res.Fit != nil {
		r.FitSource = res.FitSource.String()
	}
	return r
}

func newFitCmd(a *app) *cobra.Command {
	var (
		lf      layoutFlags
		measure bool
	)
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Lay out a box and report its frame, content bounds and ink fit as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := lf.request(cmd.InOrStdin())
			if err != nil {
				return err
			}
			e, metrics := a.engine(), a.cfg.Metrics()
			if measure {
				var fp *inkfit.FaceProvider
				if e, fp, err = a.faceEngine(); err != nil {
					return err
				}
				metrics = fp.Cell(a.cfg.Layout.LetterSpacing)
			}
			res := e.Layout(cmd.Context(), req, metrics, contentContainer(req, metrics))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(newReport(req.Design, res))
		},
	}
	lf.register(cmd.Flags())
	cmd.Flags().BoolVar(&measure, "measure", false, "measure glyphs with the bundled mono font")
	return cmd
}

func newPNGCmd(a *app) *cobra.Command {
	var (
		lf    layoutFlags
		out   string
		scale float64
	)
	cmd := &cobra.Command{
		Use:   "png",
		Short: "Render a fitted box to a PNG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := lf.request(cmd.InOrStdin())
			if err != nil {
				return err
			}
			e, fp, err := a.faceEngine()
			if err != nil {
				return err
			}
			metrics := fp.Cell(a.cfg.Layout.LetterSpacing)
			res := e.Layout(cmd.Context(), req, metrics, contentContainer(req, metrics))
			if res.Fallback {
				a.logger.Warn("drawing plain text", "err", res.Err)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			err = export.PNG(f, res.Art.BoxText, export.Options{
				Face:  fp.Face(),
				Cell:  metrics,
				Cols:  res.Plan.Grid.Cols,
				Rows:  res.Plan.Grid.Rows,
				Fit:   res.Fit,
				Scale: scale,
			})
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			a.logger.Info("wrote image", "path", out, "fit", res.FitSource)
			return nil
		},
	}
	lf.register(cmd.Flags())
	cmd.Flags().StringVarP(&out, "out", "o", "box.png", "output file")
	cmd.Flags().Float64Var(&scale, "scale", 1, "device pixel ratio")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API and preview page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			r := a.renderer()
			if c, ok := r.(*boxes.Cached); ok {
				debug.NewMonitor(c, a.logger).Start(cmd.Context())
			}
			s := server.New(r, server.WithLogger(a.logger))
			return s.Run(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var lf layoutFlags
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Edit box text in the terminal with a live preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lf.text == "" {
				lf.text = "Hello, glyphbox"
			}
			req, err := lf.request(nil)
			if err != nil {
				return err
			}
			// The terminal grid is the cell grid.
			metrics := layout.CellMetrics{CharWidthPx: 1, LineHeightPx: 1, FontPx: 1, RootFontPx: 1}
			m := preview.New(a.engine(), req, metrics, preview.WithDelay(a.cfg.Layout.Debounce))
			return preview.Run(m)
		},
	}
	lf.register(cmd.Flags())
	return cmd
}

func newDesignsCmd(a *app) *cobra.Command {
	var sample, dump bool
	cmd := &cobra.Command{
		Use:   "designs",
		Short: "List the available box designs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dump {
				_, err := io.WriteString(cmd.OutOrStdout(), designs.BuiltinConfig())
				return err
			}
			cat := designs.Builtin()
			name := lipgloss.NewStyle().Bold(true)
			muted := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
			w := cmd.OutOrStdout()
			for _, n := range cat.Names() {
				d, _ := cat.Lookup(n)
				in := d.ContentInset()
				line := name.Render(n)
				if len(d.Aliases) > 0 {
					line += " " + muted.Render("("+strings.Join(d.Aliases, ", ")+")")
				}
				line += " " + muted.Render(fmt.Sprintf("inset t%d r%d b%d l%d", in.Top, in.Right, in.Bottom, in.Left))
				fmt.Fprintln(w, line)
				if sample {
					fmt.Fprintln(w, d.Sample)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&sample, "sample", false, "print each design's sample")
	cmd.Flags().BoolVar(&dump, "dump", false, "print the builtin boxes-config, usable with boxes -f")
	return cmd
}
