// Package server exposes a renderer over HTTP.
package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/drake/glyphbox/boxes"
	"github.com/drake/glyphbox/text"
)

// Preview page defaults, in cells.
const (
	DefaultPreviewCols = 64
	previewPadCols     = 4
	previewPadRows     = 2
	previewMessage     = "The Weave Archive: a parchment log rendered server-side with boxes."
)

// Server serves render requests against a Renderer.
type Server struct {
	renderer  boxes.Renderer
	validator boxes.Validator
	logger    *log.Logger
	router    *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithValidator overrides the request validator.
func WithValidator(v boxes.Validator) Option {
	return func(s *Server) { s.validator = v }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New builds a Server and its routes.
func New(r boxes.Renderer, opts ...Option) *Server {
	s := &Server{
		renderer:  r,
		validator: boxes.DefaultValidator(),
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests)
	router.SetHTMLTemplate(previewTemplate)
	router.POST("/api/box", s.handleBox)
	router.GET("/api/designs", s.handleDesigns)
	router.GET("/", s.handlePreview)
	s.router = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"elapsed", time.Since(start))
}

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) handleBox(c *gin.Context) {
	var req boxes.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{"invalid_json", err.Error()})
		return
	}
	if req.EOL == "" {
		req.EOL = boxes.EOLLF
	}
	if err := s.validator.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{"invalid_request", err.Error()})
		return
	}

	resp, err := s.renderer.Render(c.Request.Context(), req)
	if err != nil {
		var verr *boxes.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, errorBody{"invalid_request", err.Error()})
			return
		}
		s.logger.Warn("render failed", "design", req.Design, "err", err)
		c.JSON(http.StatusInternalServerError, errorBody{"render_failed", err.Error()})
		return
	}
	if resp.Measured == nil {
		size := boxes.Measure(resp.BoxText)
		resp.Measured = &size
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDesigns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"designs": s.validator.Designs})
}

var previewTemplate = template.Must(template.New("preview").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width,initial-scale=1" />
    <title>ASCII Box Renderer</title>
    <style>
      body { margin: 0; padding: 32px; background: #e0e0d0; color: #111; font-family: ui-monospace, Menlo, Consolas, monospace; }
      .card { max-width: {{.Cols}}ch; margin: 0 auto; }
      pre { white-space: pre; line-height: 1.2; font-size: 16px; }
    </style>
  </head>
  <body>
    <div class="card">
      <pre>{{.Art}}</pre>
    </div>
  </body>
</html>
`))

func (s *Server) handlePreview(c *gin.Context) {
	cols := DefaultPreviewCols
	if v, err := strconv.Atoi(c.Query("cols")); err == nil && v > 0 {
		cols = v
	}
	inner := max(10, cols-2*previewPadCols-2)

	resp, err := s.renderer.Render(c.Request.Context(), boxes.Request{
		Design:  "parchment",
		Text:    text.Wrap(previewMessage, inner, text.WrapWord, text.OverflowClip),
		Size:    boxes.Size{Cols: cols},
		Padding: boxes.Padding{Top: previewPadRows, Right: previewPadCols, Bottom: previewPadRows, Left: previewPadCols},
		Align:   "hc",
		EOL:     boxes.EOLLF,
	})
	if err != nil {
		s.logger.Warn("preview render failed", "err", err)
		c.String(http.StatusInternalServerError, "Render failed: %s", err.Error())
		return
	}
	c.HTML(http.StatusOK, "preview", gin.H{"Cols": cols, "Art": resp.BoxText})
}
