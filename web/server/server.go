package server

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Request limits keep a single preview render bounded
const (
	maxWidth   = 800
	maxHeight  = 800
	maxSamples = 256
	maxDepth   = 50
)

// Server handles web requests for the path tracer
type Server struct {
	port      int
	assetsDir string
	echo      *echo.Echo

	logOut   io.Writer
	logMu    sync.Mutex
	renderID atomic.Int64
}

// NewServer creates a new web server with all routes registered
func NewServer(port int, assetsDir string) *Server {
	s := &Server{
		port:      port,
		assetsDir: assetsDir,
		logOut:    os.Stdout,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(corsMiddleware)

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/inspect", s.handleInspect)

	s.echo = e
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger("server").Printf("Starting web server on http://localhost%s\n", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

func (s *Server) logger(id string) core.Logger {
	return NewWebLogger(id, s.logOut, &s.logMu)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the available scenes, grouped by category
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.ListAllScenes())
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string // Scene id (e.g., "cornell-box")
	Width   int    // Image width
	Height  int    // Image height
	Samples int    // Samples per pixel
	Depth   int    // Maximum bounce depth
	Seed    int64  // Random seed
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// parseRenderRequest parses request parameters. Out-of-range numbers are
// clamped; malformed numbers are an error.
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "cornell-box" // Default scene
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 1, maxWidth); err != nil {
		return nil, err
	}
	defaultHeight := max(1, req.Width*9/16)
	if req.Height, err = parseIntParam(values, "height", defaultHeight, 1, maxHeight); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 16, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 10, 1, maxDepth); err != nil {
		return nil, err
	}
	if seed := values.Get("seed"); seed != "" {
		if req.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", seed)
		}
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query, clamped to [min, max]
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}
	if parsed < min {
		return min, nil
	}
	if parsed > max {
		return max, nil
	}
	return parsed, nil
}

// buildScene creates and preprocesses the requested scene. It reports false
// when the scene id is unknown.
func (s *Server) buildScene(req *RenderRequest, logger core.Logger) (*scene.Scene, bool, error) {
	preset, ok := scene.LookupScene(req.Scene)
	if !ok {
		return nil, false, nil
	}

	sceneObj := preset.Build(scene.Options{
		AspectRatio: float64(req.Width) / float64(req.Height),
		AssetsDir:   s.assetsDir,
		Seed:        req.Seed,
		Logger:      logger,
	})
	if err := sceneObj.Preprocess(rand.New(rand.NewSource(req.Seed))); err != nil {
		return nil, true, err
	}
	return sceneObj, true, nil
}

// handleRender renders the requested scene and returns it as a PNG
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	logger := s.logger(fmt.Sprintf("render-%d", s.renderID.Add(1)))
	sceneObj, found, err := s.buildScene(req, logger)
	if !found {
		return errorJSON(c, http.StatusNotFound, "Unknown scene: "+req.Scene)
	}
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Scene error: "+err.Error())
	}

	buffer, _, err := renderer.Render(sceneObj, renderer.RenderConfig{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.Depth,
		Seed:            req.Seed,
		Logger:          logger,
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Render error: "+err.Error())
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, buffer.ToImage(req.Samples)); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to encode image: "+err.Error())
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}
