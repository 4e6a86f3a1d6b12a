// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the results page over HTTP.
package server

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/linkresolver/internal/citation"
	"github.com/pdiddy/linkresolver/internal/fetch"
	"github.com/pdiddy/linkresolver/internal/metrics"
	"github.com/pdiddy/linkresolver/internal/page"
	"github.com/pdiddy/linkresolver/pkg/types"
)

// LinkSource fetches the link records for a page view's query string.
// *links.Client satisfies it.
type LinkSource interface {
	Fetch(ctx context.Context, query url.Values) ([]types.LinkRecord, error)
}

// Server renders the results page for each request.
type Server struct {
	citation      types.CitationRecord
	source        LinkSource
	renderTimeout time.Duration
	logger        *zap.Logger
}

// New returns a Server. The citation record is the static artifact loaded
// at startup and is shared read-only by every page view.
func New(rec types.CitationRecord, source LinkSource, cfg types.ResolverConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.WithDefaults()
	return &Server{
		citation:      rec,
		source:        source,
		renderTimeout: cfg.RenderTimeout,
		logger:        logger,
	}
}

// Handler builds the gin engine with all routes and middleware.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(s.logger), Metrics())
	r.SetHTMLTemplate(page.Template())

	r.GET("/", s.results)
	r.GET("/citation.yaml", s.citationCSL)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "linkresolver"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "OPTIONS"}
	api := r.Group("/api/v1", cors.New(corsCfg))
	{
		api.GET("/links", s.linksState)
	}
	return r
}

// results mounts one page view: a single fetch, bounded by the render
// timeout, then a render of whatever state the fetch reached.
func (s *Server) results(c *gin.Context) {
	st := s.resolve(c)
	c.HTML(http.StatusOK, page.TemplateName, page.Compose(s.citation, st))
}

// linksState returns the fetch state of one page view as JSON.
func (s *Server) linksState(c *gin.Context) {
	c.JSON(http.StatusOK, s.resolve(c))
}

func (s *Server) citationCSL(c *gin.Context) {
	c.Header("Content-Type", "application/yaml; charset=utf-8")
	c.Status(http.StatusOK)
	if err := citation.FormatCSL(s.citation, c.Writer); err != nil {
		s.logger.Error("writing CSL citation", zap.Error(err))
	}
}

// resolve runs the page view's fetch and waits for it up to the render
// timeout. The fetch is tied to the request: if the client goes away the
// result is discarded.
func (s *Server) resolve(c *gin.Context) fetch.State {
	ctx := c.Request.Context()
	query := c.Request.URL.Query()
	log := s.logger.With(zap.String("request_id", c.GetString(requestIDKey)))

	start := time.Now()
	hook := fetch.NewHook(
		fetch.FetcherFunc(func(ctx context.Context) ([]types.LinkRecord, error) {
			return s.source.Fetch(ctx, query)
		}),
		fetch.WithObserver(func(_, to fetch.State) {
			if !to.Terminal() {
				return
			}
			if ctx.Err() != nil {
				log.Debug("link fetch discarded", zap.Error(ctx.Err()))
				return
			}
			metrics.ObserveFetch(to, time.Since(start).Seconds())
			if to.Phase == fetch.PhaseError {
				log.Warn("link fetch failed", zap.String("error", to.Error))
				return
			}
			log.Debug("link fetch finished", zap.Int("links", len(to.Resource)))
		}),
	)
	hook.Trigger(ctx)

	waitCtx, cancel := context.WithTimeout(ctx, s.renderTimeout)
	defer cancel()
	st := hook.Wait(waitCtx)
	if st.Loading() {
		log.Info("rendering before link fetch finished", zap.Duration("render_timeout", s.renderTimeout))
	}
	return st
}
