// Copyright 2024 Jack Bister
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackbister/authnorm/internal/config"
	"github.com/jackbister/authnorm/internal/registry"
	"github.com/jackbister/authnorm/internal/runner"
	"github.com/jackbister/authnorm/pkg/authnorm/events"
	"github.com/jackbister/authnorm/pkg/authnorm/util"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"
)

// Web exposes the normalizers over HTTP so that a dispatcher can fetch descriptors and submit batches
// without spawning a process per batch.
type Web struct {
	cfg      *config.Config
	registry *registry.Registry
	runner   *runner.BatchRunner
	gatherer prometheus.Gatherer

	logger *slog.Logger
}

type WebParams struct {
	dig.In

	Cfg          *config.Config
	Registry     *registry.Registry
	Runner       *runner.BatchRunner
	PromRegistry *prometheus.Registry
	Logger       *slog.Logger
}

func NewWeb(p WebParams) *Web {
	return &Web{
		cfg:      p.Cfg,
		registry: p.Registry,
		runner:   p.Runner,
		gatherer: p.PromRegistry,
		logger:   p.Logger,
	}
}

type RouteResponse struct {
	// Routes[i] holds the names of the normalizers whose descriptors match event i.
	Routes [][]string `json:"routes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (w *Web) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(util.NewGinSlogger(slog.LevelInfo, w.logger))
	r.SetTrustedProxies(nil)

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(w.gatherer, promhttp.HandlerOpts{})))

	r.GET("/plugins", func(c *gin.Context) {
		c.JSON(http.StatusOK, w.registry.Descriptors())
	})

	r.GET("/plugins/:plugin", func(c *gin.Context) {
		def, ok := w.registry.Lookup(c.Param("plugin"))
		if !ok {
			abortWithError(c, http.StatusNotFound, fmt.Errorf("no normalizer named '%s'", c.Param("plugin")))
			return
		}
		c.JSON(http.StatusOK, def.Descriptor)
	})

	r.POST("/normalize/:plugin", func(c *gin.Context) {
		def, ok := w.registry.Lookup(c.Param("plugin"))
		if !ok {
			abortWithError(c, http.StatusNotFound, fmt.Errorf("no normalizer named '%s'", c.Param("plugin")))
			return
		}
		batch, err := events.DecodeBatch(c.Request.Body)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err)
			return
		}
		rb, err := w.runner.Run(c.Request.Context(), def.Variant, batch)
		if err != nil {
			abortWithError(c, http.StatusServiceUnavailable, err)
			return
		}
		c.JSON(http.StatusOK, rb)
	})

	r.POST("/route", func(c *gin.Context) {
		batch, err := events.DecodeBatch(c.Request.Body)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err)
			return
		}
		res := RouteResponse{Routes: w.registry.RouteBatch(batch)}
		c.JSON(http.StatusOK, res)
	})

	return r
}

func abortWithError(c *gin.Context, code int, err error) {
	c.Error(err)
	c.AbortWithStatusJSON(code, errorResponse{Error: err.Error()})
}

// Serve listens on the configured address until ctx is cancelled.
func (w *Web) Serve(ctx context.Context) error {
	s := &http.Server{
		Addr:              w.cfg.Web.Address,
		Handler:           w.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		w.logger.Info("Starting web server", slog.String("address", s.Addr))
		errCh <- s.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("web server stopped: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.Shutdown(shutdownCtx)
		if err != nil {
			return fmt.Errorf("failed to shut down web server: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
