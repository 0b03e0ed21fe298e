// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the forum service.
package api

import (
	_ "embed"
	"fmt"
	"forum/internal/api/handler/v1handler"
	"forum/internal/config"
	"forum/pkg/controller"
	"forum/pkg/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// v1Spec is the OpenAPI document describing the /v1 routes.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options carries the listener settings and the handful of knobs the server
// needs beyond its dependencies. Zero durations fall back to net/http defaults.
type Options struct {
	Environment string // gin debug or release mode
	Addr        string

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	// RequestTimeout bounds the handling of a single request.
	RequestTimeout time.Duration
	MaxHeaderBytes int

	MetricsPath string
	// Registerer receives the otel instruments; nil means the default registry.
	Registerer prometheus.Registerer
}

// NewOptions maps the http section of cfg onto Options.
func NewOptions(cfg *config.Config) Options {
	h := cfg.HTTP

	return Options{
		Environment:       cfg.Environment,
		Addr:              h.Addr,
		ReadTimeout:       h.ReadTimeout,
		ReadHeaderTimeout: h.ReadHeaderTimeout,
		WriteTimeout:      h.WriteTimeout,
		IdleTimeout:       h.IdleTimeout,
		RequestTimeout:    h.RequestTimeout,
		MaxHeaderBytes:    h.MaxHeaderBytes,
		MetricsPath:       h.MetricsPath,
	}
}

// Deps are the services behind the v1 routes.
type Deps struct {
	v1handler.Deps
}

// timeoutBody is written when RequestTimeout elapses; it matches ErrorResponse.
const timeoutBody = `{"code":"INTERNAL","message":"request timed out"}`

// NewServer builds the forum HTTP server. The mux serves Prometheus metrics,
// the OpenAPI document with its Swagger UI, the v1 JSON API and pprof, and is
// wrapped in CORS, access logging and a per-request timeout.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	mp, err := meterProvider(opts.Registerer)
	if err != nil {
		return nil, err
	}

	v1, err := newV1Engine(deps, opts, mp)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(opts.MetricsPath, promhttp.Handler())
	mountDocs(mux)
	mux.Handle("/v1/", v1)
	mux.Handle(controller.PprofPrefix, controller.PprofMux())

	handler := controller.WithLogger(controller.WithCORS(mux))

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           http.TimeoutHandler(handler, opts.RequestTimeout, timeoutBody),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}

// meterProvider exports otel instruments through the Prometheus registerer.
func meterProvider(registerer prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	exp, err := otelprom.New(otelprom.WithRegisterer(registerer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

func mountDocs(mux *http.ServeMux) {
	mux.HandleFunc("/specs/v1.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	mux.Handle("/v1/docs/", v5emb.New("Forum Service", "/specs/v1.yaml", "/v1/docs/"))
}

func newV1Engine(deps Deps, opts Options, mp *sdkmetric.MeterProvider) (*gin.Engine, error) {
	if opts.Environment == logger.ProductionEnvironment {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	metricsMiddleware, err := v1handler.Metrics(mp)
	if err != nil {
		return nil, fmt.Errorf("could not create v1 metrics middleware: %w", err)
	}
	engine.Use(metricsMiddleware)

	v1handler.New(deps.Deps).Routes(engine.Group("/v1"))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, v1handler.ErrorResponse{Code: "NOT_FOUND", Message: "route not found"})
	})

	return engine, nil
}
