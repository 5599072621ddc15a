package server

import (
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"house-price-predictor/models"
	"house-price-predictor/services"
	"house-price-predictor/storage"
	"house-price-predictor/utils"
)

// Options tunes the handlers.
type Options struct {
	CacheSize        int
	BatchConcurrency int
	MaxBatchSize     int
}

// engine is the immutable pipeline built from one artifact set.
type engine struct {
	pipeline *services.Pipeline
	est      services.Estimator
}

// Server exposes the pipeline over HTTP. Reload swaps the engine atomically,
// so in-flight requests finish on the set they started with.
type Server struct {
	store    *storage.ArtifactStore
	opts     Options
	logger   *utils.Logger
	metrics  *Metrics
	registry *prometheus.Registry
	current  atomic.Pointer[engine]
}

// New loads the artifacts through store and builds a ready Server.
func New(store *storage.ArtifactStore, opts Options, logger *utils.Logger) (*Server, error) {
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = 1000
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		store:    store,
		opts:     opts,
		logger:   logger,
		metrics:  NewMetrics(reg),
		registry: reg,
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) build() error {
	set, err := s.store.Get()
	if err != nil {
		return err
	}
	p, err := services.NewPipeline(set, s.logger)
	if err != nil {
		return err
	}

	e := &engine{pipeline: p, est: p}
	if s.opts.CacheSize > 0 {
		memo, err := services.NewMemo(p, s.opts.CacheSize)
		if err != nil {
			return err
		}
		e.est = memo
	}
	s.current.Store(e)
	return nil
}

// Reload invalidates the artifact cache and rebuilds the pipeline. On
// failure the previous pipeline keeps serving.
func (s *Server) Reload() error {
	s.store.Invalidate()
	if err := s.build(); err != nil {
		s.metrics.reloads.WithLabelValues("error").Inc()
		s.logger.Error("[server] Reload failed, keeping version %q: %v", s.current.Load().pipeline.Version(), err)
		return err
	}
	s.metrics.reloads.WithLabelValues("ok").Inc()
	s.logger.Info("[server] Now serving artifact version %q", s.current.Load().pipeline.Version())
	return nil
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID())

	r.GET("/healthz", s.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	s.RegisterRoutes(r.Group("/api"))
	return r
}

// RegisterRoutes registers the prediction API.
func (s *Server) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/predict", s.Predict)
	rg.POST("/predict/batch", s.PredictBatch)
	rg.GET("/schema", s.Schema)
	rg.POST("/admin/reload", s.ReloadHandler)
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()
		s.logger.Debug("[http] %s %s %d %v id=%s", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start), id)
	}
}

// POST /api/predict?diagnostics=true
func (s *Server) Predict(c *gin.Context) {
	resp := PredictResponse{RequestID: c.GetString("request_id")}

	var in models.RawInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error = &ErrorBody{Kind: services.KindInvalidInput, Message: "malformed request body: " + err.Error()}
		s.metrics.predictions.WithLabelValues(services.KindInvalidInput).Inc()
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	e := s.current.Load()
	res, err := s.predict(e.est, in)
	if err != nil {
		resp.Error = errorBody(err)
		c.JSON(statusFor(err), resp)
		return
	}

	resp.Price = &res.Price
	resp.LogPrice = &res.LogPrice
	resp.ArtifactVersion = res.ArtifactVersion
	if withDiag, _ := strconv.ParseBool(c.Query("diagnostics")); withDiag {
		resp.Diagnostics = &res.Diagnostics
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/predict/batch
func (s *Server) PredictBatch(c *gin.Context) {
	id := c.GetString("request_id")

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"request_id": id, "error": ErrorBody{Kind: services.KindInvalidInput, Message: "malformed request body: " + err.Error()}})
		return
	}
	if len(req.Inputs) > s.opts.MaxBatchSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"request_id": id, "error": ErrorBody{
			Kind:    services.KindInvalidInput,
			Message: "batch exceeds " + strconv.Itoa(s.opts.MaxBatchSize) + " inputs",
		}})
		return
	}

	e := s.current.Load()
	scorer := services.NewBatchScorer(timedEstimator{s: s, next: e.est}, s.opts.BatchConcurrency, 0, s.logger)
	rows := scorer.Score(req.Inputs)

	resp := BatchResponse{RequestID: id, ArtifactVersion: e.pipeline.Version(), Items: make([]BatchItem, len(rows))}
	for i, r := range rows {
		item := BatchItem{Index: r.Index}
		if r.Err != nil {
			if services.KindOf(r.Err) == services.KindInvalidInput {
				s.metrics.predictions.WithLabelValues(services.KindInvalidInput).Inc()
			}
			item.Error = errorBody(r.Err)
		} else {
			price, logPrice := r.Result.Price, r.Result.LogPrice
			item.Price, item.LogPrice = &price, &logPrice
		}
		resp.Items[i] = item
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/schema
func (s *Server) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, s.current.Load().pipeline.Schema())
}

// POST /api/admin/reload
func (s *Server) ReloadHandler(c *gin.Context) {
	if err := s.Reload(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"request_id": c.GetString("request_id"), "error": errorBody(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"version": s.current.Load().pipeline.Version()})
}

// GET /healthz
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "artifact_version": s.current.Load().pipeline.Version()})
}

// predict validates in and runs it through est, recording metrics.
func (s *Server) predict(est services.Estimator, in models.RawInput) (*models.PredictionResult, error) {
	if err := in.Validate(); err != nil {
		s.metrics.predictions.WithLabelValues(services.KindInvalidInput).Inc()
		return nil, err
	}
	return timedEstimator{s: s, next: est}.Predict(in)
}

// timedEstimator records duration and outcome of every prediction.
type timedEstimator struct {
	s    *Server
	next services.Estimator
}

func (t timedEstimator) Predict(in models.RawInput) (*models.PredictionResult, error) {
	start := time.Now()
	res, err := t.next.Predict(in)
	t.s.metrics.duration.Observe(time.Since(start).Seconds())

	kind := "ok"
	if err != nil {
		kind = services.KindOf(err)
		if !services.IsUserError(err) {
			t.s.logger.Error("[server] Prediction failed (%s): %v", kind, err)
		}
	}
	t.s.metrics.predictions.WithLabelValues(kind).Inc()
	return res, err
}

func errorBody(err error) *ErrorBody {
	body := &ErrorBody{Kind: services.KindOf(err), Message: err.Error()}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	return body
}

func statusFor(err error) int {
	if services.IsUserError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
