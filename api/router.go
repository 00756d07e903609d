package api

import (
	"github.com/gin-gonic/gin"
)

type RouterOptions struct {
	AllowedOrigins []string
	// MaxBodyBytes caps JSON bodies, MaxUploadBytes caps /extract uploads.
	MaxBodyBytes   int64
	MaxUploadBytes int64
	// MetricsPath is only served when the handler has a metrics recorder.
	MetricsPath string
}

// NewRouter wires the middleware chain and the API routes.
// Logging and metrics sit outside Recovery so panicking requests are still recorded.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog(h.logger))
	if h.metrics != nil {
		r.Use(Metrics(h.metrics))
	}
	r.Use(Recovery(h.logger), CORS(opts.AllowedOrigins))

	if h.metrics != nil && opts.MetricsPath != "" {
		r.GET(opts.MetricsPath, gin.WrapH(h.metrics.Handler()))
	}
	r.POST("/predict", BodyLimit(opts.MaxBodyBytes), h.PredictHandler)
	r.GET("/health", h.HealthHandler)
	r.POST("/extract", BodyLimit(opts.MaxUploadBytes), h.ExtractHandler)
	return r
}
