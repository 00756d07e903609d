package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saqibullah/diabetes-risk-api/metrics"
	"github.com/saqibullah/diabetes-risk-api/model"
)

// Handler serves the prediction API. Everything it holds is read-only
// after construction, so one Handler is shared by all requests.
type Handler struct {
	predictor *model.Predictor
	logger    *zap.Logger
	metrics   *metrics.Recorder
	ocr       OCRFunc
}

type Option func(*Handler)

func WithMetrics(m *metrics.Recorder) Option {
	return func(h *Handler) { h.metrics = m }
}

func WithOCR(ocr OCRFunc) Option {
	return func(h *Handler) { h.ocr = ocr }
}

func NewHandler(predictor *model.Predictor, logger *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		predictor: predictor,
		logger:    logger,
		ocr:       TesseractOCR,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

func (h *Handler) PredictHandler(c *gin.Context) {
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		h.observe(metrics.OutcomeInvalid)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	features, err := model.FeaturesFromMap(data)
	if err != nil {
		h.observe(metrics.OutcomeInvalid)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.predictor.Predict(c.Request.Context(), features)
	if err != nil {
		h.logger.Error("prediction failed",
			zap.String("request_id", RequestIDFrom(c)),
			zap.Error(err),
		)
		status, msg := errorResponse(err)
		if status == http.StatusBadRequest {
			h.observe(metrics.OutcomeInvalid)
		} else {
			h.observe(metrics.OutcomeError)
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if result.Prediction == 1 {
		h.observe(metrics.OutcomeHighRisk)
	} else {
		h.observe(metrics.OutcomeLowRisk)
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) HealthHandler(c *gin.Context) {
	if !h.predictor.Loaded() {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", ModelLoaded: false})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", ModelLoaded: true})
}

// errorResponse maps a prediction error to a status and a client-safe message.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, model.ErrModelNotLoaded):
		return http.StatusServiceUnavailable, "model not loaded"
	default:
		return http.StatusInternalServerError, "prediction failed"
	}
}

func (h *Handler) observe(outcome string) {
	if h.metrics != nil {
		h.metrics.ObservePrediction(outcome)
	}
}
