package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saqibullah/diabetes-risk-api/model"
)

// OCRFunc returns the text recognised in the image at path.
type OCRFunc func(ctx context.Context, path string) (string, error)

var measurementPatterns = map[string]*regexp.Regexp{
	"glucose":        regexp.MustCompile(`(?i)\bglucose\s*[:=\-]?\s*(\d+\.?\d*)`),
	"blood_pressure": regexp.MustCompile(`(?i)\bblood\s*pressure\s*[:=\-]?\s*(\d+\.?\d*)`),
	"skin_thickness": regexp.MustCompile(`(?i)\bskin\s*thickness\s*[:=\-]?\s*(\d+\.?\d*)`),
	"insulin":        regexp.MustCompile(`(?i)\binsulin\s*[:=\-]?\s*(\d+\.?\d*)`),
	"bmi":            regexp.MustCompile(`(?i)\bbmi\s*[:=\-]?\s*(\d+\.?\d*)`),
	"age":            regexp.MustCompile(`(?i)\bage\s*[:=\-]?\s*(\d+)`),
}

// ParseMeasurements pulls the clinical measurements out of free text.
// Keys match the /predict request body; measurements not found are omitted.
func ParseMeasurements(text string) map[string]float64 {
	extracted := make(map[string]float64)
	for _, name := range model.FeatureNames {
		match := measurementPatterns[name].FindStringSubmatch(text)
		if len(match) < 2 {
			continue
		}
		if f, err := strconv.ParseFloat(match[1], 64); err == nil {
			extracted[name] = f
		}
	}
	return extracted
}

// TesseractOCR shells out to the tesseract binary.
func TesseractOCR(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", fmt.Errorf("tesseract not installed or not in PATH: %w", err)
	}
	out, err := exec.CommandContext(ctx, "tesseract", path, "stdout", "-l", "eng").Output()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil
}

func (h *Handler) ExtractHandler(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image uploaded: " + err.Error()})
		return
	}

	tmp, err := os.CreateTemp("", "extract-*"+filepath.Ext(file.Filename))
	if err != nil {
		h.logger.Error("create temp file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := c.SaveUploadedFile(file, tmp.Name()); err != nil {
		h.logger.Error("save upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}

	text, err := h.ocr(c.Request.Context(), tmp.Name())
	if err != nil {
		h.logger.Error("ocr failed",
			zap.String("request_id", RequestIDFrom(c)),
			zap.String("filename", file.Filename),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "OCR failed"})
		return
	}

	extracted := ParseMeasurements(strings.TrimSpace(text))
	h.logger.Debug("measurements extracted",
		zap.String("request_id", RequestIDFrom(c)),
		zap.Int("count", len(extracted)),
	)
	c.JSON(http.StatusOK, gin.H{"extracted": extracted})
}
