package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumFeatures is the width of every vector the classifier sees.
const NumFeatures = 6

// FeatureNames lists the request keys in the order the classifier was trained on.
var FeatureNames = [NumFeatures]string{
	"glucose",
	"blood_pressure",
	"skin_thickness",
	"insulin",
	"bmi",
	"age",
}

// FeatureVector holds the clinical measurements in FeatureNames order.
type FeatureVector [NumFeatures]float64

// FeaturesFromMap builds a FeatureVector from a decoded JSON object.
// Missing keys default to 0, unknown keys are ignored.
func FeaturesFromMap(data map[string]any) (FeatureVector, error) {
	var fv FeatureVector
	if data == nil {
		return fv, fmt.Errorf("%w: request body must be a JSON object", ErrInvalidInput)
	}
	for i, name := range FeatureNames {
		raw, ok := data[name]
		if !ok {
			continue
		}
		v, err := toFloat(raw)
		if err != nil {
			return fv, fmt.Errorf("%w: %s: %v", ErrInvalidInput, name, err)
		}
		fv[i] = v
	}
	return fv, nil
}

func toFloat(raw any) (float64, error) {
	var v float64
	switch t := raw.(type) {
	case float64:
		v = t
	case float32:
		v = float64(t)
	case int:
		v = float64(t)
	case int64:
		v = float64(t)
	case bool:
		if t {
			v = 1
		}
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert string to float: %q", t)
		}
		v = f
	case nil:
		return 0, fmt.Errorf("value must be a number, not null")
	default:
		return 0, fmt.Errorf("value must be a number, not %T", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value must be finite")
	}
	return v, nil
}
