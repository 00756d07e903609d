package model

// ScalerConfig holds the per-feature training statistics used for standardisation.
type ScalerConfig struct {
	Mean FeatureVector
	Std  FeatureVector
}

// DefaultScalerConfig returns the statistics of the diabetes training set.
// They must stay in step with the bundled classifier artifact.
func DefaultScalerConfig() ScalerConfig {
	return ScalerConfig{
		Mean: FeatureVector{120.89453125, 69.10546875, 20.53645833, 79.79947917, 31.99257813, 33.24088542},
		Std:  FeatureVector{31.97261819, 19.35580727, 15.95221757, 115.24400235, 7.88416032, 11.76023154},
	}
}

// Scaler standardises feature vectors. The zero value is not usable, use NewScaler.
type Scaler struct {
	cfg ScalerConfig
}

func NewScaler(cfg ScalerConfig) Scaler {
	return Scaler{cfg: cfg}
}

// Transform returns (x - mean) / std element-wise.
func (s Scaler) Transform(x FeatureVector) FeatureVector {
	var out FeatureVector
	for i := range x {
		out[i] = (x[i] - s.cfg.Mean[i]) / s.cfg.Std[i]
	}
	return out
}
