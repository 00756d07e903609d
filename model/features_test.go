package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeaturesFromMap(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    FeatureVector
		wantErr bool
	}{
		{
			name: "all fields",
			body: `{"glucose": 150, "blood_pressure": 80, "skin_thickness": 25, "insulin": 100, "bmi": 35, "age": 45}`,
			want: FeatureVector{150, 80, 25, 100, 35, 45},
		},
		{name: "empty object defaults to zero", body: `{}`, want: FeatureVector{}},
		{name: "partial", body: `{"bmi": 22.5}`, want: FeatureVector{0, 0, 0, 0, 22.5, 0}},
		{name: "numeric strings", body: `{"glucose": " 99.5 ", "age": "30"}`, want: FeatureVector{99.5, 0, 0, 0, 0, 30}},
		{name: "booleans", body: `{"insulin": true, "age": false}`, want: FeatureVector{0, 0, 0, 1, 0, 0}},
		{name: "unknown keys ignored", body: `{"pregnancies": 3, "glucose": 1}`, want: FeatureVector{1, 0, 0, 0, 0, 0}},
		{name: "non numeric string", body: `{"glucose": "high"}`, wantErr: true},
		{name: "null value", body: `{"bmi": null}`, wantErr: true},
		{name: "nested object", body: `{"age": {"years": 3}}`, wantErr: true},
		{name: "array value", body: `{"age": [1]}`, wantErr: true},
		{name: "nan string", body: `{"age": "NaN"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data map[string]any
			require.NoError(t, json.Unmarshal([]byte(tt.body), &data))

			got, err := FeaturesFromMap(data)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFeaturesFromNilMap(t *testing.T) {
	_, err := FeaturesFromMap(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
