package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/diversicloud/cloudcompare/internal/domain"
)

func TestStaticFactorEstimator_Estimate(t *testing.T) {
	estimator := domain.NewStaticFactorEstimator(map[string]domain.FactorPair{
		"gp3": {Azure: 1.05, GCP: 1.08},
		"sc1": {Azure: 0.85, GCP: 0.82},
	})

	tests := []struct {
		name          string
		awsPrice      float64
		factorKey     string
		expectedAzure float64
		expectedGCP   float64
	}{
		{
			name:          "known key multiplies exactly",
			awsPrice:      0.08,
			factorKey:     "gp3",
			expectedAzure: 0.08 * 1.05,
			expectedGCP:   0.08 * 1.08,
		},
		{
			name:          "factors below parity",
			awsPrice:      0.015,
			factorKey:     "sc1",
			expectedAzure: 0.015 * 0.85,
			expectedGCP:   0.015 * 0.82,
		},
		{
			name:          "unknown key is neutral",
			awsPrice:      0.125,
			factorKey:     "does-not-exist",
			expectedAzure: 0.125,
			expectedGCP:   0.125,
		},
		{
			name:          "zero price stays zero",
			awsPrice:      0,
			factorKey:     "gp3",
			expectedAzure: 0,
			expectedGCP:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			azure, gcp := estimator.Estimate(tt.awsPrice, tt.factorKey)

			require.InDelta(t, tt.expectedAzure, azure, 1e-12)
			require.InDelta(t, tt.expectedGCP, gcp, 1e-12)
		})
	}
}

func TestStaticFactorEstimator_NilTable(t *testing.T) {
	estimator := domain.NewStaticFactorEstimator(nil)

	azure, gcp := estimator.Estimate(0.5, "anything")
	require.InDelta(t, 0.5, azure, 1e-12)
	require.InDelta(t, 0.5, gcp, 1e-12)
}

func TestStaticFactorEstimator_Factors(t *testing.T) {
	estimator := domain.NewStaticFactorEstimator(map[string]domain.FactorPair{
		"io2": {Azure: 1.15, GCP: 1.2},
	})

	t.Run("known key", func(t *testing.T) {
		pair := estimator.Factors("io2")
		require.InDelta(t, 1.15, pair.Azure, 1e-12)
		require.InDelta(t, 1.2, pair.GCP, 1e-12)
	})

	t.Run("unknown key returns neutral pair", func(t *testing.T) {
		pair := estimator.Factors("missing")
		require.InDelta(t, 1.0, pair.Azure, 1e-12)
		require.InDelta(t, 1.0, pair.GCP, 1e-12)
	})
}
