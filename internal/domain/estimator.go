package domain

// FactorPair is a pair of static multipliers applied to an AWS base price to
// approximate Azure and GCP rates when no live quote source is available.
type FactorPair struct {
	Azure float64
	GCP   float64
}

// neutralFactors assume price parity for keys without an entry.
var neutralFactors = FactorPair{Azure: 1.0, GCP: 1.0}

// StaticFactorEstimator implements Estimator with a hand-authored factor
// table. It performs no rounding; formatting happens at the response
// boundary.
type StaticFactorEstimator struct {
	factors map[string]FactorPair
}

// NewStaticFactorEstimator creates an estimator over the given factor table.
func NewStaticFactorEstimator(factors map[string]FactorPair) *StaticFactorEstimator {
	if factors == nil {
		factors = map[string]FactorPair{}
	}
	return &StaticFactorEstimator{factors: factors}
}

// Estimate returns (awsPrice*azureFactor, awsPrice*gcpFactor). Unknown keys
// use neutral 1.0 factors rather than erroring.
func (e *StaticFactorEstimator) Estimate(awsPrice float64, factorKey string) (float64, float64) {
	pair, ok := e.factors[factorKey]
	if !ok {
		pair = neutralFactors
	}
	return awsPrice * pair.Azure, awsPrice * pair.GCP
}

// Factors returns the factor pair for a key, or the neutral pair when the
// key is absent.
func (e *StaticFactorEstimator) Factors(factorKey string) FactorPair {
	if pair, ok := e.factors[factorKey]; ok {
		return pair
	}
	return neutralFactors
}
