package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/diversicloud/cloudcompare/internal/domain"
	"github.com/diversicloud/cloudcompare/internal/observability"
)

var serverlessNames = domain.CloudNames{
	AWS:   "Lambda",
	Azure: "Functions",
	GCP:   "Cloud Functions",
}

// HandleServerlessPricing serves GET /api/serverless-pricing: function
// pricing for a given memory size and execution time, normalized to a
// monthly cost at one million invocations.
func (h *Handler) HandleServerlessPricing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		writeEnvelopeError(ctx, w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	memorySize, err := positiveIntParam(query.Get("memorySize"), 128)
	if err != nil {
		writeEnvelopeError(ctx, w, http.StatusBadRequest, "memorySize must be a positive integer")
		return
	}
	executionTime, err := positiveIntParam(query.Get("executionTime"), 100)
	if err != nil {
		writeEnvelopeError(ctx, w, http.StatusBadRequest, "executionTime must be a positive integer")
		return
	}
	regionLabel := domain.ResolveRegionLabel(query.Get("region"))

	ctx = observability.WithCategory(ctx, "Serverless")
	ctx = observability.WithRegion(ctx, regionLabel)

	results := h.fetchUnitPrices(ctx,
		priceQuery{
			ServiceCode: "AWSLambda",
			Filters: []domain.Filter{
				{Field: "location", Value: regionLabel},
				{Field: "group", Value: "AWS-Lambda-Requests"},
			},
			MaxResults: 1,
		},
		priceQuery{
			ServiceCode: "AWSLambda",
			Filters: []domain.Filter{
				{Field: "location", Value: regionLabel},
				{Field: "group", Value: "AWS-Lambda-Duration"},
			},
			MaxResults: 1,
		},
	)

	// The catalog quotes requests per million and duration per 1000
	// GB-seconds; normalize to per-request and per-GB-second before the
	// fallback check (fallback constants are already normalized).
	if results[0].Err == nil {
		results[0].Price /= 1e6
	}
	if results[1].Err == nil {
		results[1].Price /= 1000
	}

	requestPrice := priceOrFallback(ctx, "serverless-pricing", results[0], fallbackLambdaRequestPrice)
	computePrice := priceOrFallback(ctx, "serverless-pricing", results[1], fallbackLambdaComputePrice)

	gbSeconds := float64(memorySize) / 1024 * float64(executionTime) / 1000

	azureRequestPrice, gcpRequestPrice := h.serverlessEstimator.Estimate(requestPrice, "request")
	azureComputePrice, gcpComputePrice := h.serverlessEstimator.Estimate(computePrice, "compute")

	quote := func(service, freeTier string, requestPrice, computePrice float64) *domain.PriceQuote {
		computeCost := gbSeconds * computePrice
		return &domain.PriceQuote{
			Price: (computeCost + requestPrice) * 1e6,
			Unit:  "million invocations",
			Details: map[string]string{
				"Service":      service,
				"Memory":       fmt.Sprintf("%d MB", memorySize),
				"Duration":     fmt.Sprintf("%d ms", executionTime),
				"Compute Cost": money(computeCost*1e6) + " per million",
				"Request Cost": money(requestPrice*1e6) + " per million",
				"Free Tier":    freeTier,
			},
		}
	}

	envelope := &domain.PricingEnvelope{
		AWS:   quote(serverlessNames.AWS, "1M requests/month, 400,000 GB-seconds", requestPrice, computePrice),
		Azure: quote(serverlessNames.Azure, "1M executions/month, 400,000 GB-seconds", azureRequestPrice, azureComputePrice),
		GCP:   quote(serverlessNames.GCP, "2M invocations/month, 400,000 GB-seconds", gcpRequestPrice, gcpComputePrice),
	}

	writeJSON(ctx, w, http.StatusOK, envelope)
}

// positiveIntParam parses an optional positive integer query parameter.
func positiveIntParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return parsed, nil
}
