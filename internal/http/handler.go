// Package http exposes the pricing comparison API. Each endpoint validates
// its query parameters, fetches live AWS rates, projects Azure/GCP estimates
// through the static factor tables, and returns a uniform envelope.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/diversicloud/cloudcompare/internal/domain"
	"github.com/diversicloud/cloudcompare/internal/observability"
)

const hoursPerMonth = 730

// Per-route fallback rates, substituted when a pricing query matches
// nothing. Each route owns its constants; values differ by unit.
const (
	fallbackComputeHourly      = 0.0116    // t3.micro-class, USD/hour
	fallbackDBInstanceHourly   = 0.018     // db.t3.micro-class, USD/hour
	fallbackDBStorageMonthly   = 0.115     // RDS gp2, USD/GB-month
	fallbackDynamoDBStorage    = 0.25      // USD/GB-month
	fallbackLambdaRequestPrice = 0.20 / 1e6
	fallbackLambdaComputePrice = 0.0000166667 // USD/GB-second
	fallbackS3StandardMonthly  = 0.023        // USD/GB-month
	fallbackEFSStandardMonthly = 0.30         // USD/GB-month
	fallbackArchiveMonthly     = 0.004        // USD/GB-month
	fallbackCDNPerGB           = 0.085        // USD/GB transferred
)

// Handler handles HTTP requests.
type Handler struct {
	prices  domain.PriceSource
	catalog domain.InstanceCatalog
	chat    domain.ChatProvider

	volumeEstimator     domain.Estimator
	familyEstimator     domain.Estimator
	storageEstimator    domain.Estimator
	databaseEstimator   domain.Estimator
	serverlessEstimator domain.Estimator
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	prices domain.PriceSource,
	catalog domain.InstanceCatalog,
	chat domain.ChatProvider,
) *Handler {
	return &Handler{
		prices:           prices,
		catalog:          catalog,
		chat:             chat,
		volumeEstimator:  domain.NewStaticFactorEstimator(domain.VolumeFactors),
		familyEstimator:  domain.NewStaticFactorEstimator(domain.InstanceFamilyFactors),
		storageEstimator: domain.NewStaticFactorEstimator(domain.StorageServiceFactors),
		databaseEstimator: domain.NewStaticFactorEstimator(map[string]domain.FactorPair{
			"instance": domain.DatabaseInstanceFactors,
			"storage":  domain.DatabaseStorageFactors,
		}),
		serverlessEstimator: domain.NewStaticFactorEstimator(map[string]domain.FactorPair{
			"request": domain.ServerlessRequestFactors,
			"compute": domain.ServerlessComputeFactors,
		}),
	}
}

// errorResponse is the error shape for routes that do not return envelopes.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Status already written, can't change it, just log.
		observability.FromContext(ctx).Error("failed to encode response", observability.Error(err))
	}
}

func writeEnvelopeError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	writeJSON(ctx, w, status, domain.ErrorEnvelope(msg))
}

// priceQuery describes one upstream unit-price lookup.
type priceQuery struct {
	ServiceCode string
	Filters     []domain.Filter
	MaxResults  int32
}

// priceResult is the outcome of one lookup.
type priceResult struct {
	Price float64
	Err   error
}

// fetchUnitPrices runs the queries concurrently and awaits them jointly so
// upstream latencies overlap instead of summing.
func (h *Handler) fetchUnitPrices(ctx context.Context, queries ...priceQuery) []priceResult {
	results := make([]priceResult, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q priceQuery) {
			defer wg.Done()
			price, err := h.prices.UnitPrice(ctx, q.ServiceCode, q.Filters, q.MaxResults)
			results[i] = priceResult{Price: price, Err: err}
		}(i, q)
	}
	wg.Wait()

	return results
}

// priceOrFallback applies the fail-open policy: any lookup failure is logged
// and replaced with the route's fallback constant so the comparison stays
// populated.
func priceOrFallback(ctx context.Context, route string, result priceResult, fallback float64) float64 {
	if result.Err == nil {
		return result.Price
	}

	observability.FromContext(ctx).Warn("substituting fallback price",
		observability.String("route", route),
		observability.Float64("fallback", fallback),
		observability.Error(result.Err),
	)
	observability.UpstreamPriceFallbacks.WithLabelValues(route).Inc()
	return fallback
}

// combinedErr merges lookup errors for a single log line.
func combinedErr(results []priceResult) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return multierr.Combine(errs...)
}

// money formats a USD amount with two decimal places.
func money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

// rate formats a USD unit rate with the given precision.
func rate(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// instanceFamily extracts the family prefix from an instance type
// ("t3.micro" -> "t3", "db.m5.large" -> "m5").
func instanceFamily(instanceType string) string {
	parts := strings.Split(instanceType, ".")
	if len(parts) > 1 && parts[0] == "db" {
		return parts[1]
	}
	return parts[0]
}

// HandlePricing serves GET /api/pricing: the generic category/service
// comparison. Virtual Machines quotes live EC2 on-demand rates; other known
// services return a category-default estimate.
func (h *Handler) HandlePricing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		writeEnvelopeError(ctx, w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	category := query.Get("category")
	service := query.Get("service")
	if category == "" || service == "" {
		writeEnvelopeError(ctx, w, http.StatusBadRequest, "category and service are required")
		return
	}

	regionCode := query.Get("region")
	instanceType := query.Get("instanceType")
	if instanceType == "" {
		instanceType = "t3.micro"
	}

	ctx = observability.WithCategory(ctx, category)
	ctx = observability.WithRegion(ctx, regionCode)

	names, err := domain.LookupService(category, service)
	if err != nil {
		writeEnvelopeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	if service != "Virtual Machines" {
		writeJSON(ctx, w, http.StatusOK, genericServiceEnvelope(names))
		return
	}

	regionLabel := domain.ResolveRegionLabel(regionCode)
	results := h.fetchUnitPrices(ctx, priceQuery{
		ServiceCode: "AmazonEC2",
		Filters: []domain.Filter{
			{Field: "instanceType", Value: instanceType},
			{Field: "location", Value: regionLabel},
			{Field: "preInstalledSw", Value: "NA"},
			{Field: "operatingSystem", Value: "Linux"},
			{Field: "tenancy", Value: "Shared"},
			{Field: "capacitystatus", Value: "Used"},
		},
		MaxResults: 1,
	})

	hourly := priceOrFallback(ctx, "pricing", results[0], fallbackComputeHourly)
	azureHourly, gcpHourly := h.familyEstimator.Estimate(hourly, instanceFamily(instanceType))
	regions := domain.EquivalentRegions(regionLabel)

	envelope := &domain.PricingEnvelope{
		AWS: &domain.PriceQuote{
			Price: hourly,
			Unit:  "hour",
			Details: map[string]string{
				"Service":      names.AWS,
				"Instance":     instanceType,
				"Region":       regionLabel,
				"Monthly Cost": money(hourly * hoursPerMonth),
			},
		},
		Azure: &domain.PriceQuote{
			Price: azureHourly,
			Unit:  "hour",
			Details: map[string]string{
				"Service":      names.Azure,
				"Instance":     instanceType,
				"Region":       regions.Azure,
				"Monthly Cost": money(azureHourly * hoursPerMonth),
			},
		},
		GCP: &domain.PriceQuote{
			Price: gcpHourly,
			Unit:  "hour",
			Details: map[string]string{
				"Service":      names.GCP,
				"Instance":     instanceType,
				"Region":       regions.GCP,
				"Monthly Cost": money(gcpHourly * hoursPerMonth),
			},
		},
	}

	observability.FromContext(ctx).Info("pricing comparison served",
		observability.String("service", service),
		observability.Float64("aws_price", hourly),
	)
	writeJSON(ctx, w, http.StatusOK, envelope)
}

// genericServiceEnvelope is the fail-open estimate for services without a
// dedicated pricing route.
func genericServiceEnvelope(names domain.CloudNames) *domain.PricingEnvelope {
	return &domain.PricingEnvelope{
		AWS: &domain.PriceQuote{
			Price: 0.05,
			Unit:  "hour",
			Details: map[string]string{
				"Service": names.AWS,
				"Note":    "Estimated price",
			},
		},
		Azure: &domain.PriceQuote{
			Price: 0.048,
			Unit:  "hour",
			Details: map[string]string{
				"Service": names.Azure,
				"Note":    "Estimated price",
			},
		},
		GCP: &domain.PriceQuote{
			Price: 0.052,
			Unit:  "hour",
			Details: map[string]string{
				"Service": names.GCP,
				"Note":    "Estimated price",
			},
		},
	}
}

// HandleInstances serves GET /api/instances. Non-AWS clouds reuse the AWS
// listing unchanged; there is no per-provider translation.
func (h *Handler) HandleInstances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		writeJSON(ctx, w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	region := r.URL.Query().Get("region")
	if region == "" {
		region = "us-east-1"
	}
	ctx = observability.WithRegion(ctx, region)

	entry, err := h.catalog.ListInstances(ctx, region)
	if err != nil {
		observability.FromContext(ctx).Error("instance listing failed", observability.Error(err))
		writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(ctx, w, http.StatusOK, entry)
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
