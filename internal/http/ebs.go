package http

import (
	"net/http"
	"strings"

	"github.com/diversicloud/cloudcompare/internal/domain"
	"github.com/diversicloud/cloudcompare/internal/observability"
)

// HandleEBSPricing serves GET /api/ebs: block storage comparison by EBS
// volume type. Unlike the other pricing routes this one propagates lookup
// failures instead of substituting a fallback.
func (h *Handler) HandleEBSPricing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		writeEnvelopeError(ctx, w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	volumeType := query.Get("volumeType")
	if volumeType == "" {
		volumeType = "gp3"
	}
	// This route takes the Pricing API display label directly.
	region := query.Get("region")
	if region == "" {
		region = domain.DefaultRegionLabel
	}

	ctx = observability.WithCategory(ctx, "Block Storage")
	ctx = observability.WithRegion(ctx, region)

	results := h.fetchUnitPrices(ctx, priceQuery{
		ServiceCode: "AmazonEC2",
		Filters: []domain.Filter{
			{Field: "location", Value: region},
			{Field: "volumeType", Value: volumeType},
			{Field: "group", Value: "EBS"},
			{Field: "usagetype", Value: strings.ToUpper(volumeType) + "-VolumeUsage"},
		},
		MaxResults: 5,
	})

	if results[0].Err != nil {
		observability.FromContext(ctx).Error("EBS price lookup failed",
			observability.String("volume_type", volumeType),
			observability.Error(results[0].Err),
		)
		writeEnvelopeError(ctx, w, http.StatusInternalServerError, results[0].Err.Error())
		return
	}

	price := results[0].Price
	azurePrice, gcpPrice := h.volumeEstimator.Estimate(price, volumeType)
	equivalents := domain.EquivalentVolume(volumeType)
	regions := domain.EquivalentRegions(region)

	envelope := &domain.PricingEnvelope{
		AWS: &domain.PriceQuote{
			Price: price,
			Unit:  "GB-month",
			Details: map[string]string{
				"type":   volumeType,
				"region": region,
			},
		},
		Azure: &domain.PriceQuote{
			Price: azurePrice,
			Unit:  "GB-month",
			Details: map[string]string{
				"type":   equivalents.Azure,
				"region": regions.Azure,
			},
		},
		GCP: &domain.PriceQuote{
			Price: gcpPrice,
			Unit:  "GB-month",
			Details: map[string]string{
				"type":   equivalents.GCP,
				"region": regions.GCP,
			},
		},
	}

	writeJSON(ctx, w, http.StatusOK, envelope)
}
