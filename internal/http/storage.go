package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/diversicloud/cloudcompare/internal/domain"
	"github.com/diversicloud/cloudcompare/internal/observability"
)

// storageServiceNames maps the storage services to their per-provider
// product names as shown in the comparison details.
var storageServiceNames = map[string]domain.CloudNames{
	"Object Storage":         {AWS: "S3 Standard", Azure: "Blob Storage (Hot)", GCP: "Cloud Storage Standard"},
	"Block Storage":          {AWS: "EBS", Azure: "Managed Disks", GCP: "Persistent Disk"},
	"File Storage":           {AWS: "EFS", Azure: "Files Storage", GCP: "Filestore"},
	"Cold Archive Storage":   {AWS: "S3 Glacier Deep Archive", Azure: "Archive Storage", GCP: "Archive Storage"},
	"Content Delivery (CDN)": {AWS: "CloudFront", Azure: "CDN", GCP: "Cloud CDN"},
}

// HandleStoragePricing serves GET /api/storage-pricing. Object, file, and
// archive storage quote a GB-month rate with monthly totals for the
// requested amount; the CDN branch quotes a per-GB transfer rate; anything
// else gets the generic estimate block.
func (h *Handler) HandleStoragePricing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		writeEnvelopeError(ctx, w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	service := query.Get("service")
	if service == "" {
		service = "Object Storage"
	}
	storageAmount, err := positiveIntParam(query.Get("storageAmount"), 100)
	if err != nil {
		writeEnvelopeError(ctx, w, http.StatusBadRequest, "storageAmount must be a positive integer")
		return
	}
	regionLabel := domain.ResolveRegionLabel(query.Get("region"))

	ctx = observability.WithCategory(ctx, "Storage")
	ctx = observability.WithRegion(ctx, regionLabel)

	switch service {
	case "Object Storage":
		h.storageRatePricing(ctx, w, service, storageAmount, fallbackS3StandardMonthly, priceQuery{
			ServiceCode: "AmazonS3",
			Filters: []domain.Filter{
				{Field: "location", Value: regionLabel},
				{Field: "storageClass", Value: "General Purpose"},
				{Field: "volumeType", Value: "Standard"},
			},
			MaxResults: 1,
		}, map[string]string{})
	case "File Storage":
		h.storageRatePricing(ctx, w, service, storageAmount, fallbackEFSStandardMonthly, priceQuery{
			ServiceCode: "AmazonEFS",
			Filters: []domain.Filter{
				{Field: "location", Value: regionLabel},
				{Field: "storageClass", Value: "Standard"},
			},
			MaxResults: 1,
		}, map[string]string{
			"aws":   "Throughput charged separately",
			"azure": "Transaction costs apply",
			"gcp":   "Egress charges apply",
		})
	case "Cold Archive Storage":
		h.storageRatePricing(ctx, w, service, storageAmount, fallbackArchiveMonthly, priceQuery{
			ServiceCode: "AmazonS3",
			Filters: []domain.Filter{
				{Field: "location", Value: regionLabel},
				{Field: "storageClass", Value: "Archive"},
			},
			MaxResults: 1,
		}, map[string]string{
			"aws":   "Retrieval fees apply",
			"azure": "Retrieval fees apply",
			"gcp":   "Retrieval fees apply",
		})
	case "Content Delivery (CDN)":
		h.cdnPricing(ctx, w, service)
	default:
		writeJSON(ctx, w, http.StatusOK, storageEstimateEnvelope(service))
	}
}

// storageRatePricing handles the GB-month storage branches, which differ
// only in the pricing query, the fallback rate, and the per-provider notes.
func (h *Handler) storageRatePricing(
	ctx context.Context,
	w http.ResponseWriter,
	service string,
	storageAmount int,
	fallback float64,
	query priceQuery,
	notes map[string]string,
) {
	results := h.fetchUnitPrices(ctx, query)
	awsRate := priceOrFallback(ctx, "storage-pricing", results[0], fallback)
	azureRate, gcpRate := h.storageEstimator.Estimate(awsRate, service)
	names := storageServiceNames[service]

	quote := func(provider, serviceName string, unitRate float64) *domain.PriceQuote {
		details := map[string]string{
			"Service":        serviceName,
			"Total Monthly":  money(float64(storageAmount) * unitRate),
			"Effective Rate": "$" + rate(unitRate, 4) + "/GB-month",
			"Storage":        fmt.Sprintf("%d GB", storageAmount),
		}
		if note, ok := notes[provider]; ok {
			details["Note"] = note
		}
		return &domain.PriceQuote{Price: unitRate, Unit: "GB-month", Details: details}
	}

	envelope := &domain.PricingEnvelope{
		AWS:   quote("aws", names.AWS, awsRate),
		Azure: quote("azure", names.Azure, azureRate),
		GCP:   quote("gcp", names.GCP, gcpRate),
	}

	writeJSON(ctx, w, http.StatusOK, envelope)
}

// cdnPricing quotes CloudFront's global first-tier transfer rate. CDN
// pricing is not regional, so the location filter is pinned to Global.
func (h *Handler) cdnPricing(ctx context.Context, w http.ResponseWriter, service string) {
	results := h.fetchUnitPrices(ctx, priceQuery{
		ServiceCode: "AmazonCloudFront",
		Filters: []domain.Filter{
			{Field: "location", Value: "Global"},
			{Field: "group", Value: "CDN-DataTransfer-Out-Bytes"},
		},
		MaxResults: 1,
	})

	awsRate := priceOrFallback(ctx, "storage-pricing", results[0], fallbackCDNPerGB)
	azureRate, gcpRate := h.storageEstimator.Estimate(awsRate, service)
	names := storageServiceNames[service]

	quote := func(serviceName string, unitRate float64) *domain.PriceQuote {
		return &domain.PriceQuote{
			Price: unitRate,
			Unit:  "GB transferred",
			Details: map[string]string{
				"Service":          serviceName,
				"First 10TB/month": "$" + rate(unitRate, 3) + "/GB",
				"Note":             "Price decreases with volume",
			},
		}
	}

	envelope := &domain.PricingEnvelope{
		AWS:   quote(names.AWS, awsRate),
		Azure: quote(names.Azure, azureRate),
		GCP:   quote(names.GCP, gcpRate),
	}

	writeJSON(ctx, w, http.StatusOK, envelope)
}

// storageEstimateEnvelope is the fixed block for storage services without a
// live pricing branch.
func storageEstimateEnvelope(service string) *domain.PricingEnvelope {
	names, ok := storageServiceNames[service]
	if !ok {
		names = domain.CloudNames{AWS: "S3", Azure: "Blob Storage", GCP: "Cloud Storage"}
	}
	note := map[string]string{"Note": "Estimated price"}
	return &domain.PricingEnvelope{
		AWS:   &domain.PriceQuote{Price: 0.05, Unit: "GB-month", Details: withService(note, names.AWS)},
		Azure: &domain.PriceQuote{Price: 0.048, Unit: "GB-month", Details: withService(note, names.Azure)},
		GCP:   &domain.PriceQuote{Price: 0.052, Unit: "GB-month", Details: withService(note, names.GCP)},
	}
}
