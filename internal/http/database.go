package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/diversicloud/cloudcompare/internal/domain"
	"github.com/diversicloud/cloudcompare/internal/observability"
)

// HandleDatabasePricing serves GET /api/database-pricing. Relational and
// NoSQL services quote live AWS rates; the remaining database services
// return fixed estimate blocks. Unknown services get the generic default
// block rather than an error (fail-open policy).
func (h *Handler) HandleDatabasePricing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		writeEnvelopeError(ctx, w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	instanceClass := query.Get("instanceClass")
	if instanceClass == "" {
		instanceClass = "db.t3.micro"
	}

	storageGB := 20
	if raw := query.Get("storageGB"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeEnvelopeError(ctx, w, http.StatusBadRequest, "storageGB must be a non-negative integer")
			return
		}
		storageGB = parsed
	}

	service := query.Get("service")
	if service == "" {
		service = "Relational SQL DB"
	}
	regionLabel := domain.ResolveRegionLabel(query.Get("region"))

	ctx = observability.WithCategory(ctx, "Databases")
	ctx = observability.WithRegion(ctx, regionLabel)

	names, err := domain.LookupService("Databases", service)
	if err != nil {
		// Unknown database services still get an answer.
		names = domain.CloudNames{AWS: "RDS", Azure: "SQL Database", GCP: "Cloud SQL"}
	}

	switch service {
	case "Relational SQL DB":
		h.relationalPricing(ctx, w, names, instanceClass, storageGB, regionLabel)
	case "NoSQL Document DB":
		h.nosqlPricing(ctx, w, names, storageGB, regionLabel)
	default:
		writeJSON(ctx, w, http.StatusOK, databaseEstimateEnvelope(service, names))
	}
}

// relationalPricing fetches RDS instance and storage rates concurrently and
// derives per-provider monthly totals.
func (h *Handler) relationalPricing(
	ctx context.Context,
	w http.ResponseWriter,
	names domain.CloudNames,
	instanceClass string,
	storageGB int,
	regionLabel string,
) {
	results := h.fetchUnitPrices(ctx,
		priceQuery{
			ServiceCode: "AmazonRDS",
			Filters: []domain.Filter{
				{Field: "location", Value: regionLabel},
				{Field: "instanceType", Value: normalizeInstanceClass(instanceClass)},
				{Field: "deploymentOption", Value: "Single-AZ"},
				{Field: "databaseEngine", Value: "MySQL"},
			},
			MaxResults: 1,
		},
		priceQuery{
			ServiceCode: "AmazonRDS",
			Filters: []domain.Filter{
				{Field: "location", Value: regionLabel},
				{Field: "volumeType", Value: "General Purpose"},
				{Field: "deploymentOption", Value: "Single-AZ"},
			},
			MaxResults: 1,
		},
	)

	if err := combinedErr(results); err != nil {
		observability.FromContext(ctx).Warn("RDS price lookup degraded", observability.Error(err))
	}

	instanceHourly := priceOrFallback(ctx, "database-pricing", results[0], fallbackDBInstanceHourly)
	storageRate := priceOrFallback(ctx, "database-pricing", results[1], fallbackDBStorageMonthly)

	instanceMonthly := instanceHourly * hoursPerMonth
	storageMonthly := float64(storageGB) * storageRate
	totalMonthly := instanceMonthly + storageMonthly

	azureInstanceMonthly, gcpInstanceMonthly := h.databaseEstimator.Estimate(instanceMonthly, "instance")
	azureStorageMonthly, gcpStorageMonthly := h.databaseEstimator.Estimate(storageMonthly, "storage")
	azureStorageRate, gcpStorageRate := h.databaseEstimator.Estimate(storageRate, "storage")

	azureTotalMonthly := azureInstanceMonthly + azureStorageMonthly
	gcpTotalMonthly := gcpInstanceMonthly + gcpStorageMonthly

	strippedClass := stripDBPrefix(instanceClass)

	envelope := &domain.PricingEnvelope{
		AWS: &domain.PriceQuote{
			Price: totalMonthly / hoursPerMonth,
			Unit:  "hour",
			Details: map[string]string{
				"Service":       names.AWS,
				"Instance":      instanceClass,
				"Storage":       fmt.Sprintf("%d GB (%s/GB-month)", storageGB, rate(storageRate, 3)),
				"Monthly Cost":  money(totalMonthly),
				"Instance Cost": money(instanceMonthly) + "/month",
				"Storage Cost":  money(storageMonthly) + "/month",
			},
		},
		Azure: &domain.PriceQuote{
			Price: azureTotalMonthly / hoursPerMonth,
			Unit:  "hour",
			Details: map[string]string{
				"Service":       names.Azure,
				"Instance":      strippedClass,
				"Storage":       fmt.Sprintf("%d GB (%s/GB-month)", storageGB, rate(azureStorageRate, 3)),
				"Monthly Cost":  money(azureTotalMonthly),
				"Instance Cost": money(azureInstanceMonthly) + "/month",
				"Storage Cost":  money(azureStorageMonthly) + "/month",
			},
		},
		GCP: &domain.PriceQuote{
			Price: gcpTotalMonthly / hoursPerMonth,
			Unit:  "hour",
			Details: map[string]string{
				"Service":       names.GCP,
				"Instance":      strippedClass,
				"Storage":       fmt.Sprintf("%d GB (%s/GB-month)", storageGB, rate(gcpStorageRate, 3)),
				"Monthly Cost":  money(gcpTotalMonthly),
				"Instance Cost": money(gcpInstanceMonthly) + "/month",
				"Storage Cost":  money(gcpStorageMonthly) + "/month",
			},
		},
	}

	writeJSON(ctx, w, http.StatusOK, envelope)
}

// NoSQL competitor rates are static; there is no factor projection from the
// DynamoDB price because the products are structured too differently.
const (
	cosmosDBStorageRate  = 0.30 // USD/GB-month
	firestoreStorageRate = 0.18 // USD/GB-month
)

func (h *Handler) nosqlPricing(
	ctx context.Context,
	w http.ResponseWriter,
	names domain.CloudNames,
	storageGB int,
	regionLabel string,
) {
	results := h.fetchUnitPrices(ctx, priceQuery{
		ServiceCode: "AmazonDynamoDB",
		Filters: []domain.Filter{
			{Field: "location", Value: regionLabel},
			{Field: "group", Value: "DDB-Storage"},
		},
		MaxResults: 1,
	})

	storageRate := priceOrFallback(ctx, "database-pricing", results[0], fallbackDynamoDBStorage)

	envelope := &domain.PricingEnvelope{
		AWS: &domain.PriceQuote{
			Price: storageRate,
			Unit:  "GB-month",
			Details: map[string]string{
				"Service":      names.AWS,
				"Storage":      fmt.Sprintf("%d GB (%s/GB-month)", storageGB, rate(storageRate, 2)),
				"Monthly Cost": money(float64(storageGB) * storageRate),
				"Note":         "Additional costs for read/write capacity units",
			},
		},
		Azure: &domain.PriceQuote{
			Price: cosmosDBStorageRate,
			Unit:  "GB-month",
			Details: map[string]string{
				"Service":      names.Azure,
				"Storage":      fmt.Sprintf("%d GB (%s/GB-month)", storageGB, rate(cosmosDBStorageRate, 2)),
				"Monthly Cost": money(float64(storageGB) * cosmosDBStorageRate),
				"Note":         "Additional costs for request units (RUs)",
			},
		},
		GCP: &domain.PriceQuote{
			Price: firestoreStorageRate,
			Unit:  "GB-month",
			Details: map[string]string{
				"Service":      names.GCP,
				"Storage":      fmt.Sprintf("%d GB (%s/GB-month)", storageGB, rate(firestoreStorageRate, 2)),
				"Monthly Cost": money(float64(storageGB) * firestoreStorageRate),
				"Note":         "Additional costs for read/write operations",
			},
		},
	}

	writeJSON(ctx, w, http.StatusOK, envelope)
}

// databaseEstimateEnvelope returns the fixed quote block for database
// services without live lookups, or the generic default for unknown ones.
func databaseEstimateEnvelope(service string, names domain.CloudNames) *domain.PricingEnvelope {
	switch service {
	case "Data Warehouse":
		return &domain.PricingEnvelope{
			AWS:   &domain.PriceQuote{Price: 5.0, Unit: "TB scanned", Details: map[string]string{"Service": names.AWS}},
			Azure: &domain.PriceQuote{Price: 5.5, Unit: "TB processed", Details: map[string]string{"Service": names.Azure}},
			GCP:   &domain.PriceQuote{Price: 6.0, Unit: "TB processed", Details: map[string]string{"Service": names.GCP}},
		}
	case "In-Memory Cache":
		return &domain.PricingEnvelope{
			AWS:   &domain.PriceQuote{Price: 0.068, Unit: "GB-hour", Details: map[string]string{"Service": names.AWS}},
			Azure: &domain.PriceQuote{Price: 0.055, Unit: "GB-hour", Details: map[string]string{"Service": names.Azure}},
			GCP:   &domain.PriceQuote{Price: 0.06, Unit: "GB-hour", Details: map[string]string{"Service": names.GCP}},
		}
	case "Managed MySQL/Postgres":
		return &domain.PricingEnvelope{
			AWS:   &domain.PriceQuote{Price: 0.078, Unit: "hour", Details: map[string]string{"Service": names.AWS}},
			Azure: &domain.PriceQuote{Price: 0.075, Unit: "hour", Details: map[string]string{"Service": names.Azure}},
			GCP:   &domain.PriceQuote{Price: 0.073, Unit: "hour", Details: map[string]string{"Service": names.GCP}},
		}
	default:
		note := map[string]string{"Note": "Estimated price"}
		return &domain.PricingEnvelope{
			AWS:   &domain.PriceQuote{Price: 0.05, Unit: "hour", Details: withService(note, names.AWS)},
			Azure: &domain.PriceQuote{Price: 0.048, Unit: "hour", Details: withService(note, names.Azure)},
			GCP:   &domain.PriceQuote{Price: 0.052, Unit: "hour", Details: withService(note, names.GCP)},
		}
	}
}

func withService(base map[string]string, service string) map[string]string {
	details := map[string]string{"Service": service}
	for k, v := range base {
		details[k] = v
	}
	return details
}

// normalizeInstanceClass ensures the db. prefix the RDS catalog expects
// ("db.t3.micro" stays, "t3.micro" gains the prefix).
func normalizeInstanceClass(instanceClass string) string {
	if len(instanceClass) >= 3 && instanceClass[:3] == "db." {
		return instanceClass
	}
	return "db." + instanceClass
}

// stripDBPrefix removes the RDS-specific prefix for the Azure/GCP detail
// rows.
func stripDBPrefix(instanceClass string) string {
	if len(instanceClass) >= 3 && instanceClass[:3] == "db." {
		return instanceClass[3:]
	}
	return instanceClass
}
