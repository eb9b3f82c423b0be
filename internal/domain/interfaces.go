package domain

import (
	"context"
	"errors"
)

// ErrPriceNotFound indicates that a pricing query matched no products.
// Callers decide whether to substitute a fallback constant or propagate.
var ErrPriceNotFound = errors.New("price not found")

// Filter is a single TERM_MATCH attribute filter for a product query.
// Order is preserved when building the upstream request.
type Filter struct {
	Field string
	Value string
}

// PriceSource fetches a unit price from a provider's product catalog.
type PriceSource interface {
	// UnitPrice returns the first on-demand USD unit rate matching the
	// filters, or ErrPriceNotFound when the query matches nothing.
	UnitPrice(ctx context.Context, serviceCode string, filters []Filter, maxResults int32) (float64, error)
}

// Estimator projects Azure and GCP prices from a known AWS base price.
// Implementations may use static factor tables or a live quote source.
type Estimator interface {
	// Estimate returns (azure, gcp) prices for the given AWS price.
	// Unknown factor keys must behave as price parity (neutral 1.0 factors).
	Estimate(awsPrice float64, factorKey string) (azure, gcp float64)
}

// InstanceCatalog lists instance types available in a region.
type InstanceCatalog interface {
	// ListInstances returns the catalog entry for the region, populating
	// it from upstream on first use.
	ListInstances(ctx context.Context, region string) (*InstanceCatalogEntry, error)
}

// CatalogStore is the keyed store backing the instance catalog.
// Implementations decide lifetime: the in-memory store keeps entries for the
// life of the process, the Redis store applies a TTL.
type CatalogStore interface {
	// Get returns the stored entry for the region, or false when absent.
	Get(ctx context.Context, region string) (*InstanceCatalogEntry, bool)

	// Set stores the entry for the region. Last writer wins.
	Set(ctx context.Context, region string, entry *InstanceCatalogEntry) error
}

// ChatProvider generates a completion for a chat prompt.
type ChatProvider interface {
	// Complete sends the request and returns the assistant text.
	Complete(ctx context.Context, req *ChatRequest) (string, error)

	// Name returns the provider identifier.
	Name() string
}
