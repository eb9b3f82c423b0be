// Package pricing fetches on-demand unit prices from the AWS Pricing API.
// Each query carries TERM_MATCH filters selective enough that at most one
// product normally matches; the first on-demand price dimension of the first
// product wins.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	pricingtypes "github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/aws/smithy-go"
	json "github.com/goccy/go-json"

	"github.com/diversicloud/cloudcompare/internal/domain"
	"github.com/diversicloud/cloudcompare/internal/observability"
)

// AWSPriceSource implements domain.PriceSource over the AWS Pricing API.
type AWSPriceSource struct {
	client pricing.GetProductsAPIClient
}

// NewAWSPriceSource creates a price source over the given Pricing client.
func NewAWSPriceSource(client pricing.GetProductsAPIClient) *AWSPriceSource {
	return &AWSPriceSource{client: client}
}

// UnitPrice issues a filtered product query and extracts the first on-demand
// USD unit rate. Zero matches yield domain.ErrPriceNotFound.
func (s *AWSPriceSource) UnitPrice(
	ctx context.Context,
	serviceCode string,
	filters []domain.Filter,
	maxResults int32,
) (float64, error) {
	logger := observability.FromContext(ctx)

	output, err := s.client.GetProducts(ctx, &pricing.GetProductsInput{
		ServiceCode: aws.String(serviceCode),
		Filters:     toSDKFilters(filters),
		MaxResults:  aws.Int32(maxResults),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			logger.Warn("pricing API error",
				observability.String("service_code", serviceCode),
				observability.String("error_code", apiErr.ErrorCode()),
			)
		}
		return 0, fmt.Errorf("get products for %s: %w", serviceCode, err)
	}

	if len(output.PriceList) == 0 {
		logger.Debug("no products matched",
			observability.String("service_code", serviceCode),
		)
		return 0, domain.ErrPriceNotFound
	}

	price, err := parseFirstOnDemandPrice(output.PriceList[0])
	if err != nil {
		return 0, fmt.Errorf("parse %s price document: %w", serviceCode, err)
	}
	return price, nil
}

func toSDKFilters(filters []domain.Filter) []pricingtypes.Filter {
	sdkFilters := make([]pricingtypes.Filter, len(filters))
	for i, f := range filters {
		sdkFilters[i] = pricingtypes.Filter{
			Type:  pricingtypes.FilterTypeTermMatch,
			Field: aws.String(f.Field),
			Value: aws.String(f.Value),
		}
	}
	return sdkFilters
}

// parseFirstOnDemandPrice digs the USD rate out of a price-list document:
// terms.OnDemand -> first term -> priceDimensions -> first dimension ->
// pricePerUnit.USD.
func parseFirstOnDemandPrice(document string) (float64, error) {
	// Not the full pricing schema, just the portions we care about.
	var item struct {
		Terms struct {
			OnDemand map[string]struct {
				PriceDimensions map[string]struct {
					PricePerUnit struct {
						USD string
					}
				}
			}
		}
	}

	if err := json.Unmarshal([]byte(document), &item); err != nil {
		return 0, fmt.Errorf("decoding: %w", err)
	}

	for _, term := range item.Terms.OnDemand {
		for _, dimension := range term.PriceDimensions {
			price, err := strconv.ParseFloat(dimension.PricePerUnit.USD, 64)
			if err != nil {
				continue
			}
			return price, nil
		}
	}
	return 0, errors.New("no on-demand price dimension found")
}
