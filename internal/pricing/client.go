package pricing

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
)

// NewPricingClient returns a Pricing API client pinned to a region that
// actually serves the API. The product catalog endpoint only exists in
// us-east-1 and ap-south-1.
func NewPricingClient(cfg aws.Config) *pricing.Client {
	apiRegion := "us-east-1"
	if strings.HasPrefix(cfg.Region, "ap-") {
		apiRegion = "ap-south-1"
	}
	return pricing.NewFromConfig(cfg, func(o *pricing.Options) {
		o.Region = apiRegion
	})
}
