package pricing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awspricing "github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/stretchr/testify/require"

	"github.com/diversicloud/cloudcompare/internal/domain"
	"github.com/diversicloud/cloudcompare/internal/pricing"
)

// ec2PriceDoc is a trimmed EC2 price-list document with the fields the
// parser reads.
const ec2PriceDoc = `{
  "product": {"productFamily": "Compute Instance"},
  "terms": {
    "OnDemand": {
      "ABCD1234.JRTCKXETXF": {
        "priceDimensions": {
          "ABCD1234.JRTCKXETXF.6YS6EN2CT7": {
            "unit": "Hrs",
            "pricePerUnit": {"USD": "0.0104000000"}
          }
        }
      }
    }
  }
}`

const noDimensionDoc = `{"terms": {"OnDemand": {}}}`

type fakeProductsClient struct {
	output *awspricing.GetProductsOutput
	err    error

	gotInput *awspricing.GetProductsInput
}

func (f *fakeProductsClient) GetProducts(
	_ context.Context,
	params *awspricing.GetProductsInput,
	_ ...func(*awspricing.Options),
) (*awspricing.GetProductsOutput, error) {
	f.gotInput = params
	return f.output, f.err
}

func TestAWSPriceSource_UnitPrice(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		client        *fakeProductsClient
		expectedPrice float64
		expectedErr   error
		expectError   bool
	}{
		{
			name: "extracts first on-demand price",
			client: &fakeProductsClient{
				output: &awspricing.GetProductsOutput{PriceList: []string{ec2PriceDoc}},
			},
			expectedPrice: 0.0104,
		},
		{
			name: "no matches yields ErrPriceNotFound",
			client: &fakeProductsClient{
				output: &awspricing.GetProductsOutput{PriceList: []string{}},
			},
			expectedErr: domain.ErrPriceNotFound,
			expectError: true,
		},
		{
			name: "document without price dimension",
			client: &fakeProductsClient{
				output: &awspricing.GetProductsOutput{PriceList: []string{noDimensionDoc}},
			},
			expectError: true,
		},
		{
			name: "malformed document",
			client: &fakeProductsClient{
				output: &awspricing.GetProductsOutput{PriceList: []string{"not json"}},
			},
			expectError: true,
		},
		{
			name:        "transport error is wrapped",
			client:      &fakeProductsClient{err: errors.New("connection refused")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := pricing.NewAWSPriceSource(tt.client)

			price, err := source.UnitPrice(ctx, "AmazonEC2", []domain.Filter{
				{Field: "instanceType", Value: "t3.micro"},
				{Field: "location", Value: "US East (N. Virginia)"},
			}, 1)

			if tt.expectError {
				require.Error(t, err)
				if tt.expectedErr != nil {
					require.ErrorIs(t, err, tt.expectedErr)
				}
				return
			}

			require.NoError(t, err)
			require.InDelta(t, tt.expectedPrice, price, 1e-9)
		})
	}
}

func TestAWSPriceSource_BuildsTermMatchFilters(t *testing.T) {
	client := &fakeProductsClient{
		output: &awspricing.GetProductsOutput{PriceList: []string{ec2PriceDoc}},
	}
	source := pricing.NewAWSPriceSource(client)

	_, err := source.UnitPrice(context.Background(), "AmazonRDS", []domain.Filter{
		{Field: "instanceType", Value: "db.t3.micro"},
		{Field: "deploymentOption", Value: "Single-AZ"},
	}, 3)
	require.NoError(t, err)

	require.NotNil(t, client.gotInput)
	require.Equal(t, "AmazonRDS", aws.ToString(client.gotInput.ServiceCode))
	require.Equal(t, int32(3), aws.ToInt32(client.gotInput.MaxResults))
	require.Len(t, client.gotInput.Filters, 2)
	require.Equal(t, "instanceType", aws.ToString(client.gotInput.Filters[0].Field))
	require.Equal(t, "db.t3.micro", aws.ToString(client.gotInput.Filters[0].Value))
	require.Equal(t, "deploymentOption", aws.ToString(client.gotInput.Filters[1].Field))
}
