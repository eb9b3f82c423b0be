// Package catalog maintains per-region EC2 instance-type listings behind a
// pluggable store. Entries are populated lazily on first request for a
// region and reused unchanged afterwards; the store decides their lifetime.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/diversicloud/cloudcompare/internal/domain"
	"github.com/diversicloud/cloudcompare/internal/observability"
)

// Service implements domain.InstanceCatalog by paging through the EC2
// instance-type listing and memoizing the result per region.
//
// Concurrent first requests for the same region may both page upstream; the
// store resolves the race with last-writer-wins, which is benign because the
// computed entry is deterministic for a given region.
type Service struct {
	client ec2.DescribeInstanceTypesAPIClient
	store  domain.CatalogStore
}

// NewService creates an instance catalog over the given EC2 client and store.
func NewService(client ec2.DescribeInstanceTypesAPIClient, store domain.CatalogStore) *Service {
	return &Service{client: client, store: store}
}

// ListInstances returns the catalog entry for a region, populating it on
// first use. Stored entries are returned unchanged with no staleness check.
func (s *Service) ListInstances(ctx context.Context, region string) (*domain.InstanceCatalogEntry, error) {
	if entry, ok := s.store.Get(ctx, region); ok {
		return entry, nil
	}

	logger := observability.FromContext(ctx)
	logger.Info("populating instance catalog", observability.String("region", region))

	entry, err := s.fetchInstanceTypes(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("list instance types for %s: %w", region, err)
	}

	if err := s.store.Set(ctx, region, entry); err != nil {
		// The entry is still valid; a store failure only costs a re-fetch.
		logger.Warn("failed to store catalog entry",
			observability.String("region", region),
			observability.Error(err),
		)
	}

	logger.Info("instance catalog populated",
		observability.String("region", region),
		observability.Int("instance_types", len(entry.Items)),
	)
	return entry, nil
}

// fetchInstanceTypes pages through the region's full listing, following
// continuation tokens until exhausted. The region overrides the client's
// configured one per call, so one client serves every region.
func (s *Service) fetchInstanceTypes(ctx context.Context, region string) (*domain.InstanceCatalogEntry, error) {
	entry := &domain.InstanceCatalogEntry{
		Items:   []string{},
		Details: map[string]domain.InstanceDetail{},
	}

	paginator := ec2.NewDescribeInstanceTypesPaginator(s.client, &ec2.DescribeInstanceTypesInput{})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx, func(o *ec2.Options) {
			o.Region = region
		})
		if err != nil {
			return nil, err
		}

		for _, info := range output.InstanceTypes {
			name := string(info.InstanceType)
			if name == "" {
				continue
			}

			detail := domain.InstanceDetail{}
			if info.VCpuInfo != nil {
				detail.VCPUs = int(aws.ToInt32(info.VCpuInfo.DefaultVCpus))
			}
			if info.MemoryInfo != nil {
				detail.MemoryMiB = aws.ToInt64(info.MemoryInfo.SizeInMiB)
			}
			if info.NetworkInfo != nil {
				detail.Network = aws.ToString(info.NetworkInfo.NetworkPerformance)
			}

			entry.Items = append(entry.Items, name)
			entry.Details[name] = detail
		}
	}

	sort.Strings(entry.Items)
	return entry, nil
}
