package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	redisclient "github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/diversicloud/cloudcompare/internal/cache/redis"
	"github.com/diversicloud/cloudcompare/internal/catalog"
	"github.com/diversicloud/cloudcompare/internal/config"
	"github.com/diversicloud/cloudcompare/internal/domain"
	"github.com/diversicloud/cloudcompare/internal/http"
	"github.com/diversicloud/cloudcompare/internal/http/middleware"
	"github.com/diversicloud/cloudcompare/internal/observability"
	"github.com/diversicloud/cloudcompare/internal/pricing"
	"github.com/diversicloud/cloudcompare/internal/provider/openai"
	"github.com/diversicloud/cloudcompare/internal/provider/stub"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// AWS clients
	if err := container.Provide(func(cfg *config.AWSConfig) (aws.Config, error) {
		return awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.Region),
		)
	}); err != nil {
		log.Fatalf("Failed to provide AWS config: %v", err)
	}
	if err := container.Provide(func(awsCfg aws.Config) domain.PriceSource {
		return pricing.NewAWSPriceSource(pricing.NewPricingClient(awsCfg))
	}); err != nil {
		log.Fatalf("Failed to provide price source: %v", err)
	}

	// Instance catalog. Redis-backed store when an address is configured,
	// process-lifetime in-memory store otherwise.
	if err := container.Provide(func(cfg *config.RedisConfig) domain.CatalogStore {
		if cfg.Addr == "" {
			return catalog.NewMemoryStore()
		}
		client := redisclient.NewClient(&redisclient.Options{Addr: cfg.Addr})
		ttl := time.Duration(cfg.CatalogTTLMins) * time.Minute
		return redis.NewCatalogStore(client, ttl)
	}); err != nil {
		log.Fatalf("Failed to provide catalog store: %v", err)
	}
	if err := container.Provide(func(awsCfg aws.Config, store domain.CatalogStore) domain.InstanceCatalog {
		return catalog.NewService(ec2.NewFromConfig(awsCfg), store)
	}); err != nil {
		log.Fatalf("Failed to provide instance catalog: %v", err)
	}

	// Chat provider. OpenAI when a key is configured, canned stub otherwise
	// so the endpoint stays serviceable.
	if err := container.Provide(func(cfg *openai.Config) (domain.ChatProvider, error) {
		if cfg.APIKey == "" {
			return stub.NewProvider(), nil
		}
		return openai.NewProvider(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide chat provider: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
