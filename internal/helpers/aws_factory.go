// Where: internal/helpers/aws_factory.go
// What: AWS client and region resolution helpers.
// Why: Encapsulate SDK configuration, including local S3-compatible endpoints.
package helpers

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultS3Client builds an S3 client from the ambient AWS configuration.
// LAYERLINE_S3_ENDPOINT switches to a custom endpoint with path-style
// addressing and static credentials, for artifact stores that speak the S3
// API locally.
func DefaultS3Client(ctx context.Context) (S3API, error) {
	endpoint := os.Getenv("LAYERLINE_S3_ENDPOINT")

	opts := []func(*config.LoadOptions) error{}
	if endpoint != "" {
		creds := credentials.NewStaticCredentialsProvider(
			envDefault("LAYERLINE_S3_ACCESS_KEY", "dummy"),
			envDefault("LAYERLINE_S3_SECRET_KEY", "dummy"),
			"")
		opts = append(opts, config.WithCredentialsProvider(creds))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(options *s3.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
			options.UsePathStyle = true
		}
	})
	return client, nil
}

// ResolveRegion returns the explicit region when given, otherwise the region
// from the ambient AWS configuration (environment or shared config files).
func ResolveRegion(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}
	if cfg.Region == "" {
		return "", fmt.Errorf("no target region configured; pass --region or set AWS_REGION")
	}
	return cfg.Region, nil
}

func envDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
