package clients

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// LoadAWSConfig loads the default credential chain pinned to one region.
// Local runs point every service at the LocalStack endpoint.
func LoadAWSConfig(ctx context.Context, region string, isLocal bool, localEndpoint string) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration for %s: %w", region, err)
	}

	if isLocal {
		cfg.BaseEndpoint = aws.String(localEndpoint)
	}

	return cfg, nil
}
