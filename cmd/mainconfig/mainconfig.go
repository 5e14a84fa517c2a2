// Package mainconfig centralizes AWS SDK initialization so the binaries
// share the same LocalStack/production wiring.
package mainconfig

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/farmfast/platform/internal/config"
)

// LoadAWSConfig builds the shared aws.Config. Static credentials from the
// environment win over the default chain so LocalStack works without an
// instance profile.
func LoadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	loaders := []func(*config.LoadOptions) error{config.WithRegion(cfg.AWSRegion)}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretAccessKey) != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	return config.LoadDefaultConfig(ctx, loaders...)
}

// NewBedrockClient returns a Bedrock runtime client honoring the endpoint
// override.
func NewBedrockClient(awsCfg aws.Config, cfg *appconfig.Config) *bedrockruntime.Client {
	return bedrockruntime.NewFromConfig(awsCfg, func(o *bedrockruntime.Options) {
		if cfg.AWSEndpointOverride != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointOverride)
		}
	})
}

// NewS3Client returns an S3 client honoring the endpoint override.
// Path-style addressing is required for LocalStack-style endpoints.
func NewS3Client(awsCfg aws.Config, cfg *appconfig.Config) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.AWSEndpointOverride != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointOverride)
			o.UsePathStyle = true
		}
	})
}
