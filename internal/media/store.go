// Package media persists inbound produce photos to S3 so that listings keep a
// durable image URL after Twilio's media links expire.
package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/farmfast/platform/pkg/logging"
)

// S3API is the subset of the S3 client used by Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store uploads listing images to an S3 bucket.
type Store struct {
	s3Client S3API
	bucket   string
	region   string
	logger   *logging.Logger
}

func NewStore(s3Client S3API, bucket, region string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{s3Client: s3Client, bucket: bucket, region: region, logger: logger}
}

// Enabled reports whether the store is configured to upload.
func (s *Store) Enabled() bool {
	return s != nil && s.bucket != "" && s.s3Client != nil
}

// StoreListingImage uploads the image bytes under a key derived from the
// farmer's phone and the listing ID, and returns the public object URL.
func (s *Store) StoreListingImage(ctx context.Context, farmerPhone, listingID string, image []byte, contentType string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("media: store not configured")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("produce-images/%s/%s.jpg", digitsOnly(farmerPhone), listingID)

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(image),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("media: s3 put %s: %w", key, err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	s.logger.Info("stored listing image",
		"listing_id", listingID,
		"s3_key", key,
		"bytes", len(image),
	)
	return url, nil
}

func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
