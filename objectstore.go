package newsroom

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ObjectStore uploads article images to an S3-compatible bucket (Cloudflare
// R2) and serves them from a public domain. Deletion is best-effort; callers
// on write paths log failures and move on.
type ObjectStore struct {
	client       *s3.Client
	bucket       string
	publicDomain string
	logger       *zap.Logger
}

// NewObjectStore builds an ObjectStore against the configured R2 endpoint
// with static credentials.
func NewObjectStore(cfg SiteConfig, logger *zap.Logger) (*ObjectStore, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.R2Endpoint,
				HostnameImmutable: true,
			}, nil
		},
	)
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKey, cfg.R2SecretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("newsroom: object storage config: %w", err)
	}
	return &ObjectStore{
		client:       s3.NewFromConfig(awsCfg),
		bucket:       cfg.R2Bucket,
		publicDomain: strings.TrimRight(cfg.R2PublicDomain, "/"),
		logger:       logger,
	}, nil
}

// Upload stores data under key and returns the public URL.
func (o *ObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &o.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("newsroom: upload %s: %w", key, err)
	}
	return o.publicDomain + "/" + key, nil
}

// DeleteByURL removes the object behind a stored image URL. The object key
// is the trailing path segment. Sentinel defaults and legacy bare filenames
// were never uploaded, so they are skipped.
func (o *ObjectStore) DeleteByURL(ctx context.Context, imageURL string) error {
	if imageURL == "" || imageURL == DefaultImage || !strings.HasPrefix(imageURL, "http") {
		return nil
	}
	parts := strings.Split(imageURL, "/")
	key := parts[len(parts)-1]
	if key == "" {
		return nil
	}
	_, err := o.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &o.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("newsroom: delete %s: %w", key, err)
	}
	o.logger.Info("image deleted from object storage", zap.String("key", key))
	return nil
}
