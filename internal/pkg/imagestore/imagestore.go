// Package imagestore keeps property photos in S3-compatible object storage.
package imagestore

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/acreworks/landfolio/internal/pkg/env"
)

// Config holds the object-storage connection settings.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	EndpointURL     string
	Bucket          string
	PublicBaseURL   string
}

// ConfigFromEnv reads the storage settings from the environment.
func ConfigFromEnv() *Config {
	return &Config{
		Region:          env.GetEnv("S3_REGION", "us-east-1"),
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		Bucket:          env.GetEnv("S3_BUCKET", "landfolio-images"),
		PublicBaseURL:   env.GetEnv("S3_PUBLIC_BASE_URL", ""),
	}
}

// IsEnabled reports whether credentials are configured.
func (c *Config) IsEnabled() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// Client wraps the S3 client with image-store specific functionality
type Client struct {
	s3Client *s3.Client
	config   *Config
}

// NewClient creates a new object-storage client
func NewClient(cfg *Config) (*Client, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("image storage is not configured")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// Path-style URLs for non-AWS S3 providers.
			o.UsePathStyle = true
		}
	})

	client := &Client{s3Client: s3Client, config: cfg}

	_, err = s3Client.HeadBucket(context.Background(), &s3.HeadBucketInput{
		Bucket: aws.String(cfg.Bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("bucket %s not accessible: %w", cfg.Bucket, err)
	}

	log.Printf("[ImageStore] Initialized S3 client for bucket: %s", cfg.Bucket)
	return client, nil
}

// Upload stores an image under a generated key and returns (key, public URL).
func (c *Client) Upload(ctx context.Context, propertyID uint, fileName string, body io.Reader, contentType string) (string, string, error) {
	ext := ""
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		ext = strings.ToLower(fileName[i:])
	}
	key := fmt.Sprintf("properties/%d/%s%s", propertyID, uuid.New().String(), ext)

	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.config.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return key, c.PublicURL(key), nil
}

// Delete removes an object by key.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// PublicURL builds the browser-facing URL for an object key.
func (c *Client) PublicURL(key string) string {
	if c.config.PublicBaseURL != "" {
		return strings.TrimRight(c.config.PublicBaseURL, "/") + "/" + key
	}
	if c.config.EndpointURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.config.EndpointURL, "/"), c.config.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.config.Bucket, c.config.Region, key)
}
