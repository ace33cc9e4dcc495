package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures an S3 or S3-compatible (MinIO) bucket.
type S3Options struct {
	Region    string
	Endpoint  string // empty for AWS
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string // base for returned URLs; derived when empty
}

type S3 struct {
	client *s3.Client
	opts   S3Options
}

func NewS3(ctx context.Context, o S3Options) (*S3, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(o.Region)}
	if o.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	})
	return &S3{client: client, opts: o}, nil
}

func (s *S3) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if s.opts.Bucket == "" {
		return "", ErrNotConfigured
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.URL(key), nil
}

// URL is the public address of key.
func (s *S3) URL(key string) string {
	switch {
	case s.opts.PublicURL != "":
		return strings.TrimRight(s.opts.PublicURL, "/") + "/" + key
	case s.opts.Endpoint != "":
		return strings.TrimRight(s.opts.Endpoint, "/") + "/" + s.opts.Bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.opts.Bucket, s.opts.Region, key)
	}
}
