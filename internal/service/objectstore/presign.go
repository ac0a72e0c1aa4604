package objectstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Object storage operations a URL may be presigned for
type Operation string

const (
	OperationGet Operation = "GET"
	OperationPut Operation = "PUT"
)

const defaultExpiry = time.Hour

type Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string

	// Optional custom endpoint, lets the service talk to MinIO and friends
	Endpoint string
}

// Presigner hands out time-limited URLs for direct object access.
// The storage itself stays an external collaborator: the service never
// proxies object bytes.
type Presigner struct {
	bucket  string
	presign *s3.PresignClient
}

func NewPresigner(ctx context.Context, cfg Config) (*Presigner, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket must not be empty")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("error while loading object storage config. Err: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Presigner{
		bucket:  cfg.Bucket,
		presign: s3.NewPresignClient(client),
	}, nil
}

// PresignedURL generates a time-limited URL for the given key and operation
func (p *Presigner) PresignedURL(ctx context.Context, key string, op Operation, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = defaultExpiry
	}

	switch op {
	case OperationGet:
		req, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(p.bucket),
			Key:    aws.String(key),
		}, s3.WithPresignExpires(expires))
		if err != nil {
			return "", fmt.Errorf("error while presigning GET url. Err: %w", err)
		}
		return req.URL, nil

	case OperationPut:
		req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(p.bucket),
			Key:    aws.String(key),
		}, s3.WithPresignExpires(expires))
		if err != nil {
			return "", fmt.Errorf("error while presigning PUT url. Err: %w", err)
		}
		return req.URL, nil

	default:
		return "", fmt.Errorf("invalid operation %q, use GET or PUT", op)
	}
}

// PosterKey returns a fresh date-partitioned object key for poster uploads
func PosterKey() string {
	d := time.Now()
	return fmt.Sprintf("posters/%d/%d/%d/%v", d.Year(), int(d.Month()), d.Day(), uuid.New())
}
