package repository

import (
	"context"
	"io"
)

// AWSRepository defines the AWS calls used to read data files from S3.
type AWSRepository interface {
	GetAccountID(ctx context.Context, profile string) (string, error)
	GetObject(ctx context.Context, profile, region, bucket, key string) (io.ReadCloser, error)
}
