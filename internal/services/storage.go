package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"kodjobs/talent-matcher/internal/config"
)

var (
	// ErrStorageUnavailable covers listing failures: connectivity or
	// permission problems that are fatal to a whole matching run.
	ErrStorageUnavailable = errors.New("resume storage unavailable")

	// ErrObjectFetch covers per-object download failures, which are
	// non-fatal to the run.
	ErrObjectFetch = errors.New("failed to fetch resume object")
)

type ResumeStorage interface {
	ListResumeKeys(ctx context.Context, prefix string) ([]string, error)
	FetchObject(ctx context.Context, key string) ([]byte, error)
}

type resumeStorage struct {
	client *s3.Client
	bucket string
}

// NewResumeStorage builds an S3-backed resume store. A non-empty
// cfg.Endpoint switches to path-style addressing for S3-compatible
// stores like MinIO.
func NewResumeStorage(ctx context.Context, cfg config.S3Config) (ResumeStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if cfg.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	return &resumeStorage{client: client, bucket: cfg.Bucket}, nil
}

// ListResumeKeys returns every object key under the prefix. An empty
// bucket is not an error: the orchestrator reports zero processed.
func (s *resumeStorage) ListResumeKeys(ctx context.Context, prefix string) ([]string, error) {
	keys := []string{}

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}

	return keys, nil
}

func (s *resumeStorage) FetchObject(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrObjectFetch, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrObjectFetch, key, err)
	}

	return data, nil
}
