package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/bilgisen/lawgate/internal/models"
)

const r2Prefix = "submissions/"

// objectAPI is the subset of the S3 client used by R2Archive
type objectAPI interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// R2Config holds the Cloudflare R2 connection settings
type R2Config struct {
	Endpoint  string
	AccountID string
	AccessKey string
	SecretKey string
	Bucket    string
}

// R2Archive keeps submissions as JSON objects in a Cloudflare R2 bucket
type R2Archive struct {
	client objectAPI
	bucket string
}

// NewR2Archive builds an S3 client pointed at R2. Without an explicit
// endpoint the account endpoint is used.
func NewR2Archive(ctx context.Context, cfg R2Config) (*R2Archive, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Archive{client: client, bucket: cfg.Bucket}, nil
}

func (a *R2Archive) Save(ctx context.Context, sub *models.Submission) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	key := r2Prefix + datedName(sub)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload submission %s: %w", sub.ID, err)
	}

	sub.FilePath = key
	return nil
}

func (a *R2Archive) Get(ctx context.Context, id string) (*models.Submission, error) {
	key, err := a.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.read(ctx, key)
}

func (a *R2Archive) List(ctx context.Context, page, pageSize int) ([]*models.Submission, int, error) {
	keys, err := a.keys(ctx)
	if err != nil {
		return nil, 0, err
	}
	sortNewestFirst(keys)

	start, end := pageBounds(page, pageSize, len(keys))
	subs := make([]*models.Submission, 0, end-start)
	for _, key := range keys[start:end] {
		sub, err := a.read(ctx, key)
		if err != nil {
			return nil, 0, err
		}
		subs = append(subs, sub)
	}
	return subs, len(keys), nil
}

func (a *R2Archive) Delete(ctx context.Context, id string) error {
	key, err := a.find(ctx, id)
	if err != nil {
		return err
	}

	_, err = a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete submission %s: %w", id, err)
	}
	return nil
}

func (a *R2Archive) find(ctx context.Context, id string) (string, error) {
	keys, err := a.keys(ctx)
	if err != nil {
		return "", err
	}
	for _, key := range keys {
		if matchesID(key, id) {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (a *R2Archive) keys(ctx context.Context) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(r2Prefix),
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list submissions: %w", err)
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

func (a *R2Archive) read(ctx context.Context, key string) (*models.Submission, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to download %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var sub models.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("failed to unmarshal submission: %w", err)
	}
	sub.FilePath = key
	return &sub, nil
}
