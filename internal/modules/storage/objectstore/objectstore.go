// Package objectstore persists generated audio and presentation assets in an
// S3-compatible bucket (Cloudflare R2 in production).
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	appcfg "github.com/slidecast/core/internal/config"
)

// ErrNotFound is returned when the requested object does not exist.
var ErrNotFound = errors.New("object not found")

// Content under content-derived keys never changes, so it can be cached forever.
const immutableCacheControl = "public, max-age=31536000, immutable"

// Store wraps the S3 client with bucket-scoped operations.
type Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// ObjectInfo describes one listed object.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	URL          string    `json:"url"`
}

// New builds a Store from config.
func New(cfg appcfg.StorageConfig) (*Store, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New("storage: bucket is required")
	}
	if strings.TrimSpace(cfg.AccessKeyID) == "" || strings.TrimSpace(cfg.SecretAccessKey) == "" {
		return nil, errors.New("storage: access_key_id and secret_access_key are required")
	}

	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			strings.TrimSpace(cfg.AccessKeyID),
			strings.TrimSpace(cfg.SecretAccessKey),
			"",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(strings.TrimRight(endpoint, "/"))
			// Custom endpoints (R2, MinIO) generally want path-style access.
			o.UsePathStyle = true
		}
		if cfg.PathStyleAccess {
			o.UsePathStyle = true
		}
	})

	return &Store{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/"),
	}, nil
}

// Upload writes the object and returns its public URL. Uploads under the same
// key are overwrite-safe; keys are content-derived so overwrites are idempotent.
func (s *Store) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(immutableCacheControl),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

// Get streams an object. Callers must close the returned reader.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, string, int64, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, "", 0, ErrNotFound
		}
		return nil, "", 0, fmt.Errorf("get object %s: %w", key, err)
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return out.Body, contentType, aws.ToInt64(out.ContentLength), nil
}

// List returns the objects under prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("list objects %s: %w", prefix, err)
	}

	infos := make([]ObjectInfo, 0, len(out.Contents))
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		if key == "" {
			continue
		}
		infos = append(infos, ObjectInfo{
			Key:          key,
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
			URL:          s.PublicURL(key),
		})
	}
	return infos, nil
}

// PublicURL reconstructs the durable retrieval URL for a key. Without a
// configured public_base_url only audio keys have a fallback, via the
// server's own streaming route; other keys yield "" until a base is set.
func (s *Store) PublicURL(key string) string {
	key = strings.TrimPrefix(key, "/")
	if s.publicBaseURL == "" {
		if strings.HasPrefix(key, "audio/") {
			return "/api/v1/" + key
		}
		return ""
	}
	return s.publicBaseURL + "/" + key
}
