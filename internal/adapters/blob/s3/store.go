// Package s3 guarda blobs en un bucket S3 (o compatible: MinIO, Spaces).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"kittygram/internal/ports/blob"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

const cacheControl = "public, max-age=31536000"

type Config struct {
	Bucket string
	Region string

	// Endpoint para servicios compatibles; vacío = AWS.
	Endpoint     string
	UsePathStyle bool

	// AccessKey/SecretKey vacíos = cadena de credenciales por defecto.
	AccessKey string
	SecretKey string

	// PublicURL es la base con la que se exponen los objetos.
	// Vacío = /media/ (proxy del propio servicio).
	PublicURL string
}

type Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("s3: bucket required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewWithClient(client, cfg.Bucket, cfg.PublicURL), nil
}

func NewWithClient(client *s3.Client, bucket, publicURL string) *Store {
	base := strings.TrimSpace(publicURL)
	if base == "" {
		base = "/media/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Store{client: client, bucket: bucket, baseURL: base}
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return fmt.Errorf("s3: put %s: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (blob.Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return blob.Object{}, blob.ErrNotFound
		}
		return blob.Object{}, fmt.Errorf("s3: get %s: %w", key, err)
	}

	return blob.Object{
		Key:         key,
		ContentType: aws.ToString(out.ContentType),
		Size:        aws.ToInt64(out.ContentLength),
		Body:        out.Body,
	}, nil
}

// Delete hace HEAD antes: S3 no informa si la key existía.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return blob.ErrNotFound
		}
		return fmt.Errorf("s3: head %s: %w", key, err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3: delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) URL(key string) string {
	return s.baseURL + strings.TrimPrefix(key, "/")
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	// HEAD devuelve un 404 genérico sin tipo.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey"
	}
	return false
}
