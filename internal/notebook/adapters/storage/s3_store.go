package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/resilience"
)

// S3Config - настройки S3-совместимого хранилища (Cloudflare R2, MinIO, AWS S3).
type S3Config struct {
	Bucket          string `yaml:"bucket" env:"BUCKET"`
	Endpoint        string `yaml:"endpoint" env:"ENDPOINT"`
	Region          string `yaml:"region" env:"REGION" env-default:"auto"`
	AccessKeyID     string `yaml:"access_key_id" env:"ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"SECRET_ACCESS_KEY"`
	PublicBaseURL   string `yaml:"public_base_url" env:"PUBLIC_BASE_URL"`
}

// Validate проверяет обязательные поля.
func (c S3Config) Validate() error {
	var missing []string
	if c.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if c.Endpoint == "" {
		missing = append(missing, "endpoint")
	}
	if c.PublicBaseURL == "" {
		missing = append(missing, "public base url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: s3 %s", entities.ErrStorageConfig, strings.Join(missing, ", "))
	}
	return nil
}

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store реализует services.BlobStore поверх aws-sdk-go-v2.
type S3Store struct {
	client        s3API
	bucket        string
	publicBaseURL string
}

// NewS3Store создает клиент S3 с адресацией path-style и заданным endpoint.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(cfg.Endpoint),
		UsePathStyle: true,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	})

	return newS3Store(client, cfg), nil
}

func newS3Store(client s3API, cfg S3Config) *S3Store {
	return &S3Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

// Put загружает объект и возвращает его публичный URL.
func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", classifyS3Error(fmt.Errorf("failed to put object: %w", err))
	}

	return s.publicBaseURL + "/" + key, nil
}

// Delete удаляет объект.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return classifyS3Error(fmt.Errorf("failed to delete object: %w", err))
	}
	return nil
}

// classifyS3Error помечает ответы 4xx как неповторяемые, кроме 408 и 429.
func classifyS3Error(err error) error {
	var respErr *awshttp.ResponseError
	if !errors.As(err, &respErr) {
		return err
	}

	code := respErr.HTTPStatusCode()
	if code >= 400 && code < 500 && code != http.StatusRequestTimeout && code != http.StatusTooManyRequests {
		return resilience.Permanent(err)
	}
	return err
}
