package storage

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// S3API открывает интерфейс клиента S3 для тестов.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// CloudinaryAPI открывает интерфейс клиента Cloudinary для тестов.
type CloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

func NewS3StoreWithClient(client S3API, cfg S3Config) *S3Store {
	return newS3Store(client, cfg)
}

func NewCloudinaryStoreWithAPI(api CloudinaryAPI) *CloudinaryStore {
	return &CloudinaryStore{api: api}
}

func (g *Gateway) SetClock(now func() time.Time) {
	g.now = now
}
