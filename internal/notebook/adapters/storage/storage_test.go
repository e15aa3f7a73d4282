package storage_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"regexp"
	"testing"
	"time"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notebook/internal/notebook/adapters/storage"
	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/resilience"
)

var errTransport = errors.New("connection reset")

func s3ResponseError(status int) error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: status}},
			Err:      errors.New(http.StatusText(status)),
		},
	}
}

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *mockS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

type mockCloudinary struct {
	mock.Mock
}

func (m *mockCloudinary) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	args := m.Called(ctx, file, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uploader.UploadResult), args.Error(1)
}

func (m *mockCloudinary) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uploader.DestroyResult), args.Error(1)
}

var s3Config = storage.S3Config{
	Bucket:        "notes",
	Endpoint:      "https://account.r2.cloudflarestorage.com",
	Region:        "auto",
	PublicBaseURL: "https://cdn.example.com/",
}

func fastExecutor() *resilience.Executor {
	return resilience.NewExecutor("test", resilience.Config{
		MaxAttempts: 2, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond,
		ErrorThreshold: 100, OpenTimeout: time.Second, SuccessThreshold: 1,
	})
}

func newGateway(t *testing.T, client *mockS3) *storage.Gateway {
	t.Helper()
	gateway, err := storage.NewGateway(storage.NewS3StoreWithClient(client, s3Config), fastExecutor(), storage.DefaultPrefix)
	require.NoError(t, err)
	return gateway
}

func TestNewGateway_Config(t *testing.T) {
	_, err := storage.NewGateway(nil, fastExecutor(), "notes-images")
	require.ErrorIs(t, err, entities.ErrStorageConfig)

	_, err = storage.NewGateway(storage.NewS3StoreWithClient(new(mockS3), s3Config), fastExecutor(), " / ")
	require.Error(t, err)
}

func TestS3Config_Validate(t *testing.T) {
	_, err := storage.NewS3Store(storage.S3Config{Bucket: "notes"})
	require.ErrorIs(t, err, entities.ErrStorageConfig)
	assert.Contains(t, err.Error(), "endpoint")
	assert.Contains(t, err.Error(), "public base url")

	store, err := storage.NewS3Store(s3Config)
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestNewBlobStore(t *testing.T) {
	_, err := storage.NewBlobStore(storage.Config{Backend: "ftp"})
	require.ErrorIs(t, err, entities.ErrStorageConfig)

	_, err = storage.NewBlobStore(storage.Config{Backend: storage.BackendCloudinary})
	require.ErrorIs(t, err, entities.ErrStorageConfig)

	gateway, err := storage.New(storage.Config{Backend: storage.BackendS3, Prefix: "notes-images", S3: s3Config,
		Resilience: resilience.Config{MaxAttempts: 1, ErrorThreshold: 1, SuccessThreshold: 1}})
	require.NoError(t, err)
	assert.NotNil(t, gateway)
}

func TestGateway_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("returns public url", func(t *testing.T) {
		client := new(mockS3)
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			body, _ := io.ReadAll(in.Body)
			return *in.Bucket == "notes" && *in.Key == "notes-images/1-abc.png" &&
				*in.ContentType == "image/png" && string(body) == "png"
		})).Return(&s3.PutObjectOutput{}, nil)

		url, err := newGateway(t, client).Upload(ctx, []byte("png"), "notes-images/1-abc.png", "image/png")

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/notes-images/1-abc.png", url)
	})

	t.Run("transport failure after retries", func(t *testing.T) {
		client := new(mockS3)
		client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errTransport)

		_, err := newGateway(t, client).Upload(ctx, []byte("png"), "notes-images/1-abc.png", "image/png")

		require.ErrorIs(t, err, entities.ErrStorageWrite)
		require.ErrorIs(t, err, errTransport)
		client.AssertNumberOfCalls(t, "PutObject", 2)
	})

	t.Run("client error is not retried", func(t *testing.T) {
		client := new(mockS3)
		client.On("PutObject", mock.Anything, mock.Anything).Return(nil, s3ResponseError(http.StatusForbidden))

		_, err := newGateway(t, client).Upload(ctx, []byte("png"), "notes-images/1-abc.png", "image/png")

		require.ErrorIs(t, err, entities.ErrStorageWrite)
		client.AssertNumberOfCalls(t, "PutObject", 1)
	})

	t.Run("throttling is retried", func(t *testing.T) {
		client := new(mockS3)
		client.On("PutObject", mock.Anything, mock.Anything).Return(nil, s3ResponseError(http.StatusTooManyRequests))

		_, err := newGateway(t, client).Upload(ctx, []byte("png"), "notes-images/1-abc.png", "image/png")

		require.ErrorIs(t, err, entities.ErrStorageWrite)
		client.AssertNumberOfCalls(t, "PutObject", 2)
	})

	t.Run("server error is retried", func(t *testing.T) {
		client := new(mockS3)
		client.On("PutObject", mock.Anything, mock.Anything).Return(nil, s3ResponseError(http.StatusServiceUnavailable)).Once()
		client.On("PutObject", mock.Anything, mock.Anything).Return(&s3.PutObjectOutput{}, nil).Once()

		url, err := newGateway(t, client).Upload(ctx, []byte("png"), "notes-images/1-abc.png", "image/png")

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/notes-images/1-abc.png", url)
		client.AssertNumberOfCalls(t, "PutObject", 2)
	})

	t.Run("cloudinary error response is not retried", func(t *testing.T) {
		cld := new(mockCloudinary)
		cld.On("Upload", mock.Anything, mock.Anything, mock.Anything).
			Return(&uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid Signature"}}, nil)
		gateway, err := storage.NewGateway(storage.NewCloudinaryStoreWithAPI(cld), fastExecutor(), storage.DefaultPrefix)
		require.NoError(t, err)

		_, err = gateway.Upload(ctx, []byte("png"), "notes-images/1-abc.png", "image/png")

		require.ErrorIs(t, err, entities.ErrStorageWrite)
		require.ErrorIs(t, err, storage.ErrCloudinaryResponse)
		cld.AssertNumberOfCalls(t, "Upload", 1)
	})
}

func TestGateway_Delete(t *testing.T) {
	ctx := context.Background()
	client := new(mockS3)
	client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return *in.Key == "notes-images/1-abc.png"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()
	client.On("DeleteObject", mock.Anything, mock.Anything).Return(nil, errTransport)

	gateway := newGateway(t, client)

	require.NoError(t, gateway.Delete(ctx, "notes-images/1-abc.png"))
	require.ErrorIs(t, gateway.Delete(ctx, "notes-images/2-def.png"), errTransport)
}

func TestGateway_DeleteClientErrorNotRetried(t *testing.T) {
	ctx := context.Background()
	client := new(mockS3)
	client.On("DeleteObject", mock.Anything, mock.Anything).Return(nil, s3ResponseError(http.StatusNotFound))

	err := newGateway(t, client).Delete(ctx, "notes-images/1-abc.png")

	require.Error(t, err)
	client.AssertNumberOfCalls(t, "DeleteObject", 1)
}

func TestGateway_DeriveName(t *testing.T) {
	gateway := newGateway(t, new(mockS3))
	gateway.SetClock(func() time.Time { return time.UnixMilli(1700000000123) })

	tests := []struct {
		original string
		ext      string
	}{
		{original: "cat.PNG", ext: "png"},
		{original: "archive.tar.gz", ext: "gz"},
		{original: "noextension", ext: "jpg"},
		{original: "", ext: "jpg"},
		{original: "weird.p$g", ext: "jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			key := gateway.DeriveName(tt.original)
			assert.Regexp(t, regexp.MustCompile(`^notes-images/1700000000123-[0-9a-z]{6}\.`+tt.ext+`$`), key)
		})
	}

	assert.NotEqual(t, gateway.DeriveName("a.png"), gateway.DeriveName("a.png"))
}

func TestGateway_KeyFromURL(t *testing.T) {
	gateway := newGateway(t, new(mockS3))

	tests := []struct {
		url  string
		want string
	}{
		{url: "https://cdn.example.com/notes-images/1-abc.png", want: "notes-images/1-abc.png"},
		{url: "https://res.cloudinary.com/demo/image/upload/v17/notes-images/1-abc.png", want: "notes-images/1-abc.png"},
		{url: "https://cdn.example.com/notes-images/1-abc.png?x=1", want: "notes-images/1-abc.png"},
		{url: "https://cdn.example.com/", want: ""},
		{url: "single", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, gateway.KeyFromURL(tt.url))
		})
	}
}

func TestGateway_Validate(t *testing.T) {
	gateway := newGateway(t, new(mockS3))

	tests := []struct {
		name        string
		contentType string
		size        int64
		reason      string
	}{
		{name: "ok", contentType: "image/png", size: 1024},
		{name: "exactly limit", contentType: "image/jpeg", size: storage.MaxImageSize},
		{name: "no file", contentType: "", size: 0, reason: storage.ReasonNoFile},
		{name: "not image", contentType: "application/pdf", size: 10, reason: storage.ReasonNotImage},
		{name: "too large", contentType: "image/png", size: storage.MaxImageSize + 1, reason: storage.ReasonTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gateway.Validate(tt.contentType, tt.size)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, entities.ErrImageRejected)
			assert.EqualError(t, err, tt.reason)
		})
	}
}

func TestCloudinaryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("put uses key without extension as public id", func(t *testing.T) {
		cld := new(mockCloudinary)
		cld.On("Upload", mock.Anything, mock.Anything, mock.MatchedBy(func(p uploader.UploadParams) bool {
			return p.PublicID == "notes-images/1-abc" && p.ResourceType == "image"
		})).Return(&uploader.UploadResult{SecureURL: "https://res.cloudinary.com/demo/image/upload/v1/notes-images/1-abc.png"}, nil)

		url, err := storage.NewCloudinaryStoreWithAPI(cld).Put(ctx, "notes-images/1-abc.png", []byte("x"), "image/png")

		require.NoError(t, err)
		assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/notes-images/1-abc.png", url)
	})

	t.Run("api error in body", func(t *testing.T) {
		cld := new(mockCloudinary)
		cld.On("Upload", mock.Anything, mock.Anything, mock.Anything).
			Return(&uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid Signature"}}, nil)

		_, err := storage.NewCloudinaryStoreWithAPI(cld).Put(ctx, "notes-images/1-abc.png", []byte("x"), "image/png")

		require.ErrorIs(t, err, storage.ErrCloudinaryResponse)
	})

	t.Run("delete", func(t *testing.T) {
		cld := new(mockCloudinary)
		cld.On("Destroy", mock.Anything, uploader.DestroyParams{PublicID: "notes-images/1-abc", ResourceType: "image"}).
			Return(&uploader.DestroyResult{Result: "ok"}, nil)

		err := storage.NewCloudinaryStoreWithAPI(cld).Delete(ctx, "notes-images/1-abc.png")

		require.NoError(t, err)
		cld.AssertExpectations(t)
	})
}
