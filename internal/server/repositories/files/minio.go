package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/dmitrijs2005/gophdrop/internal/server/models"
)

// minioAPI is the part of *minio.Client the store uses.
type minioAPI interface {
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucket, object string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	GetObject(ctx context.Context, bucket, object string, opts minio.GetObjectOptions) (*minio.Object, error)
	RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// MinioConfig holds connection settings for a MinIO server.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// NewMinioClient connects to the server and creates the bucket if missing.
func NewMinioClient(ctx context.Context, cfg MinioConfig) (*minio.Client, error) {
	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}
	return cli, nil
}

// MinioStore uses the same object layout as S3Store.
type MinioStore struct {
	client minioAPI
	bucket string
}

func NewMinioStore(client minioAPI, bucket string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket}
}

func (s *MinioStore) key(ns models.Namespace, name string) string {
	return ns.Key() + "/" + name
}

func (s *MinioStore) Ensure(ctx context.Context, ns models.Namespace) error {
	return nil
}

// Put streams content with unknown size. IfAbsent is a stat followed by a
// put, so two racing uploads may both pass the check.
func (s *MinioStore) Put(ctx context.Context, ns models.Namespace, name string, content io.Reader, opts PutOptions) error {
	if opts.IfAbsent {
		_, err := s.Stat(ctx, ns, name)
		switch {
		case err == nil:
			return fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorAlreadyExists)
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}
	}

	_, err := s.client.PutObject(ctx, s.bucket, s.key(ns, name), content, -1, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return s.mapErr(ns, name, "put", err)
	}
	return nil
}

func (s *MinioStore) List(ctx context.Context, ns models.Namespace) ([]models.FileInfo, error) {
	prefix := ns.Key() + "/"

	result := []models.FileInfo{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s: %w", ns.Key(), obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		// common prefixes of nested keys come back ending in "/"
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		result = append(result, models.FileInfo{Name: name, Size: obj.Size, ModifiedAt: obj.LastModified})
	}
	sortByName(result)
	return result, nil
}

func (s *MinioStore) Stat(ctx context.Context, ns models.Namespace, name string) (models.FileInfo, error) {
	obj, err := s.client.StatObject(ctx, s.bucket, s.key(ns, name), minio.StatObjectOptions{})
	if err != nil {
		return models.FileInfo{}, s.mapErr(ns, name, "stat", err)
	}
	return models.FileInfo{Name: name, Size: obj.Size, ModifiedAt: obj.LastModified}, nil
}

func (s *MinioStore) Get(ctx context.Context, ns models.Namespace, name string) (io.ReadCloser, models.FileInfo, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(ns, name), minio.GetObjectOptions{})
	if err != nil {
		return nil, models.FileInfo{}, s.mapErr(ns, name, "get", err)
	}
	// GetObject is lazy; Stat surfaces a missing key
	st, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, models.FileInfo{}, s.mapErr(ns, name, "get", err)
	}
	return obj, models.FileInfo{Name: name, Size: st.Size, ModifiedAt: st.LastModified}, nil
}

// Remove checks for the object first because RemoveObject succeeds on
// missing keys. RemoveObjectOptions has no precondition, so two concurrent
// removes can both succeed.
func (s *MinioStore) Remove(ctx context.Context, ns models.Namespace, name string) error {
	if _, err := s.Stat(ctx, ns, name); err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, s.key(ns, name), minio.RemoveObjectOptions{}); err != nil {
		return s.mapErr(ns, name, "remove", err)
	}
	return nil
}

func (s *MinioStore) mapErr(ns models.Namespace, name, op string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorNotFound)
	case "PreconditionFailed":
		return fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorAlreadyExists)
	}
	return fmt.Errorf("%s %s/%s: %w", op, ns.Key(), name, err)
}
