package files

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/dmitrijs2005/gophdrop/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObject struct {
	data     []byte
	modified time.Time
	etag     string
}

// fakeS3 is a single-bucket object store speaking the s3API subset.
type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string]fakeObject
	pageSize int
	putErr   error
	version  int

	// beforeDelete runs between the head and the delete of a Remove.
	beforeDelete func()
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string]fakeObject{}, pageSize: 2}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(in.Key)
	if _, ok := f.objects[key]; ok && aws.ToString(in.IfNoneMatch) == "*" {
		return nil, &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"}
	}
	f.version++
	f.objects[key] = fakeObject{data: data, modified: time.Now(), etag: fmt.Sprintf("\"v%d\"", f.version)}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NotFound", Message: "Not Found"}
	}
	return &s3.HeadObjectOutput{
		ETag:          aws.String(obj.etag),
		ContentLength: aws.Int64(int64(len(obj.data))),
		LastModified:  aws.Time(obj.modified),
	}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "The specified key does not exist."}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(obj.data)),
		ContentLength: aws.Int64(int64(len(obj.data))),
		LastModified:  aws.Time(obj.modified),
	}, nil
}

// DeleteObject succeeds on missing keys unless If-Match is set, like S3.
func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.beforeDelete != nil {
		f.beforeDelete()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(in.Key)
	obj, ok := f.objects[key]
	if ifMatch := aws.ToString(in.IfMatch); ifMatch != "" {
		if !ok {
			return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "The specified key does not exist."}
		}
		if obj.etag != ifMatch {
			return nil, &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"}
		}
	}
	delete(f.objects, key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefix := aws.ToString(in.Prefix)
	delim := aws.ToString(in.Delimiter)
	var keys []string
	for k := range f.objects {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if delim != "" && strings.Contains(strings.TrimPrefix(k, prefix), delim) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if tok := aws.ToString(in.ContinuationToken); tok != "" {
		start = sort.SearchStrings(keys, tok)
	}
	end := start + f.pageSize
	if end > len(keys) {
		end = len(keys)
	}

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, k := range keys[start:end] {
		obj := f.objects[k]
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(k),
			Size:         aws.Int64(int64(len(obj.data))),
			LastModified: aws.Time(obj.modified),
		})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end])
	}
	return out, nil
}

func TestS3Store(t *testing.T) {
	runStoreContract(t, true, func(t *testing.T) NamespaceStore {
		return NewS3Store(newFakeS3(), "drop")
	})
}

func TestS3Store_KeysAndPaging(t *testing.T) {
	fake := newFakeS3()
	s := NewS3Store(fake, "drop")
	ctx := context.Background()

	for _, n := range []string{"e", "d", "c", "b", "a"} {
		require.NoError(t, s.Put(ctx, models.PublicNamespace(), n, strings.NewReader(n), PutOptions{}))
	}
	require.NoError(t, s.Put(ctx, models.PrivateNamespace("public"), "mine", strings.NewReader("x"), PutOptions{}))

	assert.Contains(t, fake.objects, "public/a")
	assert.Contains(t, fake.objects, "private/public/mine")

	got, err := s.List(ctx, models.PublicNamespace())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names(got))
}

func TestS3Store_PutError(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = &smithy.GenericAPIError{Code: "AccessDenied"}
	s := NewS3Store(fake, "drop")

	err := s.Put(context.Background(), models.PublicNamespace(), "a", strings.NewReader("x"), PutOptions{})
	require.Error(t, err)
	require.False(t, errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorAlreadyExists))

	var apiErr smithy.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "AccessDenied", apiErr.ErrorCode())
}

func TestS3Store_RemoveLosesRace(t *testing.T) {
	ctx := context.Background()
	pub := models.PublicNamespace()

	t.Run("deleted in between", func(t *testing.T) {
		fake := newFakeS3()
		s := NewS3Store(fake, "drop")
		require.NoError(t, s.Put(ctx, pub, "a.txt", strings.NewReader("x"), PutOptions{}))

		fake.beforeDelete = func() {
			fake.beforeDelete = nil
			require.NoError(t, s.Remove(ctx, pub, "a.txt"))
		}
		err := s.Remove(ctx, pub, "a.txt")
		require.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("replaced in between", func(t *testing.T) {
		fake := newFakeS3()
		s := NewS3Store(fake, "drop")
		require.NoError(t, s.Put(ctx, pub, "a.txt", strings.NewReader("v1"), PutOptions{}))

		fake.beforeDelete = func() {
			fake.beforeDelete = nil
			require.NoError(t, s.Put(ctx, pub, "a.txt", strings.NewReader("v2"), PutOptions{}))
		}
		err := s.Remove(ctx, pub, "a.txt")
		require.ErrorIs(t, err, common.ErrorNotFound)

		info, err := s.Stat(ctx, pub, "a.txt")
		require.NoError(t, err, "the newer object must survive")
		assert.EqualValues(t, 2, info.Size)
	})

	t.Run("plain remove", func(t *testing.T) {
		fake := newFakeS3()
		s := NewS3Store(fake, "drop")
		require.NoError(t, s.Put(ctx, pub, "a.txt", strings.NewReader("x"), PutOptions{}))
		require.NoError(t, s.Remove(ctx, pub, "a.txt"))
		assert.NotContains(t, fake.objects, "public/a.txt")
	})
}
