package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectClient struct {
	objects      map[string][]byte
	buckets      map[string]bool
	putErr       error
	createdIn    string
	contentTypes map[string]string
}

func newFakeObjectClient() *fakeObjectClient {
	return &fakeObjectClient{
		objects:      make(map[string][]byte),
		buckets:      make(map[string]bool),
		contentTypes: make(map[string]string),
	}
}

func (f *fakeObjectClient) Put(_ context.Context, bucket, key string, reader io.Reader, _ int64, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	f.objects[bucket+"/"+key] = data
	f.contentTypes[bucket+"/"+key] = contentType
	return nil
}

func (f *fakeObjectClient) Get(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, ErrObjectNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeObjectClient) BucketExists(_ context.Context, bucket string) (bool, error) {
	return f.buckets[bucket], nil
}

func (f *fakeObjectClient) CreateBucket(_ context.Context, bucket, region string) error {
	f.buckets[bucket] = true
	f.createdIn = region
	return nil
}

func TestS3StorePutGetWithPrefix(t *testing.T) {
	client := newFakeObjectClient()
	store := newS3StoreWithClient("indexes", "/prod/", client)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "text_to_sql_index.gob", []byte("blob")))
	assert.Contains(t, client.objects, "indexes/prod/text_to_sql_index.gob")
	assert.Equal(t, blobContentType, client.contentTypes["indexes/prod/text_to_sql_index.gob"])

	data, err := store.Get(ctx, "/text_to_sql_index.gob")
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), data)
}

func TestS3StoreGetMissing(t *testing.T) {
	store := newS3StoreWithClient("indexes", "", newFakeObjectClient())

	_, err := store.Get(context.Background(), "nope.gob")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestS3StorePutError(t *testing.T) {
	client := newFakeObjectClient()
	client.putErr = errors.New("boom")
	store := newS3StoreWithClient("indexes", "", client)

	err := store.Put(context.Background(), "a.gob", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestS3StoreRejectsTraversal(t *testing.T) {
	store := newS3StoreWithClient("indexes", "prod", newFakeObjectClient())

	assert.Error(t, store.Put(context.Background(), "../escape.gob", []byte("x")))
}

func TestS3StoreEnsureBucket(t *testing.T) {
	client := newFakeObjectClient()
	store := newS3StoreWithClient("indexes", "", client)

	require.NoError(t, store.ensureBucket(context.Background(), "eu-west-1"))
	assert.True(t, client.buckets["indexes"])
	assert.Equal(t, "eu-west-1", client.createdIn)

	client.createdIn = ""
	require.NoError(t, store.ensureBucket(context.Background(), "us-east-1"))
	assert.Empty(t, client.createdIn, "existing bucket is not recreated")
}

func TestNewS3StoreValidation(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{Bucket: "b"})
	assert.Error(t, err)

	_, err = NewS3Store(context.Background(), S3Config{Endpoint: "localhost:9000"})
	assert.Error(t, err)
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		raw        string
		useSSL     bool
		wantHost   string
		wantSecure bool
		wantErr    bool
	}{
		{raw: "localhost:9000", wantHost: "localhost:9000"},
		{raw: "s3.amazonaws.com", useSSL: true, wantHost: "s3.amazonaws.com", wantSecure: true},
		{raw: "https://minio.internal:9000", wantHost: "minio.internal:9000", wantSecure: true},
		{raw: "http://minio.internal:9000", wantHost: "minio.internal:9000"},
		{raw: "http://", wantErr: true},
		{raw: "  ", wantErr: true},
	}

	for _, tt := range tests {
		host, secure, err := parseEndpoint(tt.raw, tt.useSSL)
		if tt.wantErr {
			assert.Error(t, err, "raw %q", tt.raw)
			continue
		}

		require.NoError(t, err, "raw %q", tt.raw)
		assert.Equal(t, tt.wantHost, host)
		assert.Equal(t, tt.wantSecure, secure)
	}
}
