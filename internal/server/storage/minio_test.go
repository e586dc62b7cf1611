package storage

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormaliseEndpoint(t *testing.T) {
	tests := []struct {
		in           string
		wantEndpoint string
		wantSecure   bool
		wantErr      bool
	}{
		{"minio:9000", "minio:9000", true, false},
		{"http://minio:9000", "minio:9000", false, false},
		{"https://minio:9000", "minio:9000", true, false},
		{"http://minio:9000/", "minio:9000", false, false},
		{"http://minio:9000/foo", "", false, true},
		{"http://", "", false, true},
		{"", "", false, true},
	}

	for _, tt := range tests {
		ep, secure, err := normaliseEndpoint(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.wantEndpoint, ep, tt.in)
		assert.Equal(t, tt.wantSecure, secure, tt.in)
	}
}

func TestMinioPresigner_RealSignature(t *testing.T) {
	p, err := NewMinioPresigner(testCreds)
	require.NoError(t, err)

	got, err := p.PresignPut(context.Background(), PutRequest{
		Bucket: "pdfs", Key: "uploads/report.pdf", ContentType: "application/pdf", IfNoneMatch: "*", Expires: 300 * time.Second,
	})
	require.NoError(t, err)

	u, err := url.Parse(got.URL)
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/pdfs/uploads/report.pdf", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))

	signed := strings.ToLower(u.Query().Get("X-Amz-SignedHeaders"))
	assert.Contains(t, signed, "content-type")
	assert.Contains(t, signed, "if-none-match")

	assert.Equal(t, map[string]string{"Content-Type": "application/pdf", "If-None-Match": "*"}, got.Headers)
}

func TestMinioPresigner_PassesExtraHeaders(t *testing.T) {
	orig := minioPresignHeader
	t.Cleanup(func() { minioPresignHeader = orig })

	var gotMethod string
	var gotExtra http.Header
	minioPresignHeader = func(c *minio.Client, ctx context.Context, method, bucket, key string, expires time.Duration, params url.Values, extra http.Header) (*url.URL, error) {
		gotMethod = method
		gotExtra = extra
		return url.Parse("http://minio/pdfs/" + key)
	}

	p := &MinioPresigner{}
	_, err := p.PresignPut(context.Background(), PutRequest{Bucket: "pdfs", Key: "k.pdf", ContentType: "application/pdf", IfNoneMatch: "*"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "application/pdf", gotExtra.Get("Content-Type"))
	assert.Equal(t, "*", gotExtra.Get("If-None-Match"))

	minioPresignHeader = func(c *minio.Client, ctx context.Context, method, bucket, key string, expires time.Duration, params url.Values, extra http.Header) (*url.URL, error) {
		return nil, errors.New("nope")
	}
	_, err = p.PresignPut(context.Background(), PutRequest{Bucket: "pdfs", Key: "k.pdf", ContentType: "application/pdf"})
	require.EqualError(t, err, "nope")
}

func TestNewMinioPresigner_BadEndpoint(t *testing.T) {
	_, err := NewMinioPresigner(Credentials{Endpoint: "http://host/with/path"})
	require.Error(t, err)
}
