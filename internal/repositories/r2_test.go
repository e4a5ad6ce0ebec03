package repositories

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/sharevault/internal/config"
)

type fakeObject struct {
	body        []byte
	contentType string
	accessType  string
}

// fakeS3 serves the path-style subset of the S3 API the store uses.
type fakeS3 struct {
	mu      sync.Mutex
	bucket  string
	objects map[string]fakeObject
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	prefix := "/" + f.bucket + "/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.Error(w, "no such bucket", http.StatusNotFound)
		return
	}
	key := strings.TrimPrefix(r.URL.Path, prefix)

	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodPut:
		b, _ := io.ReadAll(r.Body)
		f.objects[key] = fakeObject{
			body:        b,
			contentType: r.Header.Get("Content-Type"),
			accessType:  r.Header.Get("X-Amz-Meta-Accesstype"),
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodGet, http.MethodHead:
		o, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			if r.Method == http.MethodGet {
				_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			}
			return
		}
		w.Header().Set("Content-Type", o.contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(o.body)))
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(o.body)
		}
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newR2Store(t *testing.T) (*R2Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{bucket: "files", objects: map[string]fakeObject{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := NewR2Store(config.R2Config{
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "files",
		Region:          "auto",
		Endpoint:        srv.URL,
		PublicBaseURL:   "https://cdn.example.com/",
	}, getLogger().WithField("test", t.Name()))
	require.NoError(t, err)
	return s, fake
}

func TestNewR2Store_Validation(t *testing.T) {
	_, err := NewR2Store(config.R2Config{}, getLogger().WithField("test", t.Name()))
	assert.Error(t, err)
	_, err = NewR2Store(config.R2Config{BucketName: "files"}, getLogger().WithField("test", t.Name()))
	assert.Error(t, err)
}

func TestR2Store_RoundTrip(t *testing.T) {
	s, fake := newR2Store(t)
	ctx := context.Background()
	name := "1700000000000000000_report.pdf"
	body := "%PDF-1.7 fake"

	err := s.Put(ctx, name, strings.NewReader(body), PutOptions{
		ContentType: "application/pdf",
		Size:        int64(len(body)),
		Metadata:    map[string]string{"accesstype": "private"},
	})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", fake.objects[name].contentType)
	assert.Equal(t, "private", fake.objects[name].accessType)

	info, err := s.Stat(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, &BlobInfo{Size: int64(len(body)), ContentType: "application/pdf"}, info)

	rc, err := s.Open(ctx, name)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, body, string(got))

	require.NoError(t, s.Delete(ctx, name))
	_, err = s.Stat(ctx, name)
	assert.ErrorIs(t, err, ErrBlobNotFound)

	_, err = s.Open(ctx, name)
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestR2Store_URL(t *testing.T) {
	s, _ := newR2Store(t)
	assert.Equal(t, "https://cdn.example.com/1_a%20b.txt", s.URL("1_a b.txt"))

	s.publicBaseURL = ""
	assert.Equal(t, s.endpoint+"/files/1_a%20b.txt", s.URL("1_a b.txt"))
}

func TestR2Store_PutUnseekableBody(t *testing.T) {
	s, fake := newR2Store(t)
	body := "streamed without a seeker"

	err := s.Put(context.Background(), "1_a.txt", struct{ io.Reader }{strings.NewReader(body)}, PutOptions{
		ContentType: "text/plain",
		Size:        int64(len(body)),
	})
	require.NoError(t, err)
	assert.Equal(t, body, string(fake.objects["1_a.txt"].body))
}
