package transfer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/sharevault/internal/config"
	"github.com/rohits-web03/sharevault/internal/registry"
	"github.com/rohits-web03/sharevault/internal/repositories"
)

// bucketServer accepts path-style PUT and GET for a single bucket over plain HTTP.
type bucketServer struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (b *bucketServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/files/")
	b.mu.Lock()
	defer b.mu.Unlock()
	switch r.Method {
	case http.MethodPut:
		data, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b.objects[key] = data
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		data, ok := b.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(data)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newR2Pipeline(t *testing.T) (*Pipeline, *bucketServer) {
	t.Helper()
	bucket := &bucketServer{objects: map[string][]byte{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	blobs, err := repositories.NewR2Store(config.R2Config{
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "files",
		Region:          "auto",
		Endpoint:        srv.URL,
	}, getLogger())
	require.NoError(t, err)

	l := log.New()
	l.SetLevel(log.FatalLevel)
	db, err := repositories.ConnectDatabase("sqlite:file:"+uuid.NewString()+"?mode=memory&cache=shared", l)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	reg := registry.New(repositories.NewFileRepository(db), blobs.URL, getLogger())
	return New(reg, blobs, getLogger()), bucket
}

func TestPipeline_UploadToS3OverPlainHTTP(t *testing.T) {
	content := strings.Repeat("0123456789", 1000)

	tests := []struct {
		name string
		body func() io.Reader
	}{
		{name: "seekable body", body: func() io.Reader { return strings.NewReader(content) }},
		{name: "stream body", body: func() io.Reader { return struct{ io.Reader }{strings.NewReader(content)} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, bucket := newR2Pipeline(t)
			ctx := context.Background()

			f, err := p.Upload(ctx, UploadRequest{
				Owner:        alice,
				OriginalName: "digits.txt",
				ContentType:  "text/plain",
				Size:         int64(len(content)),
				Body:         tt.body(),
			})
			require.NoError(t, err)
			assert.Equal(t, int64(len(content)), f.Size)
			assert.Equal(t, content, string(bucket.objects[f.FileName]))

			d, err := p.Download(ctx, f.ID, alice)
			require.NoError(t, err)
			assert.Equal(t, content, readAll(t, d))
		})
	}
}
