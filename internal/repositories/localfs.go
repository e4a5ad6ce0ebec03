package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	objectsDir  = "objects"
	metadataDir = "meta"
)

var (
	ErrInvalidBlobName   = errors.New("invalid blob name")
	ErrCantCreateBlobDir = errors.New("can't create blob storage dir")
	ErrCantWriteBlob     = errors.New("can't write blob")
	ErrCantWriteBlobMeta = errors.New("can't write blob metadata")
	ErrCantRemoveBlob    = errors.New("can't remove blob")
	ErrCantOpenBlob      = errors.New("can't open blob")
)

// LocalStore keeps file bodies on the local filesystem. Objects live under
// <root>/objects, their content type and metadata under <root>/meta.
type LocalStore struct {
	root          string
	publicBaseURL string
	l             *log.Entry
}

type localMeta struct {
	ContentType string            `json:"contentType"`
	Size        int64             `json:"size"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func NewLocalStore(root, publicBaseURL string, l *log.Entry) (*LocalStore, error) {
	for _, d := range []string{objectsDir, metadataDir} {
		if err := os.MkdirAll(filepath.Join(root, d), fs.ModePerm); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCantCreateBlobDir, err)
		}
	}
	return &LocalStore{
		root:          root,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		l:             l.WithField("blob_root", root),
	}, nil
}

// Put writes body to a temp file and renames it into place, so readers never
// observe a partially written object.
func (s *LocalStore) Put(ctx context.Context, name string, body io.Reader, opts PutOptions) error {
	dst, err := s.objectPath(name)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Join(s.root, objectsDir), ".upload-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCantWriteBlob, err)
	}
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmp.Name())
	}()

	n, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: body})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCantWriteBlob, err)
	}

	meta, err := json.Marshal(localMeta{ContentType: opts.ContentType, Size: n, Metadata: opts.Metadata})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCantWriteBlobMeta, err)
	}
	if err := os.WriteFile(s.metaPath(name), meta, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrCantWriteBlobMeta, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(s.metaPath(name))
		return fmt.Errorf("%w: %w", ErrCantWriteBlob, err)
	}
	return nil
}

func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	p, err := s.objectPath(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		s.l.WithError(err).WithField("blob", name).Error(ErrCantOpenBlob)
		return nil, fmt.Errorf("%w: %w", ErrCantOpenBlob, err)
	}
	return f, nil
}

func (s *LocalStore) Delete(_ context.Context, name string) error {
	p, err := s.objectPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("%w: %w", ErrCantRemoveBlob, err)
	}
	if err := os.Remove(s.metaPath(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.l.WithError(err).WithField("blob", name).Warn("can't remove blob metadata")
	}
	return nil
}

// Stat reports the size on disk and the content type recorded when name was
// stored. A missing sidecar leaves ContentType empty.
func (s *LocalStore) Stat(_ context.Context, name string) (*BlobInfo, error) {
	p, err := s.objectPath(name)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	info := &BlobInfo{Size: fi.Size()}

	b, err := os.ReadFile(s.metaPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return info, nil
	}
	if err != nil {
		return nil, err
	}
	var m localMeta
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("read blob metadata %q: %w", name, err)
	}
	info.ContentType = m.ContentType
	return info, nil
}

func (s *LocalStore) URL(name string) string {
	return s.publicBaseURL + "/" + url.PathEscape(name)
}

func (s *LocalStore) objectPath(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidBlobName, name)
	}
	return filepath.Join(s.root, objectsDir, name), nil
}

func (s *LocalStore) metaPath(name string) string {
	return filepath.Join(s.root, metadataDir, name+".json")
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
