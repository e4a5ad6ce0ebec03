// Package transfer moves file bytes between callers and the blob store and
// keeps each blob paired with its file record.
package transfer

import (
	"context"
	"errors"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/rohits-web03/sharevault/internal/access"
	"github.com/rohits-web03/sharevault/internal/apperrors"
	"github.com/rohits-web03/sharevault/internal/metrics"
	"github.com/rohits-web03/sharevault/internal/models"
	"github.com/rohits-web03/sharevault/internal/registry"
	"github.com/rohits-web03/sharevault/internal/repositories"
)

// Object metadata keys stored next to each blob. The record stays the source
// of truth; these only help operators inspecting the bucket.
const (
	metaAccessType = "access-type"
	metaUploadedBy = "uploaded-by"
)

// BlobStore is named-object storage shared by all requests.
type BlobStore interface {
	Put(ctx context.Context, name string, body io.Reader, opts repositories.PutOptions) error
	// Open returns repositories.ErrBlobNotFound when name does not exist.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
	// Stat returns repositories.ErrBlobNotFound when name does not exist.
	Stat(ctx context.Context, name string) (*repositories.BlobInfo, error)
}

type Pipeline struct {
	reg   *registry.Registry
	blobs BlobStore
	l     *log.Entry
}

func New(reg *registry.Registry, blobs BlobStore, l *log.Entry) *Pipeline {
	return &Pipeline{
		reg:   reg,
		blobs: blobs,
		l:     l.WithField("component", "transfer"),
	}
}

type UploadRequest struct {
	Owner        models.Identity
	OriginalName string
	ContentType  string
	AccessType   string // empty means private
	Size         int64  // -1 when unknown
	Body         io.Reader
}

// Upload stores req.Body and then commits its record. Either both exist
// afterwards or neither does; a record is never committed for a failed write.
func (p *Pipeline) Upload(ctx context.Context, req UploadRequest) (f *models.File, err error) {
	const op = "transfer.upload"
	defer func() { metrics.OperationsTotal.WithLabelValues("upload", metrics.Result(err)).Inc() }()

	f, err = p.reg.Prepare(req.Owner, req.OriginalName, req.ContentType, req.AccessType)
	if err != nil {
		return nil, err
	}
	l := p.l.WithFields(log.Fields{"file_name": f.FileName, "user": f.UploadedBy})

	body, counted := countBody(req.Body)
	err = p.blobs.Put(ctx, f.FileName, body, repositories.PutOptions{
		ContentType: f.ContentType,
		Size:        req.Size,
		Metadata: map[string]string{
			metaAccessType: string(f.AccessType),
			metaUploadedBy: f.UploadedBy,
		},
	})
	if err != nil {
		l.WithError(err).Error("can't write blob")
		p.discardBlob(ctx, l, f.FileName, false)
		return nil, apperrors.Wrap(apperrors.KindUploadFailed, op, "Error uploading file", err)
	}
	f.Size = counted.n

	if err = p.reg.Commit(ctx, f); err != nil {
		p.discardBlob(ctx, l, f.FileName, true)
		return nil, err
	}
	metrics.TransferBytesTotal.WithLabelValues("upload").Add(float64(f.Size))
	l.WithFields(log.Fields{"file_id": f.ID, "size": f.Size, "access_type": f.AccessType}).Info("file uploaded")
	return f, nil
}

// discardBlob removes a blob that has no committed record. It runs even when
// the request was cancelled.
func (p *Pipeline) discardBlob(ctx context.Context, l *log.Entry, name string, written bool) {
	err := p.blobs.Delete(context.WithoutCancel(ctx), name)
	if err == nil || errors.Is(err, repositories.ErrBlobNotFound) {
		return
	}
	if written {
		metrics.InconsistenciesTotal.WithLabelValues("orphan_blob").Inc()
		l.WithError(err).Warn("orphan blob left behind: record commit failed and blob delete failed")
		return
	}
	l.WithError(err).Warn("can't remove partial blob")
}

type Download struct {
	// Body streams the blob; the caller must close it.
	Body        io.ReadCloser
	ContentType string
	FileName    string // suggested download name
	Size        int64
	File        *models.File
}

// Download opens the blob behind record id for requester. Read errors while
// streaming Body are reported as transfer errors and are not retried.
func (p *Pipeline) Download(ctx context.Context, id string, requester models.Identity) (d *Download, err error) {
	const op = "transfer.download"
	defer func() { metrics.OperationsTotal.WithLabelValues("download", metrics.Result(err)).Inc() }()

	f, err := p.reg.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(f, requester) {
		return nil, apperrors.New(apperrors.KindForbidden, op, "Access denied")
	}

	l := p.l.WithFields(log.Fields{"file_id": f.ID, "file_name": f.FileName, "user": requester.Email})
	rc, err := p.blobs.Open(ctx, f.FileName)
	if errors.Is(err, repositories.ErrBlobNotFound) {
		metrics.InconsistenciesTotal.WithLabelValues("blob_missing").Inc()
		l.WithError(err).Error("file record has no blob")
		return nil, apperrors.Wrap(apperrors.KindBlobMissing, op, "File content is missing from storage", err)
	}
	if err != nil {
		l.WithError(err).Error("can't open blob")
		return nil, apperrors.Wrap(apperrors.KindTransfer, op, "Error downloading file", err)
	}

	return &Download{
		Body:        &streamReader{rc: rc, l: l},
		ContentType: f.ContentType,
		FileName:    f.OriginalName,
		Size:        f.Size,
		File:        f,
	}, nil
}

// Delete removes the blob and then the record of id. A failed blob delete
// keeps the record; a failed record delete after the blob is gone is
// reported as a partial delete.
func (p *Pipeline) Delete(ctx context.Context, id string, requester models.Identity) (err error) {
	const op = "transfer.delete"
	defer func() { metrics.OperationsTotal.WithLabelValues("delete", metrics.Result(err)).Inc() }()

	f, err := p.reg.Get(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanModify(f, requester) {
		return apperrors.New(apperrors.KindForbidden, op, "Unauthorized to delete this file")
	}
	l := p.l.WithFields(log.Fields{"file_id": f.ID, "file_name": f.FileName, "user": requester.Email})

	if err := p.blobs.Delete(ctx, f.FileName); err != nil {
		if !errors.Is(err, repositories.ErrBlobNotFound) {
			l.WithError(err).Error("can't delete blob")
			return apperrors.Wrap(apperrors.KindDeleteFailed, op, "Error deleting file", err)
		}
		l.Warn("blob already missing, removing record")
	}

	// The blob is gone; finish even if the caller went away.
	err = p.reg.Delete(context.WithoutCancel(ctx), id, requester)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNotFound):
		// A concurrent delete removed the record first.
		err = nil
	default:
		metrics.InconsistenciesTotal.WithLabelValues("partial_delete").Inc()
		l.WithError(err).Error("blob deleted but record delete failed")
		return apperrors.Wrap(apperrors.KindPartialDelete, op, "File content deleted but its record could not be removed", err)
	}
	l.Info("file deleted")
	return nil
}

// countBody wraps r so the bytes handed to the blob store are counted. A
// seekable r stays seekable: S3 signing hashes the body and rewinds it.
func countBody(r io.Reader) (io.Reader, *countingReader) {
	c := &countingReader{r: r}
	if s, ok := r.(io.ReadSeeker); ok {
		return &countingReadSeeker{countingReader: c, s: s}, c
	}
	return c, c
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// countingReadSeeker tracks the read position, so a rewind followed by a
// second full read still counts the body once.
type countingReadSeeker struct {
	*countingReader
	s io.Seeker
}

func (c *countingReadSeeker) Seek(offset int64, whence int) (int64, error) {
	pos, err := c.s.Seek(offset, whence)
	if err == nil {
		c.n = pos
	}
	return pos, err
}

// streamReader reports mid-stream failures as transfer errors.
type streamReader struct {
	rc  io.ReadCloser
	n   int64
	l   *log.Entry
	err error
}

func (s *streamReader) Read(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.rc.Read(p)
	s.n += int64(n)
	if err != nil && err != io.EOF {
		s.l.WithError(err).WithField("bytes_sent", s.n).Error("download aborted")
		s.err = apperrors.Wrap(apperrors.KindTransfer, "transfer.download", "Error downloading file", err)
		return n, s.err
	}
	return n, err
}

func (s *streamReader) Close() error {
	metrics.TransferBytesTotal.WithLabelValues("download").Add(float64(s.n))
	return s.rc.Close()
}
