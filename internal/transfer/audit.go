package transfer

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rohits-web03/sharevault/internal/metrics"
	"github.com/rohits-web03/sharevault/internal/models"
	"github.com/rohits-web03/sharevault/internal/repositories"
)

type AuditReport struct {
	Checked int
	// Missing lists records whose blob does not exist.
	Missing []models.File
	// Mismatched lists records whose blob differs in size or content type.
	Mismatched []Mismatch
}

type Mismatch struct {
	File models.File
	Blob repositories.BlobInfo
}

// Audit checks that every record still has its blob and that the blob
// matches the record. Findings are logged for operators and never repaired
// here.
func (p *Pipeline) Audit(ctx context.Context) (*AuditReport, error) {
	files, err := p.reg.All(ctx)
	if err != nil {
		return nil, err
	}
	report := &AuditReport{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		l := p.l.WithFields(log.Fields{
			"file_id":   f.ID,
			"file_name": f.FileName,
			"user":      f.UploadedBy,
		})

		info, err := p.blobs.Stat(ctx, f.FileName)
		if errors.Is(err, repositories.ErrBlobNotFound) {
			report.Checked++
			report.Missing = append(report.Missing, f)
			l.Error("audit: file record has no blob")
			continue
		}
		if err != nil {
			l.WithError(err).Warn("audit: can't check blob")
			continue
		}
		report.Checked++

		// an empty content type means the store did not record one
		if info.Size != f.Size || (info.ContentType != "" && info.ContentType != f.ContentType) {
			report.Mismatched = append(report.Mismatched, Mismatch{File: f, Blob: *info})
			metrics.InconsistenciesTotal.WithLabelValues("blob_mismatch").Inc()
			l.WithFields(log.Fields{
				"record_size":         f.Size,
				"blob_size":           info.Size,
				"record_content_type": f.ContentType,
				"blob_content_type":   info.ContentType,
			}).Warn("audit: blob does not match its record")
		}
	}
	metrics.MissingBlobs.Set(float64(len(report.Missing)))
	p.l.WithFields(log.Fields{
		"checked":    report.Checked,
		"missing":    len(report.Missing),
		"mismatched": len(report.Mismatched),
	}).Info("audit finished")
	return report, nil
}

// RunAudit audits every interval until ctx is done. A zero interval disables it.
func (p *Pipeline) RunAudit(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if _, err := p.Audit(ctx); err != nil && ctx.Err() == nil {
				p.l.WithError(err).Error("audit failed")
			}
		}
	}
}
