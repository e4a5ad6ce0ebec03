// Package registry keeps the file records that pair each stored blob with its
// owner and visibility. It never touches file bytes.
package registry

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rohits-web03/sharevault/internal/access"
	"github.com/rohits-web03/sharevault/internal/apperrors"
	"github.com/rohits-web03/sharevault/internal/metrics"
	"github.com/rohits-web03/sharevault/internal/models"
	"github.com/rohits-web03/sharevault/internal/repositories"
)

const defaultContentType = "application/octet-stream"

// Store is the document store collection holding file records.
type Store interface {
	Insert(ctx context.Context, f *models.File) error
	Get(ctx context.Context, id string) (*models.File, error)
	SetAccessType(ctx context.Context, id string, a models.AccessType) error
	Delete(ctx context.Context, id string) error
	FindBy(ctx context.Context, filter repositories.FileFilter) ([]models.File, error)
}

// LocatorFunc maps a storage name to its retrieval URL.
type LocatorFunc func(fileName string) string

type Registry struct {
	store  Store
	locate LocatorFunc
	names  *nameGenerator
	now    func() time.Time
	l      *log.Entry
}

func New(store Store, locate LocatorFunc, l *log.Entry) *Registry {
	return &Registry{
		store:  store,
		locate: locate,
		names:  newNameGenerator(time.Now),
		now:    time.Now,
		l:      l.WithField("component", "registry"),
	}
}

// Prepare validates the input and builds a record with a fresh storage name.
// Nothing is persisted until Commit.
func (r *Registry) Prepare(owner models.Identity, originalName, contentType, accessType string) (*models.File, error) {
	const op = "registry.prepare"
	if owner.IsZero() {
		return nil, apperrors.New(apperrors.KindInvalidArgument, op, "Uploader identity is required")
	}
	a := models.AccessPrivate
	if accessType != "" {
		parsed, err := models.ParseAccessType(accessType)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindInvalidArgument, op, "Invalid access type. Must be 'public' or 'private'.", err)
		}
		a = parsed
	}
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		contentType = defaultContentType
	}

	clean := SanitizeName(originalName)
	name := r.names.next(clean)
	return &models.File{
		FileName:     name,
		OriginalName: clean,
		FileURL:      r.locate(name),
		ContentType:  contentType,
		UploadedBy:   owner.Email,
		AccessType:   a,
		UploadedAt:   r.now().UTC(),
	}, nil
}

// Commit persists a record built by Prepare and fills in its id.
func (r *Registry) Commit(ctx context.Context, f *models.File) error {
	if err := r.store.Insert(ctx, f); err != nil {
		r.l.WithError(err).WithField("file_name", f.FileName).Error("can't save file record")
		return apperrors.Wrap(apperrors.KindPersistence, "registry.commit", "Failed to save file record", err)
	}
	return nil
}

// Create registers a file record without a blob write in between.
func (r *Registry) Create(ctx context.Context, owner models.Identity, originalName, accessType string) (*models.File, error) {
	f, err := r.Prepare(owner, originalName, "", accessType)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *Registry) Get(ctx context.Context, id string) (*models.File, error) {
	f, err := r.store.Get(ctx, id)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.KindNotFound, "registry.get", "File not found", err)
	}
	if err != nil {
		r.l.WithError(err).WithField("file_id", id).Error("can't read file record")
		return nil, apperrors.Wrap(apperrors.KindPersistence, "registry.get", "Failed to read file record", err)
	}
	return f, nil
}

// ListVisibleTo returns every public record plus every record owned by id,
// oldest first.
func (r *Registry) ListVisibleTo(ctx context.Context, id models.Identity) ([]models.File, error) {
	public, err := r.find(ctx, repositories.FileFilter{AccessType: models.AccessPublic})
	if err != nil {
		return nil, err
	}
	files := public
	if !id.IsZero() {
		owned, err := r.find(ctx, repositories.FileFilter{UploadedBy: id.Email})
		if err != nil {
			return nil, err
		}
		files = merge(public, owned)
	}
	if files == nil {
		files = []models.File{}
	}
	return files, nil
}

// All returns every record. Used by consistency audits.
func (r *Registry) All(ctx context.Context) ([]models.File, error) {
	return r.find(ctx, repositories.FileFilter{})
}

// UpdateAccessType changes the visibility of record id. Only the owner may do
// so; concurrent updates are last-writer-wins.
func (r *Registry) UpdateAccessType(ctx context.Context, id, accessType string, requester models.Identity) (_ *models.File, err error) {
	const op = "registry.update_access_type"
	defer func() { metrics.OperationsTotal.WithLabelValues("update_access", metrics.Result(err)).Inc() }()

	a, err := models.ParseAccessType(accessType)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidArgument, op, "Invalid access type. Must be 'public' or 'private'.", err)
	}
	f, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanModify(f, requester) {
		return nil, apperrors.New(apperrors.KindForbidden, op, "You do not have permission to modify this file.")
	}
	if err = r.store.SetAccessType(ctx, id, a); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.KindNotFound, op, "File not found", err)
		}
		r.l.WithError(err).WithField("file_id", id).Error("can't update access type")
		return nil, apperrors.Wrap(apperrors.KindPersistence, op, "Failed to update file record", err)
	}
	f.AccessType = a
	r.l.WithFields(log.Fields{"file_id": id, "access_type": a, "user": requester.Email}).Info("access type updated")
	return f, nil
}

// Delete removes record id after an ownership check. The blob is left alone.
func (r *Registry) Delete(ctx context.Context, id string, requester models.Identity) error {
	f, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanModify(f, requester) {
		return apperrors.New(apperrors.KindForbidden, "registry.delete", "Unauthorized to delete this file")
	}
	if err := r.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.KindNotFound, "registry.delete", "File not found", err)
		}
		return apperrors.Wrap(apperrors.KindPersistence, "registry.delete", "Failed to delete file record", err)
	}
	return nil
}

func (r *Registry) find(ctx context.Context, filter repositories.FileFilter) ([]models.File, error) {
	files, err := r.store.FindBy(ctx, filter)
	if err != nil {
		r.l.WithError(err).Error("can't list file records")
		return nil, apperrors.Wrap(apperrors.KindPersistence, "registry.list", "Error fetching files", err)
	}
	return files, nil
}

func merge(a, b []models.File) []models.File {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]models.File, 0, len(a)+len(b))
	for _, set := range [][]models.File{a, b} {
		for _, f := range set {
			if _, ok := seen[f.ID]; ok {
				continue
			}
			seen[f.ID] = struct{}{}
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.Before(out[j].UploadedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
