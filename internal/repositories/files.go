package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rohits-web03/sharevault/internal/models"
)

// ErrRecordNotFound is returned when no file record has the requested id.
var ErrRecordNotFound = errors.New("file record not found")

// FileFilter holds equality conditions; zero fields are ignored.
type FileFilter struct {
	UploadedBy string
	AccessType models.AccessType
}

// FileRepository is the "files" collection of the document store.
type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Insert(ctx context.Context, f *models.File) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("insert file %q: %w", f.FileName, err)
	}
	return nil
}

func (r *FileRepository) Get(ctx context.Context, id string) (*models.File, error) {
	// Postgres rejects malformed uuids with a syntax error; treat them as absent.
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrRecordNotFound
	}
	f := &models.File{}
	err := r.db.WithContext(ctx).Where("id = ?", id).First(f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", id, err)
	}
	return f, nil
}

// SetAccessType updates only the access_type column of record id.
func (r *FileRepository) SetAccessType(ctx context.Context, id string, a models.AccessType) error {
	tx := r.db.WithContext(ctx).Model(&models.File{}).Where("id = ?", id).Update("access_type", a)
	if tx.Error != nil {
		return fmt.Errorf("update file %s: %w", id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes record id. Of two concurrent deletes exactly one succeeds,
// the other gets ErrRecordNotFound.
func (r *FileRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.File{})
	if tx.Error != nil {
		return fmt.Errorf("delete file %s: %w", id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// FindBy returns the records matching every non-zero field of filter, in
// insertion order.
func (r *FileRepository) FindBy(ctx context.Context, filter FileFilter) ([]models.File, error) {
	q := r.db.WithContext(ctx).Model(&models.File{})
	if filter.UploadedBy != "" {
		q = q.Where("uploaded_by = ?", filter.UploadedBy)
	}
	if filter.AccessType != "" {
		q = q.Where("access_type = ?", filter.AccessType)
	}
	var files []models.File
	if err := q.Order("uploaded_at, id").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("find files: %w", err)
	}
	return files, nil
}
