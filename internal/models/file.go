package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessType is the visibility of a stored file.
type AccessType string

const (
	AccessPublic  AccessType = "public"
	AccessPrivate AccessType = "private"
)

// Valid reports whether a is one of the two persisted visibilities.
func (a AccessType) Valid() bool {
	return a == AccessPublic || a == AccessPrivate
}

// ParseAccessType converts client input into an AccessType.
func ParseAccessType(s string) (AccessType, error) {
	a := AccessType(s)
	if !a.Valid() {
		return "", fmt.Errorf("invalid access type %q: must be %q or %q", s, AccessPublic, AccessPrivate)
	}
	return a, nil
}

// File is the metadata record that pairs with exactly one blob.
type File struct {
	ID           string     `json:"id" gorm:"type:uuid;primaryKey"`
	FileName     string     `json:"fileName" gorm:"uniqueIndex;not null"` // storage object name
	OriginalName string     `json:"originalName" gorm:"not null"`
	FileURL      string     `json:"fileURL" gorm:"not null"`
	ContentType  string     `json:"contentType" gorm:"not null"`
	Size         int64      `json:"size" gorm:"not null"` // bytes
	UploadedBy   string     `json:"uploadedBy" gorm:"index;not null"`
	AccessType   AccessType `json:"accessType" gorm:"type:varchar(16);index;not null"`
	UploadedAt   time.Time  `json:"uploadedAt" gorm:"not null"`
}

// BeforeCreate assigns the record id; callers never choose it.
func (f *File) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
