// Package access decides who may read or change a file record.
//
// Decisions are evaluated against the record the caller just fetched and are
// never cached.
package access

import "github.com/rohits-web03/sharevault/internal/models"

// CanRead reports whether id may list or download f.
func CanRead(f *models.File, id models.Identity) bool {
	if f == nil {
		return false
	}
	return f.AccessType == models.AccessPublic || isOwner(f, id)
}

// CanModify reports whether id may change the visibility of f or delete it.
// Ownership is the only authority.
func CanModify(f *models.File, id models.Identity) bool {
	if f == nil {
		return false
	}
	return isOwner(f, id)
}

func isOwner(f *models.File, id models.Identity) bool {
	return !id.IsZero() && f.UploadedBy == id.Email
}
