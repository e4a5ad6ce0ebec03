package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rohits-web03/sharevault/internal/models"
)

var identities = []models.Identity{
	{Email: "alice@example.com"},
	{Email: "bob@example.com"},
	{Email: "ALICE@example.com"},
	{},
}

func file(owner string, a models.AccessType) *models.File {
	return &models.File{ID: "f1", FileName: "1_report.pdf", UploadedBy: owner, AccessType: a}
}

func TestCanRead_OwnerAlways(t *testing.T) {
	for _, a := range []models.AccessType{models.AccessPublic, models.AccessPrivate} {
		f := file("alice@example.com", a)
		assert.True(t, CanRead(f, models.Identity{Email: "alice@example.com"}), "access type %s", a)
	}
}

func TestCanRead_PublicForEveryone(t *testing.T) {
	f := file("alice@example.com", models.AccessPublic)
	for _, id := range identities {
		assert.True(t, CanRead(f, id), "identity %q", id.Email)
	}
}

func TestCanRead_PrivateOnlyOwner(t *testing.T) {
	f := file("alice@example.com", models.AccessPrivate)
	for _, id := range identities {
		want := id.Email == "alice@example.com"
		assert.Equal(t, want, CanRead(f, id), "identity %q", id.Email)
	}
}

func TestCanModify_OwnerOnly(t *testing.T) {
	for _, a := range []models.AccessType{models.AccessPublic, models.AccessPrivate} {
		f := file("alice@example.com", a)
		for _, id := range identities {
			want := id.Email == "alice@example.com"
			assert.Equal(t, want, CanModify(f, id), "identity %q access %s", id.Email, a)
		}
	}
}

func TestNilRecord(t *testing.T) {
	id := models.Identity{Email: "alice@example.com"}
	assert.False(t, CanRead(nil, id))
	assert.False(t, CanModify(nil, id))
}

func TestEmptyOwnerNeverMatchesEmptyIdentity(t *testing.T) {
	f := file("", models.AccessPrivate)
	assert.False(t, CanRead(f, models.Identity{}))
	assert.False(t, CanModify(f, models.Identity{}))
}
