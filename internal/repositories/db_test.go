package repositories

import (
	"testing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func getLogger() *log.Logger {
	l := log.New()
	l.SetLevel(log.FatalLevel)
	return l
}

func setup(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := ConnectDatabase("sqlite:file:"+uuid.NewString()+"?mode=memory&cache=shared", getLogger())
	require.NoError(t, err, "failed to connect database")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestConnectDatabase_EmptyURL(t *testing.T) {
	_, err := ConnectDatabase("", getLogger())
	assert.ErrorIs(t, err, ErrNoDatabaseURL)
}

func TestConnectDatabase_Migrates(t *testing.T) {
	db := setup(t)
	assert.True(t, db.Migrator().HasTable("files"))
	assert.True(t, db.Migrator().HasTable("users"))
}
