package repo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"go-contacts-api/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Contact{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, email string) *domain.User {
	t.Helper()
	u := &domain.User{ID: id, Name: "user " + id, Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedContact(t *testing.T, db *gorm.DB, id, ownerID, name, email, status string) *domain.Contact {
	t.Helper()
	ct := &domain.Contact{ID: id, OwnerID: ownerID, Name: name, Email: email, Status: status}
	require.NoError(t, db.Create(ct).Error)
	return ct
}

func contactStatus(t *testing.T, db *gorm.DB, id string) string {
	t.Helper()
	var ct domain.Contact
	require.NoError(t, db.First(&ct, "id = ?", id).Error)
	return ct.Status
}
