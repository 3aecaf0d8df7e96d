package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"go-contacts-api/internal/core/auth"
	"go-contacts-api/internal/domain"
	"go-contacts-api/internal/repo"
)

type testEnv struct {
	db         *gorm.DB
	jwter      *auth.JWTer
	authSvc    *AuthService
	userSvc    *UserService
	contactSvc *ContactService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Contact{}))

	users := repo.NewUserRepo(db)
	contacts := repo.NewContactRepo(db)
	jwter := &auth.JWTer{
		Secret:     []byte("test-secret-0123456789"),
		Issuer:     "contacts-api-test",
		SessionTTL: time.Hour,
		ResetTTL:   time.Hour,
	}
	log := zap.NewNop()

	return &testEnv{
		db:         db,
		jwter:      jwter,
		authSvc:    NewAuthService(db, users, contacts, jwter, nil, log),
		userSvc:    NewUserService(db, users, contacts, log),
		contactSvc: NewContactService(users, contacts),
	}
}

func (e *testEnv) register(t *testing.T, name, email, password string) *domain.User {
	t.Helper()
	u, token, err := e.authSvc.Register(context.Background(), RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return u
}

func (e *testEnv) createContact(t *testing.T, ownerID, name, email string) *domain.Contact {
	t.Helper()
	ct, err := e.contactSvc.Create(ownerID, ContactInput{Name: name, Email: email})
	require.NoError(t, err)
	return ct
}

func (e *testEnv) contactStatus(t *testing.T, id string) string {
	t.Helper()
	var ct domain.Contact
	require.NoError(t, e.db.First(&ct, "id = ?", id).Error)
	return ct.Status
}

func requireServiceError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	se, ok := err.(*Error)
	require.True(t, ok, "expected *service.Error, got %T", err)
	require.Equal(t, code, se.Code)
}
