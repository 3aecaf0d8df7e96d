package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-contacts-api/internal/domain"
)

func TestProfileAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "Alice", "alice@example.com", "secret1")

	got, err := env.userSvc.Profile(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	updated, err := env.userSvc.UpdateProfile(u.ID, ProfileInput{Name: "Alice B", Phone: "123"})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "123", updated.Phone)
	// email 不可变
	assert.Equal(t, "alice@example.com", updated.Email)

	_, err = env.userSvc.UpdateProfile(u.ID, ProfileInput{Name: "  "})
	requireServiceError(t, err, 400)

	_, err = env.userSvc.Profile("nope")
	requireServiceError(t, err, 404)
}

func TestDeleteAccountDemotesAndPurges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "Alice", "alice@example.com", "secret1")
	bob := env.register(t, "Bob", "bob@example.com", "secret2")

	// Bob 的通讯录里有 Alice，注册用户所以是 registered
	bobsAlice := env.createContact(t, bob.ID, "Alice", "alice@example.com")
	require.Equal(t, domain.StatusRegistered, bobsAlice.Status)

	// Alice 自己的通讯录
	env.createContact(t, alice.ID, "Bob", "bob@example.com")
	env.createContact(t, alice.ID, "Stranger", "stranger@example.com")

	require.NoError(t, env.userSvc.DeleteAccount(ctx, alice.ID))

	// 他人联系人降级
	assert.Equal(t, domain.StatusNotRegistered, env.contactStatus(t, bobsAlice.ID))

	// 本人通讯录清空
	var n int64
	require.NoError(t, env.db.Model(&domain.Contact{}).
		Where("owner_id = ?", alice.ID).Count(&n).Error)
	assert.EqualValues(t, 0, n)

	// 用户行已删
	require.NoError(t, env.db.Model(&domain.User{}).
		Where("id = ?", alice.ID).Count(&n).Error)
	assert.EqualValues(t, 0, n)

	// Bob 自己的号不受影响
	_, err := env.userSvc.Profile(bob.ID)
	assert.NoError(t, err)
}

func TestDeleteAccountRepeatedCall(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "Alice", "alice@example.com", "secret1")
	require.NoError(t, env.userSvc.DeleteAccount(ctx, alice.ID))

	err := env.userSvc.DeleteAccount(ctx, alice.ID)
	requireServiceError(t, err, 404)
}

// 第二步（清空本人通讯录）失败时，第一步的降级必须一起回滚。
func TestDeleteAccountRollsBackWhenPurgeFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "Alice", "alice@example.com", "secret1")
	bob := env.register(t, "Bob", "bob@example.com", "secret2")
	bobsAlice := env.createContact(t, bob.ID, "Alice", "alice@example.com")
	own := env.createContact(t, alice.ID, "Stranger", "stranger@example.com")

	require.NoError(t, env.db.Callback().Delete().Before("gorm:delete").
		Register("fail_contact_delete", func(tx *gorm.DB) {
			if tx.Statement.Table == (domain.Contact{}).TableName() {
				_ = tx.AddError(errors.New("storage failure"))
			}
		}))
	defer func() {
		require.NoError(t, env.db.Callback().Delete().Remove("fail_contact_delete"))
	}()

	err := env.userSvc.DeleteAccount(ctx, alice.ID)
	requireServiceError(t, err, 500)

	// 降级被回滚
	assert.Equal(t, domain.StatusRegistered, env.contactStatus(t, bobsAlice.ID))
	// 本人通讯录原样保留
	var n int64
	require.NoError(t, env.db.Model(&domain.Contact{}).
		Where("id = ?", own.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
	// 用户行还在，之后可正常重试
	require.NoError(t, env.db.Model(&domain.User{}).
		Where("id = ?", alice.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

// 第三步（删用户行）失败时同样整体回滚。
func TestDeleteAccountRollsBackWhenUserDeleteFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "Alice", "alice@example.com", "secret1")
	bob := env.register(t, "Bob", "bob@example.com", "secret2")
	bobsAlice := env.createContact(t, bob.ID, "Alice", "alice@example.com")
	own := env.createContact(t, alice.ID, "Stranger", "stranger@example.com")

	require.NoError(t, env.db.Callback().Delete().Before("gorm:delete").
		Register("fail_user_delete", func(tx *gorm.DB) {
			if tx.Statement.Table == (domain.User{}).TableName() {
				_ = tx.AddError(errors.New("storage failure"))
			}
		}))
	defer func() {
		require.NoError(t, env.db.Callback().Delete().Remove("fail_user_delete"))
	}()

	err := env.userSvc.DeleteAccount(ctx, alice.ID)
	requireServiceError(t, err, 500)

	assert.Equal(t, domain.StatusRegistered, env.contactStatus(t, bobsAlice.ID))
	var n int64
	require.NoError(t, env.db.Model(&domain.Contact{}).
		Where("id = ?", own.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
	require.NoError(t, env.db.Model(&domain.User{}).
		Where("id = ?", alice.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
