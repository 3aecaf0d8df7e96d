package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-contacts-api/internal/domain"
)

func TestContactRepoFindByIDScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	r := NewContactRepo(db)
	seedContact(t, db, "c-1", "owner-a", "Bob", "bob@example.com", domain.StatusNotRegistered)

	ct, err := r.FindByID("c-1", "owner-a")
	require.NoError(t, err)
	require.NotNil(t, ct)

	ct, err = r.FindByID("c-1", "owner-b")
	require.NoError(t, err)
	assert.Nil(t, ct)
}

func TestContactRepoListFilters(t *testing.T) {
	db := newTestDB(t)
	r := NewContactRepo(db)
	seedContact(t, db, "c-1", "owner-a", "Alice", "alice@example.com", domain.StatusRegistered)
	seedContact(t, db, "c-2", "owner-a", "bob", "bob@example.com", domain.StatusNotRegistered)
	seedContact(t, db, "c-3", "owner-a", "Carol", "carol@example.com", domain.StatusNotRegistered)
	seedContact(t, db, "c-4", "owner-b", "Alan", "alan@example.com", domain.StatusNotRegistered)

	all, err := r.ListByOwner("owner-a", domain.ContactFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// 按 name 排序
	assert.Equal(t, "Alice", all[0].Name)

	byStatus, err := r.ListByOwner("owner-a", domain.ContactFilter{Status: domain.StatusRegistered})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "c-1", byStatus[0].ID)

	bySearch, err := r.ListByOwner("owner-a", domain.ContactFilter{Search: "bob"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "c-2", bySearch[0].ID)

	// 首字母过滤大小写不敏感
	byLetter, err := r.ListByOwner("owner-a", domain.ContactFilter{Letter: "b"})
	require.NoError(t, err)
	require.Len(t, byLetter, 1)
	assert.Equal(t, "c-2", byLetter[0].ID)
}

func TestContactRepoSetStatusByEmailExcludesOwner(t *testing.T) {
	db := newTestDB(t)
	r := NewContactRepo(db)
	seedContact(t, db, "c-1", "owner-a", "Self", "target@example.com", domain.StatusRegistered)
	seedContact(t, db, "c-2", "owner-b", "Other", "target@example.com", domain.StatusRegistered)
	seedContact(t, db, "c-3", "owner-c", "Unrelated", "else@example.com", domain.StatusRegistered)

	n, err := r.SetStatusByEmail("Target@Example.com", domain.StatusNotRegistered, "owner-a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// First 的目标结构体不能复用：主键非零时 gorm 会把它并进 WHERE
	assert.Equal(t, domain.StatusRegistered, contactStatus(t, db, "c-1"))
	assert.Equal(t, domain.StatusNotRegistered, contactStatus(t, db, "c-2"))
	assert.Equal(t, domain.StatusRegistered, contactStatus(t, db, "c-3"))
}

func TestContactRepoDeleteAllByOwner(t *testing.T) {
	db := newTestDB(t)
	r := NewContactRepo(db)
	seedContact(t, db, "c-1", "owner-a", "A", "a@example.com", domain.StatusNotRegistered)
	seedContact(t, db, "c-2", "owner-a", "B", "b@example.com", domain.StatusNotRegistered)
	seedContact(t, db, "c-3", "owner-b", "C", "c@example.com", domain.StatusNotRegistered)

	n, err := r.DeleteAllByOwner("owner-a")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	var left int64
	require.NoError(t, db.Model(&domain.Contact{}).Count(&left).Error)
	assert.EqualValues(t, 1, left)
}
