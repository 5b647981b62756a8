package repository

import (
	"errors"
	"testing"

	"TrainingLog/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// newLaggingReplicaDB 主库为 newTestDB，另注册一个只建了表、没有任何数据的副本，
// 模拟主从延迟：普通读落到副本上看不到刚写入的数据。
func newLaggingReplicaDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)

	const replicaDSN = "file:lagging_replica?mode=memory&cache=shared"
	// 保持一个连接存活，共享内存库才不会被回收
	holder, err := gorm.Open(sqlite.Open(replicaDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	holderDB, err := holder.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = holderDB.Close() })
	require.NoError(t, AutoMigrate(holder))

	require.NoError(t, db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{sqlite.Open(replicaDSN)},
	})))
	return db
}

func TestPairLookupsReadFromPrimary(t *testing.T) {
	db := newLaggingReplicaDB(t)
	invitations := NewInvitationRepository(db)
	friendships := NewFriendshipRepository(db)

	require.NoError(t, friendships.Create(bg, newFriendship("a", "b")))
	require.NoError(t, invitations.Create(bg, newInvitation("c", "d")))

	// 普通读走副本，看不到刚提交的行
	err := db.WithContext(bg).Where("first_friend_id = ?", "a").First(&model.Friendship{}).Error
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound), "replica should lag, got %v", err)

	friendship, err := friendships.FindByUnorderedPair(bg, "b", "a")
	require.NoError(t, err)
	require.NotNil(t, friendship)
	assert.Equal(t, "a", friendship.FirstFriendId)

	invitation, err := invitations.FindByUnorderedPair(bg, "d", "c")
	require.NoError(t, err)
	require.NotNil(t, invitation)
	assert.Equal(t, "c", invitation.InviterId)

	// 反向邀请仍被主库上的唯一索引拦下
	assert.ErrorIs(t, invitations.Create(bg, newInvitation("d", "c")), ErrDuplicateKey)
}
