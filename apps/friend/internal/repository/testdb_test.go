package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"TrainingLog/model"
	"TrainingLog/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var repoLoggerOnce sync.Once

func initRepoTestLogger() {
	repoLoggerOnce.Do(func() {
		logger.ReplaceGlobal(zap.NewNop())
	})
}

// newTestDB 每个测试一个独立的内存 SQLite，单连接保证事务与普通查询看到同一个库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	initRepoTestLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func seedUsers(t *testing.T, db *gorm.DB, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, db.Create(&model.User{Id: id, DisplayName: "name-" + id}).Error)
	}
}

func newInvitation(inviter, invited string) *model.FriendInvitation {
	return &model.FriendInvitation{
		InviterId:      inviter,
		InvitedId:      invited,
		InvitationTime: time.Now(),
	}
}

func newFriendship(a, b string) *model.Friendship {
	return &model.Friendship{
		FirstFriendId:  a,
		SecondFriendId: b,
		FriendsFrom:    time.Now(),
	}
}

var bg = context.Background()
