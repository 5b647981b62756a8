package repository

import (
	"TrainingLog/model"

	"gorm.io/gorm"
)

// AutoMigrate 创建/更新好友模块用到的表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.FriendInvitation{},
		&model.Friendship{},
		&model.ExerciseResult{},
	)
}
