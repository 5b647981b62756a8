package model

import "time"

// ExerciseResult 训练成绩，只有本人和好友可见。
type ExerciseResult struct {
	Id           int64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增id" json:"id"`
	OwnerId      string    `gorm:"column:owner_id;type:varchar(32);not null;index:idx_owner_performed,priority:1;comment:所属用户" json:"ownerId"`
	ExerciseName string    `gorm:"column:exercise_name;type:varchar(64);not null" json:"exerciseName"`
	Value        float64   `gorm:"column:value;not null" json:"value"`
	Unit         string    `gorm:"column:unit;type:varchar(16)" json:"unit"`
	PerformedAt  time.Time `gorm:"column:performed_at;not null;index:idx_owner_performed,priority:2" json:"performedAt"`
}

func (ExerciseResult) TableName() string { return "exercise_result" }
