package model

import "time"

// User 用户身份，由用户目录维护；好友模块只读取 id 与展示名。
type User struct {
	Id          string    `gorm:"column:id;primaryKey;type:varchar(32);comment:用户id" json:"id"`
	DisplayName string    `gorm:"column:display_name;type:varchar(64);not null;uniqueIndex:uidx_display_name;comment:展示名" json:"displayName"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (User) TableName() string { return "user_info" }
