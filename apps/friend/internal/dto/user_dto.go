package dto

import (
	"TrainingLog/model"
)

// ==================== 用户目录相关 DTO ====================

// ListUsersRequest 用户目录查询请求 DTO
type ListUsersRequest struct {
	PageQuery
	Keyword       string `form:"keyword" binding:"omitempty,max=64"`                 // 展示名关键字
	Relationships string `form:"f_relationships" binding:"omitempty,max=64"`         // 关系过滤，如 Friends|Invited
	Order         string `form:"order" binding:"omitempty,oneof=relationship name"` // 排序方式
}

// UserItem 目录条目 DTO
type UserItem struct {
	User         UserInfo                `json:"user"`
	Relationship model.RelationshipState `json:"relationship"` // None/CanBeAccepted/Invited/Friends
}

// ListUsersResponse 用户目录响应 DTO
type ListUsersResponse struct {
	Items      []UserItem      `json:"items"`
	Pagination *PaginationInfo `json:"pagination"`
}

// ConvertUserItem 转换目录条目
func ConvertUserItem(u *model.User, state model.RelationshipState) UserItem {
	return UserItem{User: ConvertUserInfo(u), Relationship: state}
}
