package dto

import (
	"time"

	"TrainingLog/model"
)

// ==================== 通用 DTO 定义 ====================

// UserIDUri 路径参数中的目标用户
type UserIDUri struct {
	UserID string `uri:"userId" binding:"required,max=32"`
}

// UserInfo 用户信息 DTO
type UserInfo struct {
	Id          string `json:"id"`          // 用户id
	DisplayName string `json:"displayName"` // 展示名
}

// PaginationInfo 分页信息 DTO
type PaginationInfo struct {
	Page       int   `json:"page"`       // 当前页码
	PageSize   int   `json:"pageSize"`   // 每页大小
	Total      int64 `json:"total"`      // 总记录数
	TotalPages int   `json:"totalPages"` // 总页数
}

// PageQuery 分页查询参数
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// Normalize 填充默认分页
func (q *PageQuery) Normalize() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 20
	}
}

// ==================== 通用 DTO 转换函数 ====================

// ConvertUserInfo 将用户模型转换为 DTO
func ConvertUserInfo(u *model.User) UserInfo {
	if u == nil {
		return UserInfo{}
	}
	return UserInfo{Id: u.Id, DisplayName: u.DisplayName}
}

// NewPaginationInfo 根据总数计算分页信息
func NewPaginationInfo(page, pageSize int, total int64) *PaginationInfo {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &PaginationInfo{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// toMillis 时间统一以毫秒时间戳返回
func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
