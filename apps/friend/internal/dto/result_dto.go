package dto

import (
	"TrainingLog/model"
)

// ==================== 训练成绩相关 DTO ====================

// ListResultsRequest 成绩查询请求 DTO
type ListResultsRequest struct {
	PageQuery
	OwnerID string `form:"ownerId" binding:"omitempty,max=32"` // 为空表示本人与全部好友
}

// ResultItem 训练成绩 DTO
type ResultItem struct {
	Id           int64   `json:"id"`
	OwnerID      string  `json:"ownerId"`
	ExerciseName string  `json:"exerciseName"`
	Value        float64 `json:"value"`
	Unit         string  `json:"unit"`
	PerformedAt  int64   `json:"performedAt"`
}

// ListResultsResponse 成绩列表响应 DTO
type ListResultsResponse struct {
	Items      []ResultItem    `json:"items"`
	Pagination *PaginationInfo `json:"pagination"`
}

// ConvertResultItems 批量转换成绩
func ConvertResultItems(results []*model.ExerciseResult) []ResultItem {
	items := make([]ResultItem, 0, len(results))
	for _, r := range results {
		items = append(items, ResultItem{
			Id:           r.Id,
			OwnerID:      r.OwnerId,
			ExerciseName: r.ExerciseName,
			Value:        r.Value,
			Unit:         r.Unit,
			PerformedAt:  toMillis(r.PerformedAt),
		})
	}
	return items
}
