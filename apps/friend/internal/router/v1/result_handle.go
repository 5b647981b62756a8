package v1

import (
	"net/http"

	"TrainingLog/apps/friend/internal/dto"
	"TrainingLog/apps/friend/internal/middleware"
	"TrainingLog/apps/friend/internal/service"
	"TrainingLog/consts"
	"TrainingLog/pkg/result"

	"github.com/gin-gonic/gin"
)

// ResultHandler 训练成绩处理器
type ResultHandler struct {
	visibility service.VisibilityService
}

// NewResultHandler 创建训练成绩处理器
func NewResultHandler(visibility service.VisibilityService) *ResultHandler {
	return &ResultHandler{visibility: visibility}
}

// ListResults 本人与好友的训练成绩
// @Param ownerId query string false "只看某个用户"
// @Success 200 {object} dto.ListResultsResponse
// @Router /api/v1/results [get]
func (h *ResultHandler) ListResults(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)
	currentUser, ok := middleware.GetUserID(c)
	if !ok {
		result.Fail(c, http.StatusUnauthorized, consts.CodeUnauthorized)
		return
	}

	var req dto.ListResultsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		result.Fail(c, http.StatusBadRequest, consts.CodeParamError)
		return
	}
	req.Normalize()

	page, err := h.visibility.ListVisibleResults(ctx, currentUser, service.ResultQuery{
		OwnerID:  req.OwnerID,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		failWithServiceError(ctx, c, err, "查询训练成绩失败")
		return
	}
	result.Success(c, &dto.ListResultsResponse{
		Items:      dto.ConvertResultItems(page.Items),
		Pagination: dto.NewPaginationInfo(req.Page, req.PageSize, page.Total),
	})
}
