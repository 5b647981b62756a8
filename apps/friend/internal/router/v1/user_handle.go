package v1

import (
	"net/http"

	"TrainingLog/apps/friend/internal/dto"
	"TrainingLog/apps/friend/internal/middleware"
	"TrainingLog/apps/friend/internal/service"
	"TrainingLog/consts"
	"TrainingLog/model"
	"TrainingLog/pkg/result"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户目录处理器
type UserHandler struct {
	directory service.DirectoryService
}

// NewUserHandler 创建用户目录处理器
func NewUserHandler(directory service.DirectoryService) *UserHandler {
	return &UserHandler{directory: directory}
}

// ListUsers 用户目录，附带与当前用户的关系状态
// @Param keyword query string false "展示名关键字"
// @Param f_relationships query string false "关系过滤，如 Friends|Invited"
// @Param order query string false "relationship 或 name"
// @Success 200 {object} dto.ListUsersResponse
// @Router /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)
	currentUser, ok := middleware.GetUserID(c)
	if !ok {
		result.Fail(c, http.StatusUnauthorized, consts.CodeUnauthorized)
		return
	}

	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		result.Fail(c, http.StatusBadRequest, consts.CodeParamError)
		return
	}
	req.Normalize()

	states, err := model.ParseRelationshipStates(req.Relationships)
	if err != nil {
		result.Fail(c, http.StatusBadRequest, consts.CodeInvalidRelation)
		return
	}

	page, err := h.directory.ListUsers(ctx, currentUser, service.UserListQuery{
		Keyword:             req.Keyword,
		States:              states,
		OrderByRelationship: req.Order == "relationship",
		Page:                req.Page,
		PageSize:            req.PageSize,
	})
	if err != nil {
		failWithServiceError(ctx, c, err, "查询用户目录失败")
		return
	}

	items := make([]dto.UserItem, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, dto.ConvertUserItem(item.User, item.State))
	}
	result.Success(c, &dto.ListUsersResponse{
		Items:      items,
		Pagination: dto.NewPaginationInfo(req.Page, req.PageSize, page.Total),
	})
}

// GetRelationship 当前用户与 userId 的关系
// @Success 200 {object} dto.UserItem
// @Router /api/v1/users/{userId}/relationship [get]
func (h *UserHandler) GetRelationship(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)
	currentUser, peer, ok := bindPeer(c)
	if !ok {
		return
	}

	got, err := h.directory.RelationshipWith(ctx, currentUser, peer)
	if err != nil {
		failWithServiceError(ctx, c, err, "查询关系状态失败")
		return
	}
	item := dto.ConvertUserItem(got.User, got.State)
	result.Success(c, &item)
}
