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

// FriendHandler 好友处理器
type FriendHandler struct {
	relationService service.RelationshipService
}

// NewFriendHandler 创建好友处理器
func NewFriendHandler(relationService service.RelationshipService) *FriendHandler {
	return &FriendHandler{
		relationService: relationService,
	}
}

// bindPeer 取出当前用户与路径中的目标用户
func bindPeer(c *gin.Context) (currentUser, peer string, ok bool) {
	currentUser, ok = middleware.GetUserID(c)
	if !ok {
		result.Fail(c, http.StatusUnauthorized, consts.CodeUnauthorized)
		return "", "", false
	}
	var uri dto.UserIDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		// 参数错误由客户端输入导致,属于正常业务流程,不记录日志
		result.Fail(c, http.StatusBadRequest, consts.CodeParamError)
		return "", "", false
	}
	return currentUser, uri.UserID, true
}

// Invite 发起好友邀请
// @Summary 发起好友邀请
// @Tags 好友接口
// @Produce json
// @Param userId path string true "被邀请用户id，或 @展示名"
// @Success 200 {object} dto.InviteResponse
// @Router /api/v1/friends/{userId}/invite [post]
func (h *FriendHandler) Invite(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)
	currentUser, peer, ok := bindPeer(c)
	if !ok {
		return
	}

	invitation, err := h.relationService.CreateInvitation(ctx, currentUser, peer)
	if err != nil {
		failWithServiceError(ctx, c, err, "发起好友邀请失败")
		return
	}
	result.Success(c, dto.ConvertInviteResponse(invitation))
}

// Accept 接受 userId 发来的邀请
// @Summary 接受好友邀请
// @Tags 好友接口
// @Produce json
// @Param userId path string true "邀请人id"
// @Success 200 {object} dto.AcceptResponse
// @Router /api/v1/friends/{userId}/accept [put]
func (h *FriendHandler) Accept(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)
	currentUser, peer, ok := bindPeer(c)
	if !ok {
		return
	}

	friendship, err := h.relationService.AcceptInvitation(ctx, peer, currentUser)
	if err != nil {
		failWithServiceError(ctx, c, err, "接受好友邀请失败")
		return
	}
	result.Success(c, &dto.AcceptResponse{
		FriendID:    peer,
		FriendsFrom: friendship.FriendsFrom.UnixMilli(),
	})
}

// Refuse 拒绝 userId 发来的邀请
// @Router /api/v1/friends/{userId}/refuse [delete]
func (h *FriendHandler) Refuse(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)
	currentUser, peer, ok := bindPeer(c)
	if !ok {
		return
	}

	if err := h.relationService.RemoveInvitation(ctx, peer, currentUser); err != nil {
		failWithServiceError(ctx, c, err, "拒绝好友邀请失败")
		return
	}
	result.Success(c, nil)
}

// Cancel 撤回发给 userId 的邀请
// @Router /api/v1/friends/{userId}/cancel [delete]
func (h *FriendHandler) Cancel(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)
	currentUser, peer, ok := bindPeer(c)
	if !ok {
		return
	}

	if err := h.relationService.RemoveInvitation(ctx, currentUser, peer); err != nil {
		failWithServiceError(ctx, c, err, "撤回好友邀请失败")
		return
	}
	result.Success(c, nil)
}

// Remove 解除与 userId 的好友关系
// @Router /api/v1/friends/{userId}/remove [delete]
func (h *FriendHandler) Remove(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)
	currentUser, peer, ok := bindPeer(c)
	if !ok {
		return
	}

	if err := h.relationService.RemoveFriendship(ctx, currentUser, peer); err != nil {
		failWithServiceError(ctx, c, err, "删除好友失败")
		return
	}
	result.Success(c, nil)
}

// ListFriends 当前用户的好友列表
// @Success 200 {object} dto.FriendListResponse
// @Router /api/v1/friends [get]
func (h *FriendHandler) ListFriends(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)
	currentUser, ok := middleware.GetUserID(c)
	if !ok {
		result.Fail(c, http.StatusUnauthorized, consts.CodeUnauthorized)
		return
	}

	friends, err := h.relationService.GetFriendsFor(ctx, currentUser)
	if err != nil {
		failWithServiceError(ctx, c, err, "获取好友列表失败")
		return
	}
	items := make([]dto.FriendItem, 0, len(friends))
	for _, f := range friends {
		items = append(items, dto.ConvertFriendItem(f.User, f.FriendsFrom))
	}
	result.Success(c, &dto.FriendListResponse{Items: items})
}

// InvitationsFor 当前用户收到的邀请
// @Success 200 {object} dto.InvitationListResponse
// @Router /api/v1/friends/invitations-for [get]
func (h *FriendHandler) InvitationsFor(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)
	currentUser, ok := middleware.GetUserID(c)
	if !ok {
		result.Fail(c, http.StatusUnauthorized, consts.CodeUnauthorized)
		return
	}

	invitations, err := h.relationService.GetInvitationsFor(ctx, currentUser)
	if err != nil {
		failWithServiceError(ctx, c, err, "获取收到的好友邀请失败")
		return
	}
	result.Success(c, &dto.InvitationListResponse{Items: dto.ConvertInvitationItems(invitations)})
}

// InvitationsOf 当前用户发出的邀请
// @Success 200 {object} dto.InvitationListResponse
// @Router /api/v1/friends/invitations-of [get]
func (h *FriendHandler) InvitationsOf(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)
	currentUser, ok := middleware.GetUserID(c)
	if !ok {
		result.Fail(c, http.StatusUnauthorized, consts.CodeUnauthorized)
		return
	}

	invitations, err := h.relationService.GetInvitationsOf(ctx, currentUser)
	if err != nil {
		failWithServiceError(ctx, c, err, "获取发出的好友邀请失败")
		return
	}
	result.Success(c, &dto.InvitationListResponse{Items: dto.ConvertInvitationItems(invitations)})
}

// UnreadCount 收到的未读邀请数
// @Success 200 {object} dto.UnreadCountResponse
// @Router /api/v1/friends/invitations-for/unread [get]
func (h *FriendHandler) UnreadCount(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)
	currentUser, ok := middleware.GetUserID(c)
	if !ok {
		result.Fail(c, http.StatusUnauthorized, consts.CodeUnauthorized)
		return
	}

	count, err := h.relationService.GetUnreadInvitationCount(ctx, currentUser)
	if err != nil {
		failWithServiceError(ctx, c, err, "获取未读邀请数失败")
		return
	}
	result.Success(c, &dto.UnreadCountResponse{Count: count})
}

// ClearUnread 清空未读邀请数
// @Router /api/v1/friends/invitations-for/unread [delete]
func (h *FriendHandler) ClearUnread(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)
	currentUser, ok := middleware.GetUserID(c)
	if !ok {
		result.Fail(c, http.StatusUnauthorized, consts.CodeUnauthorized)
		return
	}

	if err := h.relationService.ClearUnreadInvitations(ctx, currentUser); err != nil {
		failWithServiceError(ctx, c, err, "清空未读邀请数失败")
		return
	}
	result.Success(c, nil)
}
