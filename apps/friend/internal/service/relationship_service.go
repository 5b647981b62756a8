package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"TrainingLog/apps/friend/internal/repository"
	"TrainingLog/consts"
	"TrainingLog/model"
	"TrainingLog/pkg/async"
	"TrainingLog/pkg/logger"
)

const (
	opCreateInvitation = "CreateInvitation"
	opAcceptInvitation = "AcceptInvitation"
	opRemoveInvitation = "RemoveInvitation"
	opRemoveFriendship = "RemoveFriendship"
	opGetFriends       = "GetFriendsFor"
	opGetInvitations   = "GetInvitations"
)

const unreadTaskTimeout = 3 * time.Second

// userNamePrefix 以此开头的目标按展示名查找
const userNamePrefix = "@"

// relationshipServiceImpl 好友关系服务实现
type relationshipServiceImpl struct {
	tx             repository.ITransactor
	invitationRepo repository.IInvitationRepository
	friendshipRepo repository.IFriendshipRepository
	userRepo       repository.IUserRepository
	notifyRepo     repository.INotifyRepository
	publisher      EventPublisher
	now            func() time.Time
}

// NewRelationshipService 创建好友关系服务实例
func NewRelationshipService(
	tx repository.ITransactor,
	invitationRepo repository.IInvitationRepository,
	friendshipRepo repository.IFriendshipRepository,
	userRepo repository.IUserRepository,
	notifyRepo repository.INotifyRepository,
	publisher EventPublisher,
) RelationshipService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &relationshipServiceImpl{
		tx:             tx,
		invitationRepo: invitationRepo,
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		notifyRepo:     notifyRepo,
		publisher:      publisher,
		now:            time.Now,
	}
}

// CreateInvitation 发起好友邀请
// 预检查只为更快、更准确地报错；并发下以唯一索引冲突为准。
func (s *relationshipServiceImpl) CreateInvitation(ctx context.Context, inviterID, invitedID string) (invitation *model.FriendInvitation, err error) {
	mustUserIDs(opCreateInvitation, inviterID, invitedID)
	defer func() { observeOp(opCreateInvitation, err) }()

	if inviterID == invitedID {
		return nil, newRelationError(KindSelfReference, consts.CodeCannotInviteSelf, opCreateInvitation, inviterID, invitedID)
	}

	// 1. 被邀请用户必须存在，"@展示名" 按名字查找
	invited, err := s.resolveUser(ctx, invitedID)
	if err != nil {
		return nil, dataAccessError(ctx, opCreateInvitation, inviterID, invitedID, err)
	}
	if invited == nil {
		return nil, newRelationError(KindNotFound, consts.CodeUserNotFound, opCreateInvitation, inviterID, invitedID)
	}
	invitedID = invited.Id
	if inviterID == invitedID {
		return nil, newRelationError(KindSelfReference, consts.CodeCannotInviteSelf, opCreateInvitation, inviterID, invitedID)
	}

	// 2. 已是好友或已有任意方向的邀请
	if err := s.checkNoRelation(ctx, inviterID, invitedID); err != nil {
		return nil, err
	}

	// 3. 写入，唯一索引冲突即已存在
	invitation = &model.FriendInvitation{
		InviterId:      inviterID,
		InvitedId:      invitedID,
		InvitationTime: s.now(),
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, newRelationError(KindAlreadyExists, consts.CodeFriendRequestSent, opCreateInvitation, inviterID, invitedID)
		}
		return nil, dataAccessError(ctx, opCreateInvitation, inviterID, invitedID, err)
	}

	// 4. 插入前后之间可能有并发的接受操作提交了好友关系，复查一次并撤销本次邀请
	friendship, err := s.friendshipRepo.FindByUnorderedPair(ctx, inviterID, invitedID)
	if err != nil {
		return nil, dataAccessError(ctx, opCreateInvitation, inviterID, invitedID, err)
	}
	if friendship != nil {
		if delErr := s.invitationRepo.Delete(ctx, inviterID, invitedID); delErr != nil && !errors.Is(delErr, repository.ErrRecordNotFound) {
			return nil, dataAccessError(ctx, opCreateInvitation, inviterID, invitedID, delErr)
		}
		return nil, newRelationError(KindAlreadyExists, consts.CodeAlreadyFriend, opCreateInvitation, inviterID, invitedID)
	}
	invitation.Invited = *invited

	if err := s.notifyRepo.IncrUnreadInvitation(ctx, invitedID); err != nil {
		logger.Warn(ctx, "更新好友邀请未读数失败",
			logger.String("invited_id", invitedID),
			logger.ErrorField("error", err),
		)
	}
	s.publish(ctx, model.EventInvitationCreated, inviterID, invitedID)
	return invitation, nil
}

// resolveUser 按 id 或 "@展示名" 查找用户
func (s *relationshipServiceImpl) resolveUser(ctx context.Context, ref string) (*model.User, error) {
	if name, ok := strings.CutPrefix(ref, userNamePrefix); ok {
		if name == "" {
			return nil, nil
		}
		return s.userRepo.GetByName(ctx, name)
	}
	return s.userRepo.GetByID(ctx, ref)
}

// checkNoRelation 两人之间既没有好友关系也没有任意方向的邀请
func (s *relationshipServiceImpl) checkNoRelation(ctx context.Context, inviterID, invitedID string) error {
	friendship, err := s.friendshipRepo.FindByUnorderedPair(ctx, inviterID, invitedID)
	if err != nil {
		return dataAccessError(ctx, opCreateInvitation, inviterID, invitedID, err)
	}
	if friendship != nil {
		return newRelationError(KindAlreadyExists, consts.CodeAlreadyFriend, opCreateInvitation, inviterID, invitedID)
	}

	existing, err := s.invitationRepo.FindByUnorderedPair(ctx, inviterID, invitedID)
	if err != nil {
		return dataAccessError(ctx, opCreateInvitation, inviterID, invitedID, err)
	}
	if existing != nil {
		return newRelationError(KindAlreadyExists, consts.CodeFriendRequestSent, opCreateInvitation, inviterID, invitedID)
	}
	return nil
}

// AcceptInvitation 接受邀请：删除邀请 + 建立好友关系在同一事务中完成，
// 并发读不会看到两者都不存在的中间状态。
func (s *relationshipServiceImpl) AcceptInvitation(ctx context.Context, inviterID, invitedID string) (friendship *model.Friendship, err error) {
	mustUserIDs(opAcceptInvitation, inviterID, invitedID)
	defer func() { observeOp(opAcceptInvitation, err) }()

	if inviterID == invitedID {
		return nil, newRelationError(KindSelfReference, consts.CodeCannotInviteSelf, opAcceptInvitation, inviterID, invitedID)
	}

	friendship = &model.Friendship{
		FirstFriendId:  inviterID,
		SecondFriendId: invitedID,
		FriendsFrom:    s.now(),
	}
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.invitationRepo.Delete(txCtx, inviterID, invitedID); err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return newRelationError(KindNotFound, consts.CodeInvitationNotFound, opAcceptInvitation, inviterID, invitedID)
			}
			return dataAccessError(ctx, opAcceptInvitation, inviterID, invitedID, err)
		}
		if err := s.friendshipRepo.Create(txCtx, friendship); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return newRelationError(KindAlreadyExists, consts.CodeAlreadyFriend, opAcceptInvitation, inviterID, invitedID)
			}
			return dataAccessError(ctx, opAcceptInvitation, inviterID, invitedID, err)
		}
		return nil
	})
	if err != nil {
		if _, ok := AsRelationError(err); ok {
			return nil, err
		}
		// 提交失败
		return nil, dataAccessError(ctx, opAcceptInvitation, inviterID, invitedID, err)
	}

	s.releaseUnread(ctx, invitedID)
	s.publish(ctx, model.EventInvitationAccepted, inviterID, invitedID)
	return friendship, nil
}

// RemoveInvitation 删除 inviter -> invited 的邀请。
// 拒绝与撤回共用此操作，调用方角色由接入层决定。
func (s *relationshipServiceImpl) RemoveInvitation(ctx context.Context, inviterID, invitedID string) (err error) {
	mustUserIDs(opRemoveInvitation, inviterID, invitedID)
	defer func() { observeOp(opRemoveInvitation, err) }()

	if inviterID == invitedID {
		return newRelationError(KindSelfReference, consts.CodeCannotInviteSelf, opRemoveInvitation, inviterID, invitedID)
	}

	if err := s.invitationRepo.Delete(ctx, inviterID, invitedID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return newRelationError(KindNotFound, consts.CodeInvitationNotFound, opRemoveInvitation, inviterID, invitedID)
		}
		return dataAccessError(ctx, opRemoveInvitation, inviterID, invitedID, err)
	}

	s.releaseUnread(ctx, invitedID)
	s.publish(ctx, model.EventInvitationRemoved, inviterID, invitedID)
	return nil
}

// RemoveFriendship 解除好友关系
func (s *relationshipServiceImpl) RemoveFriendship(ctx context.Context, userID, friendID string) (err error) {
	mustUserIDs(opRemoveFriendship, userID, friendID)
	defer func() { observeOp(opRemoveFriendship, err) }()

	if userID == friendID {
		return newRelationError(KindSelfReference, consts.CodeCannotInviteSelf, opRemoveFriendship, userID, friendID)
	}

	if err := s.friendshipRepo.Delete(ctx, userID, friendID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return newRelationError(KindNotFound, consts.CodeNotFriend, opRemoveFriendship, userID, friendID)
		}
		return dataAccessError(ctx, opRemoveFriendship, userID, friendID, err)
	}

	s.publish(ctx, model.EventFriendshipRemoved, userID, friendID)
	return nil
}

// GetFriendsFor 把每条好友关系投影为"不是 userID 的那一方"
func (s *relationshipServiceImpl) GetFriendsFor(ctx context.Context, userID string) ([]Friend, error) {
	mustUserIDs(opGetFriends, userID)

	friendships, err := s.friendshipRepo.ListFor(ctx, userID)
	if err != nil {
		return nil, dataAccessError(ctx, opGetFriends, userID, "", err)
	}
	friends := make([]Friend, 0, len(friendships))
	for _, f := range friendships {
		friends = append(friends, Friend{User: f.Other(userID), FriendsFrom: f.FriendsFrom})
	}
	return friends, nil
}

// GetInvitationsFor 收到的邀请，只读；未读数由 ClearUnreadInvitations 显式清空
func (s *relationshipServiceImpl) GetInvitationsFor(ctx context.Context, userID string) ([]*model.FriendInvitation, error) {
	mustUserIDs(opGetInvitations, userID)

	invitations, err := s.invitationRepo.ListFor(ctx, userID, model.RoleInvited)
	if err != nil {
		return nil, dataAccessError(ctx, opGetInvitations, userID, "", err)
	}
	return invitations, nil
}

// GetInvitationsOf 发出的邀请
func (s *relationshipServiceImpl) GetInvitationsOf(ctx context.Context, userID string) ([]*model.FriendInvitation, error) {
	mustUserIDs(opGetInvitations, userID)

	invitations, err := s.invitationRepo.ListFor(ctx, userID, model.RoleInviter)
	if err != nil {
		return nil, dataAccessError(ctx, opGetInvitations, userID, "", err)
	}
	return invitations, nil
}

// GetUnreadInvitationCount Redis 不可用时降级返回 0
func (s *relationshipServiceImpl) GetUnreadInvitationCount(ctx context.Context, userID string) (int64, error) {
	mustUserIDs("GetUnreadInvitationCount", userID)

	n, err := s.notifyRepo.GetUnreadInvitationCount(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "读取好友邀请未读数失败，降级返回 0",
			logger.String("user_id", userID),
			logger.ErrorField("error", err),
		)
		return 0, nil
	}
	return n, nil
}

func (s *relationshipServiceImpl) ClearUnreadInvitations(ctx context.Context, userID string) error {
	mustUserIDs("ClearUnreadInvitations", userID)

	if err := s.notifyRepo.ClearUnreadInvitation(ctx, userID); err != nil {
		logger.Warn(ctx, "清空好友邀请未读数失败",
			logger.String("user_id", userID),
			logger.ErrorField("error", err),
		)
	}
	return nil
}

// releaseUnread 邀请离开（接受、拒绝、撤回）后被邀请人未读数 -1，
// 放到协程池里执行，失败只记录日志
func (s *relationshipServiceImpl) releaseUnread(ctx context.Context, invitedID string) {
	async.RunSafe(ctx, func(runCtx context.Context) {
		if err := s.notifyRepo.DecrUnreadInvitation(runCtx, invitedID); err != nil {
			logger.Warn(runCtx, "扣减好友邀请未读数失败",
				logger.String("invited_id", invitedID),
				logger.ErrorField("error", err),
			)
		}
	}, unreadTaskTimeout)
}

// publish 投递关系事件，失败只记录日志
func (s *relationshipServiceImpl) publish(ctx context.Context, eventType model.RelationEventType, inviterID, invitedID string) {
	event := model.RelationEvent{
		Type:       eventType,
		InviterId:  inviterID,
		InvitedId:  invitedID,
		OccurredAt: s.now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx, "关系事件投递失败",
			logger.String("type", string(eventType)),
			logger.String("inviter_id", inviterID),
			logger.String("invited_id", invitedID),
			logger.ErrorField("error", err),
		)
	}
}
