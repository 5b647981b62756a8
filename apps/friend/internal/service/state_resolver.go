package service

import (
	"context"
	"sort"

	"TrainingLog/apps/friend/internal/repository"
	"TrainingLog/model"
)

const opResolveStates = "ResolveStates"

// RelationSnapshot 查看者某一时刻的关系集合。
// 三个集合在存储层约束下互不相交；即使出现脏数据，StateOf 仍按优先级取最高者。
type RelationSnapshot struct {
	ViewerID   string
	friendIDs  map[string]struct{}
	invitedIDs map[string]struct{} // 查看者邀请了对方
	inviterIDs map[string]struct{} // 对方邀请了查看者
}

func newRelationSnapshot(viewerID string, friendIDs, invitedIDs, inviterIDs []string) *RelationSnapshot {
	return &RelationSnapshot{
		ViewerID:   viewerID,
		friendIDs:  toSet(friendIDs),
		invitedIDs: toSet(invitedIDs),
		inviterIDs: toSet(inviterIDs),
	}
}

// StateOf 优先级 Friends > Invited > CanBeAccepted > None；查看者本人恒为 None
func (s *RelationSnapshot) StateOf(userID string) model.RelationshipState {
	if userID == s.ViewerID {
		return model.StateNone
	}
	if _, ok := s.friendIDs[userID]; ok {
		return model.StateFriends
	}
	if _, ok := s.invitedIDs[userID]; ok {
		return model.StateInvited
	}
	if _, ok := s.inviterIDs[userID]; ok {
		return model.StateCanBeAccepted
	}
	return model.StateNone
}

// Matches states 为空表示不过滤
func (s *RelationSnapshot) Matches(userID string, states []model.RelationshipState) bool {
	if len(states) == 0 {
		return true
	}
	state := s.StateOf(userID)
	for _, want := range states {
		if want == state {
			return true
		}
	}
	return false
}

// IDsIn 处于某一非 None 状态的全部用户 id（升序）
func (s *RelationSnapshot) IDsIn(state model.RelationshipState) []string {
	var set map[string]struct{}
	switch state {
	case model.StateFriends:
		set = s.friendIDs
	case model.StateInvited:
		set = s.invitedIDs
	case model.StateCanBeAccepted:
		set = s.inviterIDs
	default:
		return nil
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		// 按优先级归属，避免同一 id 同时出现在两个状态里
		if s.StateOf(id) == state {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

type stateResolverImpl struct {
	invitationRepo repository.IInvitationRepository
	friendshipRepo repository.IFriendshipRepository
}

// NewStateResolver 创建关系状态解析器
func NewStateResolver(invitationRepo repository.IInvitationRepository, friendshipRepo repository.IFriendshipRepository) StateResolver {
	return &stateResolverImpl{
		invitationRepo: invitationRepo,
		friendshipRepo: friendshipRepo,
	}
}

// Snapshot 固定三次存储访问：好友 id、已发出邀请的对方 id、收到邀请的对方 id
func (r *stateResolverImpl) Snapshot(ctx context.Context, viewerID string) (*RelationSnapshot, error) {
	mustUserIDs(opResolveStates, viewerID)

	friendIDs, err := r.friendshipRepo.ListFriendIDs(ctx, viewerID)
	if err != nil {
		return nil, dataAccessError(ctx, opResolveStates, viewerID, "", err)
	}
	invitedIDs, err := r.invitationRepo.ListPeerIDs(ctx, viewerID, model.RoleInviter)
	if err != nil {
		return nil, dataAccessError(ctx, opResolveStates, viewerID, "", err)
	}
	inviterIDs, err := r.invitationRepo.ListPeerIDs(ctx, viewerID, model.RoleInvited)
	if err != nil {
		return nil, dataAccessError(ctx, opResolveStates, viewerID, "", err)
	}
	return newRelationSnapshot(viewerID, friendIDs, invitedIDs, inviterIDs), nil
}

func (r *stateResolverImpl) ResolveStates(ctx context.Context, viewerID string, candidateIDs []string) (map[string]model.RelationshipState, error) {
	states := make(map[string]model.RelationshipState, len(candidateIDs))
	if len(candidateIDs) == 0 {
		return states, nil
	}

	snapshot, err := r.Snapshot(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	for _, id := range candidateIDs {
		states[id] = snapshot.StateOf(id)
	}
	return states, nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
