package service

import (
	"context"
	"sort"

	"TrainingLog/apps/friend/internal/repository"
	"TrainingLog/consts"
)

const opListResults = "ListVisibleResults"

type visibilityServiceImpl struct {
	friendshipRepo repository.IFriendshipRepository
	resultRepo     repository.IResultRepository
}

// NewVisibilityService 创建成绩可见性服务
func NewVisibilityService(friendshipRepo repository.IFriendshipRepository, resultRepo repository.IResultRepository) VisibilityService {
	return &visibilityServiceImpl{
		friendshipRepo: friendshipRepo,
		resultRepo:     resultRepo,
	}
}

// FriendIDsOf 用户全部好友 id 集合，不含用户本人
func (s *visibilityServiceImpl) FriendIDsOf(ctx context.Context, userID string) (map[string]struct{}, error) {
	mustUserIDs("FriendIDsOf", userID)

	ids, err := s.friendshipRepo.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, dataAccessError(ctx, "FriendIDsOf", userID, "", err)
	}
	return toSet(ids), nil
}

// ListVisibleResults 成绩对本人和好友可见。
// 指定 OwnerID 时只查该用户，不可见直接拒绝；否则查本人与全部好友。
func (s *visibilityServiceImpl) ListVisibleResults(ctx context.Context, viewerID string, query ResultQuery) (*ResultPage, error) {
	mustUserIDs(opListResults, viewerID)

	friends, err := s.FriendIDsOf(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	var owners []string
	if query.OwnerID != "" {
		_, isFriend := friends[query.OwnerID]
		if query.OwnerID != viewerID && !isFriend {
			return nil, newRelationError(KindNotVisible, consts.CodeResultsNotVisible, opListResults, viewerID, query.OwnerID)
		}
		owners = []string{query.OwnerID}
	} else {
		owners = make([]string, 0, len(friends)+1)
		owners = append(owners, viewerID)
		for id := range friends {
			owners = append(owners, id)
		}
		sort.Strings(owners[1:])
	}

	items, total, err := s.resultRepo.ListByOwners(ctx, owners, query.Page, query.PageSize)
	if err != nil {
		return nil, dataAccessError(ctx, opListResults, viewerID, query.OwnerID, err)
	}
	return &ResultPage{Items: items, Total: total}, nil
}
