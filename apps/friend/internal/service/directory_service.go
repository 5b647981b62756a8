package service

import (
	"context"

	"TrainingLog/apps/friend/internal/repository"
	"TrainingLog/consts"
	"TrainingLog/model"
)

const (
	opListUsers        = "ListUsers"
	opRelationshipWith = "RelationshipWith"
)

type directoryServiceImpl struct {
	userRepo repository.IUserRepository
	resolver StateResolver
}

// NewDirectoryService 创建用户目录服务
func NewDirectoryService(userRepo repository.IUserRepository, resolver StateResolver) DirectoryService {
	return &directoryServiceImpl{
		userRepo: userRepo,
		resolver: resolver,
	}
}

// ListUsers 目录分页查询。
// 关系过滤与排序都下推为 id 集合条件，分页总数与页内容保持一致。
func (s *directoryServiceImpl) ListUsers(ctx context.Context, viewerID string, query UserListQuery) (*UserPage, error) {
	mustUserIDs(opListUsers, viewerID)

	snapshot, err := s.resolver.Snapshot(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	params := buildSearchParams(snapshot, query)
	users, total, err := s.userRepo.Search(ctx, params)
	if err != nil {
		return nil, dataAccessError(ctx, opListUsers, viewerID, "", err)
	}

	page := &UserPage{Items: make([]UserWithState, 0, len(users)), Total: total}
	for _, u := range users {
		page.Items = append(page.Items, UserWithState{User: u, State: snapshot.StateOf(u.Id)})
	}
	return page, nil
}

// buildSearchParams 把状态过滤翻译成 include/exclude 集合：
// 需要 None 时只能排除不想要的状态集合，否则直接限定在想要的状态集合内。
func buildSearchParams(snapshot *RelationSnapshot, query UserListQuery) repository.UserSearchParams {
	params := repository.UserSearchParams{
		Keyword:    query.Keyword,
		ExcludeIDs: []string{snapshot.ViewerID},
		Page:       query.Page,
		PageSize:   query.PageSize,
	}

	if len(query.States) > 0 {
		wanted := make(map[model.RelationshipState]bool, len(query.States))
		for _, st := range query.States {
			wanted[st] = true
		}

		if wanted[model.StateNone] {
			for _, st := range model.AllRelationshipStates {
				if st != model.StateNone && !wanted[st] {
					params.ExcludeIDs = append(params.ExcludeIDs, snapshot.IDsIn(st)...)
				}
			}
		} else {
			params.RestrictToIDs = true
			for _, st := range model.AllRelationshipStates {
				if wanted[st] {
					params.OnlyIDs = append(params.OnlyIDs, snapshot.IDsIn(st)...)
				}
			}
		}
	}

	if query.OrderByRelationship {
		params.RankGroups = [][]string{
			snapshot.IDsIn(model.StateFriends),
			snapshot.IDsIn(model.StateInvited),
			snapshot.IDsIn(model.StateCanBeAccepted),
		}
	}
	return params
}

// RelationshipWith 查看者与单个用户的关系
func (s *directoryServiceImpl) RelationshipWith(ctx context.Context, viewerID, userID string) (*UserWithState, error) {
	mustUserIDs(opRelationshipWith, viewerID, userID)

	if viewerID == userID {
		return nil, newRelationError(KindSelfReference, consts.CodeCannotInviteSelf, opRelationshipWith, viewerID, userID)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, dataAccessError(ctx, opRelationshipWith, viewerID, userID, err)
	}
	if user == nil {
		return nil, newRelationError(KindNotFound, consts.CodeUserNotFound, opRelationshipWith, viewerID, userID)
	}

	states, err := s.resolver.ResolveStates(ctx, viewerID, []string{userID})
	if err != nil {
		return nil, err
	}
	return &UserWithState{User: user, State: states[userID]}, nil
}
