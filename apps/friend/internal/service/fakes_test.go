package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"TrainingLog/apps/friend/internal/repository"
	"TrainingLog/model"
	"TrainingLog/pkg/logger"

	"go.uber.org/zap"
)

var friendSvcLoggerOnce sync.Once

func initFriendSvcTestLogger() {
	friendSvcLoggerOnce.Do(func() {
		logger.ReplaceGlobal(zap.NewNop())
	})
}

type pairKey [2]string

func keyOf(a, b string) pairKey {
	low, high := model.CanonicalPair(a, b)
	return pairKey{low, high}
}

// memDB 内存版存储，按规范化 pair 保证唯一，并统计每个方法的调用次数
type memDB struct {
	mu          sync.Mutex
	nextID      int64
	users       map[string]*model.User
	invitations map[pairKey]*model.FriendInvitation
	friendships map[pairKey]*model.Friendship
	unread      map[string]int64
	calls       map[string]int
}

func newMemDB(userIDs ...string) *memDB {
	db := &memDB{
		users:       make(map[string]*model.User),
		invitations: make(map[pairKey]*model.FriendInvitation),
		friendships: make(map[pairKey]*model.Friendship),
		unread:      make(map[string]int64),
		calls:       make(map[string]int),
	}
	for _, id := range userIDs {
		db.users[id] = &model.User{Id: id, DisplayName: "name-" + id}
	}
	return db
}

func (db *memDB) hit(name string) {
	db.calls[name]++
}

// Calls 返回方法调用次数
func (db *memDB) Calls(name string) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.calls[name]
}

func (db *memDB) TotalCalls() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, c := range db.calls {
		n += c
	}
	return n
}

func (db *memDB) ResetCalls() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.calls = make(map[string]int)
}

// ---- transactor ----

type fakeTransactor struct {
	db         *memDB
	withinTxFn func(context.Context, func(context.Context) error) error
}

// WithinTx 出错时恢复到事务开始前的快照
func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(context.Context) error) error {
	if f.withinTxFn != nil {
		return f.withinTxFn(ctx, fn)
	}
	f.db.mu.Lock()
	invitations := make(map[pairKey]*model.FriendInvitation, len(f.db.invitations))
	for k, v := range f.db.invitations {
		invitations[k] = v
	}
	friendships := make(map[pairKey]*model.Friendship, len(f.db.friendships))
	for k, v := range f.db.friendships {
		friendships[k] = v
	}
	f.db.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.db.mu.Lock()
		f.db.invitations = invitations
		f.db.friendships = friendships
		f.db.mu.Unlock()
		return err
	}
	return nil
}

// ---- invitations ----

type fakeInvitationRepo struct {
	db            *memDB
	createFn      func(context.Context, *model.FriendInvitation) error
	deleteFn      func(context.Context, string, string) error
	findPairFn    func(context.Context, string, string) (*model.FriendInvitation, error)
	listForFn     func(context.Context, string, model.InvitationRole) ([]*model.FriendInvitation, error)
	listPeerIDsFn func(context.Context, string, model.InvitationRole) ([]string, error)
}

func (f *fakeInvitationRepo) FindByUnorderedPair(ctx context.Context, a, b string) (*model.FriendInvitation, error) {
	if f.findPairFn != nil {
		return f.findPairFn(ctx, a, b)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.hit("invitation.FindByUnorderedPair")
	return f.db.invitations[keyOf(a, b)], nil
}

func (f *fakeInvitationRepo) FindByOrderedPair(ctx context.Context, inviterID, invitedID string) (*model.FriendInvitation, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.hit("invitation.FindByOrderedPair")
	inv := f.db.invitations[keyOf(inviterID, invitedID)]
	if inv == nil || inv.InviterId != inviterID {
		return nil, nil
	}
	return inv, nil
}

func (f *fakeInvitationRepo) Create(ctx context.Context, invitation *model.FriendInvitation) error {
	if f.createFn != nil {
		return f.createFn(ctx, invitation)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.hit("invitation.Create")
	k := keyOf(invitation.InviterId, invitation.InvitedId)
	if _, ok := f.db.invitations[k]; ok {
		return repository.ErrDuplicateKey
	}
	f.db.nextID++
	invitation.Id = f.db.nextID
	invitation.PairLow, invitation.PairHigh = k[0], k[1]
	f.db.invitations[k] = invitation
	return nil
}

func (f *fakeInvitationRepo) Delete(ctx context.Context, inviterID, invitedID string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, inviterID, invitedID)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.hit("invitation.Delete")
	k := keyOf(inviterID, invitedID)
	inv := f.db.invitations[k]
	if inv == nil || inv.InviterId != inviterID {
		return repository.ErrRecordNotFound
	}
	delete(f.db.invitations, k)
	return nil
}

func (f *fakeInvitationRepo) ListFor(ctx context.Context, userID string, role model.InvitationRole) ([]*model.FriendInvitation, error) {
	if f.listForFn != nil {
		return f.listForFn(ctx, userID, role)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.hit("invitation.ListFor")
	var out []*model.FriendInvitation
	for _, inv := range f.db.invitations {
		if (role == model.RoleInviter && inv.InviterId == userID) || (role == model.RoleInvited && inv.InvitedId == userID) {
			cp := *inv
			cp.Inviter = *f.db.users[inv.InviterId]
			cp.Invited = *f.db.users[inv.InvitedId]
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id > out[j].Id })
	return out, nil
}

func (f *fakeInvitationRepo) ListPeerIDs(ctx context.Context, userID string, role model.InvitationRole) ([]string, error) {
	if f.listPeerIDsFn != nil {
		return f.listPeerIDsFn(ctx, userID, role)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.hit("invitation.ListPeerIDs")
	var out []string
	for _, inv := range f.db.invitations {
		if role == model.RoleInviter && inv.InviterId == userID {
			out = append(out, inv.InvitedId)
		}
		if role == model.RoleInvited && inv.InvitedId == userID {
			out = append(out, inv.InviterId)
		}
	}
	return out, nil
}

// ---- friendships ----

type fakeFriendshipRepo struct {
	db              *memDB
	createFn        func(context.Context, *model.Friendship) error
	deleteFn        func(context.Context, string, string) error
	findPairFn      func(context.Context, string, string) (*model.Friendship, error)
	listForFn       func(context.Context, string) ([]*model.Friendship, error)
	listFriendIDsFn func(context.Context, string) ([]string, error)
}

func (f *fakeFriendshipRepo) FindByUnorderedPair(ctx context.Context, a, b string) (*model.Friendship, error) {
	if f.findPairFn != nil {
		return f.findPairFn(ctx, a, b)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.hit("friendship.FindByUnorderedPair")
	return f.db.friendships[keyOf(a, b)], nil
}

func (f *fakeFriendshipRepo) Create(ctx context.Context, friendship *model.Friendship) error {
	if f.createFn != nil {
		return f.createFn(ctx, friendship)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.hit("friendship.Create")
	k := keyOf(friendship.FirstFriendId, friendship.SecondFriendId)
	if _, ok := f.db.friendships[k]; ok {
		return repository.ErrDuplicateKey
	}
	f.db.nextID++
	friendship.Id = f.db.nextID
	friendship.FirstFriendId, friendship.SecondFriendId = k[0], k[1]
	f.db.friendships[k] = friendship
	return nil
}

func (f *fakeFriendshipRepo) Delete(ctx context.Context, a, b string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, a, b)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.hit("friendship.Delete")
	k := keyOf(a, b)
	if _, ok := f.db.friendships[k]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(f.db.friendships, k)
	return nil
}

func (f *fakeFriendshipRepo) ListFor(ctx context.Context, userID string) ([]*model.Friendship, error) {
	if f.listForFn != nil {
		return f.listForFn(ctx, userID)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.hit("friendship.ListFor")
	var out []*model.Friendship
	for _, fs := range f.db.friendships {
		if fs.FirstFriendId == userID || fs.SecondFriendId == userID {
			cp := *fs
			cp.FirstFriend = *f.db.users[fs.FirstFriendId]
			cp.SecondFriend = *f.db.users[fs.SecondFriendId]
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

func (f *fakeFriendshipRepo) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	if f.listFriendIDsFn != nil {
		return f.listFriendIDsFn(ctx, userID)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.hit("friendship.ListFriendIDs")
	var out []string
	for _, fs := range f.db.friendships {
		if fs.FirstFriendId == userID || fs.SecondFriendId == userID {
			out = append(out, fs.OtherID(userID))
		}
	}
	return out, nil
}

// ---- users ----

type fakeUserRepo struct {
	db        *memDB
	getByIDFn func(context.Context, string) (*model.User, error)
	searchFn  func(context.Context, repository.UserSearchParams) ([]*model.User, int64, error)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.hit("user.GetByID")
	return f.db.users[id], nil
}

func (f *fakeUserRepo) GetByName(ctx context.Context, name string) (*model.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.hit("user.GetByName")
	for _, u := range f.db.users {
		if u.DisplayName == name {
			return u, nil
		}
	}
	return nil, nil
}

// Search 与 SQL 版本语义一致：过滤、按分组排序、再按展示名排序后分页
func (f *fakeUserRepo) Search(ctx context.Context, params repository.UserSearchParams) ([]*model.User, int64, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, params)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.hit("user.Search")

	exclude := toSet(params.ExcludeIDs)
	only := toSet(params.OnlyIDs)
	rank := make(map[string]int)
	for i, group := range params.RankGroups {
		for _, id := range group {
			if _, ok := rank[id]; !ok {
				rank[id] = i
			}
		}
	}
	rankOf := func(id string) int {
		if r, ok := rank[id]; ok {
			return r
		}
		return len(params.RankGroups)
	}

	var matched []*model.User
	for _, u := range f.db.users {
		if _, ok := exclude[u.Id]; ok {
			continue
		}
		if params.RestrictToIDs {
			if _, ok := only[u.Id]; !ok {
				continue
			}
		}
		if params.Keyword != "" && !strings.Contains(u.DisplayName, params.Keyword) {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool {
		ri, rj := rankOf(matched[i].Id), rankOf(matched[j].Id)
		if ri != rj {
			return ri < rj
		}
		return matched[i].DisplayName < matched[j].DisplayName
	})

	page, size := params.Page, params.PageSize
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	start := (page - 1) * size
	if start >= len(matched) {
		return []*model.User{}, int64(len(matched)), nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], int64(len(matched)), nil
}

// ---- notify ----

type fakeNotifyRepo struct {
	db      *memDB
	incrFn  func(context.Context, string) error
	decrFn  func(context.Context, string) error
	getFn   func(context.Context, string) (int64, error)
	clearFn func(context.Context, string) error
}

func (f *fakeNotifyRepo) IncrUnreadInvitation(ctx context.Context, userID string) error {
	if f.incrFn != nil {
		return f.incrFn(ctx, userID)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.unread[userID]++
	return nil
}

func (f *fakeNotifyRepo) DecrUnreadInvitation(ctx context.Context, userID string) error {
	if f.decrFn != nil {
		return f.decrFn(ctx, userID)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.unread[userID] <= 1 {
		delete(f.db.unread, userID)
		return nil
	}
	f.db.unread[userID]--
	return nil
}

func (f *fakeNotifyRepo) GetUnreadInvitationCount(ctx context.Context, userID string) (int64, error) {
	if f.getFn != nil {
		return f.getFn(ctx, userID)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return f.db.unread[userID], nil
}

func (f *fakeNotifyRepo) ClearUnreadInvitation(ctx context.Context, userID string) error {
	if f.clearFn != nil {
		return f.clearFn(ctx, userID)
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	delete(f.db.unread, userID)
	return nil
}

// ---- results ----

type fakeResultRepo struct {
	listByOwnersFn func(context.Context, []string, int, int) ([]*model.ExerciseResult, int64, error)
}

func (f *fakeResultRepo) ListByOwners(ctx context.Context, ownerIDs []string, page, pageSize int) ([]*model.ExerciseResult, int64, error) {
	if f.listByOwnersFn == nil {
		return nil, 0, nil
	}
	return f.listByOwnersFn(ctx, ownerIDs, page, pageSize)
}

// fixture 一组共享同一个 memDB 的 fake 仓储
type fixture struct {
	db          *memDB
	tx          *fakeTransactor
	invitations *fakeInvitationRepo
	friendships *fakeFriendshipRepo
	users       *fakeUserRepo
	notify      *fakeNotifyRepo
}

func newFixture(userIDs ...string) *fixture {
	initFriendSvcTestLogger()
	db := newMemDB(userIDs...)
	return &fixture{
		db:          db,
		tx:          &fakeTransactor{db: db},
		invitations: &fakeInvitationRepo{db: db},
		friendships: &fakeFriendshipRepo{db: db},
		users:       &fakeUserRepo{db: db},
		notify:      &fakeNotifyRepo{db: db},
	}
}

func (f *fixture) service(publisher EventPublisher) RelationshipService {
	return NewRelationshipService(f.tx, f.invitations, f.friendships, f.users, f.notify, publisher)
}

func (f *fixture) resolver() StateResolver {
	return NewStateResolver(f.invitations, f.friendships)
}
