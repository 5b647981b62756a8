package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"TrainingLog/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepositoryImpl 用户目录只读实现
type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository 创建用户目录仓储实例
func NewUserRepository(db *gorm.DB) IUserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepositoryImpl) GetByName(ctx context.Context, name string) (*model.User, error) {
	return r.first(ctx, "display_name = ?", name)
}

func (r *userRepositoryImpl) first(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	err := conn(ctx, r.db).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, WrapDBError(err)
	}
	return &user, nil
}

// Search 目录分页查询
// 关系过滤由调用方换算成 id 集合下推到 SQL，保证分页与总数准确。
func (r *userRepositoryImpl) Search(ctx context.Context, params UserSearchParams) ([]*model.User, int64, error) {
	offset, limit := normalizePage(params.Page, params.PageSize)

	q := conn(ctx, r.db).Model(&model.User{})
	if kw := strings.TrimSpace(params.Keyword); kw != "" {
		q = q.Where("display_name LIKE ? ESCAPE '"+likeEscapeChar+"'", "%"+escapeLike(kw)+"%")
	}
	if len(params.ExcludeIDs) > 0 {
		q = q.Where("id NOT IN ?", params.ExcludeIDs)
	}
	if params.RestrictToIDs {
		if len(params.OnlyIDs) == 0 {
			return []*model.User{}, 0, nil
		}
		q = q.Where("id IN ?", params.OnlyIDs)
	}
	// 复用同一组条件分别做 count 与分页查询
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, WrapDBError(err)
	}
	if total == 0 {
		return []*model.User{}, 0, nil
	}

	var users []*model.User
	err := q.Order(buildRankOrder(params.RankGroups)).
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, WrapDBError(err)
	}
	return users, total, nil
}

// buildRankOrder 生成 ORDER BY CASE WHEN id IN (...) THEN 0 ... END, display_name, id
func buildRankOrder(groups [][]string) clause.OrderBy {
	var sb strings.Builder
	vars := make([]interface{}, 0, len(groups))
	rank := 0
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		if rank == 0 {
			sb.WriteString("CASE")
		}
		sb.WriteString(" WHEN id IN ? THEN ")
		sb.WriteString(strconv.Itoa(rank))
		vars = append(vars, g)
		rank++
	}
	if rank > 0 {
		sb.WriteString(" ELSE ")
		sb.WriteString(strconv.Itoa(rank))
		sb.WriteString(" END, ")
	}
	sb.WriteString("display_name ASC, id ASC")
	return clause.OrderBy{Expression: clause.Expr{SQL: sb.String(), Vars: vars}}
}
