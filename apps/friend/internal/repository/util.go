package repository

import (
	"math/rand"
	"strings"
	"time"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// normalizePage 兜底分页参数，返回 offset 与 limit
func normalizePage(page, pageSize int) (offset, limit int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return (page - 1) * pageSize, pageSize
}

// likeEscapeChar LIKE 转义符，MySQL 与 SQLite 均可用 ESCAPE '!' 声明
const likeEscapeChar = "!"

// escapeLike 转义 LIKE 通配符
func escapeLike(s string) string {
	r := strings.NewReplacer(likeEscapeChar, likeEscapeChar+likeEscapeChar, "%", likeEscapeChar+"%", "_", likeEscapeChar+"_")
	return r.Replace(s)
}

// getRandomExpireTime 生成带随机抖动的过期时间
// baseExpire: 基础过期时间
// 返回: 基础过期时间 ± 10% 的随机时间
func getRandomExpireTime(baseExpire time.Duration) time.Duration {
	jitterRange := float64(baseExpire) * 0.1
	jitter := time.Duration(rand.Float64()*float64(jitterRange)*2 - float64(jitterRange))

	return baseExpire + jitter
}
