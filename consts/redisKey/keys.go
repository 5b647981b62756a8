package rediskey

import (
	"fmt"
	"time"
)

// ==================== TTL 常量 ====================

const (
	// InvitationUnreadTTL 好友邀请未读计数 TTL
	InvitationUnreadTTL = 7 * 24 * time.Hour
)

// ==================== Key 构造函数 ====================

// InvitationUnreadKey 生成好友邀请未读计数 Key: friend:notify:invitation:unread:{user_id}
func InvitationUnreadKey(userID string) string {
	return fmt.Sprintf("friend:notify:invitation:unread:%s", userID)
}

// ==================== 限流 Key 构造函数 ====================

// BlacklistIPKey IP 黑名单 Key: friend:blacklist:ips
func BlacklistIPKey() string {
	return "friend:blacklist:ips"
}

// UserRateLimitKey 用户限流 Key: friend:rate:limit:user:{user_id}
func UserRateLimitKey(userID string) string {
	return fmt.Sprintf("friend:rate:limit:user:%s", userID)
}

// IPRateLimitKey IP 限流 Key: friend:rate:limit:ip:{ip}
func IPRateLimitKey(ip string) string {
	return fmt.Sprintf("friend:rate:limit:ip:%s", ip)
}
