// Package ctxmeta 定义在 context 中透传的请求元数据（trace_id、user_id、client_ip）。
package ctxmeta

import "context"

type ctxKey string

const (
	traceIDKey  ctxKey = "trace_id"
	userIDKey   ctxKey = "user_id"
	clientIPKey ctxKey = "client_ip"
)

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceID 读取 trace_id，不存在时返回空串
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(traceIDKey).(string)
	return v
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID 读取当前登录用户 id
func UserID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

func ClientIP(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(clientIPKey).(string)
	return v
}

// Detach 复制元数据到一个新的、不会随请求取消的 context，
// 供异步任务使用（async.SetContextPropagator）。
func Detach(parent context.Context) context.Context {
	ctx := context.Background()
	if v := TraceID(parent); v != "" {
		ctx = WithTraceID(ctx, v)
	}
	if v := UserID(parent); v != "" {
		ctx = WithUserID(ctx, v)
	}
	if v := ClientIP(parent); v != "" {
		ctx = WithClientIP(ctx, v)
	}
	return ctx
}
