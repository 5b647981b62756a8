package service

import (
	"context"
	"errors"
	"fmt"

	"TrainingLog/consts"
	"TrainingLog/pkg/logger"
)

// ErrorKind 关系操作失败的类别，调用方据此分支（HTTP 层映射状态码）
type ErrorKind int8

const (
	KindSelfReference ErrorKind = iota + 1 // 操作双方是同一用户
	KindAlreadyExists                      // 邀请或好友关系已存在
	KindNotFound                           // 目标记录/用户不存在
	KindNotVisible                         // 无权查看
	KindDataAccess                         // 存储层故障
)

// 与 errors.Is 配合使用的哨兵错误
var (
	ErrSelfReference     = errors.New("self reference")
	ErrAlreadyExists     = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
	ErrResultsNotVisible = errors.New("results not visible")
	ErrDataAccess        = errors.New("data access failure")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindSelfReference:
		return ErrSelfReference
	case KindAlreadyExists:
		return ErrAlreadyExists
	case KindNotFound:
		return ErrNotFound
	case KindNotVisible:
		return ErrResultsNotVisible
	default:
		return ErrDataAccess
	}
}

func (k ErrorKind) String() string {
	return k.sentinel().Error()
}

// RelationError 服务层返回的类型化错误
type RelationError struct {
	Kind   ErrorKind
	Code   int32  // 业务错误码，见 consts
	Op     string // 操作名
	UserID string
	PeerID string
	Err    error // 底层错误（仅 DataAccess 非空）
}

func (e *RelationError) Error() string {
	msg := fmt.Sprintf("%s(%s, %s): %s", e.Op, e.UserID, e.PeerID, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RelationError) Unwrap() error { return e.Err }

func (e *RelationError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// AsRelationError 提取 RelationError
func AsRelationError(err error) (*RelationError, bool) {
	var relErr *RelationError
	if errors.As(err, &relErr) {
		return relErr, true
	}
	return nil, false
}

func newRelationError(kind ErrorKind, code int32, op, userID, peerID string) *RelationError {
	return &RelationError{Kind: kind, Code: code, Op: op, UserID: userID, PeerID: peerID}
}

// dataAccessError 记录存储层故障（带操作与双方 id）后返回
func dataAccessError(ctx context.Context, op, userID, peerID string, err error) *RelationError {
	logger.Error(ctx, "关系数据访问失败",
		logger.String("op", op),
		logger.String("user_id", userID),
		logger.String("peer_id", peerID),
		logger.ErrorField("error", err),
	)
	return &RelationError{
		Kind:   KindDataAccess,
		Code:   consts.CodeInternalError,
		Op:     op,
		UserID: userID,
		PeerID: peerID,
		Err:    err,
	}
}

// mustUserIDs 空 id 属于调用方编程错误，直接 panic
func mustUserIDs(op string, ids ...string) {
	for _, id := range ids {
		if id == "" {
			panic(fmt.Sprintf("service.%s: user id must not be empty", op))
		}
	}
}
