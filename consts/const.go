package consts

// 通用错误码
const (
	CodeSuccess int32 = 0 // 成功
)

// 客户端错误 (1xxxx)
const (
	CodeParamError       int32 = 10001 // 参数验证失败
	CodeBodyError        int32 = 10002 // 请求体格式错误
	CodeResourceNotFound int32 = 10003 // 资源不存在
	CodeMethodNotAllowed int32 = 10004 // 请求方法不允许
	CodeTooManyRequests  int32 = 10005 // 请求过于频繁
)

// 认证错误 (2xxxx)
const (
	CodeUnauthorized   int32 = 20001 // 未认证
	CodeInvalidToken   int32 = 20002 // Token 无效
	CodeTokenExpired   int32 = 20003 // Token 已过期
	CodePermissionDeny int32 = 20004 // 权限不足
)

// 用户模块错误 (11xxx)
const (
	CodeUserNotFound int32 = 11001 // 用户不存在
)

// 好友模块错误 (12xxx)
const (
	CodeAlreadyFriend      int32 = 12001 // 已经是好友
	CodeFriendRequestSent  int32 = 12002 // 好友邀请已存在
	CodeNotFriend          int32 = 12003 // 不存在该好友关系
	CodeInvitationNotFound int32 = 12004 // 好友邀请不存在
	CodeCannotInviteSelf   int32 = 12005 // 不能邀请自己
	CodeInvalidRelation    int32 = 12006 // 关系状态过滤参数错误
)

// 训练成绩模块错误 (15xxx)
const (
	CodeResultsNotVisible int32 = 15001 // 无权查看该用户的训练成绩
)

// 服务端错误 (3xxxx)
const (
	CodeInternalError      int32 = 30001 // 服务器内部错误
	CodeServiceUnavailable int32 = 30002 // 服务暂不可用
	CodeTimeoutError       int32 = 30003 // 请求超时
)

// 错误消息映射
var CodeMessage = map[int32]string{
	CodeSuccess: "success",

	// 客户端错误
	CodeParamError:       "参数验证失败",
	CodeBodyError:        "请求体格式错误",
	CodeResourceNotFound: "资源不存在",
	CodeMethodNotAllowed: "请求方法不允许",
	CodeTooManyRequests:  "请求过于频繁",

	// 认证错误
	CodeUnauthorized:   "未认证",
	CodeInvalidToken:   "Token 无效",
	CodeTokenExpired:   "Token 已过期",
	CodePermissionDeny: "权限不足",

	// 用户模块
	CodeUserNotFound: "用户不存在",

	// 好友模块
	CodeAlreadyFriend:      "已经是好友",
	CodeFriendRequestSent:  "好友邀请已存在",
	CodeNotFriend:          "不存在该好友关系",
	CodeInvitationNotFound: "好友邀请不存在",
	CodeCannotInviteSelf:   "不能邀请自己",
	CodeInvalidRelation:    "关系状态过滤参数错误",

	// 训练成绩模块
	CodeResultsNotVisible: "无权查看该用户的训练成绩",

	// 服务端错误
	CodeInternalError:      "服务器内部错误",
	CodeServiceUnavailable: "服务暂不可用",
	CodeTimeoutError:       "请求超时",
}

// GetMessage 根据错误码获取错误消息
func GetMessage(code int32) string {
	if msg, ok := CodeMessage[code]; ok {
		return msg
	}
	return "未知错误"
}

// IsNonServerError 判断错误码是否为非服务端错误（客户端/业务错误）
func IsNonServerError(code int32) bool {
	return code != CodeSuccess && (code < 30000 || code >= 40000)
}
