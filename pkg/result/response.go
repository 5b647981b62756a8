package result

import (
	"net/http"

	"TrainingLog/consts"

	"github.com/gin-gonic/gin"
)

// Response 响应结构体
type Response struct {
	Code    int32       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	TraceId string      `json:"trace_id"`
}

// Result 返回响应
func Result(c *gin.Context, status int, data interface{}, message string, code int32) {
	traceId := c.GetString("trace_id")
	if message == "" {
		message = consts.GetMessage(code)
	}
	c.JSON(status, Response{
		Code:    code,
		Message: message,
		Data:    data,
		TraceId: traceId,
	})
}

// Success 返回成功响应
func Success(c *gin.Context, data interface{}) {
	Result(c, http.StatusOK, data, "", consts.CodeSuccess)
}

// Fail 返回失败响应，HTTP 状态码由调用方决定
func Fail(c *gin.Context, status int, code int32) {
	Result(c, status, nil, "", code)
}

// FailWithMessage 返回失败响应并自定义消息
func FailWithMessage(c *gin.Context, status int, message string, code int32) {
	Result(c, status, nil, message, code)
}

// Abort 返回失败响应并终止后续中间件
func Abort(c *gin.Context, status int, code int32) {
	Fail(c, status, code)
	c.Abort()
}
